package profile

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chrysspegenia/taskwhiz/model"
	taskwhizrepo "github.com/chrysspegenia/taskwhiz/repository/taskwhiz"
	profilesvc "github.com/chrysspegenia/taskwhiz/service/profile"
	"github.com/chrysspegenia/taskwhiz/session"
)

const (
	fetchFailedMsg  = "Failed to fetch profile data."
	updateFailedMsg = "Failed to update user data."
	updateOKMsg     = "Profile updated successfully!"
)

type Controller struct {
	Svc profilesvc.Service
	Log *slog.Logger
}

type profileView struct {
	Profile *model.Profile
	Failed  bool
	Message string
}

type editView struct {
	Form      model.ProfileForm
	Errors    model.FieldErrors
	Succeeded bool
	Failed    bool
	Message   string
}

// View fetches the profile once with the identity handed over by the
// session middleware; a failure renders in place of the content.
func (ct *Controller) View(c echo.Context) error {
	sess := session.FromContext(c)

	p, err := ct.Svc.Fetch(c.Request().Context(), sess.Token, sess.UserID)
	if err != nil {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		ct.Log.Warn("profile fetch failed", "err", err, "req_id", rid, "user_id", sess.UserID)
		return c.Render(http.StatusOK, "profile.html", profileView{
			Failed:  true,
			Message: fetchFailedMsg,
		})
	}
	return c.Render(http.StatusOK, "profile.html", profileView{Profile: p})
}

func (ct *Controller) EditPage(c echo.Context) error {
	return c.Render(http.StatusOK, "profile_edit.html", editView{})
}

func (ct *Controller) Update(c echo.Context) error {
	sess := session.FromContext(c)

	var form model.ProfileForm
	if err := c.Bind(&form); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.Render(http.StatusOK, "profile_edit.html", editView{
			Failed:  true,
			Message: updateFailedMsg,
		})
	}

	var (
		avatarName string
		avatar     io.Reader
	)
	if fh, err := c.FormFile("avatar"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			ct.Log.Warn("avatar open failed", "err", err)
			return c.Render(http.StatusOK, "profile_edit.html", editView{
				Form:    form,
				Failed:  true,
				Message: updateFailedMsg,
			})
		}
		defer f.Close()
		avatarName = fh.Filename
		avatar = f
	}

	if err := ct.Svc.Update(c.Request().Context(), sess.Token, sess.UserID, form, avatarName, avatar); err != nil {
		view := editView{Form: form}

		var verr *model.ValidationError
		if errors.As(err, &verr) {
			view.Errors = verr.Fields
			return c.Render(http.StatusOK, "profile_edit.html", view)
		}

		view.Failed = true
		view.Message = updateFailedMsg
		var reqErr *taskwhizrepo.RequestError
		if errors.As(err, &reqErr) && reqErr.Message != "" {
			view.Message = reqErr.Message
		} else {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("profile update failed", "err", err, "req_id", rid, "user_id", sess.UserID)
		}
		return c.Render(http.StatusOK, "profile_edit.html", view)
	}

	return c.Render(http.StatusOK, "profile_edit.html", editView{
		Succeeded: true,
		Message:   updateOKMsg,
	})
}
