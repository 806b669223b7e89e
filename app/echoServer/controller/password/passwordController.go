package password

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chrysspegenia/taskwhiz/model"
	passwordsvc "github.com/chrysspegenia/taskwhiz/service/password"
	"github.com/chrysspegenia/taskwhiz/util/rules"
)

const (
	unknownEmailMsg = "Your email doesn't seem to match any account."
	sentDefaultMsg  = "Check your inbox for instructions to reset your password."
	resetFailedMsg  = "Password reset failed. Your reset link may have expired."
	resetOKMsg      = "Your password has been reset. You can now log in with your new password."
	badLinkMsg      = "This reset link is invalid or incomplete. Please request a new one."
)

type Controller struct {
	Svc passwordsvc.Service
	Log *slog.Logger
}

type forgotView struct {
	Email   string
	Errors  model.FieldErrors
	Sent    bool
	Failed  bool
	Message string
}

type resetView struct {
	Token        string
	Errors       model.FieldErrors
	Checks       rules.PasswordChecks
	Match        bool
	Succeeded    bool
	Failed       bool
	MissingToken bool
	Message      string
}

func (ct *Controller) ForgotPage(c echo.Context) error {
	return c.Render(http.StatusOK, "forgot_password.html", forgotView{})
}

// RequestReset handles both the first submission and the resend from the
// confirmation panel, which posts the same email again.
func (ct *Controller) RequestReset(c echo.Context) error {
	var form model.ForgotPasswordForm
	if err := c.Bind(&form); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.Render(http.StatusOK, "forgot_password.html", forgotView{
			Failed:  true,
			Message: unknownEmailMsg,
		})
	}

	msg, err := ct.Svc.RequestReset(c.Request().Context(), form)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return c.Render(http.StatusOK, "forgot_password.html", forgotView{
				Email:  form.Email,
				Errors: verr.Fields,
			})
		}

		if !errors.Is(err, passwordsvc.ErrUnknownEmail) {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("reset request failed", "err", err, "req_id", rid, "path", c.Path())
		}
		return c.Render(http.StatusOK, "forgot_password.html", forgotView{
			Email:   form.Email,
			Failed:  true,
			Message: unknownEmailMsg,
		})
	}

	if msg == "" {
		msg = sentDefaultMsg
	}
	return c.Render(http.StatusOK, "forgot_password.html", forgotView{
		Email:   form.Email,
		Sent:    true,
		Message: msg,
	})
}

// ResetPage renders the completion form. The opaque reset_password_token
// arrives as a query parameter and is carried through a hidden field.
func (ct *Controller) ResetPage(c echo.Context) error {
	token := c.QueryParam("reset_password_token")
	if token == "" {
		return c.Render(http.StatusOK, "password_reset.html", resetView{
			MissingToken: true,
			Message:      badLinkMsg,
		})
	}
	return c.Render(http.StatusOK, "password_reset.html", resetView{Token: token})
}

func (ct *Controller) CompleteReset(c echo.Context) error {
	var form model.ResetPasswordForm
	if err := c.Bind(&form); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.Render(http.StatusOK, "password_reset.html", resetView{
			MissingToken: true,
			Message:      badLinkMsg,
		})
	}

	if err := ct.Svc.CompleteReset(c.Request().Context(), form); err != nil {
		view := resetView{
			Token:  form.Token,
			Checks: rules.CheckPassword(form.Password),
			Match:  rules.PasswordsMatch(form.Password, form.ConfirmPassword),
		}

		switch {
		case errors.Is(err, passwordsvc.ErrMissingToken):
			view.MissingToken = true
			view.Message = badLinkMsg
		case errors.Is(err, passwordsvc.ErrResetFailed):
			view.Failed = true
			view.Message = resetFailedMsg
		default:
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				view.Errors = verr.Fields
				break
			}
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("reset completion failed", "err", err, "req_id", rid, "path", c.Path())
			view.Failed = true
			view.Message = resetFailedMsg
		}
		return c.Render(http.StatusOK, "password_reset.html", view)
	}

	return c.Render(http.StatusOK, "password_reset.html", resetView{
		Succeeded: true,
		Message:   resetOKMsg,
	})
}
