package account

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chrysspegenia/taskwhiz/model"
	accountsvc "github.com/chrysspegenia/taskwhiz/service/account"
	"github.com/chrysspegenia/taskwhiz/session"
	"github.com/chrysspegenia/taskwhiz/util/rules"
)

const (
	credentialsFailedMsg  = "Incorrect email or password. Please try again."
	registrationFailedMsg = "Registration failed. Please check your details and try again."
	registrationOKMsg     = "Account created successfully! Welcome to TaskWhiz!"
)

type Controller struct {
	Svc      accountsvc.Service
	Sessions *session.Manager
	Log      *slog.Logger
}

type loginView struct {
	Email  string
	Errors model.FieldErrors
}

type registrationView struct {
	Form      model.RegisterForm
	Errors    model.FieldErrors
	Checks    rules.PasswordChecks
	Match     bool
	Succeeded bool
	Failed    bool
	Message   string
}

func (ct *Controller) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginView{})
}

// Login handles one submission: on success the session cookies are
// written and the browser is sent to the profile page; every failure
// re-renders the form with a single error region.
func (ct *Controller) Login(c echo.Context) error {
	var form model.LoginForm
	if err := c.Bind(&form); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.Render(http.StatusOK, "login.html", loginView{
			Errors: model.FieldErrors{"credentials": credentialsFailedMsg},
		})
	}

	user, token, err := ct.Svc.Login(c.Request().Context(), form)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return c.Render(http.StatusOK, "login.html", loginView{
				Email:  form.Email,
				Errors: verr.Fields,
			})
		}

		if !errors.Is(err, accountsvc.ErrInvalidCreds) {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
		}
		// remote rejection and transport trouble read the same to the user
		return c.Render(http.StatusOK, "login.html", loginView{
			Email:  form.Email,
			Errors: model.FieldErrors{"credentials": credentialsFailedMsg},
		})
	}

	ct.Sessions.Persist(c, token, *user)
	return c.Redirect(http.StatusSeeOther, "/profile")
}

func (ct *Controller) RegistrationPage(c echo.Context) error {
	return c.Render(http.StatusOK, "registration.html", registrationView{})
}

func (ct *Controller) Register(c echo.Context) error {
	var form model.RegisterForm
	if err := c.Bind(&form); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.Render(http.StatusOK, "registration.html", registrationView{
			Failed:  true,
			Message: registrationFailedMsg,
		})
	}

	if err := ct.Svc.Register(c.Request().Context(), form); err != nil {
		view := registrationView{
			Form:   form,
			Checks: rules.CheckPassword(form.Password),
			Match:  rules.PasswordsMatch(form.Password, form.ConfirmPassword),
		}

		var verr *model.ValidationError
		if errors.As(err, &verr) {
			view.Errors = verr.Fields
			return c.Render(http.StatusOK, "registration.html", view)
		}

		if !errors.Is(err, accountsvc.ErrRegistration) {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("registration failed", "err", err, "req_id", rid, "path", c.Path())
		}
		view.Failed = true
		view.Message = registrationFailedMsg
		return c.Render(http.StatusOK, "registration.html", view)
	}

	// success clears the form and every requirement flag
	return c.Render(http.StatusOK, "registration.html", registrationView{
		Succeeded: true,
		Message:   registrationOKMsg,
	})
}

func (ct *Controller) Logout(c echo.Context) error {
	ct.Sessions.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
