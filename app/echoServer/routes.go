package echoServer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chrysspegenia/taskwhiz/app/echoServer/controller/account"
	"github.com/chrysspegenia/taskwhiz/app/echoServer/controller/password"
	"github.com/chrysspegenia/taskwhiz/app/echoServer/controller/profile"
	"github.com/chrysspegenia/taskwhiz/session"
)

type C struct {
	Account  *account.Controller
	Password *password.Controller
	Profile  *profile.Controller

	Sessions *session.Manager
}

func Register(e *echo.Echo, c C) {
	e.StaticFS("/images", echo.MustSubFS(staticFS, "static/images"))

	// Public pages
	e.GET("/", home)
	e.GET("/login", c.Account.LoginPage)
	e.POST("/login", c.Account.Login)
	e.GET("/registration", c.Account.RegistrationPage)
	e.POST("/registration", c.Account.Register)
	e.POST("/logout", c.Account.Logout)

	e.GET("/forgot_password", c.Password.ForgotPage)
	e.POST("/forgot_password", c.Password.RequestReset)
	e.GET("/password_reset", c.Password.ResetPage)
	e.POST("/password_reset", c.Password.CompleteReset)

	// Signed-in pages
	prof := e.Group("/profile")
	prof.Use(RequireSession(c.Sessions))
	prof.GET("", c.Profile.View)
	prof.GET("/edit", c.Profile.EditPage)
	prof.POST("/edit", c.Profile.Update)
}

func home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", nil)
}
