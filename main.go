// Package main serves the TaskWhiz account pages: login, registration,
// password reset and profile, all backed by the remote TaskWhiz API.
package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/chrysspegenia/taskwhiz/app/echoServer"
	accountctrl "github.com/chrysspegenia/taskwhiz/app/echoServer/controller/account"
	passwordctrl "github.com/chrysspegenia/taskwhiz/app/echoServer/controller/password"
	profilectrl "github.com/chrysspegenia/taskwhiz/app/echoServer/controller/profile"
	"github.com/chrysspegenia/taskwhiz/app/echoServer/validation"
	"github.com/chrysspegenia/taskwhiz/config"
	taskwhizrepo "github.com/chrysspegenia/taskwhiz/repository/taskwhiz"
	accountsvc "github.com/chrysspegenia/taskwhiz/service/account"
	passwordsvc "github.com/chrysspegenia/taskwhiz/service/password"
	profilesvc "github.com/chrysspegenia/taskwhiz/service/profile"
	"github.com/chrysspegenia/taskwhiz/session"
)

func main() {

	cfg := config.Load()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// gateway to the TaskWhiz API
	gw := taskwhizrepo.NewHTTP(cfg.APIBaseURL)

	// session cookies
	sessions := session.NewManager()

	// services
	v := validation.New()
	as := accountsvc.New(gw, v.Underlying())
	ps := passwordsvc.New(gw, v.Underlying())
	prs := profilesvc.New(gw, v.Underlying())

	// controllers
	accountC := &accountctrl.Controller{Svc: as, Sessions: sessions, Log: log}
	passwordC := &passwordctrl.Controller{Svc: ps, Log: log}
	profileC := &profilectrl.Controller{Svc: prs, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Renderer = echoServer.NewRenderer()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	echoServer.Register(e, echoServer.C{
		Account:  accountC,
		Password: passwordC,
		Profile:  profileC,

		Sessions: sessions,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "env", cfg.Env, "api_url", cfg.APIBaseURL, "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
