package account

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/chrysspegenia/taskwhiz/model"
	accountsvc "github.com/chrysspegenia/taskwhiz/service/account"
	"github.com/chrysspegenia/taskwhiz/session"
)

type captureRenderer struct {
	name string
	data any
}

func (r *captureRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	r.name = name
	r.data = data
	return nil
}

type mockSvc struct {
	loginFn    func(ctx context.Context, form model.LoginForm) (*model.User, string, error)
	registerFn func(ctx context.Context, form model.RegisterForm) error
}

var _ accountsvc.Service = (*mockSvc)(nil)

func (m *mockSvc) Login(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
	return m.loginFn(ctx, form)
}

func (m *mockSvc) Register(ctx context.Context, form model.RegisterForm) error {
	return m.registerFn(ctx, form)
}

func newTestController(svc accountsvc.Service) (*Controller, *captureRenderer, *echo.Echo) {
	e := echo.New()
	r := &captureRenderer{}
	e.Renderer = r
	ct := &Controller{
		Svc:      svc,
		Sessions: session.NewManager(),
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return ct, r, e
}

func postForm(e *echo.Echo, path string, values url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLogin_SuccessSetsSessionAndRedirects(t *testing.T) {
	svc := &mockSvc{
		loginFn: func(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
			require.Equal(t, "user@example.com", form.Email)
			return &model.User{ID: 7, Email: form.Email, FirstName: "Ann", LastName: "Lee"}, "Bearer tok", nil
		},
	}
	ct, _, e := newTestController(svc)

	c, rec := postForm(e, "/login", url.Values{"email": {"user@example.com"}, "password": {"Abcdef1!"}})
	require.NoError(t, ct.Login(c))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/profile", rec.Header().Get(echo.HeaderLocation))

	names := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		names[ck.Name] = true
	}
	for _, want := range []string{"token", "user_id", "email", "first_name", "last_name"} {
		require.True(t, names[want], "missing cookie %s", want)
	}
}

func TestLogin_ValidationErrorsRenderInline(t *testing.T) {
	svc := &mockSvc{
		loginFn: func(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
			return nil, "", &model.ValidationError{Fields: model.FieldErrors{
				"email":    "Email is required.",
				"password": "Password is required.",
			}}
		},
	}
	ct, r, e := newTestController(svc)

	c, rec := postForm(e, "/login", url.Values{})
	require.NoError(t, ct.Login(c))

	require.Equal(t, "login.html", r.name)
	view := r.data.(loginView)
	require.Equal(t, "Email is required.", view.Errors["email"])
	require.Equal(t, "Password is required.", view.Errors["password"])
	require.Empty(t, rec.Result().Cookies())
}

func TestLogin_RemoteFailureShowsCredentialsError(t *testing.T) {
	svc := &mockSvc{
		loginFn: func(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
			return nil, "", accountsvc.ErrInvalidCreds
		},
	}
	ct, r, e := newTestController(svc)

	c, rec := postForm(e, "/login", url.Values{"email": {"user@example.com"}, "password": {"wrong"}})
	require.NoError(t, ct.Login(c))

	view := r.data.(loginView)
	require.Equal(t, "Incorrect email or password. Please try again.", view.Errors["credentials"])
	require.Empty(t, rec.Result().Cookies(), "session must not be touched on failure")
}

func TestLogin_TransportFailureHitsErrorLog(t *testing.T) {
	svc := &mockSvc{
		loginFn: func(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
			return nil, "", errors.New("dial tcp: connection refused")
		},
	}
	ct, r, e := newTestController(svc)

	var buf bytes.Buffer
	ct.Log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))

	c, rec := postForm(e, "/login", url.Values{"email": {"user@example.com"}, "password": {"Abcdef1!"}})
	require.NoError(t, ct.Login(c))

	view := r.data.(loginView)
	require.Equal(t, "Incorrect email or password. Please try again.", view.Errors["credentials"])
	require.Empty(t, rec.Result().Cookies())
	require.Contains(t, buf.String(), "login failed")
	require.Contains(t, buf.String(), "connection refused")
}

func TestLogin_RejectionStaysOutOfErrorLog(t *testing.T) {
	svc := &mockSvc{
		loginFn: func(ctx context.Context, form model.LoginForm) (*model.User, string, error) {
			return nil, "", accountsvc.ErrInvalidCreds
		},
	}
	ct, _, e := newTestController(svc)

	var buf bytes.Buffer
	ct.Log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))

	c, _ := postForm(e, "/login", url.Values{"email": {"user@example.com"}, "password": {"wrong"}})
	require.NoError(t, ct.Login(c))
	require.Empty(t, buf.String())
}

func TestRegister_SuccessResetsFormAndFlags(t *testing.T) {
	svc := &mockSvc{
		registerFn: func(ctx context.Context, form model.RegisterForm) error { return nil },
	}
	ct, r, e := newTestController(svc)

	c, _ := postForm(e, "/registration", url.Values{
		"email":            {"new@example.com"},
		"first_name":       {"Ann"},
		"last_name":        {"Lee"},
		"password":         {"Abcdef1!"},
		"confirm_password": {"Abcdef1!"},
	})
	require.NoError(t, ct.Register(c))

	require.Equal(t, "registration.html", r.name)
	view := r.data.(registrationView)
	require.True(t, view.Succeeded)
	require.Equal(t, "Account created successfully! Welcome to TaskWhiz!", view.Message)
	require.Equal(t, model.RegisterForm{}, view.Form)
	require.False(t, view.Checks.Met())
	require.False(t, view.Match)
}

func TestRegister_RemoteFailureKeepsFormAndChecklist(t *testing.T) {
	svc := &mockSvc{
		registerFn: func(ctx context.Context, form model.RegisterForm) error {
			return accountsvc.ErrRegistration
		},
	}
	ct, r, e := newTestController(svc)

	c, _ := postForm(e, "/registration", url.Values{
		"email":            {"new@example.com"},
		"first_name":       {"Ann"},
		"last_name":        {"Lee"},
		"password":         {"Abcdef1!"},
		"confirm_password": {"Abcdef1!"},
	})
	require.NoError(t, ct.Register(c))

	view := r.data.(registrationView)
	require.True(t, view.Failed)
	require.Equal(t, "Registration failed. Please check your details and try again.", view.Message)
	require.Equal(t, "new@example.com", view.Form.Email)
	require.True(t, view.Checks.Met())
	require.True(t, view.Match)
}

func TestLogout_ClearsCookiesAndRedirectsHome(t *testing.T) {
	ct, _, e := newTestController(&mockSvc{})

	c, rec := postForm(e, "/logout", url.Values{})
	require.NoError(t, ct.Logout(c))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 5)
	for _, ck := range cookies {
		require.Negative(t, ck.MaxAge)
	}
}
