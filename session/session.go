// Package session holds the signed-in identity for one browser. The
// in-memory Session value is derived from cookies on every request; the
// cookies themselves are the durable per-browser mirror.
package session

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chrysspegenia/taskwhiz/model"
	"github.com/labstack/echo/v4"
)

const (
	CookieToken     = "token"
	CookieUserID    = "user_id"
	CookieEmail     = "email"
	CookieFirstName = "first_name"
	CookieLastName  = "last_name"
)

// Session is the authenticated identity plus bearer token. Identity
// fields are either all populated or all empty; SetUser and Clear are the
// only mutators and keep it that way.
type Session struct {
	Token     string
	UserID    string
	Email     string
	FirstName string
	LastName  string
}

func (s *Session) SetUser(token string, u model.User) {
	s.Token = token
	s.UserID = strconv.FormatInt(u.ID, 10)
	s.Email = u.Email
	s.FirstName = u.FirstName
	s.LastName = u.LastName
}

func (s *Session) Clear() {
	*s = Session{}
}

func (s Session) SignedIn() bool {
	return s.Token != "" && s.UserID != ""
}

// Manager moves sessions in and out of the cookie jar. Constructed once
// in main and threaded into whichever controller needs it.
type Manager struct {
	maxAge time.Duration
}

func NewManager() *Manager {
	return &Manager{maxAge: 24 * time.Hour}
}

// Persist writes one cookie per session field, none of them readable by
// page script and all of them restricted to secure transport.
func (m *Manager) Persist(c echo.Context, token string, u model.User) {
	s := Session{}
	s.SetUser(token, u)
	for name, value := range s.cookieValues() {
		c.SetCookie(m.cookie(name, value, m.maxAge))
	}
}

// FromRequest reads the persisted session back. A jar missing the token
// or user id yields a signed-out session regardless of the other cookies,
// so callers never observe a partial identity.
func (m *Manager) FromRequest(c echo.Context) Session {
	s := Session{
		Token:     readCookie(c, CookieToken),
		UserID:    readCookie(c, CookieUserID),
		Email:     readCookie(c, CookieEmail),
		FirstName: readCookie(c, CookieFirstName),
		LastName:  readCookie(c, CookieLastName),
	}
	if !s.SignedIn() {
		return Session{}
	}
	return s
}

// Clear expires every session cookie together.
func (m *Manager) Clear(c echo.Context) {
	for _, name := range []string{CookieToken, CookieUserID, CookieEmail, CookieFirstName, CookieLastName} {
		c.SetCookie(m.cookie(name, "", -time.Hour))
	}
}

func (s Session) cookieValues() map[string]string {
	return map[string]string{
		CookieToken:     s.Token,
		CookieUserID:    s.UserID,
		CookieEmail:     s.Email,
		CookieFirstName: s.FirstName,
		CookieLastName:  s.LastName,
	}
}

func (m *Manager) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

const contextKey = "session"

// ToContext stashes the session on the request context for handlers
// downstream of the session middleware.
func ToContext(c echo.Context, s Session) {
	c.Set(contextKey, s)
}

// FromContext returns the session stored by ToContext, zero when absent.
func FromContext(c echo.Context) Session {
	s, _ := c.Get(contextKey).(Session)
	return s
}

func readCookie(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
