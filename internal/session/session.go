// Package session keeps track of who is logged in.
//
// A session is an HS256 token in an HTTP-only cookie. Without "remember me"
// the cookie lives for the browser session; with it the cookie persists for
// the remember duration.
package session

import (
	"net/http"
	"time"

	"github.com/vaughan-dsouza/fitness/internal/config"
)

type Manager struct {
	secret      []byte
	cookieName  string
	ttl         time.Duration
	rememberTTL time.Duration
	secure      bool

	now func() time.Time
}

func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret:      []byte(cfg.Secret),
		cookieName:  cfg.CookieName,
		ttl:         cfg.TTL,
		rememberTTL: cfg.RememberTTL,
		secure:      cfg.SecureCookie,
		now:         time.Now,
	}
}

// Current returns the user id of a valid session cookie on r.
func (m *Manager) Current(r *http.Request) (int64, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	claims, err := verifyToken(c.Value, m.secret)
	if err != nil {
		return 0, false
	}
	return claims.UserID(), true
}

// Login establishes a session for userID.
func (m *Manager) Login(w http.ResponseWriter, userID int64, remember bool) error {
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}

	token, exp, err := generateToken(userID, remember, m.secret, ttl, m.now())
	if err != nil {
		return err
	}

	c := m.cookie(token)
	if remember {
		c.Expires = exp
		c.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, c)
	return nil
}

// Logout expires the session cookie. It is safe to call without a session.
func (m *Manager) Logout(w http.ResponseWriter) {
	c := m.cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (m *Manager) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
