// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/danielhkuo/stackit/models"
)

const (
	CookieName = "stackit_session"

	keyUserID   = "user_id"
	keyUsername = "username"
	keyIsAdmin  = "is_admin"

	maxAge = 30 * 24 * 60 * 60
)

// Manager loads and saves sessions kept in a signed cookie.
// The signature key is the server secret; values are readable by the client
// but cannot be altered.
type Manager struct {
	store *sessions.CookieStore
}

func NewManager(secret string, secure bool) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// Session is the per-request view of the cookie contents
type Session struct {
	raw *sessions.Session
}

// Load returns the request's session. A missing, expired or tampered cookie
// yields an empty session. Repeated calls within a request share one Session.
func (m *Manager) Load(r *http.Request) *Session {
	raw, err := m.store.Get(r, CookieName)
	if err != nil {
		slog.Debug("discarding unreadable session cookie", "error", err)
	}
	return &Session{raw: raw}
}

// Save writes the session cookie. Call before writing the response status.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	return s.raw.Save(r, w)
}

// SetUser records a successful login
func (s *Session) SetUser(u *models.User) {
	s.raw.Values[keyUserID] = u.ID
	s.raw.Values[keyUsername] = u.Username
	s.raw.Values[keyIsAdmin] = u.IsAdmin
}

// Clear drops every value, including queued flashes
func (s *Session) Clear() {
	for k := range s.raw.Values {
		delete(s.raw.Values, k)
	}
}

// UserID returns the logged-in user's id, if any
func (s *Session) UserID() (uint, bool) {
	id, ok := s.raw.Values[keyUserID].(uint)
	return id, ok && id != 0
}

func (s *Session) LoggedIn() bool {
	_, ok := s.UserID()
	return ok
}

func (s *Session) Username() string {
	name, _ := s.raw.Values[keyUsername].(string)
	return name
}

func (s *Session) IsAdmin() bool {
	admin, _ := s.raw.Values[keyIsAdmin].(bool)
	return admin && s.LoggedIn()
}

// AddFlash queues a one-shot notice for the next rendered page
func (s *Session) AddFlash(msg string) {
	s.raw.AddFlash(msg)
}

// Flashes returns and removes queued notices
func (s *Session) Flashes() []string {
	var msgs []string
	for _, f := range s.raw.Flashes() {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}
