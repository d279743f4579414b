// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stackit/models"
	"github.com/danielhkuo/stackit/session"
	"github.com/danielhkuo/stackit/store"
)

// Gate outcomes. Neither is ever shown as an error page.
var (
	// ErrAuthRequired: no session. Redirect to login with a notice.
	ErrAuthRequired = errors.New("login required")
	// ErrAuthDenied: logged in (or not) but lacking ownership or admin. Silent redirect.
	ErrAuthDenied = errors.New("not permitted")
)

func requireLogin(sess *session.Session) (uint, error) {
	id, ok := sess.UserID()
	if !ok {
		return 0, ErrAuthRequired
	}
	return id, nil
}

// requireUser is requireLogin for writes: the account must still exist.
// A session naming a deleted user is cleared and counts as anonymous.
func (e *Env) requireUser(r *http.Request, sess *session.Session) (*models.User, error) {
	id, err := requireLogin(sess)
	if err != nil {
		return nil, err
	}

	u, err := e.Store.FindUserByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		slog.Warn("session names missing user", "user_id", id)
		sess.Clear()
		return nil, ErrAuthRequired
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// requireOwner allows only the user who asked q
func requireOwner(sess *session.Session, q *models.Question) error {
	id, err := requireLogin(sess)
	if err != nil {
		return err
	}
	if q.UserID != id {
		return ErrAuthDenied
	}
	return nil
}

// requireAdmin never asks for a login: anonymous callers are simply denied
func requireAdmin(sess *session.Session) error {
	if !sess.IsAdmin() {
		return ErrAuthDenied
	}
	return nil
}

// deny sends the caller away after a failed gate. AuthRequired goes to the
// login page with notice; AuthDenied goes to fallback without a message.
func (e *Env) deny(w http.ResponseWriter, r *http.Request, sess *session.Session, err error, notice, fallback string) {
	if errors.Is(err, ErrAuthRequired) {
		if notice != "" {
			sess.AddFlash(notice)
		}
		e.redirect(w, r, sess, "/login")
		return
	}
	e.redirect(w, r, sess, fallback)
}
