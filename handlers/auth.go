// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stackit/auth"
	"github.com/danielhkuo/stackit/forms"
	"github.com/danielhkuo/stackit/middleware"
	"github.com/danielhkuo/stackit/session"
	"github.com/danielhkuo/stackit/store"
	"github.com/danielhkuo/stackit/views"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	env *Env
}

func NewAuthHandler(env *Env) *AuthHandler {
	return &AuthHandler{env: env}
}

// formErrors unwraps a validation failure. Any other error is returned as-is.
func formErrors(err error) (views.FormErrors, error) {
	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		return views.FormErrors(verr.Fields), nil
	}
	return nil, err
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, h.env.Sessions.Load(r), "", nil)
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	f, err := forms.BindRegister(r)
	if err != nil {
		fe, err := formErrors(err)
		if err != nil {
			h.env.serverError(w, r, err)
			return
		}
		h.renderRegister(w, r, h.env.Sessions.Load(r), f.Username, fe)
		return
	}

	hash, err := auth.HashPassword(f.Password)
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	user, err := h.env.Store.CreateUser(r.Context(), f.Username, hash)
	if errors.Is(err, store.ErrDuplicateUser) {
		sess := h.env.Sessions.Load(r)
		sess.AddFlash("Username already taken.")
		h.renderRegister(w, r, sess, f.Username, nil)
		return
	}
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	sess := h.env.Sessions.Load(r)
	sess.AddFlash("Registered successfully! Please log in.")
	h.env.redirect(w, r, sess, "/login")
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, sess *session.Session, username string, fe views.FormErrors) {
	b := h.env.base(r, sess, "Register")
	h.env.render(w, r, sess, http.StatusOK, views.PageRegister, views.RegisterPage{
		Base:     b,
		Username: username,
		Errors:   fe,
	})
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, h.env.Sessions.Load(r), "", nil)
}

// Login handles POST /login. Unknown usernames and wrong passwords get the
// same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	f, err := forms.BindLogin(r)
	if err != nil {
		fe, err := formErrors(err)
		if err != nil {
			h.env.serverError(w, r, err)
			return
		}
		h.renderLogin(w, r, h.env.Sessions.Load(r), f.Username, fe)
		return
	}

	user, err := h.env.Store.FindUserByUsername(r.Context(), f.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.env.serverError(w, r, err)
		return
	}
	if err != nil || !auth.CheckPassword(user.Password, f.Password) {
		slog.Warn("failed login",
			"username", f.Username,
			"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.env.Config.SecretKey),
		)
		sess := h.env.Sessions.Load(r)
		sess.AddFlash("Invalid credentials.")
		h.renderLogin(w, r, sess, f.Username, nil)
		return
	}

	sess := h.env.Sessions.Load(r)
	sess.SetUser(user)
	middleware.ResetCSRF(w)
	slog.Info("user logged in", "user_id", user.ID)
	h.env.redirect(w, r, sess, "/")
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, sess *session.Session, username string, fe views.FormErrors) {
	b := h.env.base(r, sess, "Log In")
	h.env.render(w, r, sess, http.StatusOK, views.PageLogin, views.LoginPage{
		Base:     b,
		Username: username,
		Errors:   fe,
	})
}

// Logout handles GET /logout. It is safe to call without a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := h.env.Sessions.Load(r)
	sess.Clear()
	middleware.ResetCSRF(w)
	h.env.redirect(w, r, sess, "/")
}
