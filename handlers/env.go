// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"gorm.io/gorm"

	"github.com/danielhkuo/stackit/cliparse"
	"github.com/danielhkuo/stackit/session"
	"github.com/danielhkuo/stackit/store"
	"github.com/danielhkuo/stackit/views"
)

// Env is the application context shared by every handler
type Env struct {
	Store    *store.Store
	Sessions *session.Manager
	Views    *views.Renderer
	Config   cliparse.Config
}

func NewEnv(db *gorm.DB, cfg cliparse.Config) (*Env, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Env{
		Store:    store.New(db),
		Sessions: session.NewManager(cfg.SecretKey, cfg.SecureCookies),
		Views:    renderer,
		Config:   cfg,
	}, nil
}

// base fills the fields every page shares. It consumes pending flashes,
// so the session must be saved afterwards (render does).
func (e *Env) base(r *http.Request, sess *session.Session, title string) views.Base {
	b := views.Base{
		Title:     title,
		Flashes:   sess.Flashes(),
		CSRFToken: csrf.Token(r),
	}
	if sess.LoggedIn() {
		b.Viewer = &views.Viewer{Username: sess.Username(), IsAdmin: sess.IsAdmin()}
	}
	return b
}

// render saves the session and writes the page
func (e *Env) render(w http.ResponseWriter, r *http.Request, sess *session.Session, status int, page string, data any) {
	if err := e.Sessions.Save(w, r, sess); err != nil {
		e.serverError(w, r, err)
		return
	}
	if err := e.Views.Render(w, status, page, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// redirect saves the session and sends the browser to target
func (e *Env) redirect(w http.ResponseWriter, r *http.Request, sess *session.Session, target string) {
	if err := e.Sessions.Save(w, r, sess); err != nil {
		e.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (e *Env) notFound(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	b := e.base(r, sess, "Not Found")
	e.render(w, r, sess, http.StatusNotFound, views.PageNotFound, views.ErrorPage{Base: b})
}

// serverError is the single exit for store and infrastructure failures.
// The session is not touched so a broken cookie cannot loop.
func (e *Env) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)

	page := views.ErrorPage{
		Base:    views.Base{Title: "Error"},
		Message: "The server could not complete your request.",
	}
	if rerr := e.Views.Render(w, http.StatusInternalServerError, views.PageError, page); rerr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// pathID parses a numeric path segment. ok is false for anything that is not
// a positive integer, which callers treat as not found.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// NotFound handles any path no route matches
func (e *Env) NotFound(w http.ResponseWriter, r *http.Request) {
	e.notFound(w, r, e.Sessions.Load(r))
}
