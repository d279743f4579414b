// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stackit/store"
	"github.com/danielhkuo/stackit/views"
)

// AdminHandler serves moderation pages. Every method is admin-only;
// other callers go back to the home page without a message.
type AdminHandler struct {
	env *Env
}

func NewAdminHandler(env *Env) *AdminHandler {
	return &AdminHandler{env: env}
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.env.Sessions.Load(r)
	if err := requireAdmin(sess); err != nil {
		h.env.deny(w, r, sess, err, "", "/")
		return
	}

	questions, err := h.env.Store.ListQuestions(r.Context())
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}
	answers, err := h.env.Store.ListAllAnswers(r.Context())
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	b := h.env.base(r, sess, "Admin")
	h.env.render(w, r, sess, http.StatusOK, views.PageAdmin, views.AdminPage{
		Base:      b,
		Questions: views.NewQuestionItems(questions, true),
		Answers:   views.NewAnswerItems(answers, false, true),
	})
}

// DeleteQuestion handles GET /delete/question/{id}
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "question", h.env.Store.DeleteQuestion)
}

// DeleteAnswer handles GET /delete/answer/{id}
func (h *AdminHandler) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "answer", h.env.Store.DeleteAnswer)
}

func (h *AdminHandler) delete(w http.ResponseWriter, r *http.Request, kind string, del func(ctx context.Context, id uint) error) {
	sess := h.env.Sessions.Load(r)
	if err := requireAdmin(sess); err != nil {
		h.env.deny(w, r, sess, err, "", "/")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		h.env.notFound(w, r, sess)
		return
	}

	err := del(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.env.notFound(w, r, sess)
		return
	}
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	adminID, _ := sess.UserID()
	slog.Info("admin deleted "+kind, "id", id, "admin_id", adminID)
	sess.AddFlash("Deleted " + kind + ".")
	h.env.redirect(w, r, sess, "/admin")
}
