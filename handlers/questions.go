// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/stackit/forms"
	"github.com/danielhkuo/stackit/models"
	"github.com/danielhkuo/stackit/session"
	"github.com/danielhkuo/stackit/store"
	"github.com/danielhkuo/stackit/views"
)

// QuestionHandler serves the home page, asking, answering and accepting
type QuestionHandler struct {
	env *Env
}

func NewQuestionHandler(env *Env) *QuestionHandler {
	return &QuestionHandler{env: env}
}

// Home handles GET /
func (h *QuestionHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess := h.env.Sessions.Load(r)

	questions, err := h.env.Store.ListRecentQuestions(r.Context())
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	b := h.env.base(r, sess, "Questions")
	h.env.render(w, r, sess, http.StatusOK, views.PageHome, views.HomePage{
		Base:      b,
		Questions: views.NewQuestionItems(questions, false),
	})
}

// AskForm handles GET /ask
func (h *QuestionHandler) AskForm(w http.ResponseWriter, r *http.Request) {
	sess := h.env.Sessions.Load(r)
	if _, err := requireLogin(sess); err != nil {
		h.env.deny(w, r, sess, err, "Please log in to ask a question.", "/")
		return
	}
	h.renderAsk(w, r, sess, forms.QuestionForm{}, nil)
}

// Ask handles POST /ask
func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	sess := h.env.Sessions.Load(r)
	user, err := h.env.requireUser(r, sess)
	if errors.Is(err, ErrAuthRequired) {
		h.env.deny(w, r, sess, err, "Please log in to ask a question.", "/")
		return
	}
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	f, err := forms.BindQuestion(r)
	if err != nil {
		fe, err := formErrors(err)
		if err != nil {
			h.env.serverError(w, r, err)
			return
		}
		h.renderAsk(w, r, sess, f, fe)
		return
	}

	q := &models.Question{Title: f.Title, Description: f.Description, UserID: user.ID}
	if err := h.env.Store.CreateQuestion(r.Context(), q); err != nil {
		h.env.serverError(w, r, err)
		return
	}

	slog.Info("question asked", "question_id", q.ID, "user_id", user.ID)
	h.env.redirect(w, r, sess, "/")
}

func (h *QuestionHandler) renderAsk(w http.ResponseWriter, r *http.Request, sess *session.Session, f forms.QuestionForm, fe views.FormErrors) {
	b := h.env.base(r, sess, "Ask a Question")
	h.env.render(w, r, sess, http.StatusOK, views.PageAsk, views.AskPage{
		Base:        b,
		FormTitle:   f.Title,
		Description: f.Description,
		Errors:      fe,
	})
}

// Question handles GET /question/{id}
func (h *QuestionHandler) Question(w http.ResponseWriter, r *http.Request) {
	sess := h.env.Sessions.Load(r)
	q, ok := h.loadQuestion(w, r, sess, "id")
	if !ok {
		return
	}
	h.renderQuestion(w, r, sess, q, "", nil)
}

// Answer handles POST /question/{id}. Anonymous submissions are not stored;
// the page is shown again as if it had been fetched.
func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	sess := h.env.Sessions.Load(r)
	q, ok := h.loadQuestion(w, r, sess, "id")
	if !ok {
		return
	}

	user, err := h.env.requireUser(r, sess)
	if errors.Is(err, ErrAuthRequired) {
		h.renderQuestion(w, r, sess, q, "", nil)
		return
	}
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	f, err := forms.BindAnswer(r)
	if err != nil {
		fe, err := formErrors(err)
		if err != nil {
			h.env.serverError(w, r, err)
			return
		}
		h.renderQuestion(w, r, sess, q, f.Content, fe)
		return
	}

	a := &models.Answer{Content: f.Content, QuestionID: q.ID, UserID: user.ID}
	if err := h.env.Store.CreateAnswer(r.Context(), a); err != nil {
		h.env.serverError(w, r, err)
		return
	}

	slog.Info("answer posted", "answer_id", a.ID, "question_id", q.ID, "user_id", user.ID)
	h.env.redirect(w, r, sess, views.QuestionURL(q.ID))
}

// Accept handles GET /accept/{answer_id}/{question_id}. Only the asker may
// accept; anyone else is redirected without a message and nothing changes.
func (h *QuestionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	sess := h.env.Sessions.Load(r)
	if _, err := requireLogin(sess); err != nil {
		h.env.deny(w, r, sess, err, "", "/")
		return
	}

	answerID, ok := pathID(r, "answer_id")
	if !ok {
		h.env.notFound(w, r, sess)
		return
	}
	q, ok := h.loadQuestion(w, r, sess, "question_id")
	if !ok {
		return
	}

	if err := requireOwner(sess, q); err != nil {
		h.env.deny(w, r, sess, err, "", views.QuestionURL(q.ID))
		return
	}

	err := h.env.Store.AcceptAnswer(r.Context(), q.ID, answerID)
	if errors.Is(err, store.ErrNotFound) {
		h.env.notFound(w, r, sess)
		return
	}
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	slog.Info("answer accepted", "answer_id", answerID, "question_id", q.ID)
	h.env.redirect(w, r, sess, views.QuestionURL(q.ID))
}

// loadQuestion resolves the question id in path parameter param.
// On failure the response has already been written.
func (h *QuestionHandler) loadQuestion(w http.ResponseWriter, r *http.Request, sess *session.Session, param string) (*models.Question, bool) {
	id, ok := pathID(r, param)
	if !ok {
		h.env.notFound(w, r, sess)
		return nil, false
	}

	q, err := h.env.Store.GetQuestion(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.env.notFound(w, r, sess)
		return nil, false
	}
	if err != nil {
		h.env.serverError(w, r, err)
		return nil, false
	}
	return q, true
}

func (h *QuestionHandler) renderQuestion(w http.ResponseWriter, r *http.Request, sess *session.Session, q *models.Question, content string, fe views.FormErrors) {
	answers, err := h.env.Store.ListAnswers(r.Context(), q.ID)
	if err != nil {
		h.env.serverError(w, r, err)
		return
	}

	b := h.env.base(r, sess, q.Title)

	viewerID, _ := sess.UserID()
	owner := sess.LoggedIn() && viewerID == q.UserID

	h.env.render(w, r, sess, http.StatusOK, views.PageQuestion, views.QuestionPage{
		Base:        b,
		Question:    views.NewQuestionItem(q),
		Description: q.Description,
		Answers:     views.NewAnswerItems(answers, owner, sess.IsAdmin()),
		CanAnswer:   sess.LoggedIn(),
		Content:     content,
		Errors:      fe,
	})
}
