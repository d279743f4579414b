// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/stackit/models"
	"github.com/danielhkuo/stackit/store"
)

// Viewer is the logged-in user as seen by templates
type Viewer struct {
	Username string
	IsAdmin  bool
}

// Base is embedded in every page model
type Base struct {
	Title     string
	Viewer    *Viewer
	Flashes   []string
	CSRFToken string
}

// FormErrors maps field name to message
type FormErrors map[string]string

type QuestionItem struct {
	ID          uint
	Title       string
	Author      string
	Asked       string
	AnswerCount int64
	URL         string
	DeleteURL   string
}

type AnswerItem struct {
	ID          uint
	QuestionID  uint
	Content     string
	Author      string
	Answered    string
	Accepted    bool
	AcceptURL   string
	DeleteURL   string
	QuestionURL string
}

type HomePage struct {
	Base
	Questions []QuestionItem
}

type RegisterPage struct {
	Base
	Username string
	Errors   FormErrors
}

type LoginPage struct {
	Base
	Username string
	Errors   FormErrors
}

type AskPage struct {
	Base
	FormTitle   string
	Description string
	Errors      FormErrors
}

type QuestionPage struct {
	Base
	Question    QuestionItem
	Description string
	Answers     []AnswerItem
	CanAnswer   bool
	Content     string
	Errors      FormErrors
}

type AdminPage struct {
	Base
	Questions []QuestionItem
	Answers   []AnswerItem
}

type ErrorPage struct {
	Base
	Message string
}

// Ago formats t relative to now, e.g. "3 minutes ago"
func Ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

func QuestionURL(id uint) string {
	return fmt.Sprintf("/question/%d", id)
}

// NewQuestionItems builds list rows. Delete links are included for admins only.
func NewQuestionItems(qs []store.QuestionSummary, admin bool) []QuestionItem {
	items := make([]QuestionItem, 0, len(qs))
	for _, q := range qs {
		item := NewQuestionItem(&q.Question)
		item.AnswerCount = q.AnswerCount
		if admin {
			item.DeleteURL = fmt.Sprintf("/delete/question/%d", q.ID)
		}
		items = append(items, item)
	}
	return items
}

func NewQuestionItem(q *models.Question) QuestionItem {
	return QuestionItem{
		ID:     q.ID,
		Title:  q.Title,
		Author: q.User.Username,
		Asked:  Ago(q.CreatedAt),
		URL:    QuestionURL(q.ID),
	}
}

// NewAnswerItems builds answer rows. canAccept is true when the viewer owns
// the question; accepted answers never get an accept link.
func NewAnswerItems(answers []models.Answer, canAccept, admin bool) []AnswerItem {
	items := make([]AnswerItem, 0, len(answers))
	for _, a := range answers {
		item := AnswerItem{
			ID:          a.ID,
			QuestionID:  a.QuestionID,
			Content:     a.Content,
			Author:      a.User.Username,
			Answered:    Ago(a.CreatedAt),
			Accepted:    a.Accepted,
			QuestionURL: QuestionURL(a.QuestionID),
		}
		if canAccept && !a.Accepted {
			item.AcceptURL = fmt.Sprintf("/accept/%d/%d", a.ID, a.QuestionID)
		}
		if admin {
			item.DeleteURL = fmt.Sprintf("/delete/answer/%d", a.ID)
		}
		items = append(items, item)
	}
	return items
}
