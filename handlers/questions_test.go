// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/stackit/models"
	"github.com/danielhkuo/stackit/testutil"
)

func questionRequest(method string, q *models.Question, form url.Values, cookie *http.Cookie) *http.Request {
	path := fmt.Sprintf("/question/%d", q.ID)
	var req *http.Request
	if form != nil {
		req = testutil.MakeFormRequest(method, path, form, cookie)
	} else {
		req = testutil.MakeRequest(method, path, cookie)
	}
	req.SetPathValue("id", fmt.Sprint(q.ID))
	return req
}

func acceptRequest(answerID, questionID uint, cookie *http.Cookie) *http.Request {
	req := testutil.MakeRequest("GET", fmt.Sprintf("/accept/%d/%d", answerID, questionID), cookie)
	req.SetPathValue("answer_id", fmt.Sprint(answerID))
	req.SetPathValue("question_id", fmt.Sprint(questionID))
	return req
}

func TestHome(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewQuestionHandler(env)

	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	older := testutil.CreateTestQuestion(t, gdb, alice, "Older question")
	testutil.CreateTestQuestion(t, gdb, alice, "Newer question")
	testutil.CreateTestAnswer(t, gdb, older, alice, "self answer")

	w := httptest.NewRecorder()
	handler.Home(w, testutil.MakeRequest("GET", "/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	newer, old := strings.Index(body, "Newer question"), strings.Index(body, "Older question")
	if newer < 0 || old < 0 || newer > old {
		t.Errorf("Expected newest question first, got %s", body)
	}
	if !strings.Contains(body, "1 answer<") {
		t.Error("Expected answer count on home page")
	}
	if strings.Contains(body, "/delete/question/") {
		t.Error("Home page must not show delete links")
	}
}

func TestAsk_RequiresLogin(t *testing.T) {
	env, _ := setupTestEnv(t)
	handler := NewQuestionHandler(env)

	w := httptest.NewRecorder()
	handler.AskForm(w, testutil.MakeRequest("GET", "/ask", nil))
	testutil.AssertRedirect(t, w, "/login")
	if body := followFlash(t, env, w); !strings.Contains(body, "Please log in to ask a question.") {
		t.Errorf("Expected login notice, got %s", body)
	}

	form := url.Values{"title": {"T"}, "description": {"D"}}
	w = httptest.NewRecorder()
	handler.Ask(w, testutil.MakeFormRequest("POST", "/ask", form, nil))
	testutil.AssertRedirect(t, w, "/login")

	qs, _ := env.Store.ListQuestions(context.Background())
	if len(qs) != 0 {
		t.Errorf("Anonymous ask must not persist, got %d questions", len(qs))
	}
}

func TestAsk(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewQuestionHandler(env)
	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	cookie := testutil.SessionCookie(t, env.Sessions, alice)

	w := httptest.NewRecorder()
	handler.AskForm(w, testutil.MakeRequest("GET", "/ask", cookie))
	testutil.AssertStatus(t, w, http.StatusOK)

	form := url.Values{"title": {" Why is sky blue? "}, "description": {"Curious."}}
	w = httptest.NewRecorder()
	handler.Ask(w, testutil.MakeFormRequest("POST", "/ask", form, cookie))
	testutil.AssertRedirect(t, w, "/")

	qs, err := env.Store.ListQuestions(context.Background())
	if err != nil || len(qs) != 1 {
		t.Fatalf("Expected one question, got %d (%v)", len(qs), err)
	}
	if qs[0].Title != "Why is sky blue?" || qs[0].Description != "Curious." || qs[0].UserID != alice.ID {
		t.Errorf("Unexpected question: %+v", qs[0].Question)
	}
}

func TestWrites_DeletedUser(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewQuestionHandler(env)
	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	q := testutil.CreateTestQuestion(t, gdb, alice, "Q")
	ghost := &models.User{ID: 999, Username: "ghost"}
	cookie := testutil.SessionCookie(t, env.Sessions, ghost)

	form := url.Values{"title": {"T"}, "description": {"D"}}
	w := httptest.NewRecorder()
	handler.Ask(w, testutil.MakeFormRequest("POST", "/ask", form, cookie))
	testutil.AssertRedirect(t, w, "/login")

	sess := env.Sessions.Load(testutil.MakeRequest("GET", "/", testutil.ResponseCookie(w)))
	if sess.LoggedIn() {
		t.Error("Expected session of deleted user to be cleared")
	}

	w = httptest.NewRecorder()
	handler.Answer(w, questionRequest("POST", q, url.Values{"content": {"A"}}, cookie))
	testutil.AssertStatus(t, w, http.StatusOK)

	ctx := context.Background()
	if qs, _ := env.Store.ListQuestions(ctx); len(qs) != 1 {
		t.Errorf("Expected only the seeded question, got %d", len(qs))
	}
	if answers, _ := env.Store.ListAnswers(ctx, q.ID); len(answers) != 0 {
		t.Errorf("Expected no answers, got %d", len(answers))
	}
}

func TestAsk_Validation(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewQuestionHandler(env)
	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	cookie := testutil.SessionCookie(t, env.Sessions, alice)

	tests := []struct {
		name     string
		form     url.Values
		wantText string
	}{
		{"missing title", url.Values{"description": {"D"}}, "This field is required."},
		{"long title", url.Values{"title": {strings.Repeat("t", 151)}, "description": {"D"}}, "Field cannot be longer than 150 characters."},
		{"blank description", url.Values{"title": {"T"}, "description": {" \n "}}, "This field is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Ask(w, testutil.MakeFormRequest("POST", "/ask", tt.form, cookie))

			testutil.AssertStatus(t, w, http.StatusOK)
			if !strings.Contains(w.Body.String(), tt.wantText) {
				t.Errorf("Expected %q, got %s", tt.wantText, w.Body.String())
			}
		})
	}

	qs, _ := env.Store.ListQuestions(context.Background())
	if len(qs) != 0 {
		t.Errorf("Invalid asks must not persist, got %d", len(qs))
	}
}

func TestQuestion(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewQuestionHandler(env)
	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	bob := testutil.CreateTestUser(t, gdb, "bob", "secret1", false)
	q := testutil.CreateTestQuestion(t, gdb, alice, "Why is sky blue?")
	a := testutil.CreateTestAnswer(t, gdb, q, bob, "Rayleigh scattering")
	acceptLink := fmt.Sprintf("/accept/%d/%d", a.ID, q.ID)

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Question(w, questionRequest("GET", q, nil, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		body := w.Body.String()
		if !strings.Contains(body, "Why is sky blue?") || !strings.Contains(body, "Rayleigh scattering") {
			t.Errorf("Expected question and answer, got %s", body)
		}
		if strings.Contains(body, acceptLink) || strings.Contains(body, `name="content"`) {
			t.Error("Anonymous viewers get neither accept links nor the answer form")
		}
	})

	t.Run("owner sees accept link", func(t *testing.T) {
		cookie := testutil.SessionCookie(t, env.Sessions, alice)
		w := httptest.NewRecorder()
		handler.Question(w, questionRequest("GET", q, nil, cookie))

		if !strings.Contains(w.Body.String(), acceptLink) {
			t.Errorf("Expected accept link for owner, got %s", w.Body.String())
		}
	})

	t.Run("other user cannot accept", func(t *testing.T) {
		cookie := testutil.SessionCookie(t, env.Sessions, bob)
		w := httptest.NewRecorder()
		handler.Question(w, questionRequest("GET", q, nil, cookie))

		body := w.Body.String()
		if strings.Contains(body, acceptLink) {
			t.Error("Non-owner must not see accept link")
		}
		if !strings.Contains(body, `name="content"`) {
			t.Error("Logged in users get the answer form")
		}
	})

	t.Run("missing question", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Question(w, questionRequest("GET", &models.Question{ID: 999}, nil, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestAnswer(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewQuestionHandler(env)
	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	bob := testutil.CreateTestUser(t, gdb, "bob", "secret1", false)
	q := testutil.CreateTestQuestion(t, gdb, alice, "Q")
	ctx := context.Background()

	t.Run("anonymous is not stored", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Answer(w, questionRequest("POST", q, url.Values{"content": {"drive-by"}}, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		answers, _ := env.Store.ListAnswers(ctx, q.ID)
		if len(answers) != 0 {
			t.Errorf("Expected no answers, got %d", len(answers))
		}
	})

	cookie := testutil.SessionCookie(t, env.Sessions, bob)

	t.Run("empty content", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Answer(w, questionRequest("POST", q, url.Values{"content": {"  "}}, cookie))

		testutil.AssertStatus(t, w, http.StatusOK)
		if !strings.Contains(w.Body.String(), "This field is required.") {
			t.Errorf("Expected required error, got %s", w.Body.String())
		}
		answers, _ := env.Store.ListAnswers(ctx, q.ID)
		if len(answers) != 0 {
			t.Errorf("Expected no answers, got %d", len(answers))
		}
	})

	t.Run("stored", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Answer(w, questionRequest("POST", q, url.Values{"content": {"Because."}}, cookie))

		testutil.AssertRedirect(t, w, fmt.Sprintf("/question/%d", q.ID))
		answers, _ := env.Store.ListAnswers(ctx, q.ID)
		if len(answers) != 1 {
			t.Fatalf("Expected one answer, got %d", len(answers))
		}
		if answers[0].Content != "Because." || answers[0].UserID != bob.ID || answers[0].Accepted {
			t.Errorf("Unexpected answer: %+v", answers[0])
		}
	})

	t.Run("missing question", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Answer(w, questionRequest("POST", &models.Question{ID: 999}, url.Values{"content": {"x"}}, cookie))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestAccept(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewQuestionHandler(env)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	bob := testutil.CreateTestUser(t, gdb, "bob", "secret1", false)
	q := testutil.CreateTestQuestion(t, gdb, alice, "Q")
	other := testutil.CreateTestQuestion(t, gdb, bob, "Other")
	a1 := testutil.CreateTestAnswer(t, gdb, q, bob, "first")
	a2 := testutil.CreateTestAnswer(t, gdb, q, bob, "second")
	stray := testutil.CreateTestAnswer(t, gdb, other, alice, "elsewhere")

	aliceCookie := testutil.SessionCookie(t, env.Sessions, alice)
	bobCookie := testutil.SessionCookie(t, env.Sessions, bob)
	questionURL := fmt.Sprintf("/question/%d", q.ID)

	accepted := func() []uint {
		answers, err := env.Store.ListAnswers(ctx, q.ID)
		if err != nil {
			t.Fatalf("Failed to list answers: %v", err)
		}
		var ids []uint
		for _, a := range answers {
			if a.Accepted {
				ids = append(ids, a.ID)
			}
		}
		return ids
	}

	// Owner accepts the first answer
	w := httptest.NewRecorder()
	handler.Accept(w, acceptRequest(a1.ID, q.ID, aliceCookie))
	testutil.AssertRedirect(t, w, questionURL)
	if got := accepted(); len(got) != 1 || got[0] != a1.ID {
		t.Fatalf("Expected only answer %d accepted, got %v", a1.ID, got)
	}

	// Non-owner is ignored
	w = httptest.NewRecorder()
	handler.Accept(w, acceptRequest(a2.ID, q.ID, bobCookie))
	testutil.AssertRedirect(t, w, questionURL)
	if got := accepted(); len(got) != 1 || got[0] != a1.ID {
		t.Errorf("Non-owner changed flags: %v", got)
	}

	// Anonymous is sent to login
	w = httptest.NewRecorder()
	handler.Accept(w, acceptRequest(a2.ID, q.ID, nil))
	testutil.AssertRedirect(t, w, "/login")
	if got := accepted(); len(got) != 1 || got[0] != a1.ID {
		t.Errorf("Anonymous request changed flags: %v", got)
	}

	// Owner switches to the second answer
	w = httptest.NewRecorder()
	handler.Accept(w, acceptRequest(a2.ID, q.ID, aliceCookie))
	testutil.AssertRedirect(t, w, questionURL)
	if got := accepted(); len(got) != 1 || got[0] != a2.ID {
		t.Errorf("Expected only answer %d accepted, got %v", a2.ID, got)
	}

	// Answers from another question are not found
	w = httptest.NewRecorder()
	handler.Accept(w, acceptRequest(stray.ID, q.ID, aliceCookie))
	testutil.AssertStatus(t, w, http.StatusNotFound)
	if got := accepted(); len(got) != 1 || got[0] != a2.ID {
		t.Errorf("Stray accept changed flags: %v", got)
	}

	// Unknown question
	w = httptest.NewRecorder()
	handler.Accept(w, acceptRequest(a1.ID, 999, aliceCookie))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
