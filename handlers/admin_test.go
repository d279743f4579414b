// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/stackit/testutil"
)

func deleteRequest(kind string, id uint, cookie *http.Cookie) *http.Request {
	req := testutil.MakeRequest("GET", fmt.Sprintf("/delete/%s/%d", kind, id), cookie)
	req.SetPathValue("id", fmt.Sprint(id))
	return req
}

func TestAdmin_Gate(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewAdminHandler(env)
	ctx := context.Background()

	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	q := testutil.CreateTestQuestion(t, gdb, alice, "Q")
	a := testutil.CreateTestAnswer(t, gdb, q, alice, "A")
	aliceCookie := testutil.SessionCookie(t, env.Sessions, alice)

	for _, tc := range []struct {
		name   string
		cookie *http.Cookie
	}{
		{"anonymous", nil},
		{"regular user", aliceCookie},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Dashboard(w, testutil.MakeRequest("GET", "/admin", tc.cookie))
			testutil.AssertRedirect(t, w, "/")

			w = httptest.NewRecorder()
			handler.DeleteQuestion(w, deleteRequest("question", q.ID, tc.cookie))
			testutil.AssertRedirect(t, w, "/")

			w = httptest.NewRecorder()
			handler.DeleteAnswer(w, deleteRequest("answer", a.ID, tc.cookie))
			testutil.AssertRedirect(t, w, "/")
		})
	}

	if _, err := env.Store.GetQuestion(ctx, q.ID); err != nil {
		t.Errorf("Question should survive: %v", err)
	}
	if answers, err := env.Store.ListAnswers(ctx, q.ID); err != nil || len(answers) != 1 || answers[0].ID != a.ID {
		t.Errorf("Answer should survive: %v, %v", answers, err)
	}
}

func TestAdmin_Dashboard(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewAdminHandler(env)

	root := testutil.CreateTestUser(t, gdb, "root", "secret1", true)
	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	q := testutil.CreateTestQuestion(t, gdb, alice, "First question")
	testutil.CreateTestQuestion(t, gdb, alice, "Second question")
	a := testutil.CreateTestAnswer(t, gdb, q, alice, "An answer")
	cookie := testutil.SessionCookie(t, env.Sessions, root)

	w := httptest.NewRecorder()
	handler.Dashboard(w, testutil.MakeRequest("GET", "/admin", cookie))

	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	first, second := strings.Index(body, "First question"), strings.Index(body, "Second question")
	if first < 0 || second < 0 || first > second {
		t.Errorf("Expected every question in creation order, got %s", body)
	}
	if !strings.Contains(body, "An answer") {
		t.Error("Expected answers on dashboard")
	}
	for _, link := range []string{
		fmt.Sprintf("/delete/question/%d", q.ID),
		fmt.Sprintf("/delete/answer/%d", a.ID),
	} {
		if !strings.Contains(body, link) {
			t.Errorf("Expected link %s", link)
		}
	}
}

func TestAdmin_Delete(t *testing.T) {
	env, gdb := setupTestEnv(t)
	handler := NewAdminHandler(env)
	ctx := context.Background()

	root := testutil.CreateTestUser(t, gdb, "root", "secret1", true)
	alice := testutil.CreateTestUser(t, gdb, "alice", "secret1", false)
	q := testutil.CreateTestQuestion(t, gdb, alice, "Q")
	keep := testutil.CreateTestQuestion(t, gdb, alice, "Keep")
	testutil.CreateTestAnswer(t, gdb, q, alice, "cascade me")
	lone := testutil.CreateTestAnswer(t, gdb, keep, alice, "delete me")
	cookie := testutil.SessionCookie(t, env.Sessions, root)

	w := httptest.NewRecorder()
	handler.DeleteAnswer(w, deleteRequest("answer", lone.ID, cookie))
	testutil.AssertRedirect(t, w, "/admin")
	if answers, err := env.Store.ListAnswers(ctx, keep.ID); err != nil || len(answers) != 0 {
		t.Errorf("Expected answer to be deleted, got %v, %v", answers, err)
	}
	if _, err := env.Store.GetQuestion(ctx, keep.ID); err != nil {
		t.Errorf("Deleting an answer must keep its question: %v", err)
	}

	w = httptest.NewRecorder()
	handler.DeleteQuestion(w, deleteRequest("question", q.ID, cookie))
	testutil.AssertRedirect(t, w, "/admin")
	if _, err := env.Store.GetQuestion(ctx, q.ID); err == nil {
		t.Error("Expected question to be deleted")
	}
	remaining, _ := env.Store.ListAnswers(ctx, q.ID)
	if len(remaining) != 0 {
		t.Errorf("Expected answers to go with the question, %d remain", len(remaining))
	}

	// Missing ids are not found
	w = httptest.NewRecorder()
	handler.DeleteQuestion(w, deleteRequest("question", q.ID, cookie))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = httptest.NewRecorder()
	handler.DeleteAnswer(w, deleteRequest("answer", lone.ID, cookie))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
