// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/danielhkuo/stackit/auth"
	"github.com/danielhkuo/stackit/cliparse"
	"github.com/danielhkuo/stackit/db"
	"github.com/danielhkuo/stackit/models"
	"github.com/danielhkuo/stackit/session"
)

// TestSecret keys session cookies and anti-forgery tokens in tests
const TestSecret = "test-secret-key"

// SetupTestDB creates a fresh SQLite database with the full schema.
// Each test gets its own file so tests never share rows.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	cfg := GetTestConfig()
	cfg.DatabaseURL = "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	gdb, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return gdb
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		DatabaseURL:  "file::memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		SecretKey:    TestSecret,
	}
}

// CreateTestUser inserts a user with a real bcrypt hash of password
func CreateTestUser(t *testing.T, gdb *gorm.DB, username, password string, isAdmin bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	u := &models.User{Username: username, Password: hash, IsAdmin: isAdmin}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return u
}

// CreateTestQuestion inserts a question asked by owner
func CreateTestQuestion(t *testing.T, gdb *gorm.DB, owner *models.User, title string) *models.Question {
	t.Helper()

	q := &models.Question{Title: title, Description: "Description of " + title, UserID: owner.ID}
	if err := gdb.Omit("User", "Answers").Create(q).Error; err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}
	return q
}

// CreateTestAnswer inserts an answer to q written by author
func CreateTestAnswer(t *testing.T, gdb *gorm.DB, q *models.Question, author *models.User, content string) *models.Answer {
	t.Helper()

	a := &models.Answer{Content: content, QuestionID: q.ID, UserID: author.ID}
	if err := gdb.Omit("User").Create(a).Error; err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}
	return a
}

// SessionCookie builds a signed session cookie for user (nil for anonymous)
func SessionCookie(t *testing.T, sm *session.Manager, user *models.User) *http.Cookie {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	sess := sm.Load(r)
	if user != nil {
		sess.SetUser(user)
	}
	if err := sm.Save(w, r, sess); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatalf("Session cookie %q was not set", session.CookieName)
	return nil
}

// MakeRequest creates an HTTP test request carrying cookie, if any
func MakeRequest(method, path string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// MakeFormRequest creates a form-encoded request carrying cookie, if any
func MakeFormRequest(method, path string, form url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// ResponseCookie returns the session cookie set by a response, or nil
func ResponseCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 302 to location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusFound {
		t.Errorf("Expected status %d, got %d. Body: %s", http.StatusFound, w.Code, w.Body.String())
		return
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}
