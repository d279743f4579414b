// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/stackit/handlers"
	"github.com/danielhkuo/stackit/middleware"
)

func NewRouter(env *handlers.Env) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(env)
	questionHandler := handlers.NewQuestionHandler(env)
	adminHandler := handlers.NewAdminHandler(env)

	// Pages get a token for their forms; posts must send it back
	protect := middleware.CSRF(env.Config.SecretKey, env.Config.SecureCookies)
	page := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(protect(h).ServeHTTP)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("GET /register", page(authHandler.RegisterForm))
	mux.HandleFunc("POST /register", page(authHandler.Register))
	mux.HandleFunc("GET /login", page(authHandler.LoginForm))
	mux.HandleFunc("POST /login", page(authHandler.Login))
	mux.HandleFunc("GET /logout", page(authHandler.Logout))

	// Questions and answers
	mux.HandleFunc("GET /{$}", page(questionHandler.Home))
	mux.HandleFunc("GET /ask", page(questionHandler.AskForm))
	mux.HandleFunc("POST /ask", page(questionHandler.Ask))
	mux.HandleFunc("GET /question/{id}", page(questionHandler.Question))
	mux.HandleFunc("POST /question/{id}", page(questionHandler.Answer))
	mux.HandleFunc("GET /accept/{answer_id}/{question_id}", page(questionHandler.Accept))

	// Moderation (admin only)
	mux.HandleFunc("GET /admin", page(adminHandler.Dashboard))
	mux.HandleFunc("GET /delete/question/{id}", page(adminHandler.DeleteQuestion))
	mux.HandleFunc("GET /delete/answer/{id}", page(adminHandler.DeleteAnswer))

	// Anything else
	mux.HandleFunc("GET /", page(env.NotFound))

	return mux
}
