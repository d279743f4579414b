// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for StackIt.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(env)

# Endpoints

Health:

	GET /health

Accounts:

	GET  /register - Registration form
	POST /register - Create account
	GET  /login    - Login form
	POST /login    - Start session
	GET  /logout   - End session

Questions and answers:

	GET  /                                  - Recent questions
	GET  /ask                               - Ask form (login required)
	POST /ask                               - Create question
	GET  /question/{id}                     - Question with answers
	POST /question/{id}                     - Post answer
	GET  /accept/{answer_id}/{question_id}  - Accept answer (asker only)

Moderation (admin only, others are redirected home):

	GET /admin                - Dashboard
	GET /delete/question/{id} - Delete question and its answers
	GET /delete/answer/{id}   - Delete answer

Every page passes through middleware.CSRF, so posts must echo the token
the page embedded. Paths that match no
route get the rendered not found page.
*/
package router
