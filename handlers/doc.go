// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for StackIt.

# Handler Types

Each handler is a struct holding the shared Env:

  - AuthHandler: Registration, login and logout
  - QuestionHandler: Home page, asking, answering and accepting
  - AdminHandler: Dashboard and deletes

Env bundles the store, session manager, templates and config:

	env, err := handlers.NewEnv(gdb, cfg)
	questionHandler := handlers.NewQuestionHandler(env)

# Gates

Handlers check access inline with requireLogin, requireOwner and
requireAdmin. A failed gate is never an error page:

  - ErrAuthRequired redirects to /login, usually with a notice
  - ErrAuthDenied redirects without a message

# Responses

Invalid forms re-render with status 200 and per-field messages. Unknown
ids render the not found page with 404. Store failures are logged and
answered with a generic 500 page.
*/
package handlers
