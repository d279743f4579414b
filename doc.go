// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the StackIt server.

StackIt is a small question and answer site: users register, ask
questions, answer them, and the asker accepts one answer. Admins can
remove any question or answer.

# Starting the Server

The server requires a session secret. Everything else has a default:

	SECRET_KEY=change-me go run .

Or with flags:

	go run . -p 5000 -secret change-me -t postgres -d "postgres://..."

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - SECRET_KEY (-secret): Signs session cookies and keys anti-forgery tokens

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: local stackit.db)
  - ADMIN_USERNAMES (-admins): Comma separated users promoted to admin at startup
  - COOKIE_SECURE (-secure-cookies): Mark the session cookie Secure

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, questions, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Request logging, CSRF checks
  - session: Signed cookie sessions and flashes
  - forms: Form binding and validation
  - views: Embedded HTML templates and page models
  - store: Persistence operations over gorm
  - models: Tables
  - auth: Password hashing and token helpers
  - db: Connection and migration
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
