// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: sqlite file DSN or PostgreSQL connection string
  - DatabaseType: "sqlite" (default) or "postgres"
  - SecretKey: Signs the session cookie and anti-forgery tokens (required)
  - AdminUsernames: Users promoted to admin at startup
  - SecureCookies: Sets the Secure attribute on the session cookie

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-secret          Session signing key
	-admins          Comma separated admin usernames
	-secure-cookies  true/false

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	SECRET_KEY      → -secret
	ADMIN_USERNAMES → -admins
	COOKIE_SECURE   → -secure-cookies

CLI flags take precedence over environment variables. main loads a .env file
into the environment before ParseFlags runs.

# Validation

ParseFlags returns an error if:

  - SECRET_KEY is missing
  - PORT is not a number in 1..65535
  - DATABASE_TYPE is not sqlite or postgres
  - DATABASE_URL is missing for postgres (sqlite falls back to ./stackit.db)
*/
package cliparse
