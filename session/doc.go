// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session keeps login state in a signed cookie via gorilla/sessions.
//
// After login the cookie carries the user id, username and admin flag. It
// also holds queued flash notices. Nothing is stored server-side.
package session
