// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and request helpers.

# Logging

WithLogging logs request start and completion with timing and status:

	mux.HandleFunc("GET /", middleware.WithLogging(handler))

Each request gets an id (incoming X-Request-ID, or a fresh UUID) that is
logged on both lines and echoed in the X-Request-ID response header:

	request started    request_id=… method=GET path=/question/1
	request completed  request_id=… method=GET path=/question/1 status=200 duration_ms=3

# Anti-forgery

CSRF wraps gorilla/csrf. Unsafe methods must carry the token in the
csrf_token form field (or X-CSRF-Token header) that matches the client's
stackit_csrf cookie. A mismatch is answered with 400 before the wrapped
handler runs. Pages embed the token from csrf.Token(r):

	protect := middleware.CSRF(cfg.SecretKey, cfg.SecureCookies)
	mux.HandleFunc("POST /ask", middleware.WithLogging(protect(h.Ask).ServeHTTP))

ResetCSRF expires the cookie so login and logout start with a new token.

# Client IP

GetClientIP extracts the client IP, checking in order:

 1. X-Forwarded-For (first IP in chain)
 2. X-Real-IP
 3. RemoteAddr (port stripped)

It is only used for hashed log fields; never trust it for authorization.
*/
package middleware
