// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package forms binds posted form values and validates them before any store
access happens.

# Forms

	RegisterForm  username 3..80 chars, password >= 6 chars (<= 72 bytes)
	LoginForm     username, password
	QuestionForm  title <= 150 chars, description
	AnswerForm    content

All listed fields are required; a value made only of whitespace is missing.
Username and title are trimmed, other fields are kept verbatim. Lengths count
characters, not bytes, except the bcrypt limit on passwords.

# Errors

A failed Bind* returns the bound form plus a *ValidationError mapping each bad
field name to a single message, for inline display next to the field:

	f, err := forms.BindRegister(r)
	var verr *forms.ValidationError
	if errors.As(err, &verr) {
		// re-render with verr.Fields["username"]
	}
*/
package forms
