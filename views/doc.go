// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders server-side HTML pages.

Templates are embedded and parsed once by New. Each page template defines a
"content" block that layout.html wraps:

	r, err := views.New()
	err = r.Render(w, http.StatusOK, views.PageHome, views.HomePage{...})

Templates only display data. Every decision (whether to show an accept
link, relative timestamps, pluralisation inputs) is made when the page model
is built, by NewQuestionItems and NewAnswerItems or by the handler.
*/
package views
