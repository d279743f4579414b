// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence boundary for users, questions and answers.

Every method takes a context and returns ErrNotFound when an id or username
matches nothing, so handlers can map it to a 404 without knowing gorm.
Multi-step writes (accepting an answer, deleting a question with its
answers) run inside a single transaction.

	s := store.New(gdb)
	if err := s.AcceptAnswer(ctx, questionID, answerID); errors.Is(err, store.ErrNotFound) {
		// answer is missing or belongs to another question
	}
*/
package store
