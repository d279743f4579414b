// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the gorm entities persisted by the store.

# Entities

  - User: username (unique), bcrypt password hash, admin flag
  - Question: title, description, owning user
  - Answer: content, parent question, author, accepted flag
  - Vote: migrated but unused

# Relationships

	User 1:N Question (owner)
	User 1:N Answer   (author)
	Question 1:N Answer (parent, ON DELETE CASCADE)

Rows are ordered by their auto-increment id; CreatedAt is informational and
only used for display.

# Invariants

At most one Answer per Question has Accepted set. The schema does not enforce
this; store.AcceptAnswer clears and sets the flag in one transaction.
*/
package models
