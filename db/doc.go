// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the relational store and manages its schema.

# Backends

Two backends share one code path through gorm:

  - sqlite (default): modernc.org/sqlite, a single file. The pool is capped at
    one connection so writers never see SQLITE_BUSY.
  - postgres: github.com/lib/pq.

Open pings the pool before handing it to gorm:

	gdb, err := db.Open(cfg)
	defer db.Close(gdb)

For sqlite, enable foreign keys in the DSN so cascades fire:

	file:stackit.db?_pragma=foreign_keys(1)

# Schema

Migrate runs gorm AutoMigrate over models.Tables():

  - users: unique username
  - questions: user_id → users
  - answers: question_id → questions (ON DELETE CASCADE), user_id → users
  - votes: declared, never used

Safe to call on every startup.
*/
package db
