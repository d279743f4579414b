// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Field bounds. The forms package builds its length rules from these.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 80
	PasswordMinLen = 6
	TitleMaxLen    = 150
)

// User is a registered account. Password holds a bcrypt hash, never plaintext.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:80;uniqueIndex;not null"`
	Password  string `gorm:"size:255;not null"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// Question is owned by the user who asked it. Deleting a question deletes its answers.
type Question struct {
	ID          uint     `gorm:"primaryKey"`
	Title       string   `gorm:"size:150;not null"`
	Description string   `gorm:"type:text;not null"`
	UserID      uint     `gorm:"index;not null"`
	User        User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Answers     []Answer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt   time.Time
}

// Answer belongs to one question. At most one answer per question is Accepted;
// store.AcceptAnswer is the only writer of that flag.
type Answer struct {
	ID         uint   `gorm:"primaryKey"`
	Content    string `gorm:"type:text;not null"`
	QuestionID uint   `gorm:"index;not null"`
	UserID     uint   `gorm:"index;not null"`
	User       User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Accepted   bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

// Vote is migrated so the table exists, but nothing reads or writes it.
type Vote struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	AnswerID  uint `gorm:"index;not null"`
	Value     int  `gorm:"not null"`
	CreatedAt time.Time
}

// Tables lists every entity in migration order.
func Tables() []any {
	return []any{&User{}, &Question{}, &Answer{}, &Vote{}}
}
