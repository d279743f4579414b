// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/danielhkuo/stackit/models"
)

// Store is the only component that talks to the database.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	if db == nil {
		panic("store: nil database handle")
	}
	return &Store{db: db}
}

// QuestionSummary is a question plus its answer count, for listings
type QuestionSummary struct {
	models.Question
	AnswerCount int64
}

// User operations

// CreateUser inserts a new user with an already-hashed password.
// The username is checked first and the unique index catches any race.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	_, err := s.FindUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user := &models.User{Username: username, Password: passwordHash}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	return user, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by username %q: %w", username, err)
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id %d: %w", id, err)
	}
	return &user, nil
}

// PromoteAdmins sets the admin flag on the named users and returns how many
// rows changed. Unknown usernames are skipped.
func (s *Store) PromoteAdmins(ctx context.Context, usernames []string) (int64, error) {
	if len(usernames) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username IN ? AND is_admin = ?", usernames, false).
		Update("is_admin", true)
	if res.Error != nil {
		return 0, fmt.Errorf("promote admins: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Question operations

func (s *Store) CreateQuestion(ctx context.Context, q *models.Question) error {
	if err := s.db.WithContext(ctx).Omit("User", "Answers").Create(q).Error; err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}

// GetQuestion loads a question with its owner
func (s *Store) GetQuestion(ctx context.Context, id uint) (*models.Question, error) {
	var q models.Question
	err := s.db.WithContext(ctx).Preload("User").First(&q, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	return &q, nil
}

// ListRecentQuestions returns every question, most recent first
func (s *Store) ListRecentQuestions(ctx context.Context) ([]QuestionSummary, error) {
	return s.listQuestions(ctx, "questions.id DESC")
}

// ListQuestions returns every question in creation order
func (s *Store) ListQuestions(ctx context.Context) ([]QuestionSummary, error) {
	return s.listQuestions(ctx, "questions.id ASC")
}

func (s *Store) listQuestions(ctx context.Context, order string) ([]QuestionSummary, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).Preload("User").Order(order).Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	type countRow struct {
		QuestionID uint
		Count      int64
	}
	var counts []countRow
	err = s.db.WithContext(ctx).
		Model(&models.Answer{}).
		Select("question_id, COUNT(*) AS count").
		Group("question_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}

	byQuestion := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byQuestion[c.QuestionID] = c.Count
	}

	summaries := make([]QuestionSummary, 0, len(questions))
	for _, q := range questions {
		summaries = append(summaries, QuestionSummary{Question: q, AnswerCount: byQuestion[q.ID]})
	}
	return summaries, nil
}

// DeleteQuestion removes a question and all of its answers in one transaction
func (s *Store) DeleteQuestion(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q models.Question
		if err := tx.Select("id").First(&q, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get question %d: %w", id, err)
		}

		if err := tx.Where("question_id = ?", id).Delete(&models.Answer{}).Error; err != nil {
			return fmt.Errorf("delete answers of question %d: %w", id, err)
		}
		if err := tx.Delete(&models.Question{}, id).Error; err != nil {
			return fmt.Errorf("delete question %d: %w", id, err)
		}
		return nil
	})
}

// Answer operations

func (s *Store) CreateAnswer(ctx context.Context, a *models.Answer) error {
	if err := s.db.WithContext(ctx).Omit("User").Create(a).Error; err != nil {
		return fmt.Errorf("create answer: %w", err)
	}
	return nil
}

// ListAnswers returns a question's answers in creation order
func (s *Store) ListAnswers(ctx context.Context, questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("question_id = ?", questionID).
		Order("id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("list answers of question %d: %w", questionID, err)
	}
	return answers, nil
}

// ListAllAnswers returns every answer in the store in creation order
func (s *Store) ListAllAnswers(ctx context.Context) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.WithContext(ctx).Preload("User").Order("id ASC").Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

// AcceptAnswer marks answerID as the accepted answer of questionID and clears
// the flag on every sibling. Either both steps commit or neither does.
// The answer must belong to the question.
func (s *Store) AcceptAnswer(ctx context.Context, questionID, answerID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a models.Answer
		err := tx.Select("id").Where("id = ? AND question_id = ?", answerID, questionID).First(&a).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get answer %d: %w", answerID, err)
		}

		err = tx.Model(&models.Answer{}).
			Where("question_id = ?", questionID).
			Update("accepted", false).Error
		if err != nil {
			return fmt.Errorf("clear accepted answers of question %d: %w", questionID, err)
		}

		err = tx.Model(&models.Answer{}).
			Where("id = ?", answerID).
			Update("accepted", true).Error
		if err != nil {
			return fmt.Errorf("accept answer %d: %w", answerID, err)
		}
		return nil
	})
}

func (s *Store) DeleteAnswer(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Answer{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete answer %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
