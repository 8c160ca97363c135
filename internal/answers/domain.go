// Package answers stores answers to questions.
package answers

import "context"

// Answer belongs to one question and one account.
type Answer struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	QuestionID int64  `json:"question_id"`
	AccountID  int64  `json:"-"`
}

// NewAnswer is the form payload for POST /answers.
type NewAnswer struct {
	Content    string `validate:"required"`
	QuestionID int64  `validate:"gt=0"`
}

// Store persists answers. Insert returns questions.ErrQuestionNotFound for unknown questions.
type Store interface {
	Insert(ctx context.Context, accountID int64, in NewAnswer) (*Answer, error)
}
