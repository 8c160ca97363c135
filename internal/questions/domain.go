package questions

import (
	"context"

	"github.com/noah-isme/qanda/internal/shared"
)

// Question is a user submitted question. AccountID identifies the owner.
type Question struct {
	ID        int64    `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags,omitempty"`
	AccountID int64    `json:"-"`
}

// NewQuestion is the payload for creating or replacing a question.
type NewQuestion struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"omitempty,dive,required"`
}

// Store persists questions.
type Store interface {
	List(ctx context.Context, page shared.Pagination) ([]Question, error)
	Get(ctx context.Context, id int64) (*Question, error)
	Insert(ctx context.Context, accountID int64, q NewQuestion) (*Question, error)
	Update(ctx context.Context, id int64, q NewQuestion) (*Question, error)
	Delete(ctx context.Context, id int64) error
}

var (
	// ErrQuestionNotFound is returned for unknown question ids.
	ErrQuestionNotFound = shared.NewError(shared.KindNotFound, "question not found")
	// ErrNotOwner is returned when a caller modifies a question they did not create.
	ErrNotOwner = shared.NewError(shared.KindForbidden, "question belongs to another account")
)
