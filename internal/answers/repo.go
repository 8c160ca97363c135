package answers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/qanda/internal/questions"
)

const pgForeignKeyViolation = "23503"

// Repository implements Store on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores an answer.
func (r *Repository) Insert(ctx context.Context, accountID int64, in NewAnswer) (*Answer, error) {
	a := Answer{Content: in.Content, QuestionID: in.QuestionID, AccountID: accountID}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO answers (content, corresponding_question, account_id) VALUES ($1, $2, $3) RETURNING id`,
		in.Content, in.QuestionID, accountID,
	).Scan(&a.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, questions.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("answers: insert: %w", err)
	}
	return &a, nil
}
