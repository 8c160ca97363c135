package questions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/qanda/internal/shared"
)

// Repository implements Store on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns questions ordered by id. A nil limit returns every row after offset.
func (r *Repository) List(ctx context.Context, page shared.Pagination) ([]Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, content, tags, account_id FROM questions ORDER BY id LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("questions: list: %w", err)
	}
	defer rows.Close()

	questions := make([]Question, 0)
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &q.Tags, &q.AccountID); err != nil {
			return nil, fmt.Errorf("questions: scan: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Get fetches a single question.
func (r *Repository) Get(ctx context.Context, id int64) (*Question, error) {
	var q Question
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, content, tags, account_id FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Title, &q.Content, &q.Tags, &q.AccountID)
	if err != nil {
		return nil, mapStoreError("get", err)
	}
	return &q, nil
}

// Insert stores a question owned by accountID.
func (r *Repository) Insert(ctx context.Context, accountID int64, in NewQuestion) (*Question, error) {
	q := Question{Title: in.Title, Content: in.Content, Tags: in.Tags, AccountID: accountID}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO questions (title, content, tags, account_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		in.Title, in.Content, in.Tags, accountID,
	).Scan(&q.ID)
	if err != nil {
		return nil, mapStoreError("insert", err)
	}
	return &q, nil
}

// Update replaces title, content and tags.
func (r *Repository) Update(ctx context.Context, id int64, in NewQuestion) (*Question, error) {
	q := Question{ID: id, Title: in.Title, Content: in.Content, Tags: in.Tags}
	err := r.pool.QueryRow(ctx,
		`UPDATE questions SET title = $1, content = $2, tags = $3 WHERE id = $4 RETURNING account_id`,
		in.Title, in.Content, in.Tags, id,
	).Scan(&q.AccountID)
	if err != nil {
		return nil, mapStoreError("update", err)
	}
	return &q, nil
}

// Delete removes a question.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return mapStoreError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func mapStoreError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrQuestionNotFound
	}
	return fmt.Errorf("questions: %s: %w", op, err)
}

var _ Store = (*Repository)(nil)
