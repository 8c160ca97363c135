package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// PGRepository implements AccountStore using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches an account by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password FROM accounts WHERE email = $1`, email,
	).Scan(&account.ID, &account.Email, &account.PasswordHash)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &account, nil
}

// Insert stores a new account and returns it with the assigned id.
func (r *PGRepository) Insert(ctx context.Context, email, passwordHash string) (*Account, error) {
	account := Account{Email: email, PasswordHash: passwordHash}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, password) VALUES ($1, $2) RETURNING id`, email, passwordHash,
	).Scan(&account.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return &account, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAccountNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrUniqueViolation
	}
	return err
}

var _ AccountStore = (*PGRepository)(nil)
