package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
)

// AccountStore is the persistence the Service depends on.
type AccountStore interface {
	// FindByEmail returns ErrAccountNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// Insert returns ErrUniqueViolation when the email is taken.
	Insert(ctx context.Context, email, passwordHash string) (*Account, error)
}

// Service wraps registration and login rules.
type Service struct {
	store  AccountStore
	hasher *Hasher
	codec  *TokenCodec
	now    func() time.Time
	verify func(encoded string, password []byte) bool

	// decoy is checked against when the email is unknown so both login
	// failures cost one Argon2 derivation.
	decoyOnce sync.Once
	decoy     string
}

const decoyPassword = "qanda-login-decoy"

// NewService constructs a new Service.
func NewService(store AccountStore, hasher *Hasher, codec *TokenCodec) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		codec:  codec,
		now:    time.Now,
		verify: hasher.Verify,
	}
}

// Register hashes the password and stores a new account. It does not issue a token.
func (s *Service) Register(ctx context.Context, creds Credentials) (*Account, error) {
	email := s.normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash([]byte(creds.Password))
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	account, err := s.store.Insert(ctx, email, hash)
	if err != nil {
		if errors.Is(err, ErrUniqueViolation) {
			return nil, ErrAccountExists
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return account, nil
}

// Login verifies credentials and issues a token. An unknown email and a wrong password
// both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, creds Credentials) (string, error) {
	email := s.normalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return "", ErrInvalidCredentials
	}

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			s.verify(s.decoyHash(), []byte(creds.Password))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.verify(account.PasswordHash, []byte(creds.Password)) {
		return "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(account.ID, s.now())
	if err != nil {
		return "", fmt.Errorf("auth: issue token: %w", err)
	}
	return token, nil
}

func (s *Service) decoyHash() string {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash([]byte(decoyPassword))
		if err != nil {
			// Verify fails closed on an empty hash but still returns fast;
			// Hash only errors when the system RNG does.
			return
		}
		s.decoy = hash
	})
	return s.decoy
}

// normalizeEmail trims and case-folds. A Caser is stateful, so one is built per call.
func (s *Service) normalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
