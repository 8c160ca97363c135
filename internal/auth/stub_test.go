package auth_test

import (
	"context"
	"crypto/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/qanda/internal/auth"
	_ "github.com/noah-isme/qanda/testing"
)

// testHashParams keeps Argon2 cheap enough for unit tests.
var testHashParams = auth.HashParams{Memory: 8 * 1024, Time: 1, Threads: 1, SaltLength: 16, KeyLength: 32}

type memStore struct {
	mu        sync.Mutex
	byEmail   map[string]*auth.Account
	nextID    int64
	insertErr error
	findErr   error
	inserts   int
}

func newMemStore() *memStore {
	return &memStore{byEmail: make(map[string]*auth.Account), nextID: 1}
}

func (s *memStore) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	account, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *memStore) Insert(ctx context.Context, email, passwordHash string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	if _, ok := s.byEmail[email]; ok {
		return nil, auth.ErrUniqueViolation
	}
	account := &auth.Account{ID: s.nextID, Email: email, PasswordHash: passwordHash}
	s.byEmail[email] = account
	s.nextID++
	s.inserts++
	copied := *account
	return &copied, nil
}

func newKey(t *testing.T) auth.Key {
	t.Helper()
	var key auth.Key
	_, err := rand.Read(key[:])
	require.NoError(t, err)
	return key
}

func newCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec(newKey(t), auth.DefaultTokenTTL)
	require.NoError(t, err)
	return codec
}

func newHasher(t *testing.T) *auth.Hasher {
	t.Helper()
	hasher, err := auth.NewHasher(testHashParams)
	require.NoError(t, err)
	return hasher
}

func newService(t *testing.T, store auth.AccountStore) (*auth.Service, *auth.TokenCodec) {
	t.Helper()
	codec := newCodec(t)
	return auth.NewService(store, newHasher(t), codec), codec
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
