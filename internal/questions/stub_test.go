package questions_test

import (
	"context"
	"crypto/rand"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/qanda/internal/auth"
	"github.com/noah-isme/qanda/internal/questions"
	"github.com/noah-isme/qanda/internal/shared"
	_ "github.com/noah-isme/qanda/testing"
)

type memStore struct {
	mu     sync.Mutex
	rows   map[int64]questions.Question
	nextID int64
	err    error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[int64]questions.Question), nextID: 1}
}

func (s *memStore) List(_ context.Context, page shared.Pagination) ([]questions.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]questions.Question, 0, len(s.rows))
	for _, q := range s.rows {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if page.Offset >= len(out) {
		return []questions.Question{}, nil
	}
	out = out[page.Offset:]
	if page.Limit != nil && *page.Limit < len(out) {
		out = out[:*page.Limit]
	}
	return out, nil
}

func (s *memStore) Get(_ context.Context, id int64) (*questions.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.rows[id]
	if !ok {
		return nil, questions.ErrQuestionNotFound
	}
	return &q, nil
}

func (s *memStore) Insert(_ context.Context, accountID int64, in questions.NewQuestion) (*questions.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	q := questions.Question{ID: s.nextID, Title: in.Title, Content: in.Content, Tags: in.Tags, AccountID: accountID}
	s.rows[q.ID] = q
	s.nextID++
	return &q, nil
}

func (s *memStore) Update(_ context.Context, id int64, in questions.NewQuestion) (*questions.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.rows[id]
	if !ok {
		return nil, questions.ErrQuestionNotFound
	}
	q.Title, q.Content, q.Tags = in.Title, in.Content, in.Tags
	s.rows[id] = q
	return &q, nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return questions.ErrQuestionNotFound
	}
	delete(s.rows, id)
	return nil
}

// starCensor masks the word "shitty".
type starCensor struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (c *starCensor) Censor(_ context.Context, text string) (string, error) {
	c.mu.Lock()
	c.calls++
	err := c.err
	c.mu.Unlock()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(text, "shitty", "******"), nil
}

func newCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	var key auth.Key
	_, err := rand.Read(key[:])
	require.NoError(t, err)
	codec, err := auth.NewTokenCodec(key, auth.DefaultTokenTTL)
	require.NoError(t, err)
	return codec
}
