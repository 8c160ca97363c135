package answers_test

import (
	"context"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/qanda/internal/answers"
	"github.com/noah-isme/qanda/internal/auth"
	"github.com/noah-isme/qanda/internal/questions"
	_ "github.com/noah-isme/qanda/testing"
)

type memStore struct {
	mu        sync.Mutex
	questions map[int64]bool
	rows      []answers.Answer
}

func (s *memStore) Insert(_ context.Context, accountID int64, in answers.NewAnswer) (*answers.Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.questions[in.QuestionID] {
		return nil, questions.ErrQuestionNotFound
	}
	a := answers.Answer{ID: int64(len(s.rows) + 1), Content: in.Content, QuestionID: in.QuestionID, AccountID: accountID}
	s.rows = append(s.rows, a)
	return &a, nil
}

type maskCensor struct{ err error }

func (c maskCensor) Censor(_ context.Context, text string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return strings.ReplaceAll(text, "shitty", "******"), nil
}

func newRouter(t *testing.T, store answers.Store, censor maskCensor) (http.Handler, *auth.TokenCodec) {
	t.Helper()
	var key auth.Key
	_, err := rand.Read(key[:])
	require.NoError(t, err)
	codec, err := auth.NewTokenCodec(key, auth.DefaultTokenTTL)
	require.NoError(t, err)

	r := chi.NewRouter()
	answers.NewHandler(nil, answers.NewService(store, censor)).MountRoutes(r, auth.NewAuthenticator(codec, nil, nil).Middleware)
	return r, codec
}

func postForm(t *testing.T, h http.Handler, codec *auth.TokenCodec, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/answers", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if codec != nil {
		token, err := codec.Issue(3, time.Now())
		require.NoError(t, err)
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
