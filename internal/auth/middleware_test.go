package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/qanda/internal/auth"
)

type rejectionCounter struct {
	mu      sync.Mutex
	reasons []string
}

func (c *rejectionCounter) AuthRejected(reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reasons = append(c.reasons, reason)
}

func gatedHandler(t *testing.T, codec *auth.TokenCodec, recorder auth.RejectionRecorder) (http.Handler, *bool) {
	t.Helper()
	called := false
	gate := auth.NewAuthenticator(codec, nil, recorder)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		sess, ok := auth.SessionFromContext(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(sess.AccountID)
	})
	return gate.Middleware(next), &called
}

func serveWithAuth(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/questions", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	codec := newCodec(t)
	token, err := codec.Issue(5, time.Now())
	require.NoError(t, err)

	for _, header := range []string{token, "Bearer " + token, "bearer " + token} {
		h, called := gatedHandler(t, codec, nil)
		rec := serveWithAuth(h, header)
		require.Equal(t, http.StatusOK, rec.Code, header)
		assert.True(t, *called)
		assert.JSONEq(t, "5", rec.Body.String())
	}
}

func TestMiddlewareRejectsUniformly(t *testing.T) {
	codec := newCodec(t)
	expired, err := codec.Issue(5, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	future, err := codec.Issue(5, time.Now().Add(time.Hour))
	require.NoError(t, err)
	foreign, err := newCodec(t).Issue(5, time.Now())
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		reason string
	}{
		{"missing", "", "missing"},
		{"bearer only", "Bearer ", "invalid"},
		{"with spaces", "abc def", "missing"},
		{"garbage", "not-a-token", "invalid"},
		{"foreign key", foreign, "invalid"},
		{"expired", expired, "expired"},
		{"not yet valid", future, "not_yet_valid"},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counter := &rejectionCounter{}
			h, called := gatedHandler(t, codec, counter)
			rec := serveWithAuth(h, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, *called)
			assert.Equal(t, []string{tc.reason}, counter.reasons)
			bodies = append(bodies, rec.Body.String())
		})
	}
	for _, body := range bodies[1:] {
		assert.Equal(t, bodies[0], body)
	}
}

func TestSessionFromContextWithoutGate(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := auth.SessionFromContext(req.Context())
	assert.False(t, ok)
}
