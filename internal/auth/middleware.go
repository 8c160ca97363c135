package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/noah-isme/qanda/internal/platform/httpx"
	"github.com/noah-isme/qanda/internal/shared"
)

// RejectionRecorder counts gate rejections by internal reason.
type RejectionRecorder interface {
	AuthRejected(reason string)
}

// Authenticator gates protected routes on a valid token in the Authorization header.
// It never consults the account store.
type Authenticator struct {
	codec    *TokenCodec
	logger   *slog.Logger
	recorder RejectionRecorder
	now      func() time.Time
}

// NewAuthenticator constructs the gate. recorder may be nil.
func NewAuthenticator(codec *TokenCodec, logger *slog.Logger, recorder RejectionRecorder) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{codec: codec, logger: logger, recorder: recorder, now: time.Now}
}

// Middleware attaches the decoded Session to the request context or rejects with 401.
// Every failure renders the same response.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := tokenFromHeader(r.Header.Get("Authorization"))
		if !ok {
			a.reject(w, r, "missing")
			return
		}
		sess, err := a.codec.Verify(token, a.now())
		if err != nil {
			a.reject(w, r, rejectionReason(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
	})
}

func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, reason string) {
	a.logger.Debug("request rejected by session gate", slog.String("reason", reason), slog.String("path", r.URL.Path))
	if a.recorder != nil {
		a.recorder.AuthRejected(reason)
	}
	httpx.RespondError(w, shared.ErrUnauthorized)
}

// tokenFromHeader accepts the raw token, optionally behind a Bearer scheme.
func tokenFromHeader(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if len(value) > len("Bearer ") && strings.EqualFold(value[:len("Bearer ")], "Bearer ") {
		value = strings.TrimSpace(value[len("Bearer "):])
	}
	if value == "" || strings.ContainsAny(value, " \t") {
		return "", false
	}
	return value, true
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenNotYetValid):
		return "not_yet_valid"
	default:
		return "invalid"
	}
}
