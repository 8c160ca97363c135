// Package profanity censors user supplied text through the APILayer bad words service.
package profanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/noah-isme/qanda/internal/shared"
)

// DefaultBaseURL is the public APILayer endpoint.
const DefaultBaseURL = "https://api.apilayer.com"

// Censor replaces offensive words in text.
type Censor interface {
	Censor(ctx context.Context, text string) (string, error)
}

// Config controls the HTTP client.
type Config struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxRetries  uint64
	BaseBackoff time.Duration
}

// APIError describes a non-2xx answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Server() {
		return fmt.Sprintf("profanity: server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("profanity: client error %d: %s", e.Status, e.Message)
}

// Server reports whether the failure was on the remote side.
func (e *APIError) Server() bool {
	return e.Status >= http.StatusInternalServerError
}

func (e *APIError) retryable() bool {
	return e.Server() || e.Status == http.StatusTooManyRequests
}

// ErrUpstream is returned when the service cannot censor the text.
var ErrUpstream = shared.NewError(shared.KindUpstream, "profanity check failed")

type badWordsResponse struct {
	Content         string `json:"content"`
	BadWordsTotal   int    `json:"bad_words_total"`
	CensoredContent *string `json:"censored_content"`
}

// errMalformedResponse marks a 2xx answer that cannot be used. It is not retried.
var errMalformedResponse = errors.New("profanity: malformed response")

type errorResponse struct {
	Message string `json:"message"`
}

// Client calls the bad words API with exponential backoff.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	maxRetries  uint64
	baseBackoff time.Duration
	logger      *slog.Logger
}

// NewClient constructs a Client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 100 * time.Millisecond
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.BaseBackoff,
		logger:      logger,
	}
}

// Censor returns text with offensive words replaced by '*'.
func (c *Client) Censor(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	requestID := chimw.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.baseBackoff))
	var censored string
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		out, err := c.call(ctx, requestID, text)
		if err == nil {
			censored = out
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.retryable() {
			return err
		}
		if errors.Is(err, errMalformedResponse) {
			return err
		}
		c.logger.Debug("profanity call failed",
			slog.String("request_id", requestID),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
		return retry.RetryableError(err)
	})
	if err != nil {
		return "", shared.Wrap(shared.KindUpstream, ErrUpstream.Msg, err)
	}
	return censored, nil
}

func (c *Client) call(ctx context.Context, requestID, text string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bad_words?censor_character=*", strings.NewReader(text))
	if err != nil {
		return "", err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set(chimw.RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("profanity: send: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("profanity: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorResponse
		message := strings.TrimSpace(string(body))
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			message = payload.Message
		}
		return "", &APIError{Status: resp.StatusCode, Message: message}
	}

	var payload badWordsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", errMalformedResponse, err)
	}
	if payload.CensoredContent == nil {
		return "", fmt.Errorf("%w: missing censored_content", errMalformedResponse)
	}
	return *payload.CensoredContent, nil
}
