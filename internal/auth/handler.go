package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/qanda/internal/platform/httpx"
)

// RegistrationNotifier is told about new accounts after the response is decided.
type RegistrationNotifier interface {
	AccountRegistered(ctx context.Context, account Account) error
}

// LoginRecorder counts login outcomes.
type LoginRecorder interface {
	LoginAttempt(success bool)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
	notifier  RegistrationNotifier
	recorder  LoginRecorder
}

// NewHandler constructs a Handler instance. notifier and recorder may be nil.
func NewHandler(logger *slog.Logger, service *Service, notifier RegistrationNotifier, recorder LoginRecorder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
		notifier:  notifier,
		recorder:  recorder,
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/registration", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := httpx.DecodeJSON(r, h.validator, &creds); err != nil {
		httpx.RespondError(w, err)
		return
	}
	account, err := h.service.Register(r.Context(), creds)
	if err != nil {
		h.logFailure("register", err)
		httpx.RespondError(w, err)
		return
	}
	if h.notifier != nil {
		if err := h.notifier.AccountRegistered(r.Context(), *account); err != nil {
			h.logger.Warn("notify registration", slog.Int64("account_id", account.ID), slog.Any("error", err))
		}
	}
	httpx.JSON(w, http.StatusOK, "Account added")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := httpx.DecodeJSON(r, h.validator, &creds); err != nil {
		httpx.RespondError(w, err)
		return
	}
	token, err := h.service.Login(r.Context(), creds)
	if h.recorder != nil {
		h.recorder.LoginAttempt(err == nil)
	}
	if err != nil {
		h.logFailure("login", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, token)
}

func (h *Handler) logFailure(op string, err error) {
	if httpx.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(op+" failed", slog.Any("error", err))
		return
	}
	h.logger.Info(op+" rejected", slog.Any("error", err))
}
