package questions

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/qanda/internal/auth"
	"github.com/noah-isme/qanda/internal/platform/httpx"
	"github.com/noah-isme/qanda/internal/shared"
)

var errBadID = shared.NewError(shared.KindBadRequest, "question id must be a positive integer")

// Handler exposes question endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers question routes. gate protects every mutating route.
func (h *Handler) MountRoutes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Get("/questions", h.handleList)
	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Post("/questions", h.handleAdd)
		r.Put("/questions/{id}", h.handleUpdate)
		r.Delete("/questions/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := shared.ExtractPagination(r.URL.Query())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	list, err := h.service.List(r.Context(), page)
	if err != nil {
		h.fail(w, "list questions", err)
		return
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	var in NewQuestion
	if err := httpx.DecodeJSON(r, h.validator, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	q, err := h.service.Add(r.Context(), sess.AccountID, in)
	if err != nil {
		h.fail(w, "add question", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	id, err := questionID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var in NewQuestion
	if err := httpx.DecodeJSON(r, h.validator, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	q, err := h.service.Update(r.Context(), sess.AccountID, id, in)
	if err != nil {
		h.fail(w, "update question", err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	id, err := questionID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), sess.AccountID, id); err != nil {
		h.fail(w, "delete question", err)
		return
	}
	httpx.JSON(w, http.StatusOK, fmt.Sprintf("Question %d deleted", id))
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	if httpx.StatusFor(err) >= http.StatusInternalServerError {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func questionID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}
