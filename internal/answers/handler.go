package answers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/qanda/internal/auth"
	"github.com/noah-isme/qanda/internal/platform/httpx"
	"github.com/noah-isme/qanda/internal/shared"
)

const badQuestionID = "question_id must be a positive integer"

// Handler exposes POST /answers.
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

// MountRoutes registers answer routes behind gate.
func (h *Handler) MountRoutes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.With(gate).Post("/answers", h.handleAdd)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	var in NewAnswer
	var idErr error
	err := httpx.DecodeForm(r, h.validator, &in, func(get func(string) string) {
		in.Content = get("content")
		in.QuestionID, idErr = parseQuestionID(get("question_id"))
	})
	if idErr != nil {
		err = idErr
	}
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if _, err := h.service.Add(r.Context(), sess.AccountID, in); err != nil {
		if httpx.StatusFor(err) >= http.StatusInternalServerError {
			h.logger.Error("add answer", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Answer added")
}

func parseQuestionID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, shared.Wrap(shared.KindInvalidInput, badQuestionID, err)
	}
	if id <= 0 {
		return 0, shared.NewError(shared.KindInvalidInput, badQuestionID)
	}
	return id, nil
}
