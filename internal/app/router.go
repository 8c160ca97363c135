package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/noah-isme/qanda/internal/answers"
	"github.com/noah-isme/qanda/internal/auth"
	"github.com/noah-isme/qanda/internal/observability"
	"github.com/noah-isme/qanda/internal/platform/httpx"
	"github.com/noah-isme/qanda/internal/questions"
	"github.com/noah-isme/qanda/internal/shared"
	"github.com/noah-isme/qanda/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Authenticator    *auth.Authenticator
	AuthHandler      *auth.Handler
	QuestionsHandler *questions.Handler
	AnswersHandler   *answers.Handler
	JobHandler       *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with qanda defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.RespondError(w, shared.ErrNotFound)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	params.AuthHandler.MountRoutes(r)
	gate := params.Authenticator.Middleware
	if params.QuestionsHandler != nil {
		params.QuestionsHandler.MountRoutes(r, gate)
	}
	if params.AnswersHandler != nil {
		params.AnswersHandler.MountRoutes(r, gate)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	return r
}
