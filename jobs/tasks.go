package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/noah-isme/qanda/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeWelcomeEmail greets a newly registered account.
	TaskTypeWelcomeEmail = "mail:welcome"
)

// WelcomePayload identifies the account to greet.
type WelcomePayload struct {
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
}

// NewWelcomeTask constructs an Asynq task.
func NewWelcomeTask(payload WelcomePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeWelcomeEmail, data, asynq.MaxRetry(5)), nil
}

// Mailer delivers a plain text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct {
	Logger *slog.Logger
}

// Send implements Mailer.
func (m LogMailer) Send(_ context.Context, to, subject, _ string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("mail delivered", slog.String("to", to), slog.String("subject", subject))
	return nil
}

// WelcomeJob processes TaskTypeWelcomeEmail tasks.
type WelcomeJob struct {
	mailer  Mailer
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewWelcomeJob constructs the job handler. metrics may be nil.
func NewWelcomeJob(mailer Mailer, logger *slog.Logger, metrics *jobmetrics.Metrics) *WelcomeJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &WelcomeJob{mailer: mailer, logger: logger, metrics: metrics}
}

// Handle implements asynq.HandlerFunc.
func (j *WelcomeJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload WelcomePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil || payload.Email == "" {
		j.logger.Warn("welcome task with bad payload", slog.Any("error", err))
		return asynq.SkipRetry
	}
	tracker := j.metrics.Track(TaskTypeWelcomeEmail)
	err := j.mailer.Send(ctx, payload.Email, "Welcome to qanda",
		fmt.Sprintf("Your account #%d is ready. Log in to start asking questions.", payload.AccountID))
	if err != nil {
		err = fmt.Errorf("jobs: send welcome mail: %w", err)
	}
	return tracker.End(err)
}
