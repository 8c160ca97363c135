package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/qanda/internal/auth"
	jobmetrics "github.com/noah-isme/qanda/internal/jobs"
	_ "github.com/noah-isme/qanda/testing"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type(), Queue: QueueDefault}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type enqueueCounter struct{ ok, failed int }

func (c *enqueueCounter) TaskEnqueued(_ string, err error) {
	if err != nil {
		c.failed++
		return
	}
	c.ok++
}

type recordingMailer struct {
	to  []string
	err error
}

func (m *recordingMailer) Send(_ context.Context, to, _, _ string) error {
	m.to = append(m.to, to)
	return m.err
}

func TestAccountRegisteredEnqueuesWelcome(t *testing.T) {
	fake := &fakeEnqueuer{}
	counter := &enqueueCounter{}
	client := &Client{client: fake, recorder: counter}

	require.NoError(t, client.AccountRegistered(context.Background(), auth.Account{ID: 7, Email: "a@x.com", PasswordHash: "secret"}))
	require.Len(t, fake.tasks, 1)
	assert.Equal(t, TaskTypeWelcomeEmail, fake.tasks[0].Type())
	assert.NotContains(t, string(fake.tasks[0].Payload()), "secret")

	var payload WelcomePayload
	require.NoError(t, json.Unmarshal(fake.tasks[0].Payload(), &payload))
	assert.Equal(t, WelcomePayload{AccountID: 7, Email: "a@x.com"}, payload)
	assert.Equal(t, 1, counter.ok)

	fake.err = errors.New("redis down")
	require.Error(t, client.AccountRegistered(context.Background(), auth.Account{ID: 8, Email: "b@x.com"}))
	assert.Equal(t, 1, counter.failed)
}

func TestWelcomeJobSendsMail(t *testing.T) {
	mailer := &recordingMailer{}
	job := NewWelcomeJob(mailer, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))
	task, err := NewWelcomeTask(WelcomePayload{AccountID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, []string{"a@x.com"}, mailer.to)

	mailer.err = errors.New("smtp down")
	assert.Error(t, job.Handle(context.Background(), task))
}

func TestWelcomeJobSkipsBadPayload(t *testing.T) {
	job := NewWelcomeJob(&recordingMailer{}, nil, nil)
	err := job.Handle(context.Background(), asynq.NewTask(TaskTypeWelcomeEmail, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = job.Handle(context.Background(), asynq.NewTask(TaskTypeWelcomeEmail, []byte(`{"account_id":1}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestNewWorkerRequiresHandlers(t *testing.T) {
	_, err := NewWorker(WorkerConfig{RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"}})
	assert.Error(t, err)
}

func TestJobsHealthWithoutInspector(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(nil, nil).MountRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"queue":"default","pending":0}`, rec.Body.String())
}
