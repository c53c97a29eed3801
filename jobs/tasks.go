package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/docuflow/docuflow/internal/audit"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeAuthEvent records an authentication audit event.
	TaskTypeAuthEvent = "auth:event"
	// TaskTypeAuditPurge trims the audit trail to the retention window.
	TaskTypeAuditPurge = "audit:purge"
)

// AuthEventPayload describes an authentication event to be persisted.
type AuthEventPayload struct {
	UserID    *int64    `json:"user_id,omitempty"`
	Kind      string    `json:"kind"`
	Email     string    `json:"email,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	At        time.Time `json:"at"`
}

// NewAuthEventTask constructs an Asynq task for an auth event.
func NewAuthEventTask(payload AuthEventPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeAuthEvent, data), nil
}

// NewAuditPurgeTask constructs the scheduled retention task.
func NewAuditPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskTypeAuditPurge, nil)
}

// AuthEventStore persists audit events consumed from the queue.
type AuthEventStore interface {
	Insert(ctx context.Context, event audit.Event) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewAuthEventHandler returns the worker handler for TaskTypeAuthEvent.
func NewAuthEventHandler(store AuthEventStore) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AuthEventPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		return store.Insert(ctx, audit.Event{
			UserID:    payload.UserID,
			Kind:      payload.Kind,
			Email:     payload.Email,
			IP:        payload.IP,
			UserAgent: payload.UserAgent,
			CreatedAt: payload.At,
		})
	}
}

// NewAuditPurgeHandler returns the worker handler for TaskTypeAuditPurge.
func NewAuditPurgeHandler(store AuthEventStore, retention time.Duration, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		removed, err := store.PurgeOlderThan(ctx, time.Now().Add(-retention))
		if err != nil {
			return err
		}
		if logger != nil {
			logger.Info("audit purge completed", slog.Int64("removed", removed))
		}
		return nil
	}
}

// Recorder enqueues audit events without blocking the request path.
type Recorder struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewRecorder constructs a Recorder. A nil client disables recording.
func NewRecorder(client *asynq.Client, logger *slog.Logger) *Recorder {
	return &Recorder{client: client, logger: logger}
}

// Record enqueues an auth event. Failures are logged, never surfaced to the
// request that triggered them.
func (rec *Recorder) Record(ctx context.Context, payload AuthEventPayload) {
	if rec == nil || rec.client == nil {
		return
	}
	task, err := NewAuthEventTask(payload)
	if err != nil {
		if rec.logger != nil {
			rec.logger.Warn("marshal auth event", slog.Any("error", err))
		}
		return
	}
	if _, err := rec.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		if rec.logger != nil {
			rec.logger.Warn("enqueue auth event", slog.Any("error", err))
		}
	}
}
