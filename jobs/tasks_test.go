package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuflow/docuflow/internal/audit"
)

type memoryStore struct {
	events   []audit.Event
	purgedAt time.Time
}

func (m *memoryStore) Insert(ctx context.Context, event audit.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *memoryStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.purgedAt = cutoff
	return 3, nil
}

func TestAuthEventHandlerPersistsPayload(t *testing.T) {
	userID := int64(42)
	payload := AuthEventPayload{
		UserID:    &userID,
		Kind:      "login_success",
		Email:     "staff@docuflow.local",
		IP:        "10.0.0.9",
		UserAgent: "curl/8.0",
		At:        time.Now().UTC().Truncate(time.Second),
	}
	task, err := NewAuthEventTask(payload)
	require.NoError(t, err)

	store := &memoryStore{}
	handler := NewAuthEventHandler(store)
	require.NoError(t, handler(context.Background(), task))

	require.Len(t, store.events, 1)
	got := store.events[0]
	assert.Equal(t, payload.Kind, got.Kind)
	assert.Equal(t, payload.Email, got.Email)
	assert.Equal(t, payload.IP, got.IP)
	assert.Equal(t, payload.UserAgent, got.UserAgent)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)
	assert.True(t, got.CreatedAt.Equal(payload.At))
}

func TestAuthEventHandlerSkipsBadPayload(t *testing.T) {
	store := &memoryStore{}
	handler := NewAuthEventHandler(store)

	task := asynq.NewTask(TaskTypeAuthEvent, []byte("{not json"))
	err := handler(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, store.events)
}

func TestAuditPurgeHandlerUsesRetention(t *testing.T) {
	store := &memoryStore{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewAuditPurgeHandler(store, 90*24*time.Hour, logger)

	before := time.Now().Add(-90 * 24 * time.Hour)
	require.NoError(t, handler(context.Background(), NewAuditPurgeTask()))
	after := time.Now().Add(-90 * 24 * time.Hour)

	assert.False(t, store.purgedAt.Before(before))
	assert.False(t, store.purgedAt.After(after))
}

func TestRecorderNilSafe(t *testing.T) {
	var rec *Recorder
	rec.Record(context.Background(), AuthEventPayload{Kind: "login_failure"})

	rec = NewRecorder(nil, nil)
	rec.Record(context.Background(), AuthEventPayload{Kind: "login_failure"})
}

func TestRecorderEnqueues(t *testing.T) {
	mr := miniredis.RunT(t)

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer client.Close()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	defer inspector.Close()

	rec := NewRecorder(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec.Record(context.Background(), AuthEventPayload{
		Kind:  "logout",
		Email: "admin@docuflow.local",
		At:    time.Now(),
	})

	pending, err := inspector.ListPendingTasks(QueueDefault)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, TaskTypeAuthEvent, pending[0].Type)
}
