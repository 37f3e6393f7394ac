package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePurger struct {
	mu      sync.Mutex
	calls   map[string]time.Time
	deleted int64
	err     error
}

func (f *fakePurger) Purge(_ context.Context, tenantID string, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]time.Time{}
	}
	f.calls[tenantID] = before
	return f.deleted, f.err
}

type idRow struct{ id string }

func (r idRow) Scan(dest ...any) error {
	*dest[0].(*string) = r.id
	return nil
}

type runRecorder struct {
	inserts []any
	updates [][]any
}

func (r *runRecorder) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	r.updates = append(r.updates, args)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (r *runRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not used")
}

func (r *runRecorder) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	r.inserts = append(r.inserts, args...)
	return idRow{id: "run-1"}
}

func newTestService(db *runRecorder, purger Purger) *Service {
	log, _ := test.NewNullLogger()
	var svc *Service
	if db == nil {
		svc = New(nil, purger, Options{AuditRetention: 24 * time.Hour, QueueSize: 4}, log)
	} else {
		svc = New(db, purger, Options{AuditRetention: 24 * time.Hour, QueueSize: 4}, log)
	}
	svc.now = func() time.Time { return time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestPurgeAuditUsesRetentionCutoff(t *testing.T) {
	purger := &fakePurger{deleted: 3}
	svc := newTestService(nil, purger)

	details, err := svc.PurgeAudit(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), purger.calls["t1"])
	assert.Equal(t, int64(3), details.(map[string]any)["deleted"])
}

func TestPurgeAuditRequiresConfiguration(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := New(nil, nil, Options{}, log)
	_, err := svc.PurgeAudit(context.Background(), "t1")
	assert.Error(t, err)
}

func TestRunNowRecordsJobRun(t *testing.T) {
	db := &runRecorder{}
	svc := newTestService(db, &fakePurger{})

	_, err := svc.RunNow(context.Background(), JobAuditRetention, "t1", func(context.Context) (any, error) {
		return map[string]int{"deleted": 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"t1", JobAuditRetention, "running"}, db.inserts)
	require.Len(t, db.updates, 1)
	assert.Equal(t, "completed", db.updates[0][0])
	assert.JSONEq(t, `{"deleted":2}`, string(db.updates[0][1].([]byte)))
	assert.Equal(t, "run-1", db.updates[0][2])
}

func TestRunNowMarksFailure(t *testing.T) {
	db := &runRecorder{}
	svc := newTestService(db, &fakePurger{})

	_, err := svc.RunNow(context.Background(), JobAuditRetention, "t1", func(context.Context) (any, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	require.Len(t, db.updates, 1)
	assert.Equal(t, "failed", db.updates[0][0])
}

func TestEnqueueRetentionRunsThroughWorker(t *testing.T) {
	purger := &fakePurger{}
	svc := newTestService(nil, purger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)

	svc.enqueueRetention([]string{"t1", "t2"})
	assert.Eventually(t, func() bool {
		purger.mu.Lock()
		defer purger.mu.Unlock()
		return len(purger.calls) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestEnqueueDropsWhenQueueFull(t *testing.T) {
	log, hook := test.NewNullLogger()
	svc := New(nil, nil, Options{QueueSize: 1}, log)
	noop := func(context.Context) (any, error) { return nil, nil }

	svc.Enqueue("a", "t1", noop)
	svc.Enqueue("b", "t1", noop)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "job queue full", hook.LastEntry().Message)
}
