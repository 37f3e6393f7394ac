package audit

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type execRecorder struct {
	sql  string
	args []any
}

func (e *execRecorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql = sql
	e.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (e *execRecorder) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not used")
}

func (e *execRecorder) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("not used")
}

func TestBuildBaseQueryFilters(t *testing.T) {
	query, args := buildBaseQuery("SELECT 1", "t1", Filter{Action: ActionDocumentDownload, ActorUser: "u1"})
	assert.Equal(t, "SELECT 1 FROM audit_events WHERE tenant_id = $1 AND action = $2 AND actor_user_id::text = $3", query)
	assert.Equal(t, []any{"t1", ActionDocumentDownload, "u1"}, args)

	query, args = buildBaseQuery("SELECT 1", "t1", Filter{EntityType: "payslip"})
	assert.Contains(t, query, "entity_type = $2")
	assert.Len(t, args, 2)
}

func TestRecordMarshalsDetail(t *testing.T) {
	db := &execRecorder{}
	svc := New(db)

	err := svc.Record(context.Background(), Entry{
		TenantID:   "t1",
		Action:     ActionDocumentDownload,
		EntityType: "payslip",
		EntityID:   "p1",
		Detail:     map[string]string{"format": "xlsx"},
	})
	require.NoError(t, err)
	require.Len(t, db.args, 8)
	assert.Nil(t, db.args[1])
	assert.JSONEq(t, `{"format":"xlsx"}`, string(db.args[5].([]byte)))
}

func TestRecordRejectsUnmarshalableDetail(t *testing.T) {
	svc := New(&execRecorder{})
	err := svc.Record(context.Background(), Entry{TenantID: "t1", Detail: make(chan int)})
	assert.Error(t, err)
}

func TestPurgeDeletesBeforeCutoff(t *testing.T) {
	db := &execRecorder{}
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := New(db).Purge(context.Background(), "t1", cutoff)
	require.NoError(t, err)
	assert.Contains(t, db.sql, "DELETE FROM audit_events")
	assert.Equal(t, []any{"t1", cutoff}, db.args)
}
