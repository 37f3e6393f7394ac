package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"utamahr/internal/platform/querier"
)

const JobAuditRetention = "audit_retention"

// Purger removes a tenant's audit events older than a cutoff.
type Purger interface {
	Purge(ctx context.Context, tenantID string, before time.Time) (int64, error)
}

type Options struct {
	RetentionInterval time.Duration
	AuditRetention    time.Duration
	QueueSize         int
}

type Service struct {
	DB    querier.Querier
	Audit Purger
	Log   logrus.FieldLogger
	opts  Options
	queue chan job
	now   func() time.Time
}

type job struct {
	Type     string
	TenantID string
	Run      func(context.Context) (any, error)
}

func New(db querier.Querier, purger Purger, opts Options, log logrus.FieldLogger) *Service {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 128
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		DB:    db,
		Audit: purger,
		Log:   log,
		opts:  opts,
		queue: make(chan job, opts.QueueSize),
		now:   time.Now,
	}
}

// Start runs the worker and, when retention is configured, the purge schedule.
func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.opts.RetentionInterval > 0 && s.opts.AuditRetention > 0 && s.Audit != nil && s.DB != nil {
		go s.scheduleRetention(ctx, s.opts.RetentionInterval)
	}
}

func (s *Service) Enqueue(jobType, tenantID string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, TenantID: tenantID, Run: run}:
	default:
		s.Log.WithFields(logrus.Fields{"job_type": jobType, "tenant_id": tenantID}).Warn("job queue full")
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, tenantID string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, TenantID: tenantID, Run: run})
}

// PurgeAudit deletes one tenant's audit events past the retention window.
func (s *Service) PurgeAudit(ctx context.Context, tenantID string) (any, error) {
	if s.Audit == nil || s.opts.AuditRetention <= 0 {
		return nil, errors.New("audit retention not configured")
	}
	cutoff := s.now().Add(-s.opts.AuditRetention)
	deleted, err := s.Audit.Purge(ctx, tenantID, cutoff)
	return map[string]any{
		"cutoff":  cutoff,
		"deleted": deleted,
	}, err
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				s.Log.WithError(err).WithFields(logrus.Fields{"job_type": j.Type, "tenant_id": j.TenantID}).Warn("job run failed")
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if s.DB != nil {
		if err := s.DB.QueryRow(ctx, `
      INSERT INTO job_runs (tenant_id, job_type, status)
      VALUES ($1,$2,$3)
      RETURNING id::text
    `, j.TenantID, j.Type, "running").Scan(&runID); err != nil {
			s.Log.WithError(err).Warn("job run insert failed")
		}
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	if runID == "" {
		return details, err
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		s.Log.WithError(marshalErr).Warn("job details marshal failed")
		detailsJSON = []byte("{}")
	}
	if _, updErr := s.DB.Exec(ctx, `
    UPDATE job_runs
    SET status = $1, details_json = $2, completed_at = now()
    WHERE id = $3
  `, status, detailsJSON, runID); updErr != nil {
		s.Log.WithError(updErr).Warn("job run update failed")
	}
	return details, err
}

func (s *Service) scheduleRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tenants, err := s.listTenants(ctx)
			if err != nil {
				s.Log.WithError(err).Warn("retention scheduler tenant lookup failed")
				continue
			}
			s.enqueueRetention(tenants)
		}
	}
}

func (s *Service) enqueueRetention(tenants []string) {
	for _, tenantID := range tenants {
		tenant := tenantID
		s.Enqueue(JobAuditRetention, tenant, func(ctx context.Context) (any, error) {
			return s.PurgeAudit(ctx, tenant)
		})
	}
}

func (s *Service) listTenants(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `SELECT id::text FROM tenants`)
	if err != nil {
		return nil, errors.Wrap(err, "query tenants")
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan tenant")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
