package leave

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"utamahr/internal/domain/company"
)

type RenderObserver interface {
	ObserveRender(kind, format string, dur time.Duration, err error)
}

type Service struct {
	store     StoreAPI
	companies company.Source
	observer  RenderObserver
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewService(store StoreAPI, companies company.Source, observer RenderObserver, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, companies: companies, observer: observer, log: log, now: time.Now}
}

// Employees loads the per-employee breakdowns for a report. A zero year means this year.
func (s *Service) Employees(ctx context.Context, tenantID string, filter Filter) ([]Employee, Filter, error) {
	if filter.Year == 0 {
		filter.Year = s.now().Year()
	}
	rows, err := s.store.ListBalances(ctx, tenantID, filter)
	if err != nil {
		return nil, filter, err
	}
	requests, err := s.store.ListApprovedRequests(ctx, tenantID, filter)
	if err != nil {
		return nil, filter, err
	}
	return BuildEmployees(rows, requests), filter, nil
}

// ReportPDF renders the leave report for the tenant.
func (s *Service) ReportPDF(ctx context.Context, tenantID string, filter Filter) ([]byte, error) {
	employees, filter, err := s.Employees(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	co := company.Default()
	if s.companies != nil {
		found, err := s.companies.Settings(ctx, tenantID)
		if err != nil {
			s.log.WithError(err).WithField("tenant_id", tenantID).Warn("company settings unavailable")
		} else {
			co = found
		}
	}

	start := s.now()
	out, err := Render(ctx, Report{
		Title:       DefaultTitle,
		Company:     co,
		GeneratedAt: start,
		Filter:      filter,
		Employees:   employees,
	})
	if s.observer != nil {
		s.observer.ObserveRender("leave_report", "pdf", time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"employees": len(employees), "year": filter.Year}).Debug("leave report rendered")
	return out, nil
}
