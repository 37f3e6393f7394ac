package payslip

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"utamahr/internal/domain/auth"
	"utamahr/internal/domain/company"
)

// RenderObserver receives the outcome of every render.
type RenderObserver interface {
	ObserveRender(kind, format string, dur time.Duration, err error)
}

// Document is a rendered payslip ready to be written to a response.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Service struct {
	store     StoreAPI
	companies company.Source
	renderers Registry
	observer  RenderObserver
	log       logrus.FieldLogger
}

func NewService(store StoreAPI, companies company.Source, renderers Registry, observer RenderObserver, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, companies: companies, renderers: renderers, observer: observer, log: log}
}

func (s *Service) Formats() []Format {
	return s.renderers.Formats()
}

// Load fetches a stored payslip the user may see and maps it with the tenant's letterhead.
func (s *Service) Load(ctx context.Context, user auth.UserContext, payslipID string) (Payslip, error) {
	stored, err := s.store.GetPayslip(ctx, user.TenantID, payslipID)
	if err != nil {
		return Payslip{}, err
	}
	if !auth.CanSeeAllEmployees(user.RoleName) && stored.EmployeeID != user.EmployeeID {
		// Foreign payslips look missing to employees.
		return Payslip{}, ErrPayslipNotFound
	}
	return s.withCompany(ctx, user.TenantID, Map(stored.Record)), nil
}

// Document renders a stored payslip in the requested format.
func (s *Service) Document(ctx context.Context, user auth.UserContext, payslipID string, format Format) (Document, error) {
	if _, ok := s.renderers[format]; !ok {
		return Document{}, ErrUnsupportedFormat
	}
	p, err := s.Load(ctx, user, payslipID)
	if err != nil {
		return Document{}, err
	}
	return s.render(ctx, p, format, "payslip-"+payslipID)
}

// RenderRecord renders an unsaved record supplied by the caller.
func (s *Service) RenderRecord(ctx context.Context, user auth.UserContext, rec Record, format Format) (Document, error) {
	if _, ok := s.renderers[format]; !ok {
		return Document{}, ErrUnsupportedFormat
	}
	p := s.withCompany(ctx, user.TenantID, Map(rec))
	return s.render(ctx, p, format, Filename(p))
}

func (s *Service) render(ctx context.Context, p Payslip, format Format, name string) (Document, error) {
	start := time.Now()
	body, err := s.renderers.Render(ctx, p, format)
	if s.observer != nil {
		s.observer.ObserveRender("payslip", string(format), time.Since(start), err)
	}
	if err != nil {
		s.log.WithError(err).WithField("format", format).Warn("payslip render failed")
		return Document{}, errors.Wrapf(err, "render %s", format)
	}
	s.log.WithFields(logrus.Fields{"format": format, "bytes": len(body)}).Debug("payslip rendered")
	return Document{
		Filename:    name + "." + format.Extension(),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// withCompany fills gaps in the record's letterhead from the tenant settings.
func (s *Service) withCompany(ctx context.Context, tenantID string, p Payslip) Payslip {
	settings := company.Default()
	if s.companies != nil {
		found, err := s.companies.Settings(ctx, tenantID)
		if err != nil {
			s.log.WithError(err).WithField("tenant_id", tenantID).Warn("company settings unavailable")
		} else {
			settings = found
		}
	}
	p.Company = p.Company.Merge(settings)
	return p
}
