package voucher

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"utamahr/internal/domain/auth"
	"utamahr/internal/domain/company"
)

var fileSafe = strings.NewReplacer("/", "-", "\\", "-", " ", "-", "\"", "")

type RenderObserver interface {
	ObserveRender(kind, format string, dur time.Duration, err error)
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

// Document renders a voucher the user is allowed to see.
func (s *Service) Document(ctx context.Context, user auth.UserContext, voucherID string, format Format) (Document, error) {
	renderer, ok := s.renderers[format]
	if !ok {
		return Document{}, ErrUnsupportedFormat
	}
	v, err := s.store.GetVoucher(ctx, user.TenantID, voucherID)
	if err != nil {
		return Document{}, err
	}
	if !auth.CanSeeAllEmployees(user.RoleName) && v.EmployeeID != user.EmployeeID {
		return Document{}, ErrVoucherNotFound
	}

	co := company.Default()
	if s.companies != nil {
		found, err := s.companies.Settings(ctx, user.TenantID)
		if err != nil {
			s.log.WithError(err).WithField("tenant_id", user.TenantID).Warn("company settings unavailable")
		} else {
			co = found
		}
	}

	start := time.Now()
	body, err := renderer.Render(ctx, v, co)
	if s.observer != nil {
		s.observer.ObserveRender("voucher", string(format), time.Since(start), err)
	}
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"voucher_id": voucherID, "format": format}).Warn("voucher render failed")
		return Document{}, errors.Wrapf(err, "render voucher %s", format)
	}
	name := v.Number
	if name == "" {
		name = v.ID
	}
	return Document{
		Filename:    "voucher-" + fileSafe.Replace(name) + "." + string(format),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}
