package core

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"utamahr/internal/domain/auth"
)

type RenderObserver interface {
	ObserveRender(kind, format string, dur time.Duration, err error)
}

type Service struct {
	store    StoreAPI
	observer RenderObserver
	log      logrus.FieldLogger
}

func NewService(store StoreAPI, observer RenderObserver, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, observer: observer, log: log}
}

// Directory lists the tenant's employees with fields filtered for the viewer.
func (s *Service) Directory(ctx context.Context, user auth.UserContext) ([]Employee, error) {
	employees, err := s.store.ListDirectory(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	for i := range employees {
		FilterEmployeeFields(&employees[i], user)
	}
	return employees, nil
}

func (s *Service) DirectoryPDF(ctx context.Context, user auth.UserContext) ([]byte, error) {
	employees, err := s.Directory(ctx, user)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := RenderDirectory(ctx, employees, start)
	if s.observer != nil {
		s.observer.ObserveRender("employee_directory", "pdf", time.Since(start), err)
	}
	if err != nil {
		s.log.WithError(err).Warn("employee directory render failed")
		return nil, err
	}
	return out, nil
}
