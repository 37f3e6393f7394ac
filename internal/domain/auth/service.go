package auth

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

type Service struct {
	Store  StoreAPI
	Secret string
	TTL    time.Duration
	Log    logrus.FieldLogger
}

func NewService(store StoreAPI, secret string, ttl time.Duration, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{Store: store, Secret: secret, TTL: ttl, Log: log}
}

// Login checks credentials and issues a bearer token. Unknown users and bad passwords
// both surface as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.Store.FindActiveUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	claims := Claims{
		UserID:     user.ID,
		TenantID:   user.TenantID,
		RoleID:     user.RoleID,
		RoleName:   user.RoleName,
		EmployeeID: user.EmployeeID,
	}
	token, err := GenerateToken(s.Secret, claims, s.TTL)
	if err != nil {
		return LoginResult{}, errors.Wrap(err, "sign token")
	}
	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		s.Log.WithError(err).WithField("user_id", user.ID).Warn("update last login failed")
	}
	return LoginResult{
		Token:     token,
		ExpiresAt: time.Now().Add(s.TTL),
		User:      claims.User(),
	}, nil
}
