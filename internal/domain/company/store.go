package company

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"utamahr/internal/platform/querier"
)

type Source interface {
	Settings(ctx context.Context, tenantID string) (Settings, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Settings(ctx context.Context, tenantID string) (Settings, error) {
	var out Settings
	err := s.DB.QueryRow(ctx, `
    SELECT name, COALESCE(short_name, ''), COALESCE(registration_number, ''), COALESCE(address, ''),
           COALESCE(postal_code, ''), COALESCE(city, ''), COALESCE(state, ''), COALESCE(phone, ''),
           COALESCE(fax, ''), COALESCE(email, ''), COALESCE(website, ''), COALESCE(logo_url, ''), logo
    FROM company_settings
    WHERE tenant_id = $1
    LIMIT 1
  `, tenantID).Scan(&out.Name, &out.ShortName, &out.RegNumber, &out.Address,
		&out.PostalCode, &out.City, &out.State, &out.Phone,
		&out.Fax, &out.Email, &out.Website, &out.LogoURL, &out.Logo)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, ErrSettingsNotFound
	}
	if err != nil {
		return Settings{}, errors.Wrap(err, "query company settings")
	}
	return out, nil
}
