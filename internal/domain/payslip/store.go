package payslip

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"utamahr/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) GetPayslip(ctx context.Context, tenantID, payslipID string) (StoredPayslip, error) {
	var out StoredPayslip
	var data []byte
	err := s.DB.QueryRow(ctx, `
    SELECT id::text, tenant_id::text, employee_id::text, data
    FROM payslips
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, payslipID).Scan(&out.ID, &out.TenantID, &out.EmployeeID, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return StoredPayslip{}, ErrPayslipNotFound
	}
	if err != nil {
		return StoredPayslip{}, errors.Wrap(err, "query payslip")
	}
	rec, err := DecodeRecord(data)
	if err != nil {
		return StoredPayslip{}, err
	}
	out.Record = rec
	return out, nil
}
