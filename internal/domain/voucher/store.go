package voucher

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"utamahr/internal/platform/querier"
)

// FieldOpener decrypts sealed identity and bank columns.
type FieldOpener interface {
	Open(sealed []byte) (string, error)
}

type Store struct {
	DB     querier.Querier
	Fields FieldOpener
}

func NewStore(db querier.Querier, fields FieldOpener) *Store {
	return &Store{DB: db, Fields: fields}
}

func (s *Store) GetVoucher(ctx context.Context, tenantID, voucherID string) (Voucher, error) {
	var v Voucher
	var paymentDate *time.Time
	var bank *string
	var nric, account []byte
	err := s.DB.QueryRow(ctx, `
    SELECT v.id::text, v.tenant_id::text, v.employee_id::text, v.voucher_number, v.payment_date, v.month, v.year,
           e.employee_no, e.full_name, e.nric, e.bank_name, e.account_number
    FROM payment_vouchers v
    JOIN employees e ON e.id = v.employee_id
    WHERE v.tenant_id = $1 AND v.id = $2
  `, tenantID, voucherID).Scan(&v.ID, &v.TenantID, &v.EmployeeID, &v.Number, &paymentDate, &v.Month, &v.Year,
		&v.Payee.EmployeeNo, &v.Payee.Name, &nric, &bank, &account)
	if errors.Is(err, pgx.ErrNoRows) {
		return Voucher{}, ErrVoucherNotFound
	}
	if err != nil {
		return Voucher{}, errors.Wrap(err, "query voucher")
	}
	if paymentDate != nil {
		v.PaymentDate = *paymentDate
	}
	if v.Payee.NRIC, err = s.open(nric); err != nil {
		return Voucher{}, errors.Wrap(err, "open payee nric")
	}
	if v.Payee.AccountNumber, err = s.open(account); err != nil {
		return Voucher{}, errors.Wrap(err, "open payee account number")
	}
	v.Payee.BankName = deref(bank)

	rows, err := s.DB.Query(ctx, `
    SELECT id::text, category, coalesce(description, ''), amount
    FROM voucher_claims
    WHERE voucher_id = $1
    ORDER BY position, id
  `, voucherID)
	if err != nil {
		return Voucher{}, errors.Wrap(err, "query voucher claims")
	}
	defer rows.Close()
	for rows.Next() {
		var c Claim
		var raw *string
		if err := rows.Scan(&c.ID, &c.Category, &c.Description, &raw); err != nil {
			return Voucher{}, errors.Wrap(err, "scan voucher claim")
		}
		if raw != nil {
			c.Amount = *raw
		}
		v.Claims = append(v.Claims, c)
	}
	if err := rows.Err(); err != nil {
		return Voucher{}, errors.Wrap(err, "iterate voucher claims")
	}
	return v, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Store) open(sealed []byte) (string, error) {
	if s.Fields == nil {
		return string(sealed), nil
	}
	return s.Fields.Open(sealed)
}
