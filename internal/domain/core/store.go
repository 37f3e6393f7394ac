package core

import (
	"context"

	"github.com/go-faster/errors"

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

func (s *Store) ListDirectory(ctx context.Context, tenantID string) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id::text, e.full_name, e.nric, coalesce(e.employee_no, ''),
           coalesce(e.role_name, ''), e.status, coalesce(c.name, ''), coalesce(d.name, ''),
           coalesce(e.designation, ''), coalesce(e.email, ''),
           coalesce(nullif(e.phone, ''), e.mobile, ''), e.account_number
    FROM employees e
    LEFT JOIN company_settings c ON c.tenant_id = e.tenant_id
    LEFT JOIN departments d ON d.id = e.department_id
    WHERE e.tenant_id = $1 AND e.status <> 'terminated'
    ORDER BY e.full_name, e.id
  `, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "query employees")
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		var nric, account []byte
		if err := rows.Scan(&e.ID, &e.FullName, &nric, &e.StaffID, &e.Role, &e.Status, &e.Company,
			&e.Department, &e.Designation, &e.Email, &e.Phone, &account); err != nil {
			return nil, errors.Wrap(err, "scan employee")
		}
		if e.NRIC, err = s.open(nric); err != nil {
			return nil, errors.Wrapf(err, "open nric of %s", e.ID)
		}
		if e.BankAccount, err = s.open(account); err != nil {
			return nil, errors.Wrapf(err, "open account number of %s", e.ID)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate employees")
	}
	return out, nil
}

func (s *Store) open(sealed []byte) (string, error) {
	if s.Fields == nil {
		return string(sealed), nil
	}
	return s.Fields.Open(sealed)
}
