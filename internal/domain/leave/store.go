package leave

import (
	"context"

	"github.com/go-faster/errors"

	"utamahr/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

// ListBalances returns entitlements for the filter year, ordered by employee then leave type.
func (s *Store) ListBalances(ctx context.Context, tenantID string, filter Filter) ([]BalanceRow, error) {
	department := ""
	if filter.ByDepartment() {
		department = filter.Department
	}
	rows, err := s.DB.Query(ctx, `
    SELECT e.id::text, e.full_name, coalesce(e.employee_no, ''), coalesce(d.name, ''),
           t.id::text, t.name, b.entitlement_days, b.carry_over_days,
           coalesce(e.role_name = ANY(t.excluded_roles), false)
    FROM leave_balances b
    JOIN employees e ON e.id = b.employee_id
    JOIN leave_types t ON t.id = b.leave_type_id
    LEFT JOIN departments d ON d.id = e.department_id
    WHERE b.tenant_id = $1
      AND b.year = $2
      AND ($3 = '' OR d.name = $3)
      AND e.status = 'active'
    ORDER BY e.full_name, e.id, t.sort_order, t.name
  `, tenantID, filter.Year, department)
	if err != nil {
		return nil, errors.Wrap(err, "query leave balances")
	}
	defer rows.Close()

	var out []BalanceRow
	for rows.Next() {
		var r BalanceRow
		if err := rows.Scan(&r.EmployeeID, &r.EmployeeName, &r.StaffID, &r.Department,
			&r.LeaveTypeID, &r.LeaveType, &r.Entitlement, &r.CarryOver, &r.RoleExcluded); err != nil {
			return nil, errors.Wrap(err, "scan leave balance")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate leave balances")
	}
	return out, nil
}

// ListApprovedRequests returns approved requests starting within the filter year.
func (s *Store) ListApprovedRequests(ctx context.Context, tenantID string, filter Filter) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT r.employee_id::text, r.leave_type_id::text, r.start_date, r.end_date,
           r.start_half, r.end_half, coalesce(r.days, 0)
    FROM leave_requests r
    WHERE r.tenant_id = $1
      AND r.status = 'approved'
      AND extract(year FROM r.start_date) = $2
  `, tenantID, filter.Year)
	if err != nil {
		return nil, errors.Wrap(err, "query leave requests")
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		var r Request
		if err := rows.Scan(&r.EmployeeID, &r.LeaveTypeID, &r.StartDate, &r.EndDate,
			&r.StartHalf, &r.EndHalf, &r.Days); err != nil {
			return nil, errors.Wrap(err, "scan leave request")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate leave requests")
	}
	return out, nil
}
