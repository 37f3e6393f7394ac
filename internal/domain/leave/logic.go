package leave

import (
	"time"

	"github.com/go-faster/errors"
)

var ErrInvalidRange = errors.New("invalid leave range")

// CalculateDays returns inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, errors.Wrap(ErrInvalidRange, "end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// CalculateRequestDays returns inclusive leave day count with optional half-day start/end boundaries.
func CalculateRequestDays(start, end time.Time, startHalf, endHalf bool) (float64, error) {
	days, err := CalculateDays(start, end)
	if err != nil {
		return 0, err
	}

	sameDay := start.Equal(end)
	if sameDay && startHalf && endHalf {
		return 0, errors.Wrap(ErrInvalidRange, "half day on both ends of one day")
	}

	if startHalf {
		days -= 0.5
	}
	if endHalf {
		days -= 0.5
	}
	if days <= 0 {
		return 0, errors.Wrap(ErrInvalidRange, "no days left after half days")
	}
	return days, nil
}

// RequestDays prefers the recorded day count and recomputes it from the dates otherwise.
// A request with unusable dates counts as zero.
func RequestDays(r Request) float64 {
	if r.Days > 0 {
		return r.Days
	}
	days, err := CalculateRequestDays(r.StartDate, r.EndDate, r.StartHalf, r.EndHalf)
	if err != nil {
		return 0
	}
	return days
}

// BuildEmployees groups balance rows per employee, in row order, and charges each
// leave type with its approved requests.
func BuildEmployees(rows []BalanceRow, requests []Request) []Employee {
	type key struct{ employee, leaveType string }
	taken := make(map[key]float64, len(requests))
	for _, r := range requests {
		taken[key{r.EmployeeID, r.LeaveTypeID}] += RequestDays(r)
	}

	var out []Employee
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.EmployeeID]
		if !ok {
			i = len(out)
			index[row.EmployeeID] = i
			out = append(out, Employee{
				EmployeeID: row.EmployeeID,
				Name:       row.EmployeeName,
				StaffID:    row.StaffID,
				Department: row.Department,
			})
		}
		entitlement := row.Entitlement + row.CarryOver
		used := taken[key{row.EmployeeID, row.LeaveTypeID}]
		out[i].Breakdown = append(out[i].Breakdown, Breakdown{
			LeaveTypeID:  row.LeaveTypeID,
			LeaveType:    row.LeaveType,
			Entitlement:  entitlement,
			Taken:        used,
			Balance:      entitlement - used,
			RoleExcluded: row.RoleExcluded,
		})
	}
	return out
}
