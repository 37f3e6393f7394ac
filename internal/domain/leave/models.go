package leave

import (
	"time"

	"utamahr/internal/domain/company"
)

const (
	DefaultTitle   = "LAPORAN PERMOHONAN CUTI"
	AllDepartments = "all"
)

// Breakdown is one leave type's standing for one employee, in days.
type Breakdown struct {
	LeaveTypeID  string  `json:"leaveTypeId"`
	LeaveType    string  `json:"leaveType"`
	Entitlement  float64 `json:"entitlementDays"`
	Taken        float64 `json:"takenDays"`
	Balance      float64 `json:"balanceDays"`
	RoleExcluded bool    `json:"roleBasedExcluded"`
}

type Employee struct {
	EmployeeID string      `json:"employeeId"`
	Name       string      `json:"employeeName"`
	StaffID    string      `json:"staffId,omitempty"`
	Department string      `json:"department,omitempty"`
	Breakdown  []Breakdown `json:"leaveBreakdown"`
}

type Filter struct {
	Department string `json:"department,omitempty"`
	Year       int    `json:"year,omitempty"`
}

// ByDepartment reports whether the filter narrows to one department.
func (f Filter) ByDepartment() bool {
	return f.Department != "" && f.Department != AllDepartments
}

type Report struct {
	Title       string
	Company     company.Settings
	GeneratedAt time.Time
	Filter      Filter
	Employees   []Employee
}

// BalanceRow is a stored entitlement joined with its employee and leave type.
type BalanceRow struct {
	EmployeeID   string
	EmployeeName string
	StaffID      string
	Department   string
	LeaveTypeID  string
	LeaveType    string
	Entitlement  float64
	CarryOver    float64
	RoleExcluded bool
}

// Request is an approved leave request counted against a balance.
type Request struct {
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	StartHalf   bool
	EndHalf     bool
	Days        float64
}
