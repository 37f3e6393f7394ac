package auth

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

const (
	PermEmployeesRead = "core.employees.read"
	PermPayrollRead   = "payroll.read"
	PermPayrollRender = "payroll.render"
	PermVouchersRead  = "vouchers.read"
	PermReportsRead   = "reports.read"
	PermAuditRead     = "audit.read"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermPayrollRead,
	PermPayrollRender,
	PermVouchersRead,
	PermReportsRead,
	PermAuditRead,
}

// RolePermissions lists direct grants. Admin inherits everything from hr through RoleParents.
var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermPayrollRead,
		PermVouchersRead,
	},
	RoleManager: {
		PermEmployeesRead,
		PermPayrollRead,
		PermVouchersRead,
		PermReportsRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermPayrollRead,
		PermPayrollRender,
		PermVouchersRead,
		PermReportsRead,
	},
	RoleAdmin: {
		PermAuditRead,
	},
}

var RoleParents = map[string][]string{
	RoleAdmin: {RoleHR},
}

// CanSeeAllEmployees reports whether a role reads records beyond its own employee.
func CanSeeAllEmployees(role string) bool {
	switch role {
	case RoleHR, RoleAdmin, RoleManager:
		return true
	}
	return false
}
