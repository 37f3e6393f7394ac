package core

import "utamahr/internal/domain/auth"

// FilterEmployeeFields blanks identity and bank fields the viewer may not read.
// HR and admin see everything; everyone else only sees their own NRIC.
func FilterEmployeeFields(emp *Employee, user auth.UserContext) {
	switch user.RoleName {
	case auth.RoleHR, auth.RoleAdmin:
		return
	}
	emp.BankAccount = ""
	if user.EmployeeID != "" && user.EmployeeID == emp.ID {
		return
	}
	emp.NRIC = ""
}
