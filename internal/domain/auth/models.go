package auth

import "time"

const UserStatusActive = "active"

type User struct {
	ID           string
	TenantID     string
	Email        string
	RoleID       string
	RoleName     string
	EmployeeID   string
	PasswordHash string
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      UserContext `json:"user"`
}
