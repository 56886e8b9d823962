package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash *string
	FullName     string
	Role         Role
	GoogleID     *string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
