package task

import "time"

type Task struct {
	ID         string
	CompanyID  string
	EmployeeID string

	Title       string
	Description *string
	DueDate     *time.Time
	AssignedBy  string

	CreatedAt time.Time
}
