package task

import "context"

// TaskRepository - interface for tasks table
type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Task, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]Task, error)
	ExistsByTitle(ctx context.Context, employeeID, title string) (bool, error)
	Delete(ctx context.Context, id string) error
}
