package employee

import "context"

// EmployeeRepository - interface for employees table
type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, companyID, email string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByCompanyID(ctx context.Context, companyID string, filter ListFilter) ([]Employee, int64, error)
	CountByCompanyID(ctx context.Context, companyID string) (int64, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	UpdateDetailGroup(ctx context.Context, employeeID string, group DetailGroup, fields map[string]string, units float64, percentage int) error
	UpdateCompletion(ctx context.Context, employeeID string, units float64, percentage int) error
	Delete(ctx context.Context, id string) error
}

// BankAccountRepository - interface for employee_bank_accounts table
type BankAccountRepository interface {
	Create(ctx context.Context, account BankAccount) (BankAccount, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]BankAccount, error)
	GetByAccountNumber(ctx context.Context, employeeID, accountNumber string) (BankAccount, error)
	Delete(ctx context.Context, id string) error
}
