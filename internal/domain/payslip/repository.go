package payslip

import "context"

// PayslipRepository - interface for payslips table
type PayslipRepository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Payslip, error)
	ExistsByPeriod(ctx context.Context, employeeID, period string) (bool, error)
	Delete(ctx context.Context, id string) error
}
