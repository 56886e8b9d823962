package leave

import (
	"context"
	"time"
)

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	Create(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (LeaveBalance, error)
	UpdateRemaining(ctx context.Context, employeeID string, annual, sick int) error
	UpdateWindow(ctx context.Context, employeeID string, start, end time.Time) error
	// ResetLapsedWindows advances every entitlement window that ended before
	// now by one year and restores the balances to the company allowances.
	// Returns the number of balances rolled over.
	ResetLapsedWindows(ctx context.Context, now time.Time) (int64, error)
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	GetByCompanyID(ctx context.Context, companyID string, filter RequestFilter) ([]LeaveRequest, int64, error)
	// ExistsMatching reports whether a pending or approved request with the
	// same (employee, type, start, end) already exists.
	ExistsMatching(ctx context.Context, employeeID string, t LeaveType, start, end time.Time) (bool, error)
	// ApprovePending flips a pending request to approved. Returns false when
	// the request was not pending anymore (compare-and-set).
	ApprovePending(ctx context.Context, id, approverID string, approvedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}
