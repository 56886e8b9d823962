package leave

import "time"

// LeaveType - each type carries an independent balance and allowance.
type LeaveType string

const (
	TypeAnnual LeaveType = "annual"
	TypeSick   LeaveType = "sick"
)

func (t LeaveType) Valid() bool {
	return t == TypeAnnual || t == TypeSick
}

type LeaveRequestStatus string

const (
	// Pending requests await an admin decision; the balance is untouched.
	StatusPending LeaveRequestStatus = "pending"
	// Approved requests have debited the balance. Rejected and deleted
	// requests are removed, not archived.
	StatusApproved LeaveRequestStatus = "approved"
)

// LeaveBalance - one per employee per company. Remaining counts are bounded
// above by the company allowances; the entitlement window is the 1-year
// period anchored to the employee's start date.
type LeaveBalance struct {
	ID         string
	EmployeeID string
	CompanyID  string

	AnnualRemaining int
	SickRemaining   int

	EntitlementWindowStart time.Time
	EntitlementWindowEnd   time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Remaining returns the balance for the given leave type.
func (b *LeaveBalance) Remaining(t LeaveType) int {
	if t == TypeSick {
		return b.SickRemaining
	}
	return b.AnnualRemaining
}

type LeaveRequest struct {
	ID         string
	EmployeeID string
	CompanyID  string

	Type      LeaveType
	StartDate time.Time
	EndDate   time.Time
	Reason    string

	// DayCount = EndDate - StartDate in days, weekends included.
	DayCount int

	Status     LeaveRequestStatus
	ApprovedBy *string
	ApprovedAt *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	EmployeeName *string
}
