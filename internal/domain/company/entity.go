package company

import "time"

// Company is the tenant boundary; every record in the system is scoped
// under a company ID.
type Company struct {
	ID       string
	Name     string
	Username string
	Address  *string
	LogoURL  *string

	// Leave allowances: upper bounds for per-employee remaining balances.
	AnnualLeavesAllowed int
	SickLeavesAllowed   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Default allowances granted to a freshly registered company.
const (
	DefaultAnnualLeavesAllowed = 25
	DefaultSickLeavesAllowed   = 10
)
