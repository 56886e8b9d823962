package employee

import (
	"time"
)

// DetailGroup names the structured field groups on a profile. Each present
// non-empty sub-field contributes one completeness unit.
type DetailGroup string

const (
	GroupPersonalDetails    DetailGroup = "personal_details"
	GroupEmergencyContact   DetailGroup = "emergency_contact"
	GroupPassportDetails    DetailGroup = "passport_details"
	GroupVisaDetails        DetailGroup = "visa_details"
	GroupRightToWorkDetails DetailGroup = "right_to_work_details"
	GroupSponsorshipDetails DetailGroup = "sponsorship_details"
)

// DetailGroups lists every group a profile may carry. Sponsorship details
// only apply while the employee is sponsored.
var DetailGroups = []DetailGroup{
	GroupPersonalDetails,
	GroupEmergencyContact,
	GroupPassportDetails,
	GroupVisaDetails,
	GroupRightToWorkDetails,
	GroupSponsorshipDetails,
}

type Employee struct {
	ID        string
	UserID    *string
	CompanyID string

	// Mandatory at account creation
	FullName string
	Email    string
	Position string

	// Optional scalars
	ContactNumber      *string
	Location           *string
	Project            *string
	SocNumber          *string
	WeeklyWorkingHours *int
	AvatarURL          *string

	// Structured groups, keyed by DetailGroup
	Details map[DetailGroup]map[string]string

	BankAccounts []BankAccount

	IsSponsored bool
	StartDate   *time.Time

	// Completeness bookkeeping, maintained by the scorer in completeness.go.
	// CompletionUnits is the unclamped unit count; the stored percentage is
	// always round(units * UnitWeight).
	CompletionUnits      float64
	CompletionPercentage int

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type BankAccount struct {
	ID            string
	EmployeeID    string
	BankName      string
	HolderName    string
	AccountNumber string
	SortCode      *string
	CreatedAt     time.Time
}

// AdministratorPosition is the distinguished role whose start date is
// immutable.
const AdministratorPosition = "Administrator"

// Group returns the named detail group, never nil.
func (e *Employee) Group(name DetailGroup) map[string]string {
	if e.Details == nil {
		return map[string]string{}
	}
	g, ok := e.Details[name]
	if !ok || g == nil {
		return map[string]string{}
	}
	return g
}

// HasBankAccount reports whether at least one bank record exists.
func (e *Employee) HasBankAccount() bool {
	return len(e.BankAccounts) > 0
}
