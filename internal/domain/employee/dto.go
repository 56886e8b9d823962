package employee

import (
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	Position  string  `json:"position"`
	StartDate *string `json:"start_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: "position is required",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID                 string  `json:"-"`
	FullName           *string `json:"full_name,omitempty"`
	Position           *string `json:"position,omitempty"`
	ContactNumber      *string `json:"contact_number,omitempty"`
	Location           *string `json:"location,omitempty"`
	Project            *string `json:"project,omitempty"`
	SocNumber          *string `json:"soc_number,omitempty"`
	WeeklyWorkingHours *int    `json:"weekly_working_hours,omitempty"`
	IsSponsored        *bool   `json:"is_sponsored,omitempty"`
	StartDate          *string `json:"start_date,omitempty"`

	// Completeness bookkeeping filled in by the service, not the client.
	CompletionUnits      *float64 `json:"-"`
	CompletionPercentage *int     `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.WeeklyWorkingHours != nil && (*r.WeeklyWorkingHours < 0 || *r.WeeklyWorkingHours > 168) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekly_working_hours",
			Message: "weekly_working_hours must be between 0 and 168",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateDetailGroupRequest struct {
	EmployeeID string            `json:"-"`
	Group      string            `json:"-"`
	Fields     map[string]string `json:"fields"`
}

func (r *UpdateDetailGroupRequest) Validate() error {
	var errs validator.ValidationErrors

	found := false
	for _, g := range DetailGroups {
		if string(g) == r.Group {
			found = true
			break
		}
	}
	if !found {
		errs = append(errs, validator.ValidationError{
			Field:   "group",
			Message: "unknown detail group",
		})
	}

	if len(r.Fields) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "fields",
			Message: "fields must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AddBankAccountRequest struct {
	EmployeeID    string  `json:"-"`
	BankName      string  `json:"bank_name"`
	HolderName    string  `json:"holder_name"`
	AccountNumber string  `json:"account_number"`
	SortCode      *string `json:"sort_code,omitempty"`
}

func (r *AddBankAccountRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BankName) {
		errs = append(errs, validator.ValidationError{
			Field:   "bank_name",
			Message: "bank_name is required",
		})
	}

	if validator.IsEmpty(r.HolderName) {
		errs = append(errs, validator.ValidationError{
			Field:   "holder_name",
			Message: "holder_name is required",
		})
	}

	if !validator.IsValidAccountNumber(r.AccountNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "account_number",
			Message: "account_number must be 6-20 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	Page     int
	Limit    int
	Search   string
	Position string
}

func (f *ListFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return nil
}

type EmployeeResponse struct {
	ID                   string                       `json:"id"`
	CompanyID            string                       `json:"company_id"`
	FullName             string                       `json:"full_name"`
	Email                string                       `json:"email"`
	Position             string                       `json:"position"`
	ContactNumber        *string                      `json:"contact_number,omitempty"`
	Location             *string                      `json:"location,omitempty"`
	Project              *string                      `json:"project,omitempty"`
	SocNumber            *string                      `json:"soc_number,omitempty"`
	WeeklyWorkingHours   *int                         `json:"weekly_working_hours,omitempty"`
	AvatarURL            *string                      `json:"avatar_url,omitempty"`
	Details              map[string]map[string]string `json:"details,omitempty"`
	BankAccounts         []BankAccount                `json:"bank_accounts,omitempty"`
	IsSponsored          bool                         `json:"is_sponsored"`
	StartDate            *time.Time                   `json:"start_date,omitempty"`
	CompletionPercentage int                          `json:"completion_percentage"`
	CreatedAt            time.Time                    `json:"created_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
