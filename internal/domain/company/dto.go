package company

import (
	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
)

type UpdateCompanyRequest struct {
	ID                  string  `json:"-"`
	Name                *string `json:"name,omitempty"`
	Address             *string `json:"address,omitempty"`
	LogoURL             *string `json:"-"`
	AnnualLeavesAllowed *int    `json:"annual_leaves_allowed,omitempty"`
	SickLeavesAllowed   *int    `json:"sick_leaves_allowed,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.AnnualLeavesAllowed != nil && *r.AnnualLeavesAllowed < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_leaves_allowed",
			Message: "annual_leaves_allowed must not be negative",
		})
	}

	if r.SickLeavesAllowed != nil && *r.SickLeavesAllowed < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "sick_leaves_allowed",
			Message: "sick_leaves_allowed must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
