package leave

import (
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
)

// EntitlementWindowLength is the rolling period a balance covers, anchored
// to the employee's start date.
const EntitlementWindowLength = time.Hour * 24 * 365

// DayCount returns the length of a request in days, weekends included.
// Start and end must differ; equal dates are rejected at validation.
func DayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// EntitlementWindow returns the 1-year window anchored at the given start
// date.
func EntitlementWindow(startDate time.Time) (time.Time, time.Time) {
	return startDate, startDate.AddDate(1, 0, 0)
}

// ValidateSubmission checks a request's own fields: type selected, dates
// valid with end strictly after start, reason length within bounds. Balance
// and duplicate checks happen against the store and are not part of this.
func ValidateSubmission(leaveType LeaveType, start, end time.Time, reason string) error {
	var errs validator.ValidationErrors

	if !leaveType.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be annual or sick",
		})
	}

	if start.IsZero() || end.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "dates",
			Message: "start_date and end_date are required",
		})
	} else if !end.After(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be after start_date",
		})
	}

	if !validator.IsValidReason(reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be between 10 and 120 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Debit returns the balance after approving a request. The caller persists
// the result together with the status flip.
func Debit(balance LeaveBalance, t LeaveType, days int) LeaveBalance {
	if t == TypeSick {
		balance.SickRemaining -= days
	} else {
		balance.AnnualRemaining -= days
	}
	return balance
}

// Credit returns the balance after deleting an approved request, restoring
// exactly the days the approval debited.
func Credit(balance LeaveBalance, t LeaveType, days int) LeaveBalance {
	if t == TypeSick {
		balance.SickRemaining += days
	} else {
		balance.AnnualRemaining += days
	}
	return balance
}

// ValidateAllowanceOverride checks an admin's direct balance overwrite
// against the company-configured allowances. Values are clamped below at
// zero by validation, not silently.
func ValidateAllowanceOverride(newAnnual, newSick, annualAllowed, sickAllowed int) error {
	var errs validator.ValidationErrors

	if newAnnual < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_remaining",
			Message: "annual_remaining must not be negative",
		})
	} else if newAnnual > annualAllowed {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_remaining",
			Message: "annual_remaining exceeds the company allowance",
		})
	}

	if newSick < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "sick_remaining",
			Message: "sick_remaining must not be negative",
		})
	} else if newSick > sickAllowed {
		errs = append(errs, validator.ValidationError{
			Field:   "sick_remaining",
			Message: "sick_remaining exceeds the company allowance",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
