package timesheet

import (
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
)

type AddEntryRequest struct {
	EmployeeID string `json:"-"`
	Date       string `json:"date"`
	Project    string `json:"project"`
	Reporter   string `json:"reporter"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

func (r *AddEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Project) {
		errs = append(errs, validator.ValidationError{
			Field:   "project",
			Message: "project is required",
		})
	}

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       time.Time `json:"date"`
	Project    string    `json:"project"`
	Reporter   string    `json:"reporter"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	TotalHours float64   `json:"total_hours"`
}

type LogResponse struct {
	EmployeeID string          `json:"employee_id"`
	Entries    []EntryResponse `json:"entries"`
	// Aggregates over the trailing window of most recent entries.
	WindowSize  int     `json:"window_size"`
	WindowHours float64 `json:"window_hours"`
}
