package timesheet

import "time"

// Entry is one logged day of work. Date is unique within an employee's log;
// entries are created and deleted, never edited in place.
type Entry struct {
	ID         string
	EmployeeID string
	CompanyID  string

	Date     time.Time
	Project  string
	Reporter string

	// "HH:MM" 24-hour clock strings; TotalHours = end - start, fractional.
	StartTime string
	EndTime   string

	TotalHours float64

	CreatedAt time.Time
}
