package timesheet

import (
	"context"
	"time"
)

// EntryRepository - interface for timesheet_entries table. The per-employee
// log is read newest-first; retention past MaxEntries is enforced on insert
// and swept by the retention cron job.
type EntryRepository interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]Entry, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Entry, error)
	DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) error
	// DeleteOlderThan drops entries outside the retention window for every
	// employee of the company. Returns the number of rows removed.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// TrimToCap removes the oldest rows beyond MaxEntries for one employee.
	TrimToCap(ctx context.Context, employeeID string, cap int) error
}
