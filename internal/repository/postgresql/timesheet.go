package postgresql

import (
	"context"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/timesheet"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.EntryRepository {
	return &timesheetRepositoryImpl{db: db}
}

const entryColumns = `id, employee_id, company_id, date, project, reporter, start_time, end_time, total_hours, created_at`

func scanEntry(row pgx.Row) (timesheet.Entry, error) {
	var e timesheet.Entry
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.CompanyID, &e.Date,
		&e.Project, &e.Reporter, &e.StartTime, &e.EndTime,
		&e.TotalHours, &e.CreatedAt,
	)
	return e, err
}

// Create implements timesheet.EntryRepository.
func (r *timesheetRepositoryImpl) Create(ctx context.Context, e timesheet.Entry) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheet_entries (
			employee_id, company_id, date, project, reporter, start_time, end_time, total_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + entryColumns

	created, err := scanEntry(q.QueryRow(ctx, query,
		e.EmployeeID, e.CompanyID, e.Date, e.Project, e.Reporter,
		e.StartTime, e.EndTime, e.TotalHours,
	))
	if err != nil {
		return timesheet.Entry{}, err
	}

	return created, nil
}

// GetByEmployeeID implements timesheet.EntryRepository. Entries come back
// newest date first.
func (r *timesheetRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + entryColumns + `
		FROM timesheet_entries
		WHERE employee_id = $1
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []timesheet.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// GetByEmployeeAndDate implements timesheet.EntryRepository.
func (r *timesheetRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + entryColumns + ` FROM timesheet_entries WHERE employee_id = $1 AND date = $2`

	found, err := scanEntry(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Entry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.Entry{}, err
	}

	return found, nil
}

// DeleteByEmployeeAndDate implements timesheet.EntryRepository.
func (r *timesheetRepositoryImpl) DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM timesheet_entries WHERE employee_id = $1 AND date = $2`, employeeID, date)
	return err
}

// DeleteOlderThan implements timesheet.EntryRepository.
func (r *timesheetRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timesheet_entries WHERE date < $1`, cutoff)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// TrimToCap implements timesheet.EntryRepository. Keeps the newest cap rows
// for the employee and drops the rest.
func (r *timesheetRepositoryImpl) TrimToCap(ctx context.Context, employeeID string, cap int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM timesheet_entries
		WHERE employee_id = $1 AND id NOT IN (
			SELECT id FROM timesheet_entries
			WHERE employee_id = $1
			ORDER BY date DESC
			LIMIT $2
		)
	`

	_, err := q.Exec(ctx, query, employeeID, cap)
	return err
}
