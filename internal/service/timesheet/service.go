package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/timesheet"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/complyhr/complyhr-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// DefaultWindow is the trailing entry count the log summary aggregates over.
const DefaultWindow = 7

// Service manages per-employee work logs.
type Service interface {
	AddEntry(ctx context.Context, companyID string, req timesheet.AddEntryRequest) (timesheet.EntryResponse, error)
	DeleteEntry(ctx context.Context, companyID, employeeID, date string) error
	GetLog(ctx context.Context, companyID, employeeID string, window int) (timesheet.LogResponse, error)
	SweepRetention(ctx context.Context) (int64, error)
}

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.EntryRepository
	employee.EmployeeRepository
}

func NewTimesheetService(db *database.DB, entryRepo timesheet.EntryRepository, employeeRepo employee.EmployeeRepository) Service {
	return &TimesheetServiceImpl{
		db:                 db,
		EntryRepository:    entryRepo,
		EmployeeRepository: employeeRepo,
	}
}

// AddEntry implements Service. The in-memory log logic decides acceptance,
// ordering and eviction; persistence mirrors its outcome.
func (t *TimesheetServiceImpl) AddEntry(ctx context.Context, companyID string, req timesheet.AddEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	emp, err := t.scopedEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	entries, err := t.EntryRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to load timesheet log: %w", err)
	}

	entry := timesheet.Entry{
		EmployeeID: emp.ID,
		CompanyID:  companyID,
		Date:       date,
		Project:    req.Project,
		Reporter:   req.Reporter,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}

	if _, err := timesheet.Add(entries, entry, time.Now()); err != nil {
		return timesheet.EntryResponse{}, err
	}
	entry.TotalHours, _ = timesheet.Hours(req.StartTime, req.EndTime)

	var created timesheet.Entry
	err = postgresql.WithTransaction(ctx, t.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = t.EntryRepository.Create(txCtx, entry)
		if err != nil {
			return err
		}

		// Insertion may have pushed the log past the cap; drop the oldest.
		if len(entries)+1 > timesheet.MaxEntries {
			return t.EntryRepository.TrimToCap(txCtx, emp.ID, timesheet.MaxEntries)
		}
		return nil
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	return toEntryResponse(created), nil
}

// DeleteEntry implements Service. Deleting an absent date is a no-op.
func (t *TimesheetServiceImpl) DeleteEntry(ctx context.Context, companyID, employeeID, date string) error {
	if _, err := t.scopedEmployee(ctx, companyID, employeeID); err != nil {
		return err
	}

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return timesheet.ErrEntryNotFound
	}

	return t.EntryRepository.DeleteByEmployeeAndDate(ctx, employeeID, parsed)
}

// GetLog implements Service. Entries come back newest first with the
// trailing-window hour total.
func (t *TimesheetServiceImpl) GetLog(ctx context.Context, companyID, employeeID string, window int) (timesheet.LogResponse, error) {
	if _, err := t.scopedEmployee(ctx, companyID, employeeID); err != nil {
		return timesheet.LogResponse{}, err
	}

	entries, err := t.EntryRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return timesheet.LogResponse{}, err
	}

	if window < 1 {
		window = DefaultWindow
	}

	responses := make([]timesheet.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toEntryResponse(e))
	}

	return timesheet.LogResponse{
		EmployeeID:  employeeID,
		Entries:     responses,
		WindowSize:  window,
		WindowHours: timesheet.TotalHours(entries, window),
	}, nil
}

// SweepRetention implements Service. Invoked by the scheduler; entries older
// than the retention window cannot stay in any log.
func (t *TimesheetServiceImpl) SweepRetention(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(timesheet.MaxEntries) * 24 * time.Hour)
	return t.EntryRepository.DeleteOlderThan(ctx, cutoff)
}

// scopedEmployee checks the tenant boundary and, for employee callers, that
// the log belongs to them.
func (t *TimesheetServiceImpl) scopedEmployee(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
	emp, err := t.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	role, _ := ctx.Value("user_role").(user.Role)
	if role == user.RoleEmployee {
		userID, _ := ctx.Value("user_id").(string)
		if emp.UserID == nil || *emp.UserID != userID {
			return employee.Employee{}, timesheet.ErrUnauthorizedAccess
		}
	}

	return emp, nil
}

func toEntryResponse(e timesheet.Entry) timesheet.EntryResponse {
	return timesheet.EntryResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		Date:       e.Date,
		Project:    e.Project,
		Reporter:   e.Reporter,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		TotalHours: e.TotalHours,
	}
}
