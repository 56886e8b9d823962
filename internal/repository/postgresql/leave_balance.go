package postgresql

import (
	"context"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/leave"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const leaveBalanceColumns = `id, employee_id, company_id, annual_remaining, sick_remaining,
		entitlement_window_start, entitlement_window_end, created_at, updated_at`

func scanLeaveBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.CompanyID,
		&b.AnnualRemaining, &b.SickRemaining,
		&b.EntitlementWindowStart, &b.EntitlementWindowEnd,
		&b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// Create implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			employee_id, company_id, annual_remaining, sick_remaining,
			entitlement_window_start, entitlement_window_end
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + leaveBalanceColumns

	created, err := scanLeaveBalance(q.QueryRow(ctx, query,
		balance.EmployeeID, balance.CompanyID,
		balance.AnnualRemaining, balance.SickRemaining,
		balance.EntitlementWindowStart, balance.EntitlementWindowEnd,
	))
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	return created, nil
}

// GetByEmployeeID implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + ` FROM leave_balances WHERE employee_id = $1`

	found, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, err
	}

	return found, nil
}

// UpdateRemaining implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) UpdateRemaining(ctx context.Context, employeeID string, annual, sick int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET annual_remaining = $1, sick_remaining = $2, updated_at = NOW()
		WHERE employee_id = $3
	`

	tag, err := q.Exec(ctx, query, annual, sick, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}

// ResetLapsedWindows implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ResetLapsedWindows(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances b
		SET annual_remaining = c.annual_leaves_allowed,
			sick_remaining = c.sick_leaves_allowed,
			entitlement_window_start = b.entitlement_window_end,
			entitlement_window_end = b.entitlement_window_end + INTERVAL '1 year',
			updated_at = NOW()
		FROM companies c
		WHERE c.id = b.company_id AND b.entitlement_window_end <= $1
	`

	tag, err := q.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// UpdateWindow implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) UpdateWindow(ctx context.Context, employeeID string, start, end time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET entitlement_window_start = $1, entitlement_window_end = $2, updated_at = NOW()
		WHERE employee_id = $3
	`

	tag, err := q.Exec(ctx, query, start, end, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}
