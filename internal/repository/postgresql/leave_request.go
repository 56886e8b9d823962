package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/leave"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `lr.id, lr.employee_id, lr.company_id, lr.type, lr.start_date, lr.end_date,
		lr.reason, lr.day_count, lr.status, lr.approved_by, lr.approved_at,
		lr.submitted_at, lr.created_at, lr.updated_at`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID,
		&req.Type, &req.StartDate, &req.EndDate,
		&req.Reason, &req.DayCount, &req.Status,
		&req.ApprovedBy, &req.ApprovedAt,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, company_id, type, start_date, end_date, reason,
			day_count, status, approved_by, approved_at, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, employee_id, company_id, type, start_date, end_date,
			reason, day_count, status, approved_by, approved_at,
			submitted_at, created_at, updated_at
	`

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.EmployeeID, request.CompanyID, request.Type,
		request.StartDate, request.EndDate, request.Reason,
		request.DayCount, request.Status, request.ApprovedBy, request.ApprovedAt,
		request.SubmittedAt,
	))
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	var employeeName string
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.EmployeeID, &req.CompanyID,
		&req.Type, &req.StartDate, &req.EndDate,
		&req.Reason, &req.DayCount, &req.Status,
		&req.ApprovedBy, &req.ApprovedAt,
		&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
		&employeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	req.EmployeeName = &employeeName
	return req, nil
}

// GetByEmployeeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, type, start_date, end_date,
			reason, day_count, status, approved_by, approved_at,
			submitted_at, created_at, updated_at
		FROM leave_requests
		WHERE employee_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// GetByCompanyID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"lr.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("lr.type = $%d", argIdx))
		args = append(args, filter.Type)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests lr WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM leave_requests lr
		JOIN employees e ON e.id = lr.employee_id
		WHERE %s
		ORDER BY lr.submitted_at DESC
		LIMIT $%d OFFSET $%d
	`, leaveRequestColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		var employeeName string
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.CompanyID,
			&req.Type, &req.StartDate, &req.EndDate,
			&req.Reason, &req.DayCount, &req.Status,
			&req.ApprovedBy, &req.ApprovedAt,
			&req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
			&employeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		req.EmployeeName = &employeeName
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ExistsMatching implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ExistsMatching(ctx context.Context, employeeID string, t leave.LeaveType, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND type = $2 AND start_date = $3 AND end_date = $4
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, t, start, end).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ApprovePending implements leave.LeaveRequestRepository. The status guard in
// the WHERE clause makes concurrent approvals of the same request settle to
// exactly one winner.
func (r *leaveRequestRepositoryImpl) ApprovePending(ctx context.Context, id, approverID string, approvedAt time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $4 AND status = $5
	`

	tag, err := q.Exec(ctx, query, leave.StatusApproved, approverID, approvedAt, id, leave.StatusPending)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}
