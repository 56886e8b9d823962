package postgresql

import (
	"context"

	"github.com/complyhr/complyhr-backend-go/internal/domain/payslip"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipColumns = `id, company_id, employee_id, period, gross_pay, net_pay, document_path, uploaded_by, created_at`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.Period,
		&p.GrossPay, &p.NetPay, &p.DocumentPath, &p.UploadedBy, &p.CreatedAt,
	)
	return p, err
}

// Create implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (company_id, employee_id, period, gross_pay, net_pay, document_path, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + payslipColumns

	created, err := scanPayslip(q.QueryRow(ctx, query,
		p.CompanyID, p.EmployeeID, p.Period, p.GrossPay, p.NetPay, p.DocumentPath, p.UploadedBy,
	))
	if err != nil {
		return payslip.Payslip{}, err
	}

	return created, nil
}

// GetByID implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE id = $1`

	found, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, err
	}

	return found, nil
}

// GetByEmployeeID implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE employee_id = $1 ORDER BY period DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payslips, nil
}

// ExistsByPeriod implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) ExistsByPeriod(ctx context.Context, employeeID, period string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payslips WHERE employee_id = $1 AND period = $2)`,
		employeeID, period).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Delete implements payslip.PayslipRepository.
func (r *payslipRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payslips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}

	return nil
}
