package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, user_id, company_id, full_name, email, position,
		contact_number, location, project, soc_number, weekly_working_hours, avatar_url,
		details, is_sponsored, start_date, completion_units, completion_percentage,
		created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.FullName, &emp.Email, &emp.Position,
		&emp.ContactNumber, &emp.Location, &emp.Project, &emp.SocNumber,
		&emp.WeeklyWorkingHours, &emp.AvatarURL,
		&emp.Details, &emp.IsSponsored, &emp.StartDate,
		&emp.CompletionUnits, &emp.CompletionPercentage,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			user_id, company_id, full_name, email, position,
			contact_number, location, project, soc_number, weekly_working_hours, avatar_url,
			details, is_sponsored, start_date, completion_units, completion_percentage
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16
		)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.UserID, newEmployee.CompanyID, newEmployee.FullName, newEmployee.Email,
		newEmployee.Position, newEmployee.ContactNumber, newEmployee.Location, newEmployee.Project,
		newEmployee.SocNumber, newEmployee.WeeklyWorkingHours, newEmployee.AvatarURL,
		newEmployee.Details, newEmployee.IsSponsored, newEmployee.StartDate,
		newEmployee.CompletionUnits, newEmployee.CompletionPercentage,
	))
	if err != nil {
		return employee.Employee{}, err
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND deleted_at IS NULL`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return found, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmail(ctx context.Context, companyID, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id = $1 AND email = $2 AND deleted_at IS NULL`

	found, err := scanEmployee(q.QueryRow(ctx, query, companyID, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return found, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1 AND deleted_at IS NULL`

	found, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}

	return found, nil
}

// GetByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(full_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Position != "" {
		conditions = append(conditions, fmt.Sprintf("position = $%d", argIdx))
		args = append(args, filter.Position)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE %s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// CountByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountByCompanyID(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, e.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE company_id = $1 AND deleted_at IS NULL`, companyID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	addSet := func(expr string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf(expr, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.FullName != nil {
		addSet("full_name = $%d", *req.FullName)
	}
	if req.Position != nil {
		addSet("position = $%d", *req.Position)
	}
	if req.ContactNumber != nil {
		addSet("contact_number = $%d", *req.ContactNumber)
	}
	if req.Location != nil {
		addSet("location = $%d", *req.Location)
	}
	if req.Project != nil {
		addSet("project = $%d", *req.Project)
	}
	if req.SocNumber != nil {
		addSet("soc_number = $%d", *req.SocNumber)
	}
	if req.WeeklyWorkingHours != nil {
		addSet("weekly_working_hours = $%d", *req.WeeklyWorkingHours)
	}
	if req.IsSponsored != nil {
		addSet("is_sponsored = $%d", *req.IsSponsored)
	}
	if req.StartDate != nil {
		addSet("start_date = $%d::date", *req.StartDate)
	}
	if req.CompletionUnits != nil {
		addSet("completion_units = $%d", *req.CompletionUnits)
	}
	if req.CompletionPercentage != nil {
		addSet("completion_percentage = $%d", *req.CompletionPercentage)
	}

	if len(setClauses) == 0 {
		return nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d AND deleted_at IS NULL`,
		strings.Join(setClauses, ", "), argIdx)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateDetailGroup implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateDetailGroup(ctx context.Context, employeeID string, group employee.DetailGroup, fields map[string]string, units float64, percentage int) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET details = jsonb_set(COALESCE(details, '{}'::jsonb), ARRAY[$1], $2::jsonb),
			completion_units = $3, completion_percentage = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, string(group), fields, units, percentage, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateCompletion implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateCompletion(ctx context.Context, employeeID string, units float64, percentage int) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET completion_units = $1, completion_percentage = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, units, percentage, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	query := `UPDATE employees SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

type bankAccountRepositoryImpl struct {
	db *database.DB
}

func NewBankAccountRepository(db *database.DB) employee.BankAccountRepository {
	return &bankAccountRepositoryImpl{db: db}
}

// Create implements employee.BankAccountRepository.
func (r *bankAccountRepositoryImpl) Create(ctx context.Context, account employee.BankAccount) (employee.BankAccount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_bank_accounts (employee_id, bank_name, holder_name, account_number, sort_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, bank_name, holder_name, account_number, sort_code, created_at
	`

	var created employee.BankAccount
	err := q.QueryRow(ctx, query,
		account.EmployeeID, account.BankName, account.HolderName,
		account.AccountNumber, account.SortCode,
	).Scan(
		&created.ID, &created.EmployeeID, &created.BankName, &created.HolderName,
		&created.AccountNumber, &created.SortCode, &created.CreatedAt,
	)
	if err != nil {
		return employee.BankAccount{}, err
	}

	return created, nil
}

// GetByEmployeeID implements employee.BankAccountRepository.
func (r *bankAccountRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]employee.BankAccount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, bank_name, holder_name, account_number, sort_code, created_at
		FROM employee_bank_accounts
		WHERE employee_id = $1
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []employee.BankAccount
	for rows.Next() {
		var a employee.BankAccount
		err := rows.Scan(&a.ID, &a.EmployeeID, &a.BankName, &a.HolderName,
			&a.AccountNumber, &a.SortCode, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// GetByAccountNumber implements employee.BankAccountRepository.
func (r *bankAccountRepositoryImpl) GetByAccountNumber(ctx context.Context, employeeID, accountNumber string) (employee.BankAccount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, bank_name, holder_name, account_number, sort_code, created_at
		FROM employee_bank_accounts
		WHERE employee_id = $1 AND account_number = $2
	`

	var a employee.BankAccount
	err := q.QueryRow(ctx, query, employeeID, accountNumber).Scan(
		&a.ID, &a.EmployeeID, &a.BankName, &a.HolderName,
		&a.AccountNumber, &a.SortCode, &a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.BankAccount{}, employee.ErrBankAccountNotFound
		}
		return employee.BankAccount{}, err
	}

	return a, nil
}

// Delete implements employee.BankAccountRepository.
func (r *bankAccountRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employee_bank_accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrBankAccountNotFound
	}

	return nil
}
