package employee

import (
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/leave"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/complyhr/complyhr-backend-go/internal/repository/postgresql"
	leaveservice "github.com/complyhr/complyhr-backend-go/internal/service/leave"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Service manages employee profiles and their completeness scoring.
type Service interface {
	CreateEmployee(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetEmployee(ctx context.Context, companyID, employeeID string) (employee.EmployeeResponse, error)
	ListEmployees(ctx context.Context, companyID string, filter employee.ListFilter) (employee.ListEmployeeResponse, error)
	UpdateEmployee(ctx context.Context, companyID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	UpdateDetailGroup(ctx context.Context, companyID string, req employee.UpdateDetailGroupRequest) (employee.EmployeeResponse, error)
	AddBankAccount(ctx context.Context, companyID string, req employee.AddBankAccountRequest) (employee.EmployeeResponse, error)
	DeleteBankAccount(ctx context.Context, companyID, employeeID, accountID string) error
	UploadProfilePicture(ctx context.Context, companyID, employeeID string, file io.Reader, filename, contentType string) (employee.EmployeeResponse, error)
	DeleteProfilePicture(ctx context.Context, companyID, employeeID string) error
	DeleteEmployee(ctx context.Context, companyID, employeeID string) error
}

// fileStore is the slice of storage the profile picture flow needs.
type fileStore interface {
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
	employee.BankAccountRepository
	leaveService leaveservice.Service
	storage      fileStore
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	bankAccountRepo employee.BankAccountRepository,
	leaveService leaveservice.Service,
	storage fileStore,
) Service {
	return &EmployeeServiceImpl{
		db:                    db,
		EmployeeRepository:    employeeRepo,
		BankAccountRepository: bankAccountRepo,
		leaveService:          leaveService,
		storage:               storage,
	}
}

// CreateEmployee implements Service. The profile starts with the mandatory
// units plus the sponsorship waiver, and gets a leave balance in the same
// transaction.
func (e *EmployeeServiceImpl) CreateEmployee(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := e.EmployeeRepository.GetByEmail(ctx, companyID, req.Email); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	} else if err != employee.ErrEmployeeNotFound {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		CompanyID: companyID,
		FullName:  req.FullName,
		Email:     req.Email,
		Position:  req.Position,
	}
	if req.StartDate != nil {
		startDate, _ := time.Parse("2006-01-02", *req.StartDate)
		newEmployee.StartDate = &startDate
	}

	newEmployee.CompletionUnits = employee.RecomputeUnits(&newEmployee)
	newEmployee.CompletionPercentage = employee.Percentage(newEmployee.CompletionUnits)

	var created employee.Employee
	err := postgresql.WithTransaction(ctx, e.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		created, err = e.EmployeeRepository.Create(txCtx, newEmployee)
		if err != nil {
			return err
		}

		return e.leaveService.InitBalance(txCtx, created)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(created), nil
}

// GetEmployee implements Service. Employees may only read their own profile.
func (e *EmployeeServiceImpl) GetEmployee(ctx context.Context, companyID, employeeID string) (employee.EmployeeResponse, error) {
	emp, err := e.getScoped(ctx, companyID, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	role, _ := ctx.Value("user_role").(user.Role)
	if role == user.RoleEmployee {
		userID, _ := ctx.Value("user_id").(string)
		if emp.UserID == nil || *emp.UserID != userID {
			return employee.EmployeeResponse{}, employee.ErrUnauthorizedAccess
		}
	}

	accounts, err := e.BankAccountRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	emp.BankAccounts = accounts

	return toResponse(emp), nil
}

// ListEmployees implements Service.
func (e *EmployeeServiceImpl) ListEmployees(ctx context.Context, companyID string, filter employee.ListFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := e.EmployeeRepository.GetByCompanyID(ctx, companyID, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// UpdateEmployee implements Service. Scalar and sponsorship changes rebuild
// the unit count from the resulting profile state; a changed start date
// re-anchors the leave entitlement window.
func (e *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, companyID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.getScoped(ctx, companyID, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var newStartDate *time.Time
	if req.StartDate != nil {
		parsed, _ := time.Parse("2006-01-02", *req.StartDate)
		if emp.StartDate == nil || !parsed.Equal(*emp.StartDate) {
			if emp.Position == employee.AdministratorPosition {
				return employee.EmployeeResponse{}, employee.ErrStartDateImmutable
			}
			newStartDate = &parsed
		}
	}

	// Apply the change set to a copy and rebuild the unit count from it.
	updated := emp
	if req.FullName != nil {
		updated.FullName = *req.FullName
	}
	if req.Position != nil {
		updated.Position = *req.Position
	}
	if req.ContactNumber != nil {
		updated.ContactNumber = req.ContactNumber
	}
	if req.Location != nil {
		updated.Location = req.Location
	}
	if req.Project != nil {
		updated.Project = req.Project
	}
	if req.SocNumber != nil {
		updated.SocNumber = req.SocNumber
	}
	if req.WeeklyWorkingHours != nil {
		updated.WeeklyWorkingHours = req.WeeklyWorkingHours
	}
	if req.IsSponsored != nil {
		updated.IsSponsored = *req.IsSponsored
	}
	if newStartDate != nil {
		updated.StartDate = newStartDate
	}

	accounts, err := e.BankAccountRepository.GetByEmployeeID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	updated.BankAccounts = accounts

	units := employee.RecomputeUnits(&updated)
	percentage := employee.Percentage(units)
	req.CompletionUnits = &units
	req.CompletionPercentage = &percentage

	err = postgresql.WithTransaction(ctx, e.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := e.EmployeeRepository.Update(txCtx, req); err != nil {
			return err
		}

		if newStartDate != nil {
			if err := e.leaveService.SyncEntitlementWindow(txCtx, req.ID, *newStartDate); err != nil {
				// A missing balance means the employee predates balance
				// tracking; nothing to re-anchor.
				if err != leave.ErrBalanceNotFound {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated.CompletionUnits = units
	updated.CompletionPercentage = percentage
	return toResponse(updated), nil
}

// UpdateDetailGroup implements Service. The change set is merged into the
// stored group; the unit count moves by the delta the merge produces.
func (e *EmployeeServiceImpl) UpdateDetailGroup(ctx context.Context, companyID string, req employee.UpdateDetailGroupRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.getScoped(ctx, companyID, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	group := employee.DetailGroup(req.Group)
	if group == employee.GroupSponsorshipDetails && !emp.IsSponsored {
		return employee.EmployeeResponse{}, employee.ErrNotSponsored
	}

	prev := emp.Group(group)
	units := employee.ScoreGroupChange(prev, req.Fields, emp.CompletionUnits)
	percentage := employee.Percentage(units)

	merged := make(map[string]string, len(prev)+len(req.Fields))
	for k, v := range prev {
		merged[k] = v
	}
	for k, v := range req.Fields {
		merged[k] = v
	}

	if err := e.EmployeeRepository.UpdateDetailGroup(ctx, req.EmployeeID, group, merged, units, percentage); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if emp.Details == nil {
		emp.Details = make(map[employee.DetailGroup]map[string]string)
	}
	emp.Details[group] = merged
	emp.CompletionUnits = units
	emp.CompletionPercentage = percentage
	return toResponse(emp), nil
}

// AddBankAccount implements Service. Only the first account moves the unit
// count.
func (e *EmployeeServiceImpl) AddBankAccount(ctx context.Context, companyID string, req employee.AddBankAccountRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := e.getScoped(ctx, companyID, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := e.BankAccountRepository.GetByAccountNumber(ctx, req.EmployeeID, req.AccountNumber); err == nil {
		return employee.EmployeeResponse{}, employee.ErrBankAccountExists
	} else if err != employee.ErrBankAccountNotFound {
		return employee.EmployeeResponse{}, err
	}

	existing, err := e.BankAccountRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	units := employee.ScoreBinaryPresence(emp.CompletionUnits, len(existing) > 0, true)
	percentage := employee.Percentage(units)

	err = postgresql.WithTransaction(ctx, e.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := e.BankAccountRepository.Create(txCtx, employee.BankAccount{
			EmployeeID:    req.EmployeeID,
			BankName:      req.BankName,
			HolderName:    req.HolderName,
			AccountNumber: req.AccountNumber,
			SortCode:      req.SortCode,
		})
		if err != nil {
			return err
		}
		existing = append(existing, created)

		return e.EmployeeRepository.UpdateCompletion(txCtx, req.EmployeeID, units, percentage)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.BankAccounts = existing
	emp.CompletionUnits = units
	emp.CompletionPercentage = percentage
	return toResponse(emp), nil
}

// DeleteBankAccount implements Service. Removing the last account takes the
// unit back.
func (e *EmployeeServiceImpl) DeleteBankAccount(ctx context.Context, companyID, employeeID, accountID string) error {
	emp, err := e.getScoped(ctx, companyID, employeeID)
	if err != nil {
		return err
	}

	existing, err := e.BankAccountRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}

	found := false
	for _, a := range existing {
		if a.ID == accountID {
			found = true
			break
		}
	}
	if !found {
		return employee.ErrBankAccountNotFound
	}

	units := employee.ScoreBinaryPresence(emp.CompletionUnits, true, len(existing) > 1)
	percentage := employee.Percentage(units)

	return postgresql.WithTransaction(ctx, e.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := e.BankAccountRepository.Delete(txCtx, accountID); err != nil {
			return err
		}

		return e.EmployeeRepository.UpdateCompletion(txCtx, employeeID, units, percentage)
	})
}

// UploadProfilePicture implements Service.
func (e *EmployeeServiceImpl) UploadProfilePicture(ctx context.Context, companyID, employeeID string, file io.Reader, filename, contentType string) (employee.EmployeeResponse, error) {
	emp, err := e.getScoped(ctx, companyID, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("avatars/%s/%s%s", companyID, uuid.New().String(), ext)

	storedPath, err := e.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to store profile picture: %w", err)
	}

	url, err := e.storage.GetURL(ctx, storedPath, 0)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	had := emp.AvatarURL != nil && *emp.AvatarURL != ""
	units := employee.ScoreBinaryPresence(emp.CompletionUnits, had, true)
	percentage := employee.Percentage(units)

	req := employee.UpdateEmployeeRequest{
		ID:                   employeeID,
		CompletionUnits:      &units,
		CompletionPercentage: &percentage,
	}

	err = postgresql.WithTransaction(ctx, e.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := e.EmployeeRepository.Update(txCtx, req); err != nil {
			return err
		}
		return e.setAvatarURL(txCtx, employeeID, &url)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp.AvatarURL = &url
	emp.CompletionUnits = units
	emp.CompletionPercentage = percentage
	return toResponse(emp), nil
}

// DeleteProfilePicture implements Service.
func (e *EmployeeServiceImpl) DeleteProfilePicture(ctx context.Context, companyID, employeeID string) error {
	emp, err := e.getScoped(ctx, companyID, employeeID)
	if err != nil {
		return err
	}

	if emp.AvatarURL == nil || *emp.AvatarURL == "" {
		return employee.ErrProfilePictureNotFound
	}

	units := employee.ScoreBinaryPresence(emp.CompletionUnits, true, false)
	percentage := employee.Percentage(units)

	return postgresql.WithTransaction(ctx, e.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := e.EmployeeRepository.UpdateCompletion(txCtx, employeeID, units, percentage); err != nil {
			return err
		}
		return e.setAvatarURL(txCtx, employeeID, nil)
	})
}

// DeleteEmployee implements Service.
func (e *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, companyID, employeeID string) error {
	if _, err := e.getScoped(ctx, companyID, employeeID); err != nil {
		return err
	}
	return e.EmployeeRepository.Delete(ctx, employeeID)
}

// getScoped fetches the employee and checks the tenant boundary.
func (e *EmployeeServiceImpl) getScoped(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
	emp, err := e.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// setAvatarURL writes the avatar column directly; the generic Update request
// cannot express clearing a field to NULL.
func (e *EmployeeServiceImpl) setAvatarURL(ctx context.Context, employeeID string, url *string) error {
	q := postgresql.GetQuerier(ctx, e.db)
	_, err := q.Exec(ctx, `UPDATE employees SET avatar_url = $1, updated_at = NOW() WHERE id = $2`, url, employeeID)
	return err
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	details := make(map[string]map[string]string, len(emp.Details))
	for name, group := range emp.Details {
		details[string(name)] = group
	}

	return employee.EmployeeResponse{
		ID:                   emp.ID,
		CompanyID:            emp.CompanyID,
		FullName:             emp.FullName,
		Email:                emp.Email,
		Position:             emp.Position,
		ContactNumber:        emp.ContactNumber,
		Location:             emp.Location,
		Project:              emp.Project,
		SocNumber:            emp.SocNumber,
		WeeklyWorkingHours:   emp.WeeklyWorkingHours,
		AvatarURL:            emp.AvatarURL,
		Details:              details,
		BankAccounts:         emp.BankAccounts,
		IsSponsored:          emp.IsSponsored,
		StartDate:            emp.StartDate,
		CompletionPercentage: employee.DisplayPercentage(emp.CompletionUnits),
		CreatedAt:            emp.CreatedAt,
	}
}
