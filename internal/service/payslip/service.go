package payslip

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/complyhr/complyhr-backend-go/internal/domain/payslip"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/email"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/storage"
	"github.com/complyhr/complyhr-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Service manages payslip uploads and access.
type Service interface {
	Upload(ctx context.Context, companyID, uploadedBy string, req payslip.UploadPayslipRequest) (payslip.Payslip, error)
	ListByEmployee(ctx context.Context, companyID, employeeID string) ([]payslip.Payslip, error)
	Download(ctx context.Context, companyID, payslipID string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, companyID, payslipID string) error
}

type PayslipServiceImpl struct {
	db *database.DB
	payslip.PayslipRepository
	employee.EmployeeRepository
	storage  storage.FileStorage
	notifier notification.Service
	email    email.EmailService
}

func NewPayslipService(
	db *database.DB,
	payslipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	fileStorage storage.FileStorage,
	notifier notification.Service,
	emailService email.EmailService,
) Service {
	return &PayslipServiceImpl{
		db:                 db,
		PayslipRepository:  payslipRepo,
		EmployeeRepository: employeeRepo,
		storage:            fileStorage,
		notifier:           notifier,
		email:              emailService,
	}
}

// Upload implements Service. One payslip per employee per period; the
// document is mandatory.
func (p *PayslipServiceImpl) Upload(ctx context.Context, companyID, uploadedBy string, req payslip.UploadPayslipRequest) (payslip.Payslip, error) {
	if err := req.Validate(); err != nil {
		return payslip.Payslip{}, err
	}
	if req.File == nil || req.FileHeader == nil {
		return payslip.Payslip{}, payslip.ErrDocumentRequired
	}

	emp, err := p.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payslip.Payslip{}, err
	}
	if emp.CompanyID != companyID {
		return payslip.Payslip{}, employee.ErrEmployeeNotFound
	}

	exists, err := p.PayslipRepository.ExistsByPeriod(ctx, req.EmployeeID, req.Period)
	if err != nil {
		return payslip.Payslip{}, err
	}
	if exists {
		return payslip.Payslip{}, payslip.ErrPayslipExists
	}

	ext := strings.ToLower(filepath.Ext(req.FileHeader.Filename))
	path := fmt.Sprintf("payslips/%s/%s/%s%s", companyID, req.EmployeeID, uuid.New().String(), ext)

	contentType := req.FileHeader.Header.Get("Content-Type")
	storedPath, err := p.storage.Upload(ctx, req.File, path, contentType)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to store payslip document: %w", err)
	}

	var created payslip.Payslip
	err = postgresql.WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = p.PayslipRepository.Create(txCtx, payslip.Payslip{
			CompanyID:    companyID,
			EmployeeID:   req.EmployeeID,
			Period:       req.Period,
			GrossPay:     req.GrossPay,
			NetPay:       req.NetPay,
			DocumentPath: storedPath,
			UploadedBy:   uploadedBy,
		})
		return err
	})
	if err != nil {
		// Do not leave an orphaned document behind.
		if delErr := p.storage.Delete(ctx, storedPath); delErr != nil {
			slog.Warn("Failed to clean up payslip document", "path", storedPath, "error", delErr)
		}
		return payslip.Payslip{}, err
	}

	if emp.UserID != nil {
		p.notifier.Notify(notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: *emp.UserID,
			SenderID:    &uploadedBy,
			Type:        notification.TypePayslipReady,
			Title:       "Payslip available",
			Message:     fmt.Sprintf("Your payslip for %s is ready", created.Period),
			Data:        map[string]string{"payslip_id": created.ID},
		})
	}

	go func() {
		if err := p.email.SendPayslipReady(emp.Email, emp.FullName, created.Period); err != nil {
			slog.Warn("Failed to send payslip email", "employee_id", emp.ID, "error", err)
		}
	}()

	return created, nil
}

// ListByEmployee implements Service. Employees may only list their own.
func (p *PayslipServiceImpl) ListByEmployee(ctx context.Context, companyID, employeeID string) ([]payslip.Payslip, error) {
	if _, err := p.scopedEmployee(ctx, companyID, employeeID); err != nil {
		return nil, err
	}

	return p.PayslipRepository.GetByEmployeeID(ctx, employeeID)
}

// Download implements Service. Returns the document stream and its period
// for the handler to name the attachment.
func (p *PayslipServiceImpl) Download(ctx context.Context, companyID, payslipID string) (io.ReadCloser, string, error) {
	found, err := p.PayslipRepository.GetByID(ctx, payslipID)
	if err != nil {
		return nil, "", err
	}
	if found.CompanyID != companyID {
		return nil, "", payslip.ErrPayslipNotFound
	}

	if _, err := p.scopedEmployee(ctx, companyID, found.EmployeeID); err != nil {
		return nil, "", err
	}

	reader, err := p.storage.Download(ctx, found.DocumentPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open payslip document: %w", err)
	}

	return reader, found.Period, nil
}

// Delete implements Service. Removes the record and its document.
func (p *PayslipServiceImpl) Delete(ctx context.Context, companyID, payslipID string) error {
	found, err := p.PayslipRepository.GetByID(ctx, payslipID)
	if err != nil {
		return err
	}
	if found.CompanyID != companyID {
		return payslip.ErrPayslipNotFound
	}

	if err := p.PayslipRepository.Delete(ctx, payslipID); err != nil {
		return err
	}

	if err := p.storage.Delete(ctx, found.DocumentPath); err != nil {
		slog.Warn("Failed to delete payslip document", "path", found.DocumentPath, "error", err)
	}

	return nil
}

// scopedEmployee checks the tenant boundary and, for employee callers, that
// the payslip owner is them.
func (p *PayslipServiceImpl) scopedEmployee(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
	emp, err := p.EmployeeRepository.GetByID(ctx, employeeID)
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
			return employee.Employee{}, payslip.ErrUnauthorizedAccess
		}
	}

	return emp, nil
}
