package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/company"
	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/leave"
	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/complyhr/complyhr-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// Service covers the leave request lifecycle and the per-employee balances.
type Service interface {
	SubmitRequest(ctx context.Context, companyID string, req leave.SubmitRequestRequest) (leave.LeaveRequestResponse, error)
	ApproveRequest(ctx context.Context, companyID, approverID, requestID string) error
	RejectRequest(ctx context.Context, companyID, requestID string) error
	DeleteRequest(ctx context.Context, companyID, requestID string) error
	GetRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error)
	ListRequests(ctx context.Context, companyID string, filter leave.RequestFilter) (leave.ListLeaveRequestResponse, error)
	ListMyRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error)
	GetBalance(ctx context.Context, employeeID string) (leave.LeaveBalanceResponse, error)
	UpdateAllowance(ctx context.Context, companyID string, req leave.UpdateAllowanceRequest) error
	InitBalance(ctx context.Context, emp employee.Employee) error
	SyncEntitlementWindow(ctx context.Context, employeeID string, startDate time.Time) error
	RolloverEntitlements(ctx context.Context) error
}

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveBalanceRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	company.CompanyRepository
	notifier notification.Service
}

func NewLeaveService(
	db *database.DB,
	balanceRepo leave.LeaveBalanceRepository,
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	notifier notification.Service,
) Service {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveBalanceRepository: balanceRepo,
		LeaveRequestRepository: requestRepo,
		EmployeeRepository:     employeeRepo,
		CompanyRepository:      companyRepo,
		notifier:               notifier,
	}
}

// SubmitRequest implements Service. An admin submitting with SaveApproved
// debits the balance in the same transaction that stores the request.
func (l *LeaveServiceImpl) SubmitRequest(ctx context.Context, companyID string, req leave.SubmitRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	leaveType := leave.LeaveType(req.Type)

	if err := leave.ValidateSubmission(leaveType, start, end, req.Reason); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if emp.CompanyID != companyID {
		return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
	}

	days := leave.DayCount(start, end)

	balance, err := l.LeaveBalanceRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if balance.Remaining(leaveType) < days {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	exists, err := l.LeaveRequestRepository.ExistsMatching(ctx, req.EmployeeID, leaveType, start, end)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check duplicate request: %w", err)
	}
	if exists {
		return leave.LeaveRequestResponse{}, leave.ErrDuplicateRequest
	}

	now := time.Now()
	request := leave.LeaveRequest{
		EmployeeID:  req.EmployeeID,
		CompanyID:   companyID,
		Type:        leaveType,
		StartDate:   start,
		EndDate:     end,
		Reason:      req.Reason,
		DayCount:    days,
		Status:      leave.StatusPending,
		SubmittedAt: now,
	}

	var created leave.LeaveRequest
	if req.SaveApproved {
		// Direct save as approved: the admin decision and the debit land
		// atomically.
		adminID, _ := ctx.Value("user_id").(string)
		request.Status = leave.StatusApproved
		request.ApprovedBy = &adminID
		request.ApprovedAt = &now

		err = postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			created, err = l.LeaveRequestRepository.Create(txCtx, request)
			if err != nil {
				return err
			}

			debited := leave.Debit(balance, leaveType, days)
			return l.LeaveBalanceRepository.UpdateRemaining(txCtx, req.EmployeeID, debited.AnnualRemaining, debited.SickRemaining)
		})
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}
	} else {
		created, err = l.LeaveRequestRepository.Create(ctx, request)
		if err != nil {
			return leave.LeaveRequestResponse{}, err
		}

		l.notifier.NotifyAdmins(ctx, companyID, notification.TypeLeaveSubmitted,
			"New leave request",
			fmt.Sprintf("%s requested %d day(s) of %s leave", emp.FullName, days, leaveType))
	}

	created.EmployeeName = &emp.FullName
	return toRequestResponse(created), nil
}

// ApproveRequest implements Service. The status flip and the balance debit
// happen in one transaction; the compare-and-set on the status means two
// racing approvals debit the balance exactly once.
func (l *LeaveServiceImpl) ApproveRequest(ctx context.Context, companyID, approverID, requestID string) error {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.CompanyID != companyID {
		return leave.ErrUnauthorizedAccess
	}
	if request.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}

	balance, err := l.LeaveBalanceRepository.GetByEmployeeID(ctx, request.EmployeeID)
	if err != nil {
		return err
	}
	if balance.Remaining(request.Type) < request.DayCount {
		return leave.ErrInsufficientBalance
	}

	err = postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		flipped, err := l.LeaveRequestRepository.ApprovePending(txCtx, requestID, approverID, time.Now())
		if err != nil {
			return err
		}
		if !flipped {
			return leave.ErrAlreadyProcessed
		}

		debited := leave.Debit(balance, request.Type, request.DayCount)
		return l.LeaveBalanceRepository.UpdateRemaining(txCtx, request.EmployeeID, debited.AnnualRemaining, debited.SickRemaining)
	})
	if err != nil {
		return err
	}

	l.notifyEmployee(ctx, request, notification.TypeLeaveApproved, "Leave request approved",
		fmt.Sprintf("Your %s leave from %s to %s was approved",
			request.Type, request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")))

	return nil
}

// RejectRequest implements Service. Rejected requests are removed, not
// archived, and the balance is untouched because pending never debits.
func (l *LeaveServiceImpl) RejectRequest(ctx context.Context, companyID, requestID string) error {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.CompanyID != companyID {
		return leave.ErrUnauthorizedAccess
	}
	if request.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}

	if err := l.LeaveRequestRepository.Delete(ctx, requestID); err != nil {
		return err
	}

	l.notifyEmployee(ctx, request, notification.TypeLeaveRejected, "Leave request rejected",
		fmt.Sprintf("Your %s leave from %s to %s was rejected",
			request.Type, request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02")))

	return nil
}

// DeleteRequest implements Service. Only approved requests can be deleted;
// the deletion restores exactly the days the approval debited.
func (l *LeaveServiceImpl) DeleteRequest(ctx context.Context, companyID, requestID string) error {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.CompanyID != companyID {
		return leave.ErrUnauthorizedAccess
	}
	if request.Status != leave.StatusApproved {
		return leave.ErrNotApproved
	}

	balance, err := l.LeaveBalanceRepository.GetByEmployeeID(ctx, request.EmployeeID)
	if err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := l.LeaveRequestRepository.Delete(txCtx, requestID); err != nil {
			return err
		}

		credited := leave.Credit(balance, request.Type, request.DayCount)
		return l.LeaveBalanceRepository.UpdateRemaining(txCtx, request.EmployeeID, credited.AnnualRemaining, credited.SickRemaining)
	})
}

// GetRequest implements Service. Employees can only read their own requests.
func (l *LeaveServiceImpl) GetRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	role, _ := ctx.Value("user_role").(user.Role)
	if role == user.RoleEmployee {
		userID, _ := ctx.Value("user_id").(string)
		emp, err := l.EmployeeRepository.GetByUserID(ctx, userID)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee by user ID: %w", err)
		}
		if request.EmployeeID != emp.ID {
			return leave.LeaveRequestResponse{}, leave.ErrUnauthorizedAccess
		}
	}

	return toRequestResponse(request), nil
}

// ListRequests implements Service.
func (l *LeaveServiceImpl) ListRequests(ctx context.Context, companyID string, filter leave.RequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := l.LeaveRequestRepository.GetByCompanyID(ctx, companyID, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toRequestResponse(request))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}

// ListMyRequests implements Service.
func (l *LeaveServiceImpl) ListMyRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toRequestResponse(request))
	}
	return responses, nil
}

// GetBalance implements Service.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string) (leave.LeaveBalanceResponse, error) {
	balance, err := l.LeaveBalanceRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	comp, err := l.CompanyRepository.GetByID(ctx, balance.CompanyID)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	return leave.LeaveBalanceResponse{
		EmployeeID:             balance.EmployeeID,
		AnnualRemaining:        balance.AnnualRemaining,
		SickRemaining:          balance.SickRemaining,
		AnnualAllowed:          comp.AnnualLeavesAllowed,
		SickAllowed:            comp.SickLeavesAllowed,
		EntitlementWindowStart: balance.EntitlementWindowStart,
		EntitlementWindowEnd:   balance.EntitlementWindowEnd,
	}, nil
}

// UpdateAllowance implements Service. Admin overwrite of the remaining
// balances, bounded by the company allowances.
func (l *LeaveServiceImpl) UpdateAllowance(ctx context.Context, companyID string, req leave.UpdateAllowanceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	balance, err := l.LeaveBalanceRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if balance.CompanyID != companyID {
		return leave.ErrUnauthorizedAccess
	}

	comp, err := l.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return err
	}

	if err := leave.ValidateAllowanceOverride(req.AnnualRemaining, req.SickRemaining,
		comp.AnnualLeavesAllowed, comp.SickLeavesAllowed); err != nil {
		return err
	}

	return l.LeaveBalanceRepository.UpdateRemaining(ctx, req.EmployeeID, req.AnnualRemaining, req.SickRemaining)
}

// InitBalance implements Service. Called when an employee account is
// created: full allowances, window anchored at the start date (or the
// creation date when no start date is set yet).
func (l *LeaveServiceImpl) InitBalance(ctx context.Context, emp employee.Employee) error {
	comp, err := l.CompanyRepository.GetByID(ctx, emp.CompanyID)
	if err != nil {
		return err
	}

	anchor := time.Now()
	if emp.StartDate != nil {
		anchor = *emp.StartDate
	}
	windowStart, windowEnd := leave.EntitlementWindow(anchor)

	_, err = l.LeaveBalanceRepository.Create(ctx, leave.LeaveBalance{
		EmployeeID:             emp.ID,
		CompanyID:              emp.CompanyID,
		AnnualRemaining:        comp.AnnualLeavesAllowed,
		SickRemaining:          comp.SickLeavesAllowed,
		EntitlementWindowStart: windowStart,
		EntitlementWindowEnd:   windowEnd,
	})
	return err
}

// SyncEntitlementWindow implements Service. Re-anchors the window when an
// employee's start date changes.
func (l *LeaveServiceImpl) SyncEntitlementWindow(ctx context.Context, employeeID string, startDate time.Time) error {
	windowStart, windowEnd := leave.EntitlementWindow(startDate)
	return l.LeaveBalanceRepository.UpdateWindow(ctx, employeeID, windowStart, windowEnd)
}

// RolloverEntitlements implements Service. Invoked by the scheduler.
func (l *LeaveServiceImpl) RolloverEntitlements(ctx context.Context) error {
	_, err := l.LeaveBalanceRepository.ResetLapsedWindows(ctx, time.Now())
	return err
}

func (l *LeaveServiceImpl) notifyEmployee(ctx context.Context, request leave.LeaveRequest, notifType, title, message string) {
	emp, err := l.EmployeeRepository.GetByID(ctx, request.EmployeeID)
	if err != nil || emp.UserID == nil {
		return
	}

	l.notifier.Notify(notification.CreateNotificationRequest{
		CompanyID:   request.CompanyID,
		RecipientID: *emp.UserID,
		Type:        notifType,
		Title:       title,
		Message:     message,
	})
}

func toRequestResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:          request.ID,
		EmployeeID:  request.EmployeeID,
		Type:        string(request.Type),
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		DayCount:    request.DayCount,
		Reason:      request.Reason,
		Status:      string(request.Status),
		SubmittedAt: request.SubmittedAt,
		ApprovedBy:  request.ApprovedBy,
		ApprovedAt:  request.ApprovedAt,
	}
	if request.EmployeeName != nil {
		resp.EmployeeName = *request.EmployeeName
	}
	return resp
}
