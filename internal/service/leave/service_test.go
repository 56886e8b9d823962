package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/leave"
	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	leave.LeaveRequestRepository
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[string]leave.LeaveRequest{}}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("req-%d", f.nextID)
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

func (f *fakeRequestRepo) ExistsMatching(ctx context.Context, employeeID string, t leave.LeaveType, start, end time.Time) (bool, error) {
	for _, request := range f.requests {
		if request.EmployeeID == employeeID && request.Type == t &&
			request.StartDate.Equal(start) && request.EndDate.Equal(end) {
			return true, nil
		}
	}
	return false, nil
}

type fakeBalanceRepo struct {
	leave.LeaveBalanceRepository
	balance leave.LeaveBalance
}

func (f *fakeBalanceRepo) GetByEmployeeID(ctx context.Context, employeeID string) (leave.LeaveBalance, error) {
	return f.balance, nil
}

func (f *fakeBalanceRepo) UpdateRemaining(ctx context.Context, employeeID string, annual, sick int) error {
	f.balance.AnnualRemaining = annual
	f.balance.SickRemaining = sick
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	emp employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if id != f.emp.ID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.emp, nil
}

type fakeNotifier struct {
	notification.Service
	notified     []notification.CreateNotificationRequest
	adminNotices []string
}

func (f *fakeNotifier) Notify(req notification.CreateNotificationRequest) {
	f.notified = append(f.notified, req)
}

func (f *fakeNotifier) NotifyAdmins(ctx context.Context, companyID, notifType, title, message string) {
	f.adminNotices = append(f.adminNotices, notifType)
}

func newLifecycleService(t *testing.T) (Service, *fakeRequestRepo, *fakeBalanceRepo, *fakeNotifier) {
	t.Helper()

	userID := "user-1"
	requests := newFakeRequestRepo()
	balances := &fakeBalanceRepo{balance: leave.LeaveBalance{
		EmployeeID:      "emp-1",
		CompanyID:       "comp-1",
		AnnualRemaining: 20,
		SickRemaining:   10,
	}}
	employees := &fakeEmployeeRepo{emp: employee.Employee{
		ID:        "emp-1",
		CompanyID: "comp-1",
		FullName:  "Jordan Reeves",
		UserID:    &userID,
	}}
	notifier := &fakeNotifier{}

	svc := NewLeaveService(nil, balances, requests, employees, nil, notifier)
	return svc, requests, balances, notifier
}

func submission() leave.SubmitRequestRequest {
	return leave.SubmitRequestRequest{
		EmployeeID: "emp-1",
		Type:       "annual",
		StartDate:  "2026-07-01",
		EndDate:    "2026-07-06",
		Reason:     "Family holiday in early July",
	}
}

func TestSubmitRequestPending(t *testing.T) {
	svc, requests, balances, notifier := newLifecycleService(t)

	created, err := svc.SubmitRequest(context.Background(), "comp-1", submission())
	require.NoError(t, err)

	assert.Equal(t, 5, created.DayCount)
	assert.Equal(t, string(leave.StatusPending), created.Status)
	assert.Len(t, requests.requests, 1)
	// Pending never debits.
	assert.Equal(t, 20, balances.balance.AnnualRemaining)
	assert.Contains(t, notifier.adminNotices, notification.TypeLeaveSubmitted)
}

func TestSubmitRequestDuplicateConflict(t *testing.T) {
	svc, requests, _, _ := newLifecycleService(t)

	_, err := svc.SubmitRequest(context.Background(), "comp-1", submission())
	require.NoError(t, err)

	_, err = svc.SubmitRequest(context.Background(), "comp-1", submission())
	assert.ErrorIs(t, err, leave.ErrDuplicateRequest)
	assert.Len(t, requests.requests, 1)
}

func TestSubmitRejectResubmit(t *testing.T) {
	svc, requests, balances, notifier := newLifecycleService(t)
	ctx := context.Background()

	created, err := svc.SubmitRequest(ctx, "comp-1", submission())
	require.NoError(t, err)

	err = svc.RejectRequest(ctx, "comp-1", created.ID)
	require.NoError(t, err)

	// Rejected requests are removed, so the same dates are free again.
	assert.Empty(t, requests.requests)
	assert.Equal(t, 20, balances.balance.AnnualRemaining)

	resubmitted, err := svc.SubmitRequest(ctx, "comp-1", submission())
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusPending), resubmitted.Status)
	assert.NotEqual(t, created.ID, resubmitted.ID)

	require.NotEmpty(t, notifier.notified)
	assert.Equal(t, notification.TypeLeaveRejected, notifier.notified[0].Type)
}

func TestSubmitRequestInsufficientBalance(t *testing.T) {
	svc, _, balances, _ := newLifecycleService(t)
	balances.balance.AnnualRemaining = 3

	_, err := svc.SubmitRequest(context.Background(), "comp-1", submission())
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestSubmitRequestWrongCompany(t *testing.T) {
	svc, _, _, _ := newLifecycleService(t)

	_, err := svc.SubmitRequest(context.Background(), "other-company", submission())
	assert.ErrorIs(t, err, leave.ErrUnauthorizedAccess)
}

func TestRejectAlreadyProcessed(t *testing.T) {
	svc, requests, _, _ := newLifecycleService(t)
	ctx := context.Background()

	created, err := svc.SubmitRequest(ctx, "comp-1", submission())
	require.NoError(t, err)

	approver := "admin-1"
	now := time.Now()
	processed := requests.requests[created.ID]
	processed.Status = leave.StatusApproved
	processed.ApprovedBy = &approver
	processed.ApprovedAt = &now
	requests.requests[created.ID] = processed

	err = svc.RejectRequest(ctx, "comp-1", created.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}
