package records

import (
	"context"
	"testing"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/announcement"
	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/complyhr/complyhr-backend-go/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskRepo struct {
	task.TaskRepository
	exists  bool
	created *task.Task
	tasks   []task.Task
	deleted string
}

func (f *fakeTaskRepo) ExistsByTitle(ctx context.Context, employeeID, title string) (bool, error) {
	return f.exists, nil
}

func (f *fakeTaskRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	f.created = &t
	t.ID = "task-1"
	return t, nil
}

func (f *fakeTaskRepo) GetByCompanyID(ctx context.Context, companyID string) ([]task.Task, error) {
	return f.tasks, nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return nil
}

type fakeAnnouncementRepo struct {
	announcement.AnnouncementRepository
	created *announcement.Announcement
	swept   int64
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, a announcement.Announcement) (announcement.Announcement, error) {
	f.created = &a
	a.ID = "ann-1"
	return a, nil
}

func (f *fakeAnnouncementRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.swept, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
	listed    []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByCompanyID(ctx context.Context, companyID string, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return f.listed, int64(len(f.listed)), nil
}

type fakeNotifier struct {
	notification.Service
	notified []notification.CreateNotificationRequest
}

func (f *fakeNotifier) Notify(req notification.CreateNotificationRequest) {
	f.notified = append(f.notified, req)
}

func strPtr(s string) *string { return &s }

func TestCreateTaskNotifiesAssignee(t *testing.T) {
	userID := "user-1"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "comp-1", UserID: &userID},
	}}
	taskRepo := &fakeTaskRepo{}
	notifier := &fakeNotifier{}
	svc := NewRecordsService(taskRepo, &fakeAnnouncementRepo{}, employees, notifier)

	created, err := svc.CreateTask(context.Background(), "comp-1", "admin-1", task.CreateTaskRequest{
		EmployeeID: "emp-1",
		Title:      "Renew right-to-work check",
		DueDate:    strPtr("2026-09-15"),
	})
	require.NoError(t, err)

	assert.Equal(t, "task-1", created.ID)
	require.NotNil(t, taskRepo.created.DueDate)
	assert.Equal(t, 2026, taskRepo.created.DueDate.Year())

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, "user-1", notifier.notified[0].RecipientID)
	assert.Equal(t, notification.TypeTaskAssigned, notifier.notified[0].Type)
}

func TestCreateTaskDuplicateTitle(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "comp-1"},
	}}
	svc := NewRecordsService(&fakeTaskRepo{exists: true}, &fakeAnnouncementRepo{}, employees, &fakeNotifier{})

	_, err := svc.CreateTask(context.Background(), "comp-1", "admin-1", task.CreateTaskRequest{
		EmployeeID: "emp-1",
		Title:      "Renew right-to-work check",
	})
	assert.ErrorIs(t, err, task.ErrTaskExists)
}

func TestCreateTaskWrongCompany(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "other-company"},
	}}
	svc := NewRecordsService(&fakeTaskRepo{}, &fakeAnnouncementRepo{}, employees, &fakeNotifier{})

	_, err := svc.CreateTask(context.Background(), "comp-1", "admin-1", task.CreateTaskRequest{
		EmployeeID: "emp-1",
		Title:      "Renew right-to-work check",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteTaskOutsideCompany(t *testing.T) {
	taskRepo := &fakeTaskRepo{tasks: []task.Task{{ID: "task-1", CompanyID: "comp-1"}}}
	svc := NewRecordsService(taskRepo, &fakeAnnouncementRepo{}, &fakeEmployeeRepo{}, &fakeNotifier{})

	err := svc.DeleteTask(context.Background(), "comp-1", "task-from-elsewhere")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
	assert.Empty(t, taskRepo.deleted)

	err = svc.DeleteTask(context.Background(), "comp-1", "task-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", taskRepo.deleted)
}

func TestCreateAnnouncementFansOut(t *testing.T) {
	u1, u2 := "user-1", "user-2"
	employees := &fakeEmployeeRepo{listed: []employee.Employee{
		{ID: "emp-1", CompanyID: "comp-1", UserID: &u1},
		{ID: "emp-2", CompanyID: "comp-1", UserID: &u2},
		{ID: "emp-3", CompanyID: "comp-1"}, // no linked account
	}}
	annRepo := &fakeAnnouncementRepo{}
	notifier := &fakeNotifier{}
	svc := NewRecordsService(&fakeTaskRepo{}, annRepo, employees, notifier)

	created, err := svc.CreateAnnouncement(context.Background(), "comp-1", "admin-1", announcement.CreateAnnouncementRequest{
		Title:   "Office closed",
		Message: "Bank holiday on Monday",
		Expires: strPtr("2026-09-01T00:00:00Z"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ann-1", created.ID)
	require.NotNil(t, annRepo.created.DeleteTime)
	assert.Len(t, notifier.notified, 2)
}

func TestCreateAnnouncementWithoutExpiry(t *testing.T) {
	annRepo := &fakeAnnouncementRepo{}
	svc := NewRecordsService(&fakeTaskRepo{}, annRepo, &fakeEmployeeRepo{}, &fakeNotifier{})

	_, err := svc.CreateAnnouncement(context.Background(), "comp-1", "admin-1", announcement.CreateAnnouncementRequest{
		Title:   "Welcome",
		Message: "New starters this week",
	})
	require.NoError(t, err)
	assert.Nil(t, annRepo.created.DeleteTime)
}

func TestSweepExpired(t *testing.T) {
	svc := NewRecordsService(&fakeTaskRepo{}, &fakeAnnouncementRepo{swept: 3}, &fakeEmployeeRepo{}, &fakeNotifier{})

	n, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
