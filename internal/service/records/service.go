package records

import (
	"context"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/announcement"
	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/complyhr/complyhr-backend-go/internal/domain/task"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
)

// Service manages tasks and company announcements.
type Service interface {
	CreateTask(ctx context.Context, companyID, assignedBy string, req task.CreateTaskRequest) (task.Task, error)
	ListTasks(ctx context.Context, companyID string) ([]task.Task, error)
	ListEmployeeTasks(ctx context.Context, companyID, employeeID string) ([]task.Task, error)
	DeleteTask(ctx context.Context, companyID, taskID string) error

	CreateAnnouncement(ctx context.Context, companyID, author string, req announcement.CreateAnnouncementRequest) (announcement.Announcement, error)
	ListAnnouncements(ctx context.Context, companyID string) ([]announcement.Announcement, error)
	DeleteAnnouncement(ctx context.Context, companyID, announcementID string) error
	SweepExpired(ctx context.Context) (int64, error)
}

type RecordsServiceImpl struct {
	task.TaskRepository
	announcement.AnnouncementRepository
	employee.EmployeeRepository
	notifier notification.Service
}

func NewRecordsService(
	taskRepo task.TaskRepository,
	announcementRepo announcement.AnnouncementRepository,
	employeeRepo employee.EmployeeRepository,
	notifier notification.Service,
) Service {
	return &RecordsServiceImpl{
		TaskRepository:         taskRepo,
		AnnouncementRepository: announcementRepo,
		EmployeeRepository:     employeeRepo,
		notifier:               notifier,
	}
}

// CreateTask implements Service. Task titles are unique per employee.
func (r *RecordsServiceImpl) CreateTask(ctx context.Context, companyID, assignedBy string, req task.CreateTaskRequest) (task.Task, error) {
	if err := req.Validate(); err != nil {
		return task.Task{}, err
	}

	emp, err := r.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return task.Task{}, err
	}
	if emp.CompanyID != companyID {
		return task.Task{}, employee.ErrEmployeeNotFound
	}

	exists, err := r.TaskRepository.ExistsByTitle(ctx, req.EmployeeID, req.Title)
	if err != nil {
		return task.Task{}, err
	}
	if exists {
		return task.Task{}, task.ErrTaskExists
	}

	t := task.Task{
		CompanyID:   companyID,
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		Description: req.Description,
		AssignedBy:  assignedBy,
	}
	if req.DueDate != nil {
		due, _ := validator.IsValidDate(*req.DueDate)
		t.DueDate = &due
	}

	created, err := r.TaskRepository.Create(ctx, t)
	if err != nil {
		return task.Task{}, err
	}

	if emp.UserID != nil {
		r.notifier.Notify(notification.CreateNotificationRequest{
			CompanyID:   companyID,
			RecipientID: *emp.UserID,
			SenderID:    &assignedBy,
			Type:        notification.TypeTaskAssigned,
			Title:       "New task assigned",
			Message:     created.Title,
			Data:        map[string]string{"task_id": created.ID},
		})
	}

	return created, nil
}

// ListTasks implements Service.
func (r *RecordsServiceImpl) ListTasks(ctx context.Context, companyID string) ([]task.Task, error) {
	return r.TaskRepository.GetByCompanyID(ctx, companyID)
}

// ListEmployeeTasks implements Service.
func (r *RecordsServiceImpl) ListEmployeeTasks(ctx context.Context, companyID, employeeID string) ([]task.Task, error) {
	emp, err := r.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp.CompanyID != companyID {
		return nil, employee.ErrEmployeeNotFound
	}

	return r.TaskRepository.GetByEmployeeID(ctx, employeeID)
}

// DeleteTask implements Service.
func (r *RecordsServiceImpl) DeleteTask(ctx context.Context, companyID, taskID string) error {
	tasks, err := r.TaskRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.ID == taskID {
			return r.TaskRepository.Delete(ctx, taskID)
		}
	}
	return task.ErrTaskNotFound
}

// CreateAnnouncement implements Service. Announcements fan out to every
// employee with a linked user account.
func (r *RecordsServiceImpl) CreateAnnouncement(ctx context.Context, companyID, author string, req announcement.CreateAnnouncementRequest) (announcement.Announcement, error) {
	if err := req.Validate(); err != nil {
		return announcement.Announcement{}, err
	}

	a := announcement.Announcement{
		CompanyID: companyID,
		Title:     req.Title,
		Message:   req.Message,
		Author:    author,
	}
	if req.Expires != nil {
		expires, _ := validator.IsValidDateTime(*req.Expires)
		a.DeleteTime = &expires
	}

	created, err := r.AnnouncementRepository.Create(ctx, a)
	if err != nil {
		return announcement.Announcement{}, err
	}

	r.fanOut(ctx, created)

	return created, nil
}

// ListAnnouncements implements Service.
func (r *RecordsServiceImpl) ListAnnouncements(ctx context.Context, companyID string) ([]announcement.Announcement, error) {
	return r.AnnouncementRepository.GetByCompanyID(ctx, companyID)
}

// DeleteAnnouncement implements Service.
func (r *RecordsServiceImpl) DeleteAnnouncement(ctx context.Context, companyID, announcementID string) error {
	announcements, err := r.AnnouncementRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return err
	}
	for _, a := range announcements {
		if a.ID == announcementID {
			return r.AnnouncementRepository.Delete(ctx, announcementID)
		}
	}
	return announcement.ErrAnnouncementNotFound
}

// SweepExpired implements Service. Invoked by the scheduler; announcements
// past their delete time are removed, not archived.
func (r *RecordsServiceImpl) SweepExpired(ctx context.Context) (int64, error) {
	return r.AnnouncementRepository.DeleteExpired(ctx, time.Now())
}

func (r *RecordsServiceImpl) fanOut(ctx context.Context, a announcement.Announcement) {
	for page := 1; ; page++ {
		employees, total, err := r.EmployeeRepository.GetByCompanyID(ctx, a.CompanyID, employee.ListFilter{Page: page, Limit: 100})
		if err != nil {
			return
		}

		for _, emp := range employees {
			if emp.UserID == nil {
				continue
			}
			r.notifier.Notify(notification.CreateNotificationRequest{
				CompanyID:   a.CompanyID,
				RecipientID: *emp.UserID,
				Type:        notification.TypeAnnouncement,
				Title:       a.Title,
				Message:     a.Message,
				Data:        map[string]string{"announcement_id": a.ID},
			})
		}

		if int64(page*100) >= total || len(employees) == 0 {
			return
		}
	}
}
