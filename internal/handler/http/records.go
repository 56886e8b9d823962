package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/complyhr/complyhr-backend-go/internal/domain/announcement"
	"github.com/complyhr/complyhr-backend-go/internal/domain/task"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
	recordsservice "github.com/complyhr/complyhr-backend-go/internal/service/records"
	"github.com/go-chi/chi/v5"
)

type RecordsHandler interface {
	CreateTask(w http.ResponseWriter, r *http.Request)
	ListTasks(w http.ResponseWriter, r *http.Request)
	ListMyTasks(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)

	CreateAnnouncement(w http.ResponseWriter, r *http.Request)
	ListAnnouncements(w http.ResponseWriter, r *http.Request)
	DeleteAnnouncement(w http.ResponseWriter, r *http.Request)
}

type RecordsHandlerImpl struct {
	recordsService recordsservice.Service
}

func NewRecordsHandler(recordsService recordsservice.Service) RecordsHandler {
	return &RecordsHandlerImpl{recordsService: recordsService}
}

// CreateTask implements RecordsHandler.
func (h *RecordsHandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	var createReq task.CreateTaskRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.recordsService.CreateTask(r.Context(),
		middleware.CompanyID(r.Context()), middleware.UserID(r.Context()), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created", created)
}

// ListTasks implements RecordsHandler.
func (h *RecordsHandlerImpl) ListTasks(w http.ResponseWriter, r *http.Request) {
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		tasks, err := h.recordsService.ListEmployeeTasks(r.Context(), middleware.CompanyID(r.Context()), employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.Success(w, tasks)
		return
	}

	tasks, err := h.recordsService.ListTasks(r.Context(), middleware.CompanyID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// ListMyTasks implements RecordsHandler.
func (h *RecordsHandlerImpl) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Success(w, []task.Task{})
		return
	}

	tasks, err := h.recordsService.ListEmployeeTasks(r.Context(), middleware.CompanyID(r.Context()), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tasks)
}

// DeleteTask implements RecordsHandler.
func (h *RecordsHandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	err := h.recordsService.DeleteTask(r.Context(), middleware.CompanyID(r.Context()), chi.URLParam(r, "taskID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted", nil)
}

// CreateAnnouncement implements RecordsHandler.
func (h *RecordsHandlerImpl) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var createReq announcement.CreateAnnouncementRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateAnnouncement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.recordsService.CreateAnnouncement(r.Context(),
		middleware.CompanyID(r.Context()), middleware.UserID(r.Context()), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Announcement published", created)
}

// ListAnnouncements implements RecordsHandler.
func (h *RecordsHandlerImpl) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.recordsService.ListAnnouncements(r.Context(), middleware.CompanyID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, announcements)
}

// DeleteAnnouncement implements RecordsHandler.
func (h *RecordsHandlerImpl) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	err := h.recordsService.DeleteAnnouncement(r.Context(), middleware.CompanyID(r.Context()), chi.URLParam(r, "announcementID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement deleted", nil)
}
