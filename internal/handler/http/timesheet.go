package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/complyhr/complyhr-backend-go/internal/domain/timesheet"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
	timesheetservice "github.com/complyhr/complyhr-backend-go/internal/service/timesheet"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	AddEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	GetLog(w http.ResponseWriter, r *http.Request)
	GetMyLog(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheetservice.Service
}

func NewTimesheetHandler(timesheetService timesheetservice.Service) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

// AddEntry implements TimesheetHandler.
func (t *TimesheetHandlerImpl) AddEntry(w http.ResponseWriter, r *http.Request) {
	var addReq timesheet.AddEntryRequest

	if err := json.NewDecoder(r.Body).Decode(&addReq); err != nil {
		slog.Error("AddEntry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	addReq.EmployeeID = chi.URLParam(r, "employeeID")
	if addReq.EmployeeID == "" {
		addReq.EmployeeID = middleware.EmployeeID(r.Context())
	}

	created, err := t.timesheetService.AddEntry(r.Context(), middleware.CompanyID(r.Context()), addReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet entry added", created)
}

// DeleteEntry implements TimesheetHandler.
func (t *TimesheetHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		employeeID = middleware.EmployeeID(r.Context())
	}

	err := t.timesheetService.DeleteEntry(r.Context(), middleware.CompanyID(r.Context()), employeeID, chi.URLParam(r, "date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet entry removed", nil)
}

// GetLog implements TimesheetHandler.
func (t *TimesheetHandlerImpl) GetLog(w http.ResponseWriter, r *http.Request) {
	t.respondLog(w, r, chi.URLParam(r, "employeeID"))
}

// GetMyLog implements TimesheetHandler.
func (t *TimesheetHandlerImpl) GetMyLog(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.HandleError(w, timesheet.ErrEntryNotFound)
		return
	}
	t.respondLog(w, r, employeeID)
}

func (t *TimesheetHandlerImpl) respondLog(w http.ResponseWriter, r *http.Request, employeeID string) {
	window, _ := strconv.Atoi(r.URL.Query().Get("window"))

	log, err := t.timesheetService.GetLog(r.Context(), middleware.CompanyID(r.Context()), employeeID, window)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, log)
}
