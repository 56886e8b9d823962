package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
	employeeservice "github.com/complyhr/complyhr-backend-go/internal/service/employee"
	"github.com/go-chi/chi/v5"
)

// maxUploadSize bounds multipart uploads (profile pictures, documents).
const maxUploadSize = 10 << 20

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateDetailGroup(w http.ResponseWriter, r *http.Request)
	AddBankAccount(w http.ResponseWriter, r *http.Request)
	DeleteBankAccount(w http.ResponseWriter, r *http.Request)
	UploadProfilePicture(w http.ResponseWriter, r *http.Request)
	DeleteProfilePicture(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employeeservice.Service
}

func NewEmployeeHandler(employeeService employeeservice.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := e.employeeService.CreateEmployee(r.Context(), middleware.CompanyID(r.Context()), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", created)
}

// Get implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := e.employeeService.GetEmployee(r.Context(), middleware.CompanyID(r.Context()), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetMe implements EmployeeHandler. Resolves the caller's own profile.
func (e *EmployeeHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	found, err := e.employeeService.GetEmployee(r.Context(), middleware.CompanyID(r.Context()), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements EmployeeHandler.
func (e *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := employee.ListFilter{
		Page:     page,
		Limit:    limit,
		Search:   query.Get("search"),
		Position: query.Get("position"),
	}

	list, err := e.employeeService.ListEmployees(r.Context(), middleware.CompanyID(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Employees, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Update implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "employeeID")

	updated, err := e.employeeService.UpdateEmployee(r.Context(), middleware.CompanyID(r.Context()), updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// UpdateDetailGroup implements EmployeeHandler.
func (e *EmployeeHandlerImpl) UpdateDetailGroup(w http.ResponseWriter, r *http.Request) {
	var detailReq employee.UpdateDetailGroupRequest

	if err := json.NewDecoder(r.Body).Decode(&detailReq); err != nil {
		slog.Error("UpdateDetailGroup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	detailReq.EmployeeID = chi.URLParam(r, "employeeID")
	detailReq.Group = chi.URLParam(r, "group")

	updated, err := e.employeeService.UpdateDetailGroup(r.Context(), middleware.CompanyID(r.Context()), detailReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// AddBankAccount implements EmployeeHandler.
func (e *EmployeeHandlerImpl) AddBankAccount(w http.ResponseWriter, r *http.Request) {
	var accountReq employee.AddBankAccountRequest

	if err := json.NewDecoder(r.Body).Decode(&accountReq); err != nil {
		slog.Error("AddBankAccount decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	accountReq.EmployeeID = chi.URLParam(r, "employeeID")

	updated, err := e.employeeService.AddBankAccount(r.Context(), middleware.CompanyID(r.Context()), accountReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bank account added", updated)
}

// DeleteBankAccount implements EmployeeHandler.
func (e *EmployeeHandlerImpl) DeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	err := e.employeeService.DeleteBankAccount(r.Context(),
		middleware.CompanyID(r.Context()), chi.URLParam(r, "employeeID"), chi.URLParam(r, "accountID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bank account removed", nil)
}

// UploadProfilePicture implements EmployeeHandler.
func (e *EmployeeHandlerImpl) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("picture")
	if err != nil {
		response.BadRequest(w, "Missing picture file", nil)
		return
	}
	defer file.Close()

	updated, err := e.employeeService.UploadProfilePicture(r.Context(),
		middleware.CompanyID(r.Context()), chi.URLParam(r, "employeeID"),
		file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// DeleteProfilePicture implements EmployeeHandler.
func (e *EmployeeHandlerImpl) DeleteProfilePicture(w http.ResponseWriter, r *http.Request) {
	err := e.employeeService.DeleteProfilePicture(r.Context(), middleware.CompanyID(r.Context()), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile picture removed", nil)
}

// Delete implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := e.employeeService.DeleteEmployee(r.Context(), middleware.CompanyID(r.Context()), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}
