package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/complyhr/complyhr-backend-go/internal/domain/leave"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
	leaveservice "github.com/complyhr/complyhr-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	UpdateAllowance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leaveservice.Service
}

func NewLeaveHandler(leaveService leaveservice.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Submit implements LeaveHandler. Employees submit for themselves; admins
// may submit for anyone in the company.
func (l *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var submitReq leave.SubmitRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("SubmitLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Admin routes carry the target employee in the path; employees always
	// submit for themselves.
	submitReq.EmployeeID = chi.URLParam(r, "employeeID")
	if submitReq.EmployeeID == "" {
		submitReq.EmployeeID = middleware.EmployeeID(r.Context())
	}
	if middleware.Role(r.Context()) == user.RoleAdmin {
		submitReq.SaveApproved = r.URL.Query().Get("approved") == "true"
	}

	created, err := l.leaveService.SubmitRequest(r.Context(), middleware.CompanyID(r.Context()), submitReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	err := l.leaveService.ApproveRequest(r.Context(),
		middleware.CompanyID(r.Context()), middleware.UserID(r.Context()), chi.URLParam(r, "requestID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", nil)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	err := l.leaveService.RejectRequest(r.Context(), middleware.CompanyID(r.Context()), chi.URLParam(r, "requestID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", nil)
}

// Delete implements LeaveHandler. Only approved requests can be deleted;
// the balance is credited back.
func (l *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := l.leaveService.DeleteRequest(r.Context(), middleware.CompanyID(r.Context()), chi.URLParam(r, "requestID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}

// Get implements LeaveHandler.
func (l *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := l.leaveService.GetRequest(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	filter := leave.RequestFilter{
		Page:   page,
		Limit:  limit,
		Status: query.Get("status"),
		Type:   query.Get("type"),
	}

	list, err := l.leaveService.ListRequests(r.Context(), middleware.CompanyID(r.Context()), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// ListMine implements LeaveHandler.
func (l *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Success(w, []leave.LeaveRequestResponse{})
		return
	}

	requests, err := l.leaveService.ListMyRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := l.leaveService.GetBalance(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// GetMyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.HandleError(w, leave.ErrBalanceNotFound)
		return
	}

	balance, err := l.leaveService.GetBalance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// UpdateAllowance implements LeaveHandler. Admin override of a single
// employee's remaining balance, bounded by the company allowances.
func (l *LeaveHandlerImpl) UpdateAllowance(w http.ResponseWriter, r *http.Request) {
	var allowanceReq leave.UpdateAllowanceRequest

	if err := json.NewDecoder(r.Body).Decode(&allowanceReq); err != nil {
		slog.Error("UpdateAllowance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	allowanceReq.EmployeeID = chi.URLParam(r, "employeeID")

	err := l.leaveService.UpdateAllowance(r.Context(), middleware.CompanyID(r.Context()), allowanceReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave allowance updated", nil)
}
