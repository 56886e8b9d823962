package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/complyhr/complyhr-backend-go/internal/domain/payslip"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
	payslipservice "github.com/complyhr/complyhr-backend-go/internal/service/payslip"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type PayslipHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type PayslipHandlerImpl struct {
	payslipService payslipservice.Service
}

func NewPayslipHandler(payslipService payslipservice.Service) PayslipHandler {
	return &PayslipHandlerImpl{payslipService: payslipService}
}

// Upload implements PayslipHandler. Multipart form: document file plus the
// period and pay amounts.
func (p *PayslipHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	grossPay, err := decimal.NewFromString(r.FormValue("gross_pay"))
	if err != nil {
		response.BadRequest(w, "gross_pay must be a decimal number", nil)
		return
	}
	netPay, err := decimal.NewFromString(r.FormValue("net_pay"))
	if err != nil {
		response.BadRequest(w, "net_pay must be a decimal number", nil)
		return
	}

	uploadReq := payslip.UploadPayslipRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Period:     r.FormValue("period"),
		GrossPay:   grossPay,
		NetPay:     netPay,
	}

	file, header, err := r.FormFile("document")
	if err == nil {
		defer file.Close()
		uploadReq.File = file
		uploadReq.FileHeader = header
	}

	created, err := p.payslipService.Upload(r.Context(),
		middleware.CompanyID(r.Context()), middleware.UserID(r.Context()), uploadReq)
	if err != nil {
		slog.Error("UploadPayslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payslip uploaded", created)
}

// ListByEmployee implements PayslipHandler.
func (p *PayslipHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	payslips, err := p.payslipService.ListByEmployee(r.Context(),
		middleware.CompanyID(r.Context()), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// ListMine implements PayslipHandler.
func (p *PayslipHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID := middleware.EmployeeID(r.Context())
	if employeeID == "" {
		response.Success(w, []payslip.Payslip{})
		return
	}

	payslips, err := p.payslipService.ListByEmployee(r.Context(), middleware.CompanyID(r.Context()), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslips)
}

// Download implements PayslipHandler. Streams the stored document.
func (p *PayslipHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	reader, period, err := p.payslipService.Download(r.Context(),
		middleware.CompanyID(r.Context()), chi.URLParam(r, "payslipID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, period))

	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("Payslip download stream error", "error", err)
	}
}

// Delete implements PayslipHandler.
func (p *PayslipHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	err := p.payslipService.Delete(r.Context(), middleware.CompanyID(r.Context()), chi.URLParam(r, "payslipID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip deleted", nil)
}
