package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/complyhr/complyhr-backend-go/internal/domain/company"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
	companyservice "github.com/complyhr/complyhr-backend-go/internal/service/company"
)

type CompanyHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UploadLogo(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService companyservice.Service
}

func NewCompanyHandler(companyService companyservice.Service) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Get implements CompanyHandler.
func (c *CompanyHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := c.companyService.GetCompany(r.Context(), middleware.CompanyID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements CompanyHandler.
func (c *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq company.UpdateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateCompany decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = middleware.CompanyID(r.Context())

	updated, err := c.companyService.UpdateCompany(r.Context(), updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// UploadLogo implements CompanyHandler.
func (c *CompanyHandlerImpl) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		response.BadRequest(w, "Missing logo file", nil)
		return
	}
	defer file.Close()

	updated, err := c.companyService.UploadLogo(r.Context(),
		middleware.CompanyID(r.Context()), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}
