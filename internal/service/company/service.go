package company

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/company"
	"github.com/google/uuid"
)

// Service manages the tenant record and its leave allowances.
type Service interface {
	GetCompany(ctx context.Context, companyID string) (company.Company, error)
	UpdateCompany(ctx context.Context, req company.UpdateCompanyRequest) (company.Company, error)
	UploadLogo(ctx context.Context, companyID string, file io.Reader, filename, contentType string) (company.Company, error)
}

type fileStore interface {
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type CompanyServiceImpl struct {
	company.CompanyRepository
	storage fileStore
}

func NewCompanyService(companyRepo company.CompanyRepository, storage fileStore) Service {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepo,
		storage:           storage,
	}
}

// GetCompany implements Service.
func (c *CompanyServiceImpl) GetCompany(ctx context.Context, companyID string) (company.Company, error) {
	return c.CompanyRepository.GetByID(ctx, companyID)
}

// UpdateCompany implements Service. Lowering an allowance does not touch
// existing balances; they converge at the next entitlement rollover.
func (c *CompanyServiceImpl) UpdateCompany(ctx context.Context, req company.UpdateCompanyRequest) (company.Company, error) {
	if err := req.Validate(); err != nil {
		return company.Company{}, err
	}

	if err := c.CompanyRepository.Update(ctx, req); err != nil {
		return company.Company{}, err
	}

	return c.CompanyRepository.GetByID(ctx, req.ID)
}

// UploadLogo implements Service.
func (c *CompanyServiceImpl) UploadLogo(ctx context.Context, companyID string, file io.Reader, filename, contentType string) (company.Company, error) {
	if _, err := c.CompanyRepository.GetByID(ctx, companyID); err != nil {
		return company.Company{}, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	path := fmt.Sprintf("logos/%s/%s%s", companyID, uuid.New().String(), ext)

	storedPath, err := c.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to store logo: %w", err)
	}

	url, err := c.storage.GetURL(ctx, storedPath, 0)
	if err != nil {
		return company.Company{}, err
	}

	if err := c.CompanyRepository.Update(ctx, company.UpdateCompanyRequest{ID: companyID, LogoURL: &url}); err != nil {
		return company.Company{}, err
	}

	return c.CompanyRepository.GetByID(ctx, companyID)
}
