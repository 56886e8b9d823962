package company

import "context"

// CompanyRepository - interface for companies table
type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	GetByUsername(ctx context.Context, username string) (Company, error)
	Update(ctx context.Context, req UpdateCompanyRequest) error
	Delete(ctx context.Context, id string) error
}
