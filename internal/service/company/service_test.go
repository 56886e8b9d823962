package company

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/company"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompanyRepo struct {
	company.CompanyRepository
	companies map[string]company.Company
	updated   *company.UpdateCompanyRequest
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (f *fakeCompanyRepo) Update(ctx context.Context, req company.UpdateCompanyRequest) error {
	if _, ok := f.companies[req.ID]; !ok {
		return company.ErrCompanyNotFound
	}
	f.updated = &req
	return nil
}

type fakeStorage struct {
	uploadedPath string
	content      []byte
}

func (f *fakeStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	f.uploadedPath = path
	f.content, _ = io.ReadAll(file)
	return path, nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "https://files.example.com/" + path, nil
}

func intPtr(i int) *int { return &i }

func TestUpdateCompany(t *testing.T) {
	repo := &fakeCompanyRepo{companies: map[string]company.Company{
		"comp-1": {ID: "comp-1", Name: "Acme"},
	}}
	svc := NewCompanyService(repo, &fakeStorage{})

	_, err := svc.UpdateCompany(context.Background(), company.UpdateCompanyRequest{
		ID:                  "comp-1",
		AnnualLeavesAllowed: intPtr(28),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updated)
	assert.Equal(t, 28, *repo.updated.AnnualLeavesAllowed)
}

func TestUpdateCompanyRejectsNegativeAllowance(t *testing.T) {
	repo := &fakeCompanyRepo{companies: map[string]company.Company{
		"comp-1": {ID: "comp-1"},
	}}
	svc := NewCompanyService(repo, &fakeStorage{})

	_, err := svc.UpdateCompany(context.Background(), company.UpdateCompanyRequest{
		ID:                "comp-1",
		SickLeavesAllowed: intPtr(-1),
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Nil(t, repo.updated)
}

func TestUploadLogo(t *testing.T) {
	repo := &fakeCompanyRepo{companies: map[string]company.Company{
		"comp-1": {ID: "comp-1"},
	}}
	store := &fakeStorage{}
	svc := NewCompanyService(repo, store)

	_, err := svc.UploadLogo(context.Background(), "comp-1", bytes.NewReader([]byte("png-bytes")), "logo.PNG", "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(store.uploadedPath, "logos/comp-1/"))
	assert.True(t, strings.HasSuffix(store.uploadedPath, ".png"))
	require.NotNil(t, repo.updated)
	require.NotNil(t, repo.updated.LogoURL)
	assert.Contains(t, *repo.updated.LogoURL, store.uploadedPath)
}

func TestUploadLogoUnknownCompany(t *testing.T) {
	svc := NewCompanyService(&fakeCompanyRepo{companies: map[string]company.Company{}}, &fakeStorage{})

	_, err := svc.UploadLogo(context.Background(), "missing", bytes.NewReader(nil), "logo.png", "image/png")
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
}
