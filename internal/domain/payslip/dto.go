package payslip

import (
	"mime/multipart"
	"regexp"

	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var periodRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type UploadPayslipRequest struct {
	EmployeeID string          `json:"employee_id"`
	Period     string          `json:"period"`
	GrossPay   decimal.Decimal `json:"gross_pay"`
	NetPay     decimal.Decimal `json:"net_pay"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadPayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !periodRegex.MatchString(r.Period) {
		errs = append(errs, validator.ValidationError{
			Field:   "period",
			Message: "period must be in YYYY-MM format",
		})
	}

	if r.GrossPay.IsNegative() || r.NetPay.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "pay",
			Message: "pay amounts must not be negative",
		})
	}

	if r.NetPay.GreaterThan(r.GrossPay) {
		errs = append(errs, validator.ValidationError{
			Field:   "net_pay",
			Message: "net_pay must not exceed gross_pay",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
