package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payslip struct {
	ID         string
	CompanyID  string
	EmployeeID string

	// Period the payslip covers, e.g. "2024-06". Unique per employee.
	Period string

	GrossPay decimal.Decimal
	NetPay   decimal.Decimal

	// DocumentPath points into the file storage; the handler resolves it to
	// a download URL.
	DocumentPath string

	UploadedBy string
	CreatedAt  time.Time
}
