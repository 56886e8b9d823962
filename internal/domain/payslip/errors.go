package payslip

import "errors"

var (
	ErrPayslipNotFound    = errors.New("payslip not found")
	ErrPayslipExists      = errors.New("a payslip for this period already exists")
	ErrDocumentRequired   = errors.New("payslip document is required")
	ErrUnauthorizedAccess = errors.New("you are not allowed to access this payslip")
)
