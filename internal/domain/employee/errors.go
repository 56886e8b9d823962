package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmailExists            = errors.New("email already registered in this company")
	ErrBankAccountExists      = errors.New("bank account number already registered")
	ErrBankAccountNotFound    = errors.New("bank account not found")
	ErrStartDateImmutable     = errors.New("start date cannot be changed for administrators")
	ErrUnknownDetailGroup     = errors.New("unknown detail group")
	ErrNotSponsored           = errors.New("employee is not sponsored")
	ErrUnauthorizedAccess     = errors.New("you are not allowed to access this employee")
	ErrProfilePictureNotFound = errors.New("profile picture not found")
)
