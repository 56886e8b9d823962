package timesheet

import "errors"

var (
	ErrEntryNotFound      = errors.New("timesheet entry not found")
	ErrDuplicateDate      = errors.New("an entry for this date already exists")
	ErrUnauthorizedAccess = errors.New("you are not allowed to access this timesheet")
)
