package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrDuplicateRequest     = errors.New("an identical leave request already exists")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrAlreadyProcessed     = errors.New("leave request already processed")
	ErrNotApproved          = errors.New("only approved leave requests can be deleted")
	ErrUnauthorizedAccess   = errors.New("you are not allowed to access this leave request")
)
