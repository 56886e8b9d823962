package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/complyhr/complyhr-backend-go/internal/domain/announcement"
	"github.com/complyhr/complyhr-backend-go/internal/domain/auth"
	"github.com/complyhr/complyhr-backend-go/internal/domain/company"
	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/leave"
	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/complyhr/complyhr-backend-go/internal/domain/payslip"
	"github.com/complyhr/complyhr-backend-go/internal/domain/subscription"
	"github.com/complyhr/complyhr-backend-go/internal/domain/task"
	"github.com/complyhr/complyhr-backend-go/internal/domain/timesheet"
	"github.com/complyhr/complyhr-backend-go/internal/domain/user"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrCompanyNotFound), errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, company.ErrUsernameExists):
		Conflict(w, "Company username already taken")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, employee.ErrBankAccountExists):
		Conflict(w, "Bank account number already registered")
	case errors.Is(err, employee.ErrBankAccountNotFound):
		NotFound(w, "Bank account not found")
	case errors.Is(err, employee.ErrStartDateImmutable):
		BadRequest(w, "Start date cannot be changed for administrators", nil)
	case errors.Is(err, employee.ErrUnknownDetailGroup):
		BadRequest(w, "Unknown detail group", nil)
	case errors.Is(err, employee.ErrNotSponsored):
		BadRequest(w, "Employee is not sponsored", nil)
	case errors.Is(err, employee.ErrProfilePictureNotFound):
		NotFound(w, "Profile picture not found")
	case errors.Is(err, employee.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrDuplicateRequest):
		Conflict(w, "An identical leave request already exists")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotApproved):
		BadRequest(w, "Only approved leave requests can be deleted", nil)
	case errors.Is(err, leave.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Timesheet entry not found")
	case errors.Is(err, timesheet.ErrDuplicateDate):
		Conflict(w, "An entry for this date already exists")
	case errors.Is(err, timesheet.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Task and announcement domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrTaskExists):
		Conflict(w, "A task with this title already exists for the employee")
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrPayslipExists):
		Conflict(w, "A payslip for this period already exists")
	case errors.Is(err, payslip.ErrDocumentRequired):
		BadRequest(w, "Payslip document is required", nil)
	case errors.Is(err, payslip.ErrUnauthorizedAccess):
		Forbidden(w, err.Error())

	// Subscription domain errors
	case errors.Is(err, subscription.ErrSubscriptionNotFound):
		NotFound(w, "Subscription not found")
	case errors.Is(err, subscription.ErrSubscriptionExpired):
		PaymentRequired(w, "Subscription expired")
	case errors.Is(err, subscription.ErrSeatLimitExceeded):
		PaymentRequired(w, "Subscription seat limit reached")
	case errors.Is(err, subscription.ErrPlanNotFound):
		NotFound(w, "Plan not found")
	case errors.Is(err, subscription.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
