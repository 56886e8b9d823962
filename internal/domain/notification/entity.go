package notification

import "time"

type Notification struct {
	ID          string            `json:"id"`
	CompanyID   string            `json:"company_id"`
	RecipientID string            `json:"recipient_id"`
	SenderID    *string           `json:"sender_id,omitempty"`
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Data        map[string]string `json:"data,omitempty"`
	IsRead      bool              `json:"is_read"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Notification types pushed by the domain services.
const (
	TypeLeaveSubmitted  = "leave_submitted"
	TypeLeaveApproved   = "leave_approved"
	TypeLeaveRejected   = "leave_rejected"
	TypeTaskAssigned    = "task_assigned"
	TypePayslipReady    = "payslip_ready"
	TypeAnnouncement    = "announcement"
	TypeSubscriptionDue = "subscription_due"
)
