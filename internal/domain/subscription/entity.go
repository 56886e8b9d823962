package subscription

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus represents the status of a subscription
type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusPastDue   SubscriptionStatus = "past_due"
	StatusCancelled SubscriptionStatus = "cancelled"
	StatusExpired   SubscriptionStatus = "expired"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusExpired InvoiceStatus = "expired"
	InvoiceStatusFailed  InvoiceStatus = "failed"
)

// Plan represents a subscription plan
type Plan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PricePerSeat decimal.Decimal `json:"price_per_seat"`
	MaxSeats     *int            `json:"max_seats,omitempty"` // nil = unlimited
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Subscription represents a company's membership
type Subscription struct {
	ID                 string             `json:"id"`
	CompanyID          string             `json:"company_id"`
	PlanID             string             `json:"plan_id"`
	Status             SubscriptionStatus `json:"status"`
	MaxSeats           int                `json:"max_seats"`
	CurrentPeriodStart time.Time          `json:"current_period_start"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	TrialEndsAt        *time.Time         `json:"trial_ends_at,omitempty"`
	AutoRenew          bool               `json:"auto_renew"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Joined data
	Plan *Plan `json:"plan,omitempty"`
}

// Invoice represents a payment invoice for a subscription period
type Invoice struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	SubscriptionID   string          `json:"subscription_id"`
	PlanID           string          `json:"plan_id"`
	Seats            int             `json:"seats"`
	GatewayInvoiceID *string         `json:"gateway_invoice_id,omitempty"`
	GatewayURL       *string         `json:"gateway_url,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Status           InvoiceStatus   `json:"status"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// IsUsable reports whether the status still grants access. Cancelled is
// allowed because the period-end check enforces the cutoff.
func (s SubscriptionStatus) IsUsable() bool {
	switch s {
	case StatusActive, StatusTrial, StatusPastDue, StatusCancelled:
		return true
	default:
		return false
	}
}
