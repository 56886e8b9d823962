package subscription

import (
	"context"
	"time"
)

// Repository - interface for subscriptions, plans and invoices tables
type Repository interface {
	CreateSubscription(ctx context.Context, s Subscription) (Subscription, error)
	GetByCompanyID(ctx context.Context, companyID string) (Subscription, error)
	UpdateStatus(ctx context.Context, id string, status SubscriptionStatus) error
	// Renew activates the subscription on the given plan and period and
	// clears any trial marker.
	Renew(ctx context.Context, id, planID string, maxSeats int, periodStart, periodEnd time.Time) error
	// ExpireOverdue flips active/trial subscriptions whose period ended
	// before now to expired. Returns affected company IDs.
	ExpireOverdue(ctx context.Context, now time.Time) ([]string, error)

	GetPlan(ctx context.Context, planID string) (Plan, error)
	ListPlans(ctx context.Context) ([]Plan, error)

	CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error)
	// SetInvoiceGateway records the payment gateway's invoice ID and URL
	// once the gateway side exists.
	SetInvoiceGateway(ctx context.Context, id, gatewayID, gatewayURL string) error
	GetInvoiceByGatewayID(ctx context.Context, gatewayID string) (Invoice, error)
	MarkInvoicePaid(ctx context.Context, id string, paidAt time.Time) error
}
