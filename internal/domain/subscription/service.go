package subscription

import "context"

// Service - membership and billing operations.
type Service interface {
	GetMySubscription(ctx context.Context, companyID string) (Subscription, error)
	// CanAddEmployee checks the seat limit before an employee is created.
	CanAddEmployee(ctx context.Context, companyID string) (bool, error)
	StartTrial(ctx context.Context, companyID string) (Subscription, error)
	ListPlans(ctx context.Context) ([]Plan, error)
	CreateInvoice(ctx context.Context, companyID, planID string, seats int) (Invoice, error)
	HandlePaymentCallback(ctx context.Context, gatewayInvoiceID, status string) error
	ExpireOverdue(ctx context.Context) error
}
