package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/complyhr/complyhr-backend-go/internal/domain/subscription"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/billing"
	"github.com/shopspring/decimal"
)

const (
	// TrialDays is the length of the free trial started at registration.
	TrialDays = 14
	// TrialSeats caps headcount during the trial.
	TrialSeats = 5
	// BillingPeriodDays is the length of a paid membership period.
	BillingPeriodDays = 30
	// invoiceDuration is how long a gateway invoice stays payable.
	invoiceDuration = 48 * time.Hour
)

// DefaultPlanID is the plan trials are attached to.
const DefaultPlanID = "starter"

type SubscriptionServiceImpl struct {
	subscription.Repository
	employee.EmployeeRepository
	billing  *billing.Client
	notifier notification.Service
}

func NewSubscriptionService(
	repo subscription.Repository,
	employeeRepo employee.EmployeeRepository,
	billingClient *billing.Client,
	notifier notification.Service,
) subscription.Service {
	return &SubscriptionServiceImpl{
		Repository:         repo,
		EmployeeRepository: employeeRepo,
		billing:            billingClient,
		notifier:           notifier,
	}
}

// GetMySubscription implements subscription.Service.
func (s *SubscriptionServiceImpl) GetMySubscription(ctx context.Context, companyID string) (subscription.Subscription, error) {
	return s.Repository.GetByCompanyID(ctx, companyID)
}

// CanAddEmployee implements subscription.Service. A company can add
// headcount only while its membership is usable, inside the current period
// and under the seat cap.
func (s *SubscriptionServiceImpl) CanAddEmployee(ctx context.Context, companyID string) (bool, error) {
	sub, err := s.Repository.GetByCompanyID(ctx, companyID)
	if err != nil {
		if err == subscription.ErrSubscriptionNotFound {
			return false, nil
		}
		return false, err
	}

	if !sub.Status.IsUsable() {
		return false, nil
	}
	if time.Now().After(sub.CurrentPeriodEnd) {
		return false, nil
	}

	count, err := s.EmployeeRepository.CountByCompanyID(ctx, companyID)
	if err != nil {
		return false, err
	}

	return count < int64(sub.MaxSeats), nil
}

// StartTrial implements subscription.Service.
func (s *SubscriptionServiceImpl) StartTrial(ctx context.Context, companyID string) (subscription.Subscription, error) {
	now := time.Now()
	trialEnd := now.AddDate(0, 0, TrialDays)

	return s.Repository.CreateSubscription(ctx, subscription.Subscription{
		CompanyID:          companyID,
		PlanID:             DefaultPlanID,
		Status:             subscription.StatusTrial,
		MaxSeats:           TrialSeats,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   trialEnd,
		TrialEndsAt:        &trialEnd,
		AutoRenew:          false,
	})
}

// CreateInvoice implements subscription.Service. Issues a gateway invoice
// for the requested plan and seat count.
func (s *SubscriptionServiceImpl) CreateInvoice(ctx context.Context, companyID, planID string, seats int) (subscription.Invoice, error) {
	sub, err := s.Repository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return subscription.Invoice{}, err
	}

	plan, err := s.Repository.GetPlan(ctx, planID)
	if err != nil {
		return subscription.Invoice{}, err
	}

	if seats < 1 {
		seats = 1
	}
	if plan.MaxSeats != nil && seats > *plan.MaxSeats {
		return subscription.Invoice{}, subscription.ErrSeatLimitExceeded
	}

	count, err := s.EmployeeRepository.CountByCompanyID(ctx, companyID)
	if err != nil {
		return subscription.Invoice{}, err
	}
	if count > int64(seats) {
		return subscription.Invoice{}, subscription.ErrSeatLimitExceeded
	}

	amount := plan.PricePerSeat.Mul(decimal.NewFromInt(int64(seats)))

	inv, err := s.Repository.CreateInvoice(ctx, subscription.Invoice{
		CompanyID:      companyID,
		SubscriptionID: sub.ID,
		PlanID:         planID,
		Seats:          seats,
		Amount:         amount,
		Status:         subscription.InvoiceStatusPending,
	})
	if err != nil {
		return subscription.Invoice{}, err
	}

	gateway, err := s.billing.CreateInvoice(ctx, billing.CreateInvoiceRequest{
		ExternalID:      inv.ID,
		Amount:          amount,
		Description:     fmt.Sprintf("%s plan, %d seats", plan.Name, seats),
		InvoiceDuration: int(invoiceDuration.Seconds()),
		Metadata: map[string]string{
			"company_id": companyID,
			"plan_id":    planID,
		},
	})
	if err != nil {
		return subscription.Invoice{}, fmt.Errorf("failed to create gateway invoice: %w", err)
	}

	if err := s.Repository.SetInvoiceGateway(ctx, inv.ID, gateway.ID, gateway.InvoiceURL); err != nil {
		return subscription.Invoice{}, err
	}

	inv.GatewayInvoiceID = &gateway.ID
	inv.GatewayURL = &gateway.InvoiceURL

	return inv, nil
}

// HandlePaymentCallback implements subscription.Service. Marks the invoice
// paid and advances the membership period.
func (s *SubscriptionServiceImpl) HandlePaymentCallback(ctx context.Context, gatewayInvoiceID, status string) error {
	inv, err := s.Repository.GetInvoiceByGatewayID(ctx, gatewayInvoiceID)
	if err != nil {
		return err
	}

	switch status {
	case billing.InvoiceStatusPaid, billing.InvoiceStatusSettled:
	case billing.InvoiceStatusExpired:
		return s.Repository.UpdateStatus(ctx, inv.SubscriptionID, subscription.StatusPastDue)
	default:
		return nil
	}

	if inv.Status == subscription.InvoiceStatusPaid {
		// Gateway callbacks can be delivered more than once.
		return nil
	}

	now := time.Now()
	if err := s.Repository.MarkInvoicePaid(ctx, inv.ID, now); err != nil {
		return err
	}

	sub, err := s.Repository.GetByCompanyID(ctx, inv.CompanyID)
	if err != nil {
		return err
	}

	periodStart := now
	if sub.Status == subscription.StatusActive && sub.CurrentPeriodEnd.After(now) {
		// Renewal before expiry extends from the current period end.
		periodStart = sub.CurrentPeriodEnd
	}
	periodEnd := periodStart.AddDate(0, 0, BillingPeriodDays)

	if err := s.Repository.Renew(ctx, sub.ID, inv.PlanID, inv.Seats, periodStart, periodEnd); err != nil {
		return err
	}

	slog.Info("Subscription renewed", "company_id", inv.CompanyID, "period_end", periodEnd)

	return nil
}

// ExpireOverdue implements subscription.Service. Invoked by the scheduler.
func (s *SubscriptionServiceImpl) ExpireOverdue(ctx context.Context) error {
	companyIDs, err := s.Repository.ExpireOverdue(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, companyID := range companyIDs {
		s.notifier.NotifyAdmins(ctx, companyID, notification.TypeSubscriptionDue,
			"Membership expired",
			"Your membership period has ended. Renew to keep adding employees.")
	}

	if len(companyIDs) > 0 {
		slog.Info("Expired overdue subscriptions", "count", len(companyIDs))
	}

	return nil
}
