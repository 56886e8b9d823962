package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/employee"
	"github.com/complyhr/complyhr-backend-go/internal/domain/notification"
	"github.com/complyhr/complyhr-backend-go/internal/domain/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubscriptionRepo struct {
	subscription.Repository

	sub     subscription.Subscription
	subErr  error
	invoice subscription.Invoice

	created    *subscription.Subscription
	paidID     string
	renewedID  string
	renewStart time.Time
	renewEnd   time.Time
	renewSeats int
	statusID   string
	status     subscription.SubscriptionStatus
}

func (f *fakeSubscriptionRepo) GetByCompanyID(ctx context.Context, companyID string) (subscription.Subscription, error) {
	return f.sub, f.subErr
}

func (f *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, s subscription.Subscription) (subscription.Subscription, error) {
	f.created = &s
	s.ID = "sub-1"
	return s, nil
}

func (f *fakeSubscriptionRepo) GetInvoiceByGatewayID(ctx context.Context, gatewayID string) (subscription.Invoice, error) {
	if f.invoice.ID == "" {
		return subscription.Invoice{}, subscription.ErrInvoiceNotFound
	}
	return f.invoice, nil
}

func (f *fakeSubscriptionRepo) MarkInvoicePaid(ctx context.Context, id string, paidAt time.Time) error {
	f.paidID = id
	return nil
}

func (f *fakeSubscriptionRepo) Renew(ctx context.Context, id, planID string, maxSeats int, periodStart, periodEnd time.Time) error {
	f.renewedID = id
	f.renewStart = periodStart
	f.renewEnd = periodEnd
	f.renewSeats = maxSeats
	return nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(ctx context.Context, id string, status subscription.SubscriptionStatus) error {
	f.statusID = id
	f.status = status
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	count int64
}

func (f *fakeEmployeeRepo) CountByCompanyID(ctx context.Context, companyID string) (int64, error) {
	return f.count, nil
}

type fakeNotifier struct {
	notification.Service
	adminNotices []string
}

func (f *fakeNotifier) NotifyAdmins(ctx context.Context, companyID, notifType, title, message string) {
	f.adminNotices = append(f.adminNotices, companyID)
}

func usableSub() subscription.Subscription {
	now := time.Now()
	return subscription.Subscription{
		ID:                 "sub-1",
		CompanyID:          "comp-1",
		PlanID:             "starter",
		Status:             subscription.StatusActive,
		MaxSeats:           5,
		CurrentPeriodStart: now.AddDate(0, 0, -10),
		CurrentPeriodEnd:   now.AddDate(0, 0, 20),
	}
}

func TestCanAddEmployeeUnderSeatLimit(t *testing.T) {
	repo := &fakeSubscriptionRepo{sub: usableSub()}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{count: 4}, nil, &fakeNotifier{})

	ok, err := svc.CanAddEmployee(context.Background(), "comp-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAddEmployeeAtSeatLimit(t *testing.T) {
	repo := &fakeSubscriptionRepo{sub: usableSub()}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{count: 5}, nil, &fakeNotifier{})

	ok, err := svc.CanAddEmployee(context.Background(), "comp-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanAddEmployeeExpiredStatus(t *testing.T) {
	sub := usableSub()
	sub.Status = subscription.StatusExpired
	repo := &fakeSubscriptionRepo{sub: sub}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{count: 0}, nil, &fakeNotifier{})

	ok, err := svc.CanAddEmployee(context.Background(), "comp-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanAddEmployeePeriodEnded(t *testing.T) {
	sub := usableSub()
	sub.CurrentPeriodEnd = time.Now().AddDate(0, 0, -1)
	repo := &fakeSubscriptionRepo{sub: sub}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{count: 0}, nil, &fakeNotifier{})

	ok, err := svc.CanAddEmployee(context.Background(), "comp-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanAddEmployeeNoSubscription(t *testing.T) {
	repo := &fakeSubscriptionRepo{subErr: subscription.ErrSubscriptionNotFound}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{}, nil, &fakeNotifier{})

	ok, err := svc.CanAddEmployee(context.Background(), "comp-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStartTrial(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{}, nil, &fakeNotifier{})

	sub, err := svc.StartTrial(context.Background(), "comp-1")
	require.NoError(t, err)

	assert.Equal(t, subscription.StatusTrial, sub.Status)
	assert.Equal(t, TrialSeats, sub.MaxSeats)
	assert.Equal(t, DefaultPlanID, sub.PlanID)
	require.NotNil(t, sub.TrialEndsAt)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, TrialDays), *sub.TrialEndsAt, time.Minute)
	assert.WithinDuration(t, sub.CurrentPeriodEnd, *sub.TrialEndsAt, time.Second)
}

func TestHandlePaymentCallbackActivates(t *testing.T) {
	sub := usableSub()
	sub.Status = subscription.StatusExpired
	sub.CurrentPeriodEnd = time.Now().AddDate(0, 0, -3)

	gatewayID := "xnd-1"
	repo := &fakeSubscriptionRepo{
		sub: sub,
		invoice: subscription.Invoice{
			ID:               "inv-1",
			CompanyID:        "comp-1",
			SubscriptionID:   "sub-1",
			PlanID:           "growth",
			Seats:            12,
			Status:           subscription.InvoiceStatusPending,
			GatewayInvoiceID: &gatewayID,
		},
	}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{}, nil, &fakeNotifier{})

	err := svc.HandlePaymentCallback(context.Background(), "xnd-1", "PAID")
	require.NoError(t, err)

	assert.Equal(t, "inv-1", repo.paidID)
	assert.Equal(t, "sub-1", repo.renewedID)
	assert.Equal(t, 12, repo.renewSeats)
	// Lapsed membership restarts from now, not from the old period end.
	assert.WithinDuration(t, time.Now(), repo.renewStart, time.Minute)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, BillingPeriodDays), repo.renewEnd, time.Minute)
}

func TestHandlePaymentCallbackExtendsActivePeriod(t *testing.T) {
	sub := usableSub()

	gatewayID := "xnd-1"
	repo := &fakeSubscriptionRepo{
		sub: sub,
		invoice: subscription.Invoice{
			ID:               "inv-1",
			CompanyID:        "comp-1",
			SubscriptionID:   "sub-1",
			PlanID:           "starter",
			Seats:            5,
			Status:           subscription.InvoiceStatusPending,
			GatewayInvoiceID: &gatewayID,
		},
	}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{}, nil, &fakeNotifier{})

	err := svc.HandlePaymentCallback(context.Background(), "xnd-1", "SETTLED")
	require.NoError(t, err)

	// Early renewal stacks onto the current period.
	assert.WithinDuration(t, sub.CurrentPeriodEnd, repo.renewStart, time.Second)
	assert.WithinDuration(t, sub.CurrentPeriodEnd.AddDate(0, 0, BillingPeriodDays), repo.renewEnd, time.Second)
}

func TestHandlePaymentCallbackIdempotent(t *testing.T) {
	gatewayID := "xnd-1"
	repo := &fakeSubscriptionRepo{
		sub: usableSub(),
		invoice: subscription.Invoice{
			ID:               "inv-1",
			CompanyID:        "comp-1",
			SubscriptionID:   "sub-1",
			Status:           subscription.InvoiceStatusPaid,
			GatewayInvoiceID: &gatewayID,
		},
	}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{}, nil, &fakeNotifier{})

	err := svc.HandlePaymentCallback(context.Background(), "xnd-1", "PAID")
	require.NoError(t, err)

	assert.Empty(t, repo.paidID)
	assert.Empty(t, repo.renewedID)
}

func TestHandlePaymentCallbackExpiredInvoice(t *testing.T) {
	gatewayID := "xnd-1"
	repo := &fakeSubscriptionRepo{
		sub: usableSub(),
		invoice: subscription.Invoice{
			ID:               "inv-1",
			SubscriptionID:   "sub-1",
			Status:           subscription.InvoiceStatusPending,
			GatewayInvoiceID: &gatewayID,
		},
	}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{}, nil, &fakeNotifier{})

	err := svc.HandlePaymentCallback(context.Background(), "xnd-1", "EXPIRED")
	require.NoError(t, err)

	assert.Equal(t, "sub-1", repo.statusID)
	assert.Equal(t, subscription.StatusPastDue, repo.status)
}

func TestHandlePaymentCallbackUnknownInvoice(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	svc := NewSubscriptionService(repo, &fakeEmployeeRepo{}, nil, &fakeNotifier{})

	err := svc.HandlePaymentCallback(context.Background(), "missing", "PAID")
	assert.ErrorIs(t, err, subscription.ErrInvoiceNotFound)
}
