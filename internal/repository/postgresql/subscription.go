package postgresql

import (
	"context"
	"time"

	"github.com/complyhr/complyhr-backend-go/internal/domain/subscription"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type subscriptionRepositoryImpl struct {
	db *database.DB
}

func NewSubscriptionRepository(db *database.DB) subscription.Repository {
	return &subscriptionRepositoryImpl{db: db}
}

const subscriptionColumns = `id, company_id, plan_id, status, max_seats,
		current_period_start, current_period_end, trial_ends_at, auto_renew, created_at, updated_at`

func scanSubscription(row pgx.Row) (subscription.Subscription, error) {
	var s subscription.Subscription
	err := row.Scan(
		&s.ID, &s.CompanyID, &s.PlanID, &s.Status, &s.MaxSeats,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.TrialEndsAt,
		&s.AutoRenew, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// CreateSubscription implements subscription.Repository.
func (r *subscriptionRepositoryImpl) CreateSubscription(ctx context.Context, s subscription.Subscription) (subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO subscriptions (
			company_id, plan_id, status, max_seats,
			current_period_start, current_period_end, trial_ends_at, auto_renew
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + subscriptionColumns

	created, err := scanSubscription(q.QueryRow(ctx, query,
		s.CompanyID, s.PlanID, s.Status, s.MaxSeats,
		s.CurrentPeriodStart, s.CurrentPeriodEnd, s.TrialEndsAt, s.AutoRenew,
	))
	if err != nil {
		return subscription.Subscription{}, err
	}

	return created, nil
}

// GetByCompanyID implements subscription.Repository. The plan is joined in.
func (r *subscriptionRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) (subscription.Subscription, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.company_id, s.plan_id, s.status, s.max_seats,
			s.current_period_start, s.current_period_end, s.trial_ends_at, s.auto_renew,
			s.created_at, s.updated_at,
			p.id, p.name, p.price_per_seat, p.max_seats, p.is_active, p.created_at
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.company_id = $1
	`

	var s subscription.Subscription
	var p subscription.Plan
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.PlanID, &s.Status, &s.MaxSeats,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.TrialEndsAt, &s.AutoRenew,
		&s.CreatedAt, &s.UpdatedAt,
		&p.ID, &p.Name, &p.PricePerSeat, &p.MaxSeats, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Subscription{}, subscription.ErrSubscriptionNotFound
		}
		return subscription.Subscription{}, err
	}

	s.Plan = &p
	return s, nil
}

// UpdateStatus implements subscription.Repository.
func (r *subscriptionRepositoryImpl) UpdateStatus(ctx context.Context, id string, status subscription.SubscriptionStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

// Renew implements subscription.Repository.
func (r *subscriptionRepositoryImpl) Renew(ctx context.Context, id, planID string, maxSeats int, periodStart, periodEnd time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET plan_id = $1, status = $2, max_seats = $3,
			current_period_start = $4, current_period_end = $5,
			trial_ends_at = NULL, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		planID, subscription.StatusActive, maxSeats, periodStart, periodEnd, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

// ExpireOverdue implements subscription.Repository.
func (r *subscriptionRepositoryImpl) ExpireOverdue(ctx context.Context, now time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE subscriptions
		SET status = $1, updated_at = NOW()
		WHERE status IN ($2, $3) AND current_period_end < $4
		RETURNING company_id
	`

	rows, err := q.Query(ctx, query,
		subscription.StatusExpired, subscription.StatusActive, subscription.StatusTrial, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companyIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		companyIDs = append(companyIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return companyIDs, nil
}

// GetPlan implements subscription.Repository.
func (r *subscriptionRepositoryImpl) GetPlan(ctx context.Context, planID string) (subscription.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, price_per_seat, max_seats, is_active, created_at FROM plans WHERE id = $1`

	var p subscription.Plan
	err := q.QueryRow(ctx, query, planID).Scan(
		&p.ID, &p.Name, &p.PricePerSeat, &p.MaxSeats, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Plan{}, subscription.ErrPlanNotFound
		}
		return subscription.Plan{}, err
	}

	return p, nil
}

// ListPlans implements subscription.Repository.
func (r *subscriptionRepositoryImpl) ListPlans(ctx context.Context) ([]subscription.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, price_per_seat, max_seats, is_active, created_at FROM plans WHERE is_active = TRUE ORDER BY price_per_seat ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []subscription.Plan
	for rows.Next() {
		var p subscription.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.PricePerSeat, &p.MaxSeats, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// CreateInvoice implements subscription.Repository.
func (r *subscriptionRepositoryImpl) CreateInvoice(ctx context.Context, inv subscription.Invoice) (subscription.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoices (company_id, subscription_id, plan_id, seats, gateway_invoice_id, gateway_url, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, company_id, subscription_id, plan_id, seats, gateway_invoice_id, gateway_url, amount, status, paid_at, created_at
	`

	var created subscription.Invoice
	err := q.QueryRow(ctx, query,
		inv.CompanyID, inv.SubscriptionID, inv.PlanID, inv.Seats,
		inv.GatewayInvoiceID, inv.GatewayURL, inv.Amount, inv.Status,
	).Scan(
		&created.ID, &created.CompanyID, &created.SubscriptionID, &created.PlanID, &created.Seats,
		&created.GatewayInvoiceID, &created.GatewayURL, &created.Amount,
		&created.Status, &created.PaidAt, &created.CreatedAt,
	)
	if err != nil {
		return subscription.Invoice{}, err
	}

	return created, nil
}

// SetInvoiceGateway implements subscription.Repository.
func (r *subscriptionRepositoryImpl) SetInvoiceGateway(ctx context.Context, id, gatewayID, gatewayURL string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE invoices SET gateway_invoice_id = $1, gateway_url = $2 WHERE id = $3`,
		gatewayID, gatewayURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrInvoiceNotFound
	}

	return nil
}

// GetInvoiceByGatewayID implements subscription.Repository.
func (r *subscriptionRepositoryImpl) GetInvoiceByGatewayID(ctx context.Context, gatewayID string) (subscription.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, subscription_id, plan_id, seats, gateway_invoice_id, gateway_url, amount, status, paid_at, created_at
		FROM invoices
		WHERE gateway_invoice_id = $1
	`

	var inv subscription.Invoice
	err := q.QueryRow(ctx, query, gatewayID).Scan(
		&inv.ID, &inv.CompanyID, &inv.SubscriptionID, &inv.PlanID, &inv.Seats,
		&inv.GatewayInvoiceID, &inv.GatewayURL, &inv.Amount,
		&inv.Status, &inv.PaidAt, &inv.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return subscription.Invoice{}, subscription.ErrInvoiceNotFound
		}
		return subscription.Invoice{}, err
	}

	return inv, nil
}

// MarkInvoicePaid implements subscription.Repository.
func (r *subscriptionRepositoryImpl) MarkInvoicePaid(ctx context.Context, id string, paidAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE invoices SET status = $1, paid_at = $2 WHERE id = $3`,
		subscription.InvoiceStatusPaid, paidAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrInvoiceNotFound
	}

	return nil
}
