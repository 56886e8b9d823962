package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/complyhr/complyhr-backend-go/internal/domain/subscription"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/middleware"
	"github.com/complyhr/complyhr-backend-go/internal/handler/http/response"
	"github.com/complyhr/complyhr-backend-go/internal/pkg/billing"
)

type SubscriptionHandler interface {
	GetMine(w http.ResponseWriter, r *http.Request)
	ListPlans(w http.ResponseWriter, r *http.Request)
	CreateInvoice(w http.ResponseWriter, r *http.Request)
	PaymentWebhook(w http.ResponseWriter, r *http.Request)
}

type createInvoiceRequest struct {
	PlanID string `json:"plan_id"`
	Seats  int    `json:"seats"`
}

type SubscriptionHandlerImpl struct {
	subscriptionService subscription.Service
	webhookVerifier     *billing.WebhookVerifier
}

func NewSubscriptionHandler(subscriptionService subscription.Service, webhookVerifier *billing.WebhookVerifier) SubscriptionHandler {
	return &SubscriptionHandlerImpl{
		subscriptionService: subscriptionService,
		webhookVerifier:     webhookVerifier,
	}
}

// GetMine implements SubscriptionHandler.
func (s *SubscriptionHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	sub, err := s.subscriptionService.GetMySubscription(r.Context(), middleware.CompanyID(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sub)
}

// ListPlans implements SubscriptionHandler.
func (s *SubscriptionHandlerImpl) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.subscriptionService.ListPlans(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, plans)
}

// CreateInvoice implements SubscriptionHandler. Returns the gateway payment
// URL the client redirects to.
func (s *SubscriptionHandlerImpl) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var invoiceReq createInvoiceRequest

	if err := json.NewDecoder(r.Body).Decode(&invoiceReq); err != nil {
		slog.Error("CreateInvoice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	inv, err := s.subscriptionService.CreateInvoice(r.Context(),
		middleware.CompanyID(r.Context()), invoiceReq.PlanID, invoiceReq.Seats)
	if err != nil {
		slog.Error("CreateInvoice service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created", inv)
}

// PaymentWebhook implements SubscriptionHandler. Called by the payment
// gateway, not by our clients.
func (s *SubscriptionHandlerImpl) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	if !s.webhookVerifier.VerifySignature(r.Header.Get("x-callback-token")) {
		response.Unauthorized(w, "Invalid callback token")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Unreadable payload", nil)
		return
	}

	var payload billing.InvoiceWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Error("PaymentWebhook decode error", "error", err)
		response.BadRequest(w, "Invalid payload", nil)
		return
	}

	if err := s.subscriptionService.HandlePaymentCallback(r.Context(), payload.ID, payload.Status); err != nil {
		slog.Error("PaymentWebhook service error", "error", err, "gateway_invoice_id", payload.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Callback processed", nil)
}
