package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	xenditSDK "github.com/xendit/xendit-go/v7"
	"github.com/xendit/xendit-go/v7/invoice"
)

// Client wraps the official Xendit SDK for membership invoicing.
type Client struct {
	sdk         *xenditSDK.APIClient
	invoiceAPI  invoice.InvoiceApi
	environment string
}

// NewClient creates a new Xendit client using the official SDK
func NewClient(apiKey, environment string) *Client {
	sdk := xenditSDK.NewClient(apiKey)

	return &Client{
		sdk:         sdk,
		invoiceAPI:  sdk.InvoiceApi,
		environment: environment,
	}
}

// IsSandbox returns true if running in sandbox mode
func (c *Client) IsSandbox() bool {
	return c.environment == "sandbox"
}

// CreateInvoiceRequest is what the subscription service fills in when a
// membership period is billed.
type CreateInvoiceRequest struct {
	ExternalID      string
	Amount          decimal.Decimal
	Description     string
	PayerEmail      string
	Currency        string // default GBP
	InvoiceDuration int    // seconds
	Metadata        map[string]string
}

// InvoiceResponse represents the response from creating/getting an invoice
type InvoiceResponse struct {
	ID         string
	ExternalID string
	Status     string // PENDING, PAID, SETTLED, EXPIRED
	Amount     float64
	InvoiceURL string
	ExpiryDate time.Time
	Currency   string
	Created    time.Time
}

// CreateInvoice creates a new invoice through the Xendit invoice API.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "GBP"
	}

	amount, _ := req.Amount.Float64()

	sdkReq := *invoice.NewCreateInvoiceRequest(req.ExternalID, amount)
	sdkReq.SetCurrency(currency)

	if req.PayerEmail != "" {
		sdkReq.SetPayerEmail(req.PayerEmail)
	}
	if req.Description != "" {
		sdkReq.SetDescription(req.Description)
	}
	if req.InvoiceDuration > 0 {
		sdkReq.SetInvoiceDuration(float32(req.InvoiceDuration))
	}
	if len(req.Metadata) > 0 {
		metadata := make(map[string]interface{})
		for k, v := range req.Metadata {
			metadata[k] = v
		}
		sdkReq.SetMetadata(metadata)
	}

	resp, _, err := c.invoiceAPI.CreateInvoice(ctx).
		CreateInvoiceRequest(sdkReq).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return toInvoiceResponse(resp), nil
}

// GetInvoice retrieves an invoice by ID.
func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (*InvoiceResponse, error) {
	resp, _, err := c.invoiceAPI.GetInvoiceById(ctx, invoiceID).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return toInvoiceResponse(resp), nil
}

// ExpireInvoice expires an invoice.
func (c *Client) ExpireInvoice(ctx context.Context, invoiceID string) (*InvoiceResponse, error) {
	resp, _, err := c.invoiceAPI.ExpireInvoice(ctx, invoiceID).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to expire invoice: %w", err)
	}

	return toInvoiceResponse(resp), nil
}

func toInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}

	return &InvoiceResponse{
		ID:         inv.GetId(),
		ExternalID: inv.GetExternalId(),
		Status:     string(inv.GetStatus()),
		Amount:     inv.GetAmount(),
		InvoiceURL: inv.GetInvoiceUrl(),
		ExpiryDate: inv.GetExpiryDate(),
		Currency:   string(inv.GetCurrency()),
		Created:    inv.GetCreated(),
	}
}

// Gateway invoice status constants.
const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusSettled = "SETTLED"
	InvoiceStatusExpired = "EXPIRED"
)
