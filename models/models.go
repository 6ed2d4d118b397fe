package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest represents a payment to be submitted to the gateway.
// Currency is normalized to upper-case during validation; uniqueness of
// ID per logical payment is the caller's responsibility.
type PaymentRequest struct {
	ID         string          `json:"payment_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	CustomerID string          `json:"customer_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

// PaymentOutcome is the definite result of one submission pipeline run.
// There is no partial state: either the gateway accepted the payment or
// the pipeline gave up with a reason.
type PaymentOutcome struct {
	Success  bool   `json:"success"`
	Reason   string `json:"reason,omitempty"`
	Attempts int    `json:"attempts"`
}

// SubmitPaymentRequest is the HTTP request body accepted by the service.
type SubmitPaymentRequest struct {
	PaymentID  string  `json:"payment_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	CustomerID string  `json:"customer_id"`
}

// SubmitPaymentResponse is the HTTP response body returned by the service.
type SubmitPaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	Success     bool   `json:"success"`
	Reason      string `json:"reason,omitempty"`
	Attempts    int    `json:"attempts"`
	ProcessedAt string `json:"processed_at"`
}

// GatewaySubmitRequest represents a request to the external payment gateway.
type GatewaySubmitRequest struct {
	PaymentID string `json:"payment_id"`
	Amount    string `json:"amount"`
}

// GatewaySubmitResponse represents a response from the external payment gateway.
type GatewaySubmitResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
}
