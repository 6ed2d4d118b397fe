package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"payment-submitter/models"
	"payment-submitter/service"
)

// PaymentHandler handles HTTP requests for payment submission
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// SubmitPayment handles payment submission requests
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	ctx := c.Request.Context()

	var body models.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := &models.PaymentRequest{
		ID:         body.PaymentID,
		Amount:     decimal.NewFromFloat(body.Amount),
		Currency:   body.Currency,
		CustomerID: body.CustomerID,
	}

	outcome := h.paymentService.ProcessPayment(ctx, req)

	status := http.StatusOK
	if !outcome.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, &models.SubmitPaymentResponse{
		PaymentID:   req.ID,
		Success:     outcome.Success,
		Reason:      outcome.Reason,
		Attempts:    outcome.Attempts,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheck handles health check requests
func (h *PaymentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
