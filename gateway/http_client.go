package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"payment-submitter/models"
	"payment-submitter/monitoring"
)

// HTTPClient submits payments to an external gateway over HTTP. The
// per-attempt deadline is imposed by the caller through ctx; the client
// sets no timeout of its own.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// NewHTTPClient creates a gateway client with an instrumented transport.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: baseURL,
	}
}

// Submit posts the payment to the gateway and reports whether it was
// accepted. Transport errors (including ctx deadline and cancellation)
// are returned as-is so the caller can classify them.
func (c *HTTPClient) Submit(ctx context.Context, paymentID string, amount decimal.Decimal) (bool, error) {
	body, err := json.Marshal(&models.GatewaySubmitRequest{
		PaymentID: paymentID,
		Amount:    amount.StringFixed(2),
	})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/payments", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start).Seconds()

	if err != nil {
		monitoring.GatewayCallDuration.Record(ctx, duration,
			metric.WithAttributes(attribute.String("status", "error")),
		)
		return false, fmt.Errorf("failed to call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		monitoring.GatewayCallDuration.Record(ctx, duration,
			metric.WithAttributes(attribute.String("status", "failed")),
		)
		return false, fmt.Errorf("payment gateway returned status %d", resp.StatusCode)
	}

	var gwResp models.GatewaySubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&gwResp); err != nil {
		return false, err
	}

	monitoring.GatewayCallDuration.Record(ctx, duration,
		metric.WithAttributes(attribute.String("status", gwResp.Status)),
	)

	if gwResp.Status != "accepted" && gwResp.Message != "" {
		// Surface the gateway's own message so retryable markers in it
		// (such as "timeout") reach the caller's classification.
		return false, fmt.Errorf("gateway rejected payment: %s", gwResp.Message)
	}

	return gwResp.Status == "accepted", nil
}
