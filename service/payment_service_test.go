package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"payment-submitter/fees"
	"payment-submitter/models"
	"payment-submitter/service"
	"payment-submitter/submitter"
)

type recordingGateway struct {
	calls   int
	amounts []decimal.Decimal
	err     error
}

func (g *recordingGateway) Submit(ctx context.Context, paymentID string, amount decimal.Decimal) (bool, error) {
	g.calls++
	g.amounts = append(g.amounts, amount)
	if g.err != nil {
		return false, g.err
	}
	return true, nil
}

func newService(gw submitter.Gateway, table *fees.Table) *service.PaymentService {
	sub := submitter.New(gw, zap.NewNop()).
		WithPolicy(submitter.MaxAttempts, time.Millisecond, 100*time.Millisecond)
	return service.NewPaymentService(nil, zap.NewNop(), fees.NewCalculator(table), sub)
}

func TestProcessPayment_HappyPathSubmitsTotalWithFee(t *testing.T) {
	gw := &recordingGateway{}
	table := fees.NewTable(map[string]decimal.Decimal{
		"USD": decimal.NewFromFloat(0.029),
	})
	svc := newService(gw, table)

	req := &models.PaymentRequest{
		ID:         "pay-1",
		Amount:     decimal.NewFromFloat(100.00),
		Currency:   "usd",
		CustomerID: "cust-1",
	}
	outcome := svc.ProcessPayment(context.Background(), req)

	require.True(t, outcome.Success)
	require.Equal(t, 1, gw.calls)
	require.True(t, gw.amounts[0].Equal(decimal.NewFromFloat(102.90)),
		"fee lookup must use the normalized currency, got %s", gw.amounts[0])
	require.False(t, req.CreatedAt.IsZero(), "creation time defaults to submission time")
}

func TestProcessPayment_ValidationFailureSkipsGateway(t *testing.T) {
	tests := []struct {
		name   string
		req    *models.PaymentRequest
		reason string
	}{
		{"nil request", nil, "missing request"},
		{"non-positive amount", &models.PaymentRequest{
			ID: "pay-1", Amount: decimal.Zero, Currency: "USD", CustomerID: "c-1",
		}, "amount must be positive"},
		{"blank id", &models.PaymentRequest{
			ID: " ", Amount: decimal.NewFromFloat(10), Currency: "USD", CustomerID: "c-1",
		}, "missing payment id"},
		{"blank currency", &models.PaymentRequest{
			ID: "pay-1", Amount: decimal.NewFromFloat(10), Currency: "", CustomerID: "c-1",
		}, "missing currency"},
		{"blank customer", &models.PaymentRequest{
			ID: "pay-1", Amount: decimal.NewFromFloat(10), Currency: "USD", CustomerID: "\t",
		}, "missing customer id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &recordingGateway{}
			svc := newService(gw, fees.NewTable(nil))

			outcome := svc.ProcessPayment(context.Background(), tt.req)

			require.False(t, outcome.Success)
			require.Contains(t, outcome.Reason, tt.reason)
			require.Zero(t, gw.calls, "validation failures must never reach the gateway")
		})
	}
}

func TestProcessPayment_UnknownCurrencyStillPriced(t *testing.T) {
	gw := &recordingGateway{}
	svc := newService(gw, fees.NewTable(nil))

	outcome := svc.ProcessPayment(context.Background(), &models.PaymentRequest{
		ID:         "pay-1",
		Amount:     decimal.NewFromFloat(100.00),
		Currency:   "XYZ",
		CustomerID: "cust-1",
	})

	require.True(t, outcome.Success)
	require.True(t, gw.amounts[0].Equal(decimal.NewFromFloat(103.00)),
		"unknown currency degrades to the 3%% default rate, got %s", gw.amounts[0])
}

func TestProcessPayment_GatewayFailureYieldsFailedOutcome(t *testing.T) {
	gw := &recordingGateway{err: errors.New("card declined")}
	svc := newService(gw, fees.NewTable(nil))

	outcome := svc.ProcessPayment(context.Background(), &models.PaymentRequest{
		ID:         "pay-1",
		Amount:     decimal.NewFromFloat(50.00),
		Currency:   "USD",
		CustomerID: "cust-1",
	})

	require.False(t, outcome.Success)
	require.Equal(t, 1, outcome.Attempts)
	require.Contains(t, outcome.Reason, "card declined")
}

func TestProcessPayment_RecoversFromPanicInPipeline(t *testing.T) {
	gw := &recordingGateway{}
	sub := submitter.New(gw, zap.NewNop())
	// A nil calculator makes the pricing stage panic; the orchestrator
	// boundary must convert that into a failed outcome.
	var calc *fees.Calculator
	svc := service.NewPaymentService(nil, zap.NewNop(), calc, sub)

	var outcome models.PaymentOutcome
	require.NotPanics(t, func() {
		outcome = svc.ProcessPayment(context.Background(), &models.PaymentRequest{
			ID:         "pay-1",
			Amount:     decimal.NewFromFloat(10.00),
			Currency:   "USD",
			CustomerID: "cust-1",
		})
	})

	require.False(t, outcome.Success)
	require.Contains(t, outcome.Reason, "unexpected error")
}
