package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"payment-submitter/fees"
	"payment-submitter/models"
	"payment-submitter/monitoring"
	"payment-submitter/submitter"
)

// PaymentService wires the submission pipeline: validate, price,
// submit with retry. It is the failure boundary of the whole pipeline;
// callers always receive a definite outcome, never an error or panic.
type PaymentService struct {
	tracer    trace.Tracer
	logger    *zap.Logger
	fees      *fees.Calculator
	submitter *submitter.Submitter
}

// NewPaymentService creates a payment service. tracer and logger may be
// nil, in which case no-op implementations are used.
func NewPaymentService(tracer trace.Tracer, logger *zap.Logger, calc *fees.Calculator, sub *submitter.Submitter) *PaymentService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("payment-submitter")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		tracer:    tracer,
		logger:    logger,
		fees:      calc,
		submitter: sub,
	}
}

// ProcessPayment runs a payment through the full pipeline and returns
// its outcome. Validation failures short-circuit before any gateway
// call; anything unexpected escaping a stage is recovered here and
// converted to a failed outcome.
func (s *PaymentService) ProcessPayment(ctx context.Context, req *models.PaymentRequest) (outcome models.PaymentOutcome) {
	ctx, span := s.tracer.Start(ctx, "process_payment")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("unexpected failure in payment pipeline",
				zap.Any("panic", r),
			)
			span.SetAttributes(attribute.String("payment.status", "failed"))
			outcome = models.PaymentOutcome{
				Success: false,
				Reason:  fmt.Sprintf("unexpected error: %v", r),
			}
		}
	}()

	if err := submitter.Validate(req); err != nil {
		s.logger.Error("payment request rejected", zap.Error(err))
		s.recordOutcome(ctx, span, "rejected")
		return models.PaymentOutcome{Success: false, Reason: err.Error()}
	}

	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	span.SetAttributes(
		attribute.String("payment.id", req.ID),
		attribute.String("payment.currency", req.Currency),
		attribute.String("payment.customer_id", req.CustomerID),
	)

	total := s.fees.Total(req.Amount, req.Currency)
	s.logger.Info("payment priced",
		zap.String("payment_id", req.ID),
		zap.String("currency", req.Currency),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("total", total.StringFixed(2)),
	)

	outcome = s.submitter.Submit(ctx, req.ID, total)

	monitoring.GatewayAttempts.Add(ctx, int64(outcome.Attempts),
		metric.WithAttributes(attribute.Bool("success", outcome.Success)),
	)
	if outcome.Success {
		amt, _ := total.Float64()
		monitoring.PaymentAmount.Record(ctx, amt,
			metric.WithAttributes(attribute.String("currency", req.Currency)),
		)
		s.recordOutcome(ctx, span, "success")
	} else {
		s.recordOutcome(ctx, span, "failed")
	}

	return outcome
}

func (s *PaymentService) recordOutcome(ctx context.Context, span trace.Span, status string) {
	monitoring.PaymentCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
	span.SetAttributes(attribute.String("payment.status", status))
}
