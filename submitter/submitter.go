package submitter

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payment-submitter/models"
)

// Retry policy defaults. These are fixed by contract: at most 3 gateway
// calls per payment, 10s per call, delays of 250ms then 500ms between
// transient failures.
const (
	MaxAttempts    = 3
	BaseDelay      = 250 * time.Millisecond
	AttemptTimeout = 10 * time.Second
)

// Gateway is the consumed capability for delivering a payment. Submit
// must honor the deadline on ctx; the boolean reports whether the
// gateway accepted the payment.
type Gateway interface {
	Submit(ctx context.Context, paymentID string, amount decimal.Decimal) (bool, error)
}

// state enumerates the retry state machine for a single submission.
type state int

const (
	stateAttempting state = iota
	stateSucceeded
	stateFailedPermanent
	stateFailedExhausted
)

// Submitter delivers payments through a Gateway under a bounded
// retry/backoff policy. It keeps no per-payment state between calls,
// so a single Submitter is safe for concurrent use.
type Submitter struct {
	gateway Gateway
	logger  *zap.Logger

	// Overridable for tests; production wiring keeps the defaults.
	maxAttempts    int
	baseDelay      time.Duration
	attemptTimeout time.Duration
}

// New creates a Submitter with the default retry policy.
func New(gateway Gateway, logger *zap.Logger) *Submitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Submitter{
		gateway:        gateway,
		logger:         logger,
		maxAttempts:    MaxAttempts,
		baseDelay:      BaseDelay,
		attemptTimeout: AttemptTimeout,
	}
}

// WithPolicy overrides the retry parameters. Intended for tests.
func (s *Submitter) WithPolicy(maxAttempts int, baseDelay, attemptTimeout time.Duration) *Submitter {
	s.maxAttempts = maxAttempts
	s.baseDelay = baseDelay
	s.attemptTimeout = attemptTimeout
	return s
}

// Submit runs the retry state machine for one payment. Every exit path
// returns a definite outcome; no error escapes this stage. Attempts are
// strictly sequential and both the per-attempt wait and the backoff
// sleep abort promptly when ctx is canceled.
func (s *Submitter) Submit(ctx context.Context, paymentID string, total decimal.Decimal) models.PaymentOutcome {
	st := stateAttempting
	attempt := 0
	var lastErr error

	for st == stateAttempting {
		attempt++
		s.logger.Info("submitting payment to gateway",
			zap.String("payment_id", paymentID),
			zap.String("amount", total.StringFixed(2)),
			zap.Int("attempt", attempt),
		)

		err := s.attempt(ctx, paymentID, total)
		if err == nil {
			st = stateSucceeded
			break
		}
		lastErr = err

		if ctx.Err() != nil {
			// Caller abandoned the payment mid-wait. Stop here rather
			// than spending the remaining retry budget.
			s.logger.Warn("payment submission canceled",
				zap.String("payment_id", paymentID),
				zap.Int("attempt", attempt),
				zap.Error(ctx.Err()),
			)
			return models.PaymentOutcome{
				Success:  false,
				Reason:   (&TransientGatewayError{Err: ctx.Err()}).Error(),
				Attempts: attempt,
			}
		}

		if !IsTransient(err) {
			st = stateFailedPermanent
			break
		}

		if attempt == s.maxAttempts {
			st = stateFailedExhausted
			break
		}

		delay := s.baseDelay << (attempt - 1)
		s.logger.Warn("transient gateway failure, backing off",
			zap.String("payment_id", paymentID),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := sleep(ctx, delay); err != nil {
			s.logger.Warn("payment submission canceled during backoff",
				zap.String("payment_id", paymentID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return models.PaymentOutcome{
				Success:  false,
				Reason:   (&TransientGatewayError{Err: err}).Error(),
				Attempts: attempt,
			}
		}
	}

	switch st {
	case stateSucceeded:
		s.logger.Info("payment submitted",
			zap.String("payment_id", paymentID),
			zap.Int("attempt", attempt),
		)
		return models.PaymentOutcome{Success: true, Attempts: attempt}
	case stateFailedPermanent:
		wrapped := &PermanentGatewayError{Err: lastErr}
		s.logger.Error("permanent gateway failure",
			zap.String("payment_id", paymentID),
			zap.Int("attempt", attempt),
			zap.Error(lastErr),
		)
		return models.PaymentOutcome{Success: false, Reason: wrapped.Error(), Attempts: attempt}
	default:
		wrapped := &TransientGatewayError{Err: lastErr}
		s.logger.Error("retry budget exhausted",
			zap.String("payment_id", paymentID),
			zap.Int("attempts", attempt),
			zap.Error(lastErr),
		)
		return models.PaymentOutcome{Success: false, Reason: wrapped.Error(), Attempts: attempt}
	}
}

// attempt performs one gateway call under the per-attempt timeout.
func (s *Submitter) attempt(ctx context.Context, paymentID string, total decimal.Decimal) error {
	attemptCtx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	accepted, err := s.gateway.Submit(attemptCtx, paymentID, total)
	if err != nil {
		return err
	}
	if !accepted {
		// A clean decline carries no transient marker and is permanent.
		return errors.New("gateway declined payment")
	}
	return nil
}

// sleep waits for d or until ctx is canceled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
