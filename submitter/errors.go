package submitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// InvalidRequestError reports a caller error caught by validation.
// It is never retried and never reaches the gateway.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

// TransientGatewayError wraps a gateway failure worth retrying.
type TransientGatewayError struct {
	Err error
}

func (e *TransientGatewayError) Error() string {
	return fmt.Sprintf("transient gateway error: %v", e.Err)
}

func (e *TransientGatewayError) Unwrap() error { return e.Err }

// PermanentGatewayError wraps a gateway failure that will not improve
// on retry; it terminates the retry loop immediately.
type PermanentGatewayError struct {
	Err error
}

func (e *PermanentGatewayError) Error() string {
	return fmt.Sprintf("permanent gateway error: %v", e.Err)
}

func (e *PermanentGatewayError) Unwrap() error { return e.Err }

// IsTransient classifies a gateway error. An error is transient iff it
// is a deadline-exceeded signal from the per-attempt bound, a
// cancellation raised while waiting on it, or its message contains the
// case-insensitive substring "timeout". The substring match is fragile
// but documented behavior that callers depend on; do not tighten it.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}
