package submitter

import (
	"strings"

	"payment-submitter/models"
)

// Validate checks a payment request and normalizes its currency in
// place. Checks run in order and stop at the first failure; the only
// side effect is the currency normalization, which later stages (fee
// lookup) depend on.
func Validate(req *models.PaymentRequest) error {
	if req == nil {
		return &InvalidRequestError{Reason: "missing request"}
	}
	if strings.TrimSpace(req.ID) == "" {
		return &InvalidRequestError{Reason: "missing payment id"}
	}
	if !req.Amount.IsPositive() {
		return &InvalidRequestError{Reason: "amount must be positive"}
	}
	if strings.TrimSpace(req.Currency) == "" {
		return &InvalidRequestError{Reason: "missing currency"}
	}
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if strings.TrimSpace(req.CustomerID) == "" {
		return &InvalidRequestError{Reason: "missing customer id"}
	}
	return nil
}
