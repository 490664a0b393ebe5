package entity

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart                = errors.New("sale must have at least one item")
	ErrMissingCustomerForCredit = errors.New("credit sale requires a customer")
	ErrInvalidQuantity          = errors.New("quantity must be greater than 0")
	ErrNonPositiveAmount        = errors.New("amount must be greater than 0")
	ErrSaleNotFound             = errors.New("sale not found")

	// ErrPaymentConflict means the sale row changed between read and write.
	// Safe to retry with a fresh read.
	ErrPaymentConflict = errors.New("concurrent payment detected, retry")
)

// OverpaymentError rejects a payment larger than the current remaining balance.
// It carries the balance so the caller can resubmit a valid amount.
type OverpaymentError struct {
	Remaining int64
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment exceeds remaining balance of %d", e.Remaining)
}

// IsOverpayment extracts an OverpaymentError from an error chain
func IsOverpayment(err error) (*OverpaymentError, bool) {
	var oe *OverpaymentError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}
