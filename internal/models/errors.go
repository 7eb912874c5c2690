package models

import (
	"errors"
	"fmt"
)

// Rejection reasons. Each rejected transaction wraps exactly one of them.
var (
	ErrInvalidType                    = errors.New("invalid transaction type")
	ErrInvalidInput                   = errors.New("invalid input")
	ErrTargetTransactionAmountMissing = errors.New("target transaction amount missing")
	ErrInsufficientFunds              = errors.New("insufficient funds")
	ErrIDNotFound                     = errors.New("transaction id not found")
	ErrInconsistentWithValueHeld      = errors.New("inconsistent with value held")
	ErrAccountLocked                  = errors.New("account locked")
)

// RejectedTransaction is returned when a single transaction cannot be applied.
// It never aborts a run.
type RejectedTransaction struct {
	Transaction Transaction
	Reason      error
	Detail      string
}

func (e *RejectedTransaction) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s %d rejected: %v", e.Transaction.Kind, e.Transaction.ID, e.Reason)
	}
	return fmt.Sprintf("%s %d rejected: %v (%s)", e.Transaction.Kind, e.Transaction.ID, e.Reason, e.Detail)
}

func (e *RejectedTransaction) Unwrap() error {
	return e.Reason
}

// Reject wraps reason into a RejectedTransaction for tx.
func Reject(tx Transaction, reason error) error {
	return &RejectedTransaction{Transaction: tx, Reason: reason}
}

// Rejectf is Reject with a formatted detail message.
func Rejectf(tx Transaction, reason error, format string, args ...any) error {
	return &RejectedTransaction{Transaction: tx, Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// IsRejection reports whether err is a per-transaction rejection rather than
// an infrastructure failure.
func IsRejection(err error) bool {
	var rejected *RejectedTransaction
	return errors.As(err, &rejected)
}
