package revrec

import (
	"errors"
	"fmt"
)

// Per-record error kinds. A payment failing with one of these is reported
// and excluded from the aggregate; it never aborts the run.
var (
	// ErrInvalidDate reports a malformed or missing payment date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidAmount reports a non-positive payment amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnknownPlan reports a payment referencing a plan that was never declared.
	ErrUnknownPlan = errors.New("unknown plan")
	// ErrIntervalMismatch reports a recognizer invoked against the wrong plan interval.
	ErrIntervalMismatch = errors.New("plan interval mismatch")
)

// recordErr wraps a per-record error with the offending payment's id.
func recordErr(p Payment, err error) error {
	return fmt.Errorf("payment %d: %w", p.ID, err)
}
