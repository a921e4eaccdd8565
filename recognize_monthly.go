package revrec

import (
	"fmt"

	"github.com/etnz/revrec/date"
)

// RecognizeMonthly allocates one monthly payment across calendar months.
//
// The starting month receives the payment prorated by the days it covers
// there; the unrecognized remainder is carried into following months, one
// month's worth at a time, until it is exhausted. next is the customer's
// next monthly payment when there is one: its arrival supersedes the
// carryover chain, except that a remainder landing in the very month the
// next payment starts is still emitted, so that month's total is the new
// payment's own proration plus the live carryover.
func RecognizeMonthly(plan Plan, p Payment, next *Payment) ([]Recognition, error) {
	if plan.Interval != Monthly {
		return nil, recordErr(p, fmt.Errorf("%w: plan %q is %s", ErrIntervalMismatch, plan.ID, plan.Interval))
	}
	if p.On.IsZero() {
		return nil, recordErr(p, ErrInvalidDate)
	}
	if !p.Amount.IsPositive() {
		return nil, recordErr(p, fmt.Errorf("%w: %s", ErrInvalidAmount, p.Amount.StringFixed()))
	}

	start := date.MonthOf(p.On)
	first := p.Amount.Prorate(p.On.DaysToMonthEnd(), p.On.DaysInMonth())
	rows := []Recognition{recognition(p, start, first)}

	// remainder is defined by subtraction so the chain sums back to the
	// exact payment amount.
	remainder := p.Amount.Sub(first)
	for month := start.Next(); remainder.IsPositive(); month = month.Next() {
		if next != nil && month.After(date.MonthOf(next.On)) {
			// Superseded: the next real payment owns this month onwards.
			break
		}
		chunk := remainder.Min(p.Amount)
		rows = append(rows, recognition(p, month, chunk))
		remainder = remainder.Sub(chunk)
	}
	return rows, nil
}
