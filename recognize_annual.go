package revrec

import (
	"fmt"

	"github.com/etnz/revrec/date"
)

// annualPeriods is the number of recognition rows an annual payment
// expands into, one per covered month.
const annualPeriods = 12

// RecognizeAnnual expands one yearly payment into exactly twelve monthly
// recognition rows, starting at the payment month.
//
// Each row is worth amount/12, except that a payment made after the first
// of its month has its first row weighted by the days actually covered,
// and the twelfth row is forced so the twelve rows sum back to the exact
// payment amount, absorbing both the first-row day adjustment and any
// division drift.
func RecognizeAnnual(plan Plan, p Payment) ([]Recognition, error) {
	if plan.Interval != Yearly {
		return nil, recordErr(p, fmt.Errorf("%w: plan %q is %s", ErrIntervalMismatch, plan.ID, plan.Interval))
	}
	if p.On.IsZero() {
		return nil, recordErr(p, ErrInvalidDate)
	}
	if !p.Amount.IsPositive() {
		return nil, recordErr(p, fmt.Errorf("%w: %s", ErrInvalidAmount, p.Amount.StringFixed()))
	}

	base := p.Amount.DivInt(annualPeriods)
	rows := make([]Recognition, 0, annualPeriods)
	recognized := M(0, p.Amount.Currency())

	month := date.MonthOf(p.On)
	for i := 0; i < annualPeriods; i++ {
		var amount Money
		switch i {
		case 0:
			amount = base.Prorate(p.On.DaysToMonthEnd(), p.On.DaysInMonth())
		case annualPeriods - 1:
			amount = p.Amount.Sub(recognized)
		default:
			amount = base
		}
		rows = append(rows, recognition(p, month, amount))
		recognized = recognized.Add(amount)
		month = month.Next()
	}
	return rows, nil
}
