package revrec

import "github.com/etnz/revrec/date"

// USD is a helper for test to create dollar money from const
func USD(v float64) Money { return M(v, "USD") }

var (
	basicPlan  = Plan{ID: "basic", Interval: Monthly}
	schoolPlan = Plan{ID: "school", Interval: Yearly}
)

// nyPayment is a helper for test to create a New York payment.
func nyPayment(id int64, customer, plan, on string, amount float64, zip string) Payment {
	return Payment{
		ID:       id,
		Customer: customer,
		Plan:     plan,
		On:       date.MustParse(on),
		Amount:   USD(amount),
		State:    "NY",
		Zip:      zip,
	}
}

// newTestLedger is a helper to build a ledger with the standard test plans.
func newTestLedger(payments ...Payment) *PaymentLedger {
	l := NewPaymentLedger()
	l.DeclarePlan(basicPlan)
	l.DeclarePlan(schoolPlan)
	l.Append(payments...)
	return l
}
