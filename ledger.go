package revrec

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// PaymentLedger holds the plan reference data and the payment facts for a
// run. Payments are always kept sorted by customer, then date, then id, so
// recognizers can walk each customer's history in order.
type PaymentLedger struct {
	payments []Payment
	plans    map[string]Plan

	sorted bool
	ranges map[string][2]int // customer -> [first, last) index into payments
}

// NewPaymentLedger creates an empty ledger.
func NewPaymentLedger() *PaymentLedger {
	return &PaymentLedger{plans: make(map[string]Plan)}
}

// DeclarePlan registers (or replaces) a plan definition.
func (l *PaymentLedger) DeclarePlan(p Plan) { l.plans[p.ID] = p }

// Plan returns the plan declared with this id.
func (l *PaymentLedger) Plan(id string) (Plan, bool) {
	p, ok := l.plans[id]
	return p, ok
}

// Plans returns all declared plans sorted by id.
func (l *PaymentLedger) Plans() []Plan {
	plans := make([]Plan, 0, len(l.plans))
	for _, p := range l.plans {
		plans = append(plans, p)
	}
	slices.SortFunc(plans, func(a, b Plan) int { return strings.Compare(a.ID, b.ID) })
	return plans
}

// Append adds payments to the ledger.
func (l *PaymentLedger) Append(ps ...Payment) {
	l.payments = append(l.payments, ps...)
	l.sorted = false
}

// Len returns the number of payments in the ledger.
func (l *PaymentLedger) Len() int { return len(l.payments) }

func comparePayments(a, b Payment) int {
	if c := strings.Compare(a.Customer, b.Customer); c != 0 {
		return c
	}
	if a.On.Before(b.On) {
		return -1
	}
	if a.On.After(b.On) {
		return 1
	}
	return cmp.Compare(a.ID, b.ID)
}

func (l *PaymentLedger) ensureSorted() {
	if l.sorted {
		return
	}
	slices.SortStableFunc(l.payments, comparePayments)
	l.ranges = make(map[string][2]int)
	for i, p := range l.payments {
		r, ok := l.ranges[p.Customer]
		if !ok {
			r = [2]int{i, i}
		}
		r[1] = i + 1
		l.ranges[p.Customer] = r
	}
	l.sorted = true
}

// Payments iterates over all payments in (customer, date, id) order.
func (l *PaymentLedger) Payments() iter.Seq[Payment] {
	l.ensureSorted()
	return func(yield func(Payment) bool) {
		for _, p := range l.payments {
			if !yield(p) {
				return
			}
		}
	}
}

// Customers returns the distinct customer ids in sorted order.
func (l *PaymentLedger) Customers() []string {
	l.ensureSorted()
	customers := make([]string, 0, len(l.ranges))
	for c := range l.ranges {
		customers = append(customers, c)
	}
	slices.Sort(customers)
	return customers
}

// PaymentsOf returns the customer's payments in date order. The returned
// slice is a view into the ledger and must not be modified.
func (l *PaymentLedger) PaymentsOf(customer string) []Payment {
	l.ensureSorted()
	r, ok := l.ranges[customer]
	if !ok {
		return nil
	}
	return l.payments[r[0]:r[1]]
}

// Normalize backfills missing State and Zip on each payment from the
// customer's other payments, preferring the nearest earlier payment and
// falling back to the nearest later one. It returns the ids of payments
// still missing address metadata afterwards.
func (l *PaymentLedger) Normalize() []int64 {
	l.ensureSorted()
	for _, r := range l.ranges {
		backfill(l.payments[r[0]:r[1]])
	}
	var missing []int64
	for _, p := range l.payments {
		if p.State == "" || p.Zip == "" {
			missing = append(missing, p.ID)
		}
	}
	slices.Sort(missing)
	return missing
}

// backfill fills empty State/Zip fields within one customer's payments,
// forward first so earlier facts win, then backward for leading gaps.
func backfill(ps []Payment) {
	var state, zip string
	for i := range ps {
		fill(&ps[i], &state, &zip)
	}
	state, zip = "", ""
	for i := len(ps) - 1; i >= 0; i-- {
		fill(&ps[i], &state, &zip)
	}
}

func fill(p *Payment, state, zip *string) {
	if p.State == "" {
		p.State = *state
	} else {
		*state = p.State
	}
	if p.Zip == "" {
		p.Zip = *zip
	} else {
		*zip = p.Zip
	}
}

// Validate checks a single payment against the ledger's reference data.
func (l *PaymentLedger) Validate(p Payment) error {
	if p.On.IsZero() {
		return recordErr(p, ErrInvalidDate)
	}
	if !p.Amount.IsPositive() {
		return recordErr(p, fmt.Errorf("%w: %s", ErrInvalidAmount, p.Amount.StringFixed()))
	}
	if _, ok := l.plans[p.Plan]; !ok {
		return recordErr(p, fmt.Errorf("%w %q", ErrUnknownPlan, p.Plan))
	}
	return nil
}

// Recognize produces all recognition rows for one customer: monthly
// payments go through the carryover chain, yearly payments through the
// twelve-row unfold. Per-record failures are collected and the faulty
// payment skipped; it never aborts the other payments.
func (l *PaymentLedger) Recognize(customer string) ([]Recognition, []error) {
	var rows []Recognition
	var faults []error

	// Split the customer's ordered history by plan interval. Each stream
	// keeps its own date order.
	var monthly []Payment
	for _, p := range l.PaymentsOf(customer) {
		plan, ok := l.plans[p.Plan]
		if !ok {
			faults = append(faults, recordErr(p, fmt.Errorf("%w %q", ErrUnknownPlan, p.Plan)))
			continue
		}
		switch plan.Interval {
		case Monthly:
			monthly = append(monthly, p)
		case Yearly:
			rs, err := RecognizeAnnual(plan, p)
			if err != nil {
				faults = append(faults, err)
				continue
			}
			rows = append(rows, rs...)
		}
	}

	for i, p := range monthly {
		var next *Payment
		if i+1 < len(monthly) {
			next = &monthly[i+1]
		}
		rs, err := RecognizeMonthly(l.plans[p.Plan], p, next)
		if err != nil {
			faults = append(faults, err)
			continue
		}
		rows = append(rows, rs...)
	}
	return rows, faults
}
