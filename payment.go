package revrec

import (
	"fmt"
	"strings"

	"github.com/etnz/revrec/date"
)

// Interval is the billing interval of a subscription plan.
type Interval int

const (
	// Monthly plans bill one month at a time.
	Monthly Interval = iota
	// Yearly plans bill twelve months upfront.
	Yearly
)

func (i Interval) String() string {
	switch i {
	case Monthly:
		return "month"
	case Yearly:
		return "year"
	default:
		return "unknown"
	}
}

// ParseInterval parses a plan interval. It accepts the wire values "month"
// and "year" and their common spellings.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(s) {
	case "month", "monthly":
		return Monthly, nil
	case "year", "yearly", "annual":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown plan interval %q", s)
	}
}

// Plan is immutable reference data describing a subscription plan.
type Plan struct {
	ID       string
	Interval Interval
}

// Payment is a single subscription payment fact. Payments are read-only
// inputs; State and Zip may be empty until backfilled from another payment
// of the same customer.
type Payment struct {
	ID       int64 // unique, stable ordering key
	Customer string
	Plan     string
	On       date.Date
	Amount   Money
	State    string
	Zip      string
}

// Recognition is one (customer, month, amount) output fact: the revenue
// from a source payment recognized in that month.
type Recognition struct {
	Customer string
	Period   date.Month
	Amount   Money
	State    string
	Zip      string
	Source   int64 // id of the payment this row derives from
}

// recognition returns a row for p in the given period.
func recognition(p Payment, period date.Month, amount Money) Recognition {
	return Recognition{
		Customer: p.Customer,
		Period:   period,
		Amount:   amount,
		State:    p.State,
		Zip:      p.Zip,
		Source:   p.ID,
	}
}
