package revrec

import (
	"errors"
	"testing"

	"github.com/etnz/revrec/date"
)

func TestRecognizeMonthly_FullMonthNoCarryover(t *testing.T) {
	p := nyPayment(1, "alice", "basic", "2019-03-01", 39, "10001")

	rows, err := RecognizeMonthly(basicPlan, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want exactly 1 (no carryover)", len(rows))
	}
	if !rows[0].Amount.Equal(USD(39)) {
		t.Errorf("first row = %s, want the full amount", rows[0].Amount.StringFixed())
	}
	if want := date.MonthOf(p.On); rows[0].Period != want {
		t.Errorf("first row period = %v, want %v", rows[0].Period, want)
	}
}

func TestRecognizeMonthly_Proration(t *testing.T) {
	// $39 paid on the 15th of a 31-day month: 17 of 31 days are covered in
	// January, the remaining 14/31 carry into February.
	p := nyPayment(1, "alice", "basic", "2019-01-15", 39, "10001")

	rows, err := RecognizeMonthly(basicPlan, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := rows[0].Amount.Round().StringFixed(); got != "21.39" {
		t.Errorf("first month = %s, want 21.39", got)
	}
	if got := rows[1].Amount.Round().StringFixed(); got != "17.61" {
		t.Errorf("carryover = %s, want 17.61", got)
	}
	if want := date.NewMonth(2019, 2); rows[1].Period != want {
		t.Errorf("carryover period = %v, want %v", rows[1].Period, want)
	}
}

func TestRecognizeMonthly_SumInvariant(t *testing.T) {
	testCases := []struct {
		name string
		on   string
		amt  float64
	}{
		{"First of month", "2019-01-01", 39},
		{"Mid 31-day month", "2019-01-15", 39},
		{"Mid 30-day month", "2019-04-10", 19.99},
		{"Leap February", "2020-02-29", 7.77},
		{"Last day of year", "2019-12-31", 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := nyPayment(1, "alice", "basic", tc.on, tc.amt, "10001")
			rows, err := RecognizeMonthly(basicPlan, p, nil)
			if err != nil {
				t.Fatal(err)
			}
			sum := USD(0)
			for _, r := range rows {
				sum = sum.Add(r.Amount)
			}
			if !sum.Equal(p.Amount) {
				t.Errorf("rows sum to %s, want exactly %s", sum.StringFixed(), p.Amount.StringFixed())
			}
		})
	}
}

func TestRecognizeMonthly_NextPayment(t *testing.T) {
	testCases := []struct {
		name     string
		on       string
		next     string
		wantRows int
	}{
		// Carryover lands in the month the next payment starts: it is
		// still emitted, the aggregator adds it to that month's total.
		{"Carryover into next payment month", "2019-01-15", "2019-02-01", 2},
		// Next payment arrives within the same month: the chain is
		// superseded before any synthetic row.
		{"Superseded in the same month", "2019-01-15", "2019-01-20", 1},
		{"No next payment", "2019-01-15", "", 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := nyPayment(1, "alice", "basic", tc.on, 39, "10001")
			var next *Payment
			if tc.next != "" {
				n := nyPayment(2, "alice", "basic", tc.next, 39, "10001")
				next = &n
			}
			rows, err := RecognizeMonthly(basicPlan, p, next)
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != tc.wantRows {
				t.Errorf("got %d rows, want %d", len(rows), tc.wantRows)
			}
		})
	}
}

func TestRecognizeMonthly_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		plan    Plan
		payment Payment
		wantErr error
	}{
		{"Yearly plan rejected", schoolPlan, nyPayment(1, "alice", "school", "2019-01-15", 39, "10001"), ErrIntervalMismatch},
		{"Zero amount", basicPlan, nyPayment(2, "alice", "basic", "2019-01-15", 0, "10001"), ErrInvalidAmount},
		{"Negative amount", basicPlan, nyPayment(3, "alice", "basic", "2019-01-15", -5, "10001"), ErrInvalidAmount},
		{"Zero date", basicPlan, Payment{ID: 4, Customer: "alice", Plan: "basic", Amount: USD(39)}, ErrInvalidDate},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RecognizeMonthly(tc.plan, tc.payment, nil)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
