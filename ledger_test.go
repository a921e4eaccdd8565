package revrec

import (
	"errors"
	"slices"
	"testing"
)

func TestPaymentLedger_PaymentsOf(t *testing.T) {
	// Appended out of order; the ledger sorts by customer, date, id.
	ledger := newTestLedger(
		nyPayment(3, "bob", "basic", "2019-03-01", 39, "11201"),
		nyPayment(2, "alice", "basic", "2019-02-01", 39, "10001"),
		nyPayment(1, "alice", "basic", "2019-01-01", 39, "10001"),
	)

	got := ledger.PaymentsOf("alice")
	if len(got) != 2 {
		t.Fatalf("got %d payments, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("payments out of order: got ids %d, %d", got[0].ID, got[1].ID)
	}
	if got := ledger.PaymentsOf("nobody"); got != nil {
		t.Errorf("PaymentsOf(nobody) = %v, want nil", got)
	}
	if got := ledger.Customers(); !slices.Equal(got, []string{"alice", "bob"}) {
		t.Errorf("Customers() = %v, want [alice bob]", got)
	}
}

func TestPaymentLedger_Normalize(t *testing.T) {
	noAddress := func(id int64, customer, on string) Payment {
		p := nyPayment(id, customer, "basic", on, 39, "")
		p.State, p.Zip = "", ""
		return p
	}

	ledger := newTestLedger(
		// alice: the middle payment misses its address, the earlier one wins.
		nyPayment(1, "alice", "basic", "2019-01-01", 39, "10001"),
		noAddress(2, "alice", "2019-02-01"),
		nyPayment(3, "alice", "basic", "2019-03-01", 39, "10002"),
		// bob: only a later payment has the address, backward fill applies.
		noAddress(4, "bob", "2019-01-01"),
		nyPayment(5, "bob", "basic", "2019-02-01", 39, "11201"),
		// carol: no payment carries an address at all.
		noAddress(6, "carol", "2019-01-01"),
	)

	missing := ledger.Normalize()

	if got := ledger.PaymentsOf("alice")[1].Zip; got != "10001" {
		t.Errorf("alice backfilled zip = %q, want 10001 (nearest earlier payment)", got)
	}
	if got := ledger.PaymentsOf("bob")[0].Zip; got != "11201" {
		t.Errorf("bob backfilled zip = %q, want 11201 (nearest later payment)", got)
	}
	if !slices.Equal(missing, []int64{6}) {
		t.Errorf("missing = %v, want [6]", missing)
	}
}

func TestPaymentLedger_Validate(t *testing.T) {
	ledger := newTestLedger()
	testCases := []struct {
		name    string
		payment Payment
		wantErr error
	}{
		{"Valid", nyPayment(1, "alice", "basic", "2019-01-01", 39, "10001"), nil},
		{"Unknown plan", nyPayment(2, "alice", "gold", "2019-01-01", 39, "10001"), ErrUnknownPlan},
		{"Zero amount", nyPayment(3, "alice", "basic", "2019-01-01", 0, "10001"), ErrInvalidAmount},
		{"Zero date", Payment{ID: 4, Customer: "alice", Plan: "basic", Amount: USD(39)}, ErrInvalidDate},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.Validate(tc.payment)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPaymentLedger_Recognize(t *testing.T) {
	ledger := newTestLedger(
		nyPayment(1, "alice", "basic", "2019-01-01", 39, "10001"),
		nyPayment(2, "alice", "school", "2019-01-01", 1200, "10001"),
		nyPayment(3, "alice", "gold", "2019-02-01", 10, "10001"), // plan never declared
	)

	rows, faults := ledger.Recognize("alice")

	// 1 row from the monthly payment on the 1st, 12 from the annual one.
	if len(rows) != 13 {
		t.Errorf("got %d rows, want 13", len(rows))
	}
	if len(faults) != 1 {
		t.Fatalf("got %d faults, want 1", len(faults))
	}
	if !errors.Is(faults[0], ErrUnknownPlan) {
		t.Errorf("fault = %v, want %v", faults[0], ErrUnknownPlan)
	}
}

func TestPaymentLedger_RecognizeChains(t *testing.T) {
	// Two consecutive mid-month payments: the first chain's carryover
	// lands in February next to the second payment's own proration.
	ledger := newTestLedger(
		nyPayment(1, "alice", "basic", "2019-01-15", 39, "10001"),
		nyPayment(2, "alice", "basic", "2019-02-15", 39, "10001"),
	)

	rows, faults := ledger.Recognize("alice")
	if len(faults) != 0 {
		t.Fatalf("unexpected faults: %v", faults)
	}

	sum := USD(0)
	feb := USD(0)
	for _, r := range rows {
		sum = sum.Add(r.Amount)
		if r.Period.String() == "2019-02" {
			feb = feb.Add(r.Amount)
		}
	}
	if !sum.Equal(USD(78)) {
		t.Errorf("rows sum to %s, want exactly 78.00", sum.StringFixed())
	}
	// February holds the first payment's carryover (14/31 * 39) plus the
	// second payment's own proration (14/28 * 39).
	if got := feb.Round().StringFixed(); got != "37.11" {
		t.Errorf("february total = %s, want 37.11", got)
	}
}
