package revrec

import "testing"

func TestMoney_Prorate(t *testing.T) {
	testCases := []struct {
		name     string
		amount   Money
		num, den int
		want     string // rounded to cents
	}{
		{"Full month", USD(39), 31, 31, "39.00"},
		{"17 of 31 days", USD(39), 17, 31, "21.39"},
		{"14 of 31 days", USD(39), 14, 31, "17.61"},
		{"Half", USD(0.01), 1, 2, "0.01"}, // rounds half away from zero
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.amount.Prorate(tc.num, tc.den).Round().StringFixed(); got != tc.want {
				t.Errorf("Prorate(%d, %d) = %s, want %s", tc.num, tc.den, got, tc.want)
			}
		})
	}
}

func TestMoney_ProrationIsExactBySubtraction(t *testing.T) {
	// The carryover is defined as amount minus the prorated part, so the
	// two always recompose the original amount exactly.
	amount := USD(39)
	first := amount.Prorate(17, 31)
	carry := amount.Sub(first)
	if !first.Add(carry).Equal(amount) {
		t.Errorf("%s + %s != %s", first.StringFixed(), carry.StringFixed(), amount.StringFixed())
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	// The zero Money has no currency and adopts its operand's one, which
	// is what aggregation map values rely on.
	var zero Money
	sum := zero.Add(USD(10))
	if sum.Currency() != "USD" {
		t.Errorf("Currency() = %q, want USD", sum.Currency())
	}
	if !sum.Equal(USD(10)) {
		t.Errorf("sum = %s, want 10.00", sum.StringFixed())
	}
}

func TestMoney_Min(t *testing.T) {
	if got := USD(5).Min(USD(3)); !got.Equal(USD(3)) {
		t.Errorf("Min = %s, want 3.00", got.StringFixed())
	}
	if got := USD(3).Min(USD(5)); !got.Equal(USD(3)) {
		t.Errorf("Min = %s, want 3.00", got.StringFixed())
	}
}

func TestMoney_DivInt(t *testing.T) {
	if got := USD(1200).DivInt(12); !got.Equal(USD(100)) {
		t.Errorf("DivInt(12) = %s, want 100.00", got.StringFixed())
	}
}
