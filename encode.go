package revrec

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/etnz/revrec/date"
)

// paymentJSON is the JSONL wire form of a payment fact.
type paymentJSON struct {
	ID       int64           `json:"id"`
	Customer string          `json:"customer"`
	Plan     string          `json:"plan"`
	On       string          `json:"paid_on"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
	State    string          `json:"state,omitempty"`
	Zip      string          `json:"zip,omitempty"`
}

func (j paymentJSON) payment() (Payment, error) {
	on, err := date.Parse(j.On)
	if err != nil {
		return Payment{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return Payment{
		ID:       j.ID,
		Customer: j.Customer,
		Plan:     j.Plan,
		On:       on,
		Amount:   M(j.Amount, j.Currency),
		State:    j.State,
		Zip:      j.Zip,
	}, nil
}

// DecodePayments decodes payment facts from a stream of JSONL data.
// Blank lines are skipped; a malformed line fails with its line number.
func DecodePayments(r io.Reader) ([]Payment, error) {
	var payments []Payment
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var j paymentJSON
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("line %d: invalid payment: %w", line, err)
		}
		p, err := j.payment()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		payments = append(payments, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading payments: %w", err)
	}
	return payments, nil
}

// planJSON is the JSONL wire form of a plan fact.
type planJSON struct {
	ID       string `json:"id"`
	Interval string `json:"interval"`
}

// DecodePlans decodes plan facts from a stream of JSONL data.
func DecodePlans(r io.Reader) ([]Plan, error) {
	var plans []Plan
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var j planJSON
		if err := json.Unmarshal(raw, &j); err != nil {
			return nil, fmt.Errorf("line %d: invalid plan: %w", line, err)
		}
		interval, err := ParseInterval(j.Interval)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		plans = append(plans, Plan{ID: j.ID, Interval: interval})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading plans: %w", err)
	}
	return plans, nil
}

// reportLineJSON is the JSONL wire form of one aggregated report row.
type reportLineJSON struct {
	Month string `json:"month"`
	State string `json:"state"`
	Zip   string `json:"zip"`
	Total string `json:"recognized_total"`
}

// EncodeReport writes the report as JSONL, one aggregated row per line in
// month order.
func EncodeReport(w io.Writer, report *RevenueReport) error {
	enc := json.NewEncoder(w)
	for _, l := range report.Lines {
		row := reportLineJSON{
			Month: l.Month.String(),
			State: l.State,
			Zip:   l.Zip,
			Total: l.Total.StringFixed(),
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encoding report row %s/%s: %w", row.Month, row.Zip, err)
		}
	}
	return nil
}
