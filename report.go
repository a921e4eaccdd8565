package revrec

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/etnz/revrec/date"
)

// DefaultState is the reporting jurisdiction when none is configured.
const DefaultState = "NY"

// ReportOptions configures a recognized-revenue report run.
type ReportOptions struct {
	Year   int    // target reporting year
	State  string // reporting jurisdiction, DefaultState when empty
	Shards int    // concurrent customer shards, NumCPU when <= 0
}

// ReportLine is one aggregated (month, zip) total of the final report.
type ReportLine struct {
	Month date.Month
	State string
	Zip   string
	Total Money
}

// RevenueReport is the recognized revenue for one year and jurisdiction,
// grouped by (month, zip) and ordered by month then zip.
type RevenueReport struct {
	Year    int
	State   string
	Lines   []ReportLine
	Dropped int     // recognition rows dropped for missing zip
	Faults  []error // per-record failures, excluded from the totals
}

type groupKey struct {
	month date.Month
	zip   string
}

// partial holds one shard's contribution. Shards share nothing; partials
// are merged by summation, so the merge order is irrelevant.
type partial struct {
	totals  map[groupKey]Money
	dropped int
	faults  []error
}

// NewRevenueReport recognizes every payment in the ledger and aggregates
// the rows falling in the target year and jurisdiction.
//
// Customers are sharded across workers; recognition is independent per
// customer so the only cross-shard step is the commutative sum at the end.
// The report is deterministic regardless of the shard count.
func NewRevenueReport(l *PaymentLedger, opts ReportOptions) (*RevenueReport, error) {
	if opts.Year == 0 {
		return nil, fmt.Errorf("report year is not set")
	}
	if opts.State == "" {
		opts.State = DefaultState
	}
	if opts.Shards <= 0 {
		opts.Shards = runtime.NumCPU()
	}

	customers := l.Customers()
	shards := min(opts.Shards, max(len(customers), 1))
	partials := make([]partial, shards)

	var g errgroup.Group
	for i := 0; i < shards; i++ {
		lo := i * len(customers) / shards
		hi := (i + 1) * len(customers) / shards
		part := &partials[i]
		slice := customers[lo:hi]
		g.Go(func() error {
			part.totals = make(map[groupKey]Money)
			for _, customer := range slice {
				rows, faults := l.Recognize(customer)
				part.faults = append(part.faults, faults...)
				for _, row := range rows {
					if !strings.EqualFold(row.State, opts.State) {
						continue
					}
					if row.Period.Year() != opts.Year {
						continue
					}
					if row.Zip == "" {
						part.dropped++
						slog.Warn("dropping recognition row with missing zip",
							"payment", row.Source,
							"customer", row.Customer,
							"period", row.Period.String())
						continue
					}
					key := groupKey{month: row.Period, zip: row.Zip}
					part.totals[key] = part.totals[key].Add(row.Amount)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &RevenueReport{Year: opts.Year, State: opts.State}
	totals := make(map[groupKey]Money)
	for i := range partials {
		for key, amount := range partials[i].totals {
			totals[key] = totals[key].Add(amount)
		}
		report.Dropped += partials[i].dropped
		// Shards cover contiguous slices of the sorted customer list, so
		// concatenating in shard order keeps the fault list stable.
		report.Faults = append(report.Faults, partials[i].faults...)
	}

	report.Lines = make([]ReportLine, 0, len(totals))
	for key, amount := range totals {
		report.Lines = append(report.Lines, ReportLine{
			Month: key.month,
			State: report.State,
			Zip:   key.zip,
			Total: amount.Round(),
		})
	}
	slices.SortFunc(report.Lines, func(a, b ReportLine) int {
		if c := a.Month.Compare(b.Month); c != 0 {
			return c
		}
		return strings.Compare(a.Zip, b.Zip)
	})
	return report, nil
}
