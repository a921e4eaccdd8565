package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/etnz/revrec"
	"github.com/etnz/revrec/renderer"
)

type reportCmd struct {
	year   int
	state  string
	shards int
	raw    bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the monthly recognized-revenue report" }
func (*reportCmd) Usage() string {
	return `revrec report [-year <year>] [-state <state>] [-shards <n>] [-raw]

  Computes recognized revenue per (month, zip) for the target year and
  jurisdiction and displays it as a table.

Usage Examples:
# Last year's New York report.
$ revrec report

# A specific year.
$ revrec report -year 2018

`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Target reporting year (defaults to last year)")
	f.StringVar(&c.state, "state", revrec.DefaultState, "Reporting jurisdiction")
	f.IntVar(&c.shards, "shards", 0, "Customer shards to recognize concurrently (defaults to the CPU count)")
	f.BoolVar(&c.raw, "raw", false, "Print raw markdown instead of rendering it")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := generateReport(c.year, c.state, c.shards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, fault := range report.Faults {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", fault)
	}

	md := renderer.ReportMarkdown(report)
	if c.raw {
		fmt.Print(md)
	} else {
		printMarkdown(md)
	}
	return subcommands.ExitSuccess
}

// generateReport loads the ledger, backfills address metadata and runs the
// aggregation. Shared by the report and export commands.
func generateReport(year int, state string, shards int) (*revrec.RevenueReport, error) {
	if year == 0 {
		year = time.Now().Year() - 1
	}

	db, err := OpenStore()
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	defer db.Close()

	ledger, err := db.LoadLedger(context.Background())
	if err != nil {
		return nil, fmt.Errorf("could not load ledger: %w", err)
	}
	if missing := ledger.Normalize(); len(missing) > 0 {
		slog.Warn("payments still missing address metadata after backfill",
			"count", len(missing), "payments", missing)
	}

	return revrec.NewRevenueReport(ledger, revrec.ReportOptions{
		Year:   year,
		State:  state,
		Shards: shards,
	})
}
