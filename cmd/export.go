package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/revrec"
)

type exportCmd struct {
	year   int
	state  string
	shards int
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the recognized-revenue report as JSONL" }
func (*exportCmd) Usage() string {
	return `revrec export [-year <year>] [-state <state>] [-shards <n>]

  Computes the recognized-revenue report and writes it to stdout as JSONL,
  one aggregated (month, zip) row per line, for downstream consumption.

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Target reporting year (defaults to last year)")
	f.StringVar(&c.state, "state", revrec.DefaultState, "Reporting jurisdiction")
	f.IntVar(&c.shards, "shards", 0, "Customer shards to recognize concurrently (defaults to the CPU count)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := generateReport(c.year, c.state, c.shards)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, fault := range report.Faults {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", fault)
	}
	if err := revrec.EncodeReport(os.Stdout, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
