package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/etnz/revrec"
)

type importCmd struct {
	paymentsFile string
	plansFile    string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import payment and plan facts into the database" }
func (*importCmd) Usage() string {
	return `revrec import [-plans <plans.jsonl>] [-payments <payments.jsonl>]

  Imports plan and payment facts from JSONL files into the database.
  Existing records with the same id are replaced, so re-importing the
  same file is safe.

Usage Examples:
# Import plans first, then the payments referencing them.
$ revrec import -plans plans.jsonl -payments payments.jsonl

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.plansFile, "plans", "", "JSONL file of plan facts")
	f.StringVar(&c.paymentsFile, "payments", "", "JSONL file of payment facts")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.plansFile == "" && c.paymentsFile == "" {
		fmt.Fprintf(os.Stderr, "Error: nothing to import, pass -plans and/or -payments\n")
		return subcommands.ExitUsageError
	}

	db, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	if c.plansFile != "" {
		plans, err := decodePlansFile(c.plansFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, p := range plans {
			if err := db.PutPlan(ctx, p); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		fmt.Printf("Imported %d plan(s)\n", len(plans))
	}

	if c.paymentsFile != "" {
		payments, err := decodePaymentsFile(c.paymentsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, p := range payments {
			if err := db.PutPayment(ctx, p); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		fmt.Printf("Imported %d payment(s)\n", len(payments))

		// Validation is advisory at import time: faulty records are also
		// reported and excluded at report time.
		ledger, err := db.LoadLedger(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, p := range payments {
			if err := ledger.Validate(p); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
		}
	}
	return subcommands.ExitSuccess
}

func decodePlansFile(path string) ([]revrec.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open plans file: %w", err)
	}
	defer f.Close()
	plans, err := revrec.DecodePlans(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plans, nil
}

func decodePaymentsFile(path string) ([]revrec.Payment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payments file: %w", err)
	}
	defer f.Close()
	payments, err := revrec.DecodePayments(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return payments, nil
}
