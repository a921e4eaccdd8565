package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type plansCmd struct{}

func (*plansCmd) Name() string     { return "plans" }
func (*plansCmd) Synopsis() string { return "list the declared subscription plans" }
func (*plansCmd) Usage() string {
	return `revrec plans

  Lists the subscription plans declared in the database with their billing
  interval.

`
}

func (*plansCmd) SetFlags(*flag.FlagSet) {}

func (c *plansCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	plans, err := db.Plans(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	b.WriteString("# Plans\n\n")
	b.WriteString("| Plan | Interval |\n|:-----|:---------|\n")
	for _, p := range plans {
		fmt.Fprintf(&b, "| %s | %s |\n", p.ID, p.Interval)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
