// Package cmd implements the CLI application to manage payment facts and
// compute recognized-revenue reports.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/etnz/revrec/store"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "data")
	c.Register(&plansCmd{}, "data")

	c.Register(&reportCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbPath = flag.String("db", "", "Path to the payments database file (defaults to $REVREC_DB or revrec.db)")

// OpenStore is the central function to open the payments database. The env
// lookup happens here, after main has loaded any .env file.
func OpenStore() (*store.Store, error) {
	path := *dbPath
	if path == "" {
		path = os.Getenv("REVREC_DB")
	}
	if path == "" {
		path = "revrec.db"
	}
	return store.Open(path)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
