package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/glreport/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	currency string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display an account sheet or the summary" }
func (*showCmd) Usage() string {
	return `glr show [-currency <code>] [<account>]

  Displays the sheet of the named account, or the summary of all accounts.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "CAD", "Currency used to display amounts")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = withLogger(ctx)
	l, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		printMarkdown(renderer.SummaryMarkdown(l, c.currency))
		return subcommands.ExitSuccess
	}
	name := strings.Join(f.Args(), " ")
	a := l.Account(name)
	if a == nil {
		fmt.Fprintf(os.Stderr, "Error: account %q not found in ledger\n", name)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AccountSheetMarkdown(a, c.currency))
	return subcommands.ExitSuccess
}
