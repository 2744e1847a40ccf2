package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/glreport"
	"github.com/etnz/glreport/logger"
	"github.com/google/subcommands"
)

// parseCmd holds the flags for the 'parse' subcommand.
type parseCmd struct {
	strict       bool
	maxAmbiguous int
	workers      int
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "process the report into the JSON ledger" }
func (*parseCmd) Usage() string {
	return `glr parse [-strict] [-max-ambiguous <n>] [-workers <n>]

  Reads the General Ledger report, reconciles every account against its
  printed totals, recovers the unreadable signs and writes the JSON ledger.
`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	def := glreport.DefaultOptions(0)
	f.BoolVar(&c.strict, "strict", false, "Fail months where several sign assignments match the totals")
	f.IntVar(&c.maxAmbiguous, "max-ambiguous", def.MaxAmbiguous, "Maximum number of unreadable signs searched in one account month")
	f.IntVar(&c.workers, "workers", def.Workers, "Number of accounts searched concurrently")
}

func (c *parseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = withLogger(ctx)
	opts := glreport.DefaultOptions(*yearFlag)
	opts.Strict = c.strict
	opts.MaxAmbiguous = c.maxAmbiguous
	opts.Workers = c.workers

	l, err := ProcessReport(ctx, opts)
	if l == nil {
		fmt.Fprintf(os.Stderr, "Error processing report %q: %v\n", ReportPath(), err)
		return subcommands.ExitFailure
	}
	// Months that could not be reconciled are reported, the ledger is still written.
	log := logger.FromContext(ctx)
	for _, e := range unjoin(err) {
		var de *glreport.DisambiguationError
		if errors.As(e, &de) {
			log.Warn().
				Str("account", de.Account).
				Stringer("month", de.Month).
				Int("solutions", de.Solutions).
				Msg(de.Err.Error())
			continue
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}

	if err := EncodeLedger(l); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for a := range l.Active() {
		movement := a.Movement()
		fmt.Printf("%s %s: %d transactions, debits %s, credits %s", a.Number, a.Name, len(a.Transactions), movement.Debit, movement.Credit)
		if a.HasBalance {
			fmt.Printf(", balance forward %s to %s", a.Opening.Amount, a.Closing.Amount)
		}
		fmt.Println()
	}
	fmt.Printf("Successfully wrote ledger to %s\n", LedgerPath())
	return subcommands.ExitSuccess
}

// unjoin returns the errors joined into err.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
