package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/glreport/renderer"
	"github.com/google/subcommands"
	"github.com/olekukonko/tablewriter"
)

// validateCmd holds the flags for the 'validate' subcommand.
type validateCmd struct {
	markdown bool
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check the ledger against the printed totals" }
func (*validateCmd) Usage() string {
	return `glr validate [-md]

  Prints the validity of every account and of the report grand total. Exits
  with a failure status when anything does not reconcile.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.markdown, "md", false, "Render the validity report as markdown")
}

func (c *validateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = withLogger(ctx)
	l, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	v := renderer.NewValidity(l)
	if c.markdown {
		printMarkdown(renderer.RenderValidity(v))
	} else {
		writeValidity(os.Stdout, v)
	}

	if !v.Valid {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// writeValidity prints the validity as terminal tables.
func writeValidity(w io.Writer, v *renderer.Validity) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Number", "Account", "Family", "Transactions", "Ambiguous", "Status"})
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})
	for _, a := range v.Accounts {
		table.Append([]string{
			a.Number,
			a.Name,
			a.Family,
			strconv.Itoa(a.Transactions),
			strconv.Itoa(a.Ambiguous),
			status(a.Valid, a.InvalidMonths),
		})
	}
	table.Render()

	grand := "missing"
	if v.HasGrandTotal {
		grand = fmt.Sprintf("debit %s, credit %s", v.GrandTotal.Debit, v.GrandTotal.Credit)
	}
	fmt.Fprintf(w, "Totals for Report: %s\n", grand)
	fmt.Fprintf(w, "Sum of balances:   debit %s, credit %s\n", v.BalanceSum.Debit, v.BalanceSum.Credit)
	fmt.Fprintf(w, "Grand total:       %s\n", status(v.GrandTotalValid, nil))
	fmt.Fprintf(w, "Report:            %s\n", status(v.Valid, nil))
}

func status(ok bool, months []string) string {
	if ok {
		return "ok"
	}
	if len(months) == 0 {
		return "FAILED"
	}
	return "FAILED (" + strings.Join(months, ", ") + ")"
}
