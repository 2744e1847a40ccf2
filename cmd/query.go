package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/glreport"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "run a JSONPath query on the ledger" }
func (*queryCmd) Usage() string {
	return `glr query <jsonpath>

  Evaluates a JSONPath expression against the JSON ledger and prints the
  result as JSON, e.g.

    glr query '$.accounts["Accounts Payable"].monthlyValid'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: query takes exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}
	ctx = withLogger(ctx)
	l, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	out, err := Query(l, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(out)
	return subcommands.ExitSuccess
}

// Query evaluates a JSONPath expression against the JSON form of the ledger
// and returns the result as indented JSON.
func Query(l *glreport.Ledger, path string) (string, error) {
	var buf bytes.Buffer
	if err := glreport.EncodeLedger(&buf, l); err != nil {
		return "", err
	}
	var doc any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		return "", fmt.Errorf("could not read ledger JSON: %w", err)
	}
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	res, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		return "", err
	}
	return string(res), nil
}
