package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/glreport"
	"github.com/google/subcommands"
)

// report returns a one page report holding accounts payable, closed by the
// given grand total.
func report(grandDebit, grandCredit string) string {
	lines := []string{
		"ACME RETAIL LTD",
		"General Ledger Report",
		"For the year ending December 31, 2022",
		"Page 1",
		"Printed by: accounting",
		"Sorted by account number",
		"Date    Reference   Description                   Type",
		strings.Repeat("=", glreport.CreditColumn),
		"2000 Accounts Payable",
		strings.Repeat("-", glreport.CreditColumn),
		"01/15/22AP0640700001Void ck#11256                 AP           800.00",
		"01/22/22AP0642100006CellJan22phone bills          AP                409.23",
		fmt.Sprintf("%-40s%17s%17s", "Totals for January", "800.00", "409.23"),
		"Balance Forward",
		fmt.Sprintf("%15s%15s%15s%18s", "1,000.00 CR", "800.00", "409.23", "609.23 CR"),
		"",
		fmt.Sprintf("%-40s%17s%17s", "Totals for Report", grandDebit, grandCredit),
	}
	return strings.Join(lines, "\n")
}

// setup writes the report into a temporary folder and points the global
// flags at it.
func setup(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	rep := filepath.Join(dir, "GL2022.txt")
	if err := os.WriteFile(rep, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}
	led := filepath.Join(dir, "GL2022_processed.json")

	oldReport, oldLedger, oldYear := reportFile, ledgerFile, yearFlag
	year := 2022
	reportFile, ledgerFile, yearFlag = &rep, &led, &year
	t.Cleanup(func() { reportFile, ledgerFile, yearFlag = oldReport, oldLedger, oldYear })
	return dir
}

func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("failed to parse %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestPaths(t *testing.T) {
	oldReport, oldLedger, oldYear := reportFile, ledgerFile, yearFlag
	defer func() { reportFile, ledgerFile, yearFlag = oldReport, oldLedger, oldYear }()

	empty, year := "", 2021
	reportFile, ledgerFile, yearFlag = &empty, &empty, &year
	if got, want := ReportPath(), "GL2021.txt"; got != want {
		t.Errorf("ReportPath() = %q, want %q", got, want)
	}
	if got, want := LedgerPath(), "GL2021_processed.json"; got != want {
		t.Errorf("LedgerPath() = %q, want %q", got, want)
	}
}

func TestParseAndValidate(t *testing.T) {
	setup(t, report("800.00", "409.23"))

	if status := execute(t, &parseCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("parse = %v, want %v", status, subcommands.ExitSuccess)
	}
	f, err := os.Open(LedgerPath())
	if err != nil {
		t.Fatalf("parse did not write the ledger: %v", err)
	}
	defer f.Close()
	l, err := glreport.DecodeLedger(f)
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	ap := l.Account("Accounts Payable")
	if ap == nil || len(ap.Transactions) != 2 || !l.Valid {
		t.Fatalf("decoded ledger = %+v", l)
	}

	if status := execute(t, &validateCmd{}); status != subcommands.ExitSuccess {
		t.Errorf("validate = %v, want %v", status, subcommands.ExitSuccess)
	}
}

func TestValidate_GrandTotalMismatch(t *testing.T) {
	setup(t, report("900.00", "409.23"))
	// No ledger yet: validate processes the report.
	if status := execute(t, &validateCmd{}); status != subcommands.ExitFailure {
		t.Errorf("validate = %v, want %v", status, subcommands.ExitFailure)
	}
}

func TestParse_MissingReport(t *testing.T) {
	setup(t, "")
	missing := filepath.Join(t.TempDir(), "nope.txt")
	reportFile = &missing
	if status := execute(t, &parseCmd{}); status != subcommands.ExitFailure {
		t.Errorf("parse = %v, want %v", status, subcommands.ExitFailure)
	}
}

func TestQuery(t *testing.T) {
	setup(t, report("800.00", "409.23"))
	l, err := DecodeLedger(context.Background())
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}

	testCases := []struct {
		path string
		want string
	}{
		{path: `$.accounts["Accounts Payable"].valid`, want: "true"},
		{path: `$.accounts["Accounts Payable"].number`, want: `"2000"`},
		{path: `$.grandTotal.debit`, want: `"800.00"`},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := Query(l, tc.path)
			if err != nil {
				t.Fatalf("Query(%q) unexpected error: %v", tc.path, err)
			}
			if got != tc.want {
				t.Errorf("Query(%q) = %s, want %s", tc.path, got, tc.want)
			}
		})
	}

	if _, err := Query(l, "$.["); err == nil {
		t.Errorf("Query() with an invalid path should fail")
	}
	if status := execute(t, &queryCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("query without a path = %v, want %v", status, subcommands.ExitUsageError)
	}
}

func TestSheets(t *testing.T) {
	testCases := []struct {
		format string
		want   []string
	}{
		{format: "csv", want: []string{"2000_Accounts_Payable.csv", "summary.csv"}},
		{format: "md", want: []string{"2000_Accounts_Payable.md", "summary.md"}},
		{format: "html", want: []string{"2000_Accounts_Payable.html", "summary.html"}},
	}
	for _, tc := range testCases {
		t.Run(tc.format, func(t *testing.T) {
			dir := setup(t, report("800.00", "409.23"))
			out := filepath.Join(dir, "out")
			if status := execute(t, &sheetsCmd{}, "-o", out, "-format", tc.format); status != subcommands.ExitSuccess {
				t.Fatalf("sheets = %v, want %v", status, subcommands.ExitSuccess)
			}
			for _, name := range tc.want {
				if _, err := os.Stat(filepath.Join(out, name)); err != nil {
					t.Errorf("sheets did not write %s: %v", name, err)
				}
			}
		})
	}

	setup(t, report("800.00", "409.23"))
	if status := execute(t, &sheetsCmd{}, "-format", "pdf"); status != subcommands.ExitUsageError {
		t.Errorf("sheets -format pdf = %v, want %v", status, subcommands.ExitUsageError)
	}
}

func TestShow(t *testing.T) {
	setup(t, report("800.00", "409.23"))
	if status := execute(t, &showCmd{}, "Accounts", "Payable"); status != subcommands.ExitSuccess {
		t.Errorf("show Accounts Payable = %v, want %v", status, subcommands.ExitSuccess)
	}
	if status := execute(t, &showCmd{}, "Nope"); status != subcommands.ExitFailure {
		t.Errorf("show Nope = %v, want %v", status, subcommands.ExitFailure)
	}
}

func TestTopic(t *testing.T) {
	if status := execute(t, &topicCmd{}, "report"); status != subcommands.ExitSuccess {
		t.Errorf("topic report = %v, want %v", status, subcommands.ExitSuccess)
	}
	if status := execute(t, &topicCmd{}, "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope = %v, want %v", status, subcommands.ExitFailure)
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, name := range []string{"parse", "validate", "sheets", "show", "query", "topic"} {
		sub, ok := c.Sub[name]
		if !ok {
			t.Errorf("Completion() has no %q subcommand", name)
			continue
		}
		if _, ok := sub.Flags["report"]; !ok {
			t.Errorf("%s completion misses the global flags", name)
		}
	}
}
