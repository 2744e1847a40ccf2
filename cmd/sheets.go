package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/glreport"
	"github.com/etnz/glreport/renderer"
	"github.com/google/subcommands"
)

// sheetsCmd holds the flags for the 'sheets' subcommand.
type sheetsCmd struct {
	dir      string
	format   string
	currency string
}

func (*sheetsCmd) Name() string     { return "sheets" }
func (*sheetsCmd) Synopsis() string { return "write one sheet per account and a summary sheet" }
func (*sheetsCmd) Usage() string {
	return `glr sheets [-o <dir>] [-format csv|md|html] [-currency <code>]

  Writes the sheet of every account holding transactions, and the summary of
  all accounts, into the output folder.
`
}

func (c *sheetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "o", "sheets", "Output folder")
	f.StringVar(&c.format, "format", "csv", "Sheet format: csv, md or html")
	f.StringVar(&c.currency, "currency", "CAD", "Currency used to display amounts in md and html sheets")
}

func (c *sheetsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx = withLogger(ctx)
	switch c.format {
	case "csv", "md", "html":
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	l, err := DecodeLedger(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var files []string
	if c.format == "csv" {
		files, err = glreport.WriteSheets(c.dir, l)
	} else {
		files, err = c.writeRendered(l)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing sheets: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully wrote %d sheets to %s\n", len(files), c.dir)
	return subcommands.ExitSuccess
}

// writeRendered writes the markdown or HTML rendering of every sheet.
func (c *sheetsCmd) writeRendered(l *glreport.Ledger) ([]string, error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, err
	}
	var files []string
	write := func(name, title, md string) error {
		content := md
		if c.format == "html" {
			page, err := renderer.HTMLPage(title, md)
			if err != nil {
				return err
			}
			content = page
		}
		path := filepath.Join(c.dir, name+"."+c.format)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", path, err)
		}
		files = append(files, path)
		return nil
	}
	for a := range l.Active() {
		name := strings.TrimSuffix(glreport.SheetFile(a), ".csv")
		if err := write(name, a.Number+" "+a.Name, renderer.AccountSheetMarkdown(a, c.currency)); err != nil {
			return files, err
		}
	}
	title := fmt.Sprintf("General Ledger %d", l.Year)
	name := strings.TrimSuffix(glreport.SummaryFile, ".csv")
	return files, write(name, title, renderer.SummaryMarkdown(l, c.currency))
}
