// Package cmd implements the glr command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/glreport"
	"github.com/etnz/glreport/logger"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&parseCmd{}, "ledger")
	c.Register(&validateCmd{}, "ledger")
	c.Register(&queryCmd{}, "ledger")

	c.Register(&sheetsCmd{}, "output")
	c.Register(&showCmd{}, "output")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	yearFlag   = flag.Int("year", envInt(EnvYear, time.Now().Year()-1), "Fiscal year of the report")
	reportFile = flag.String("report", os.Getenv(EnvReportFile), "Path to the General Ledger report text. Defaults to GL<year>.txt")
	ledgerFile = flag.String("ledger-file", os.Getenv(EnvLedgerFile), "Path to the processed JSON ledger. Defaults to GL<year>_processed.json")
	verbose    = flag.Bool("v", os.Getenv(EnvVerbose) == "true", "Log debug information on stderr")
)

func envInt(name string, def int) int {
	v, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return def
	}
	return v
}

// ReportPath returns the report file to read.
func ReportPath() string {
	if *reportFile != "" {
		return *reportFile
	}
	return fmt.Sprintf("GL%d.txt", *yearFlag)
}

// LedgerPath returns the JSON ledger file to read or write.
func LedgerPath() string {
	if *ledgerFile != "" {
		return *ledgerFile
	}
	return fmt.Sprintf("GL%d_processed.json", *yearFlag)
}

// withLogger installs the console logger in the context.
func withLogger(ctx context.Context) context.Context {
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return logger.WithContext(ctx, logger.New(level))
}

// ProcessReport reads the report file and processes it. Disambiguation
// failures are returned along with the ledger.
func ProcessReport(ctx context.Context, opts glreport.Options) (*glreport.Ledger, error) {
	path := ReportPath()
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read report %q: %w", path, err)
	}
	return glreport.Process(ctx, string(content), opts)
}

// EncodeLedger writes the ledger into the app ledger file.
func EncodeLedger(l *glreport.Ledger) error {
	path := LedgerPath()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create ledger file %q: %w", path, err)
	}
	if err := glreport.EncodeLedger(f, l); err != nil {
		f.Close()
		return fmt.Errorf("could not write ledger file %q: %w", path, err)
	}
	return f.Close()
}

// DecodeLedger reads the app ledger file. When it does not exist yet the
// report is processed instead.
func DecodeLedger(ctx context.Context) (*glreport.Ledger, error) {
	path := LedgerPath()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log := logger.FromContext(ctx)
		log.Warn().Str("ledger", path).Msg("ledger does not exist, processing the report instead")
		l, err := ProcessReport(ctx, glreport.DefaultOptions(*yearFlag))
		if l == nil {
			return nil, err
		}
		if err != nil {
			log.Warn().Err(err).Msg("some months could not be reconciled")
		}
		return l, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return glreport.DecodeLedger(f)
}

// printMarkdown renders markdown in the terminal, or prints it raw when it
// cannot be rendered.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
