package glreport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/glreport/date"
)

// SheetHeader is the first row of every sheet.
var SheetHeader = []string{"Number", "Account", "Date", "Identifier", "Tag", "Description", "Amount", "Balance"}

// SummaryFile is the name of the sheet combining every account.
const SummaryFile = "summary.csv"

// SheetRow is one row of an account sheet. Every row carries the account
// number so that combined sheets can be sorted back by account.
type SheetRow struct {
	Number  string
	Account string
	Transaction
	Balance Money // running balance after the row
}

func (r SheetRow) record() []string {
	return []string{
		r.Number,
		r.Account,
		r.Date.String(),
		r.Identifier,
		string(r.Tag),
		r.Description,
		r.Amount.String(),
		r.Balance.String(),
	}
}

// SheetRows returns the opening balance row, a row per transaction with the
// running balance, then the closing balance row.
func (a *Account) SheetRows() []SheetRow {
	rows := make([]SheetRow, 0, len(a.Transactions)+2)
	var balance Money
	if a.HasBalance {
		balance = a.Opening.Amount
		rows = append(rows, SheetRow{Number: a.Number, Account: a.Name, Transaction: a.Opening, Balance: balance})
	}
	for _, tx := range a.Transactions {
		balance = balance.Add(tx.Amount)
		rows = append(rows, SheetRow{Number: a.Number, Account: a.Name, Transaction: tx, Balance: balance})
	}
	if a.HasBalance {
		rows = append(rows, SheetRow{Number: a.Number, Account: a.Name, Transaction: a.Closing, Balance: a.Closing.Amount})
	}
	return rows
}

func writeRows(out io.Writer, rows func(yield func(SheetRow) bool)) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(SheetHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	var err error
	rows(func(r SheetRow) bool {
		err = writer.Write(r.record())
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("failed to write CSV row: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// WriteSheet writes the sheet of one account as CSV.
func WriteSheet(out io.Writer, a *Account) error {
	return writeRows(out, func(yield func(SheetRow) bool) {
		for _, r := range a.SheetRows() {
			if !yield(r) {
				return
			}
		}
	})
}

// WriteSummary writes the rows of every exported account in one CSV.
func WriteSummary(out io.Writer, l *Ledger) error {
	return writeRows(out, func(yield func(SheetRow) bool) {
		for a := range l.Active() {
			for _, r := range a.SheetRows() {
				if !yield(r) {
					return
				}
			}
		}
	})
}

// SheetFile returns the file name of an account sheet.
func SheetFile(a *Account) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\':
			return '_'
		}
		return r
	}, a.Name)
	return a.Number + "_" + name + ".csv"
}

// WriteSheets writes one sheet per exported account and the summary sheet
// into dir, and returns the files written.
func WriteSheets(dir string, l *Ledger) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var files []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file %q: %w", path, err)
		}
		if err := fn(f); err != nil {
			f.Close()
			return fmt.Errorf("writing %q: %w", path, err)
		}
		files = append(files, path)
		return f.Close()
	}
	for a := range l.Active() {
		if err := write(SheetFile(a), func(w io.Writer) error { return WriteSheet(w, a) }); err != nil {
			return files, err
		}
	}
	err := write(SummaryFile, func(w io.Writer) error { return WriteSummary(w, l) })
	return files, err
}

// ReadSheet reads back the transaction rows of a sheet, skipping the balance
// forward rows.
func ReadSheet(r io.Reader) ([]SheetRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(SheetHeader)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if strings.Join(header, ",") != strings.Join(SheetHeader, ",") {
		return nil, fmt.Errorf("unexpected sheet header %q", header)
	}
	var rows []SheetRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		if Tag(record[4]) == TagBalanceForward {
			continue
		}
		row, err := parseRecord(record)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

func parseRecord(record []string) (SheetRow, error) {
	day, err := date.Parse(record[2])
	if err != nil {
		return SheetRow{}, err
	}
	amount, err := ParseMoney(record[6])
	if err != nil {
		return SheetRow{}, err
	}
	balance, err := ParseMoney(record[7])
	if err != nil {
		return SheetRow{}, err
	}
	return SheetRow{
		Number:  record[0],
		Account: record[1],
		Transaction: Transaction{
			Date:        day,
			Identifier:  record[3],
			Tag:         Tag(record[4]),
			Description: record[5],
			Amount:      amount,
			resolved:    true,
		},
		Balance: balance,
	}, nil
}
