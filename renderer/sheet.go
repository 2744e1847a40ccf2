package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/etnz/glreport"
	md "github.com/nao1215/markdown"
)

// AccountSheetMarkdown renders the sheet of one account: its balance forward
// rows bracketing the transactions, with the running balance.
func AccountSheetMarkdown(a *glreport.Account, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %s", a.Number, a.Name))
	status := "reconciled"
	if !a.Valid {
		status = md.Bold("not reconciled")
	}
	doc.PlainText("")
	doc.PlainText(fmt.Sprintf("%s account, %d transactions, %s.", a.Family, len(a.Transactions), status))
	doc.PlainText("")
	doc.Table(md.TableSet{
		Header: []string{"Date", "Identifier", "Tag", "Description", "Debit", "Credit", "Balance"},
		Rows:   sheetRows(a.SheetRows(), currency, false),
	})
	doc.Build()

	ConditionalBlock(&buf, func(w io.Writer) bool {
		months := a.InvalidMonths()
		if len(months) == 0 {
			return false
		}
		sub := md.NewMarkdown(w)
		sub.PlainText("")
		sub.H2("Unreconciled months")
		sub.PlainText("")
		items := make([]string, len(months))
		for i, m := range months {
			items[i] = fmt.Sprintf("%s: printed %s, reconstructed %s", m, a.MonthlyTotals[m], a.Reconstructed(m))
		}
		sub.BulletList(items...)
		sub.Build()
		return true
	})
	return buf.String()
}

// SummaryMarkdown renders the rows of every exported account in one table.
func SummaryMarkdown(l *glreport.Ledger, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("General Ledger %d", l.Year))
	doc.PlainText("")
	var rows [][]string
	for a := range l.Active() {
		rows = append(rows, sheetRows(a.SheetRows(), currency, true)...)
	}
	doc.Table(md.TableSet{
		Header: []string{"Number", "Account", "Date", "Identifier", "Tag", "Description", "Debit", "Credit", "Balance"},
		Rows:   rows,
	})
	doc.Build()
	return buf.String()
}

func sheetRows(rows []glreport.SheetRow, currency string, withAccount bool) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		debit, credit := "", ""
		if r.IsDebit() {
			debit = r.Amount.Format(currency)
		} else {
			credit = r.Amount.Neg().Format(currency)
		}
		desc := r.Description
		if r.Ambiguous {
			desc += " (sign inferred)"
		}
		row := []string{r.Date.String(), r.Identifier, string(r.Tag), desc, debit, credit, r.Balance.Format(currency)}
		if withAccount {
			row = append([]string{r.Number, r.Account}, row...)
		}
		out = append(out, row)
	}
	return out
}
