package glreport

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/glreport/date"
)

// dateIn returns a day of month m in 2022.
func dateIn(m time.Month) date.Date { return date.New(2022, m, 15) }

// entry lays out an entry line the way the printer does: the tag at
// TagColumn, debits ending 5 columns before CreditColumn and credits ending on
// it. A leading '-' on amount makes it a credit.
func entry(day, id, desc string, tag Tag, amount string) string {
	head := day + id + desc
	if len(head) > TagColumn {
		panic(fmt.Sprintf("entry %q overflows the tag column", head))
	}
	line := head + strings.Repeat(" ", TagColumn-len(head)) + string(tag)
	end := CreditColumn - 5
	if strings.HasPrefix(amount, "-") {
		amount, end = amount[1:], CreditColumn
	}
	return line + strings.Repeat(" ", end-len(line)-len(amount)) + amount
}

// polluted lays out an entry whose description runs into the tag and pushes
// the amount past CreditColumn, so its sign cannot be read.
func polluted(day, id, desc string, tag Tag, amount string) string {
	line := day + id + desc + string(tag) + amount
	if len(line) <= CreditColumn {
		panic(fmt.Sprintf("polluted entry %q does not reach past the credit column", line))
	}
	return line
}

// reportBuilder writes report text page by page.
type reportBuilder struct {
	pages [][]string
}

func newReport() *reportBuilder {
	b := &reportBuilder{}
	b.page()
	return b
}

// page starts a new page with its preamble.
func (b *reportBuilder) page() *reportBuilder {
	n := len(b.pages) + 1
	b.pages = append(b.pages, []string{
		"ACME RETAIL LTD",
		"General Ledger Report",
		"For the year ending December 31, 2022",
		fmt.Sprintf("Page %d", n),
		"Printed by: accounting",
		"Sorted by account number",
		"Date    Reference   Description                   Type",
		strings.Repeat("=", CreditColumn),
	})
	return b
}

func (b *reportBuilder) lines(lines ...string) *reportBuilder {
	last := len(b.pages) - 1
	b.pages[last] = append(b.pages[last], lines...)
	return b
}

func (b *reportBuilder) header(title string) *reportBuilder {
	return b.lines(title, strings.Repeat("-", CreditColumn))
}

func (b *reportBuilder) totals(m time.Month, debit, credit string) *reportBuilder {
	label := "Totals for " + m.String()
	return b.lines(fmt.Sprintf("%-40s%17s%17s", label, debit, credit))
}

// balanceForward prints the balance forward label and its figures line, e.g.
// opening "1,000.00 DR".
func (b *reportBuilder) balanceForward(opening, debits, credits, closing string) *reportBuilder {
	return b.lines(
		"Balance Forward",
		fmt.Sprintf("%15s%15s%15s%18s", opening, debits, credits, closing),
		"",
	)
}

func (b *reportBuilder) grandTotal(debit, credit string) *reportBuilder {
	return b.lines(fmt.Sprintf("%-40s%17s%17s", "Totals for Report", debit, credit))
}

func (b *reportBuilder) String() string {
	pages := make([]string, len(b.pages))
	for i, p := range b.pages {
		pages[i] = strings.Join(p, "\n")
	}
	return strings.Join(pages, PageBreak)
}

// Lines used across tests, as printed on real reports.
const (
	creditLine    = "01/22/22AP0642100006CellJan22phone bills          AP                409.23"
	debitLine     = "01/15/22AP0640700001Void ck#11256                 AP           800.00"
	ambiguousLine = "02/27/22APR22-06Record Abdn landlord Fairchild security deposit paGL16,849.58"
)

// sampleReport spans three pages: two accounts on the first, and accounts
// payable continued from the second page onto the third.
func sampleReport(grandDebit, grandCredit string) string {
	return newReport().
		header("1010-01 Cash Float-Ware").
		lines(
			entry("01/05/22", "CF010522", "Float top-up", TagGL, "250.00"),
			entry("01/20/22", "CF012022", "Float return", TagGL, "-100.00"),
		).
		totals(time.January, "250.00", "100.00").
		balanceForward("500.00 DR", "250.00", "100.00", "650.00 DR").
		header("1300-02 Inventory-Hby").
		lines(
			entry("01/03/22", "AP0001234567", "Stock purchase", TagAP, "500.00"),
			entry("01/12/22", "TRF00112", "Transfer to Ware", Tag("WARE"), "-120.00"),
			entry("01/15/22", "CI000001", "CONS-IN consignment", TagGL, "75.00"),
			"          consignment note 4411",
		).
		totals(time.January, "620.00", "240.00").
		balanceForward("1,000.00 DR", "620.00", "240.00", "1,380.00 DR").
		page().
		header("2000 Accounts Payable").
		lines(
			creditLine,
			"          Bell Canada invoice",
			debitLine,
		).
		totals(time.January, "800.00", "409.23").
		page().
		header("2000 Accounts Payable").
		lines(
			ambiguousLine,
			entry("02/10/22", "AP0642100011", "Rent Feb", TagAP, "-1,200.00"),
		).
		totals(time.February, "16,849.58", "1,200.00").
		balanceForward("3,000.00 CR", "17,649.58", "1,609.23", "13,040.35 DR").
		grandTotal(grandDebit, grandCredit).
		String()
}

// validReport is sampleReport with a matching grand total.
func validReport() string { return sampleReport("18,519.58", "1,949.23") }
