package glreport

import (
	"slices"
	"time"

	"github.com/etnz/glreport/date"
)

// Identifier and descriptions of the synthesized balance forward transactions.
const (
	BalanceForwardIdentifier = "BALFWD"
	OpeningDescription       = "Opening balance"
	ClosingDescription       = "Closing balance"
)

// Account is one account section of the report and its accumulators.
type Account struct {
	Definition

	// Transactions in document order.
	Transactions []Transaction
	// MonthlyTotals are the printed "Totals for <Month>" figures.
	MonthlyTotals map[time.Month]Balance
	// Opening and Closing bracket the year. They are not part of the sums.
	Opening, Closing Transaction
	// PrintedBalance is the (debit, credit) printed on the balance forward line.
	PrintedBalance Balance
	HasBalance     bool

	MonthValid map[time.Month]bool
	Valid      bool

	seen bool // a section header was matched
}

func newAccount(d Definition) *Account {
	return &Account{
		Definition:    d,
		MonthlyTotals: make(map[time.Month]Balance),
		MonthValid:    make(map[time.Month]bool),
	}
}

func (a *Account) append(tx Transaction) { a.Transactions = append(a.Transactions, tx) }

func (a *Account) addTotals(m time.Month, b Balance) {
	a.MonthlyTotals[m] = a.MonthlyTotals[m].Add(b)
}

func (a *Account) setBalanceForward(year int, printed Balance, opening, closing Money) {
	a.PrintedBalance = printed
	a.HasBalance = true
	a.Opening = Transaction{
		Date:        date.StartOfYear(year),
		Identifier:  BalanceForwardIdentifier,
		Amount:      opening,
		Tag:         TagBalanceForward,
		Description: OpeningDescription,
		resolved:    true,
	}
	a.Closing = Transaction{
		Date:        date.EndOfYear(year),
		Identifier:  BalanceForwardIdentifier,
		Amount:      closing,
		Tag:         TagBalanceForward,
		Description: ClosingDescription,
		resolved:    true,
	}
}

// Months returns the months holding transactions or printed totals, in order.
func (a *Account) Months() []time.Month {
	var months []time.Month
	for m := range a.MonthlyTotals {
		months = append(months, m)
	}
	for _, tx := range a.Transactions {
		if !slices.Contains(months, tx.Date.Month()) {
			months = append(months, tx.Date.Month())
		}
	}
	slices.Sort(months)
	return months
}

// InMonth returns the indices of the transactions dated in month m.
func (a *Account) InMonth(m time.Month) []int {
	var idx []int
	for i, tx := range a.Transactions {
		if tx.Date.Month() == m {
			idx = append(idx, i)
		}
	}
	return idx
}

// Reconstructed sums the transactions of month m into (debit, credit).
func (a *Account) Reconstructed(m time.Month) Balance {
	var b Balance
	for _, i := range a.InMonth(m) {
		b = b.Post(a.Transactions[i].Amount)
	}
	return b
}

// Movement sums every transaction into (debit, credit).
func (a *Account) Movement() Balance {
	var b Balance
	for _, tx := range a.Transactions {
		b = b.Post(tx.Amount)
	}
	return b
}

// PrintedTotals sums the printed monthly totals.
func (a *Account) PrintedTotals() Balance {
	var b Balance
	for _, t := range a.MonthlyTotals {
		b = b.Add(t)
	}
	return b
}

// equal compares two balances with the family's notion of equality.
func (a *Account) equal(x, y Balance) bool {
	if a.Family.Relaxed() {
		return x.NetEqual(y)
	}
	return x.Equal(y)
}

// Ambiguous counts the transactions whose sign is still unresolved.
func (a *Account) Ambiguous() int {
	n := 0
	for _, tx := range a.Transactions {
		if tx.Unresolved() {
			n++
		}
	}
	return n
}
