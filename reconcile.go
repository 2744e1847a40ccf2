package glreport

import "time"

// reconcile compares the reconstructed monthly sums against the printed ones
// and computes every validity flag.
func (l *Ledger) reconcile() {
	for _, a := range l.Accounts {
		if a.seen {
			a.reconcile()
		}
	}
	l.finalize()
}

func (a *Account) reconcile() {
	for _, m := range a.Months() {
		a.reconcileMonth(m)
	}
	a.updateValid()
}

// reconcileMonth checks month m. Inventory accounts only need the same net
// movement: their transfers can land in either column.
func (a *Account) reconcileMonth(m time.Month) bool {
	ok := a.equal(a.Reconstructed(m), a.MonthlyTotals[m])
	a.MonthValid[m] = ok
	return ok
}

// updateValid sets the account validity from its month flags and the sum of
// its printed totals.
func (a *Account) updateValid() {
	valid := a.HasBalance && a.PrintedTotals().Equal(a.PrintedBalance)
	for _, ok := range a.MonthValid {
		valid = valid && ok
	}
	a.Valid = valid
}

// InvalidMonths returns the months that failed reconciliation, in order.
func (a *Account) InvalidMonths() []time.Month {
	var months []time.Month
	for _, m := range a.Months() {
		if !a.MonthValid[m] {
			months = append(months, m)
		}
	}
	return months
}

// finalize computes the report validity. The grand total is checked against
// every account the report printed, including the ones without transactions.
func (l *Ledger) finalize() {
	var sum Balance
	valid := true
	for _, a := range l.Accounts {
		if !a.seen {
			continue
		}
		a.updateValid()
		valid = valid && a.Valid
		sum = sum.Add(a.PrintedBalance)
	}
	l.BalanceSum = sum
	l.GrandTotalValid = l.HasGrandTotal && sum.Equal(l.GrandTotal)
	l.Valid = valid && l.GrandTotalValid
}
