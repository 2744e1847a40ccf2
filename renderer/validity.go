package renderer

import (
	"github.com/etnz/glreport"
)

// Validity is the view of a ledger's reconciliation.
type Validity struct {
	Year            int
	Run             string
	Valid           bool
	HasGrandTotal   bool
	GrandTotal      glreport.Balance
	BalanceSum      glreport.Balance
	GrandTotalValid bool
	Accounts        []AccountValidity
}

// AccountValidity is one row of the validity table.
type AccountValidity struct {
	Number        string
	Name          string
	Family        string
	Transactions  int
	Ambiguous     int // transactions whose sign was inferred
	Valid         bool
	InvalidMonths []string
}

// NewValidity summarizes the reconciliation of the exported accounts.
func NewValidity(l *glreport.Ledger) *Validity {
	v := &Validity{
		Year:            l.Year,
		Run:             l.RunID,
		Valid:           l.Valid,
		HasGrandTotal:   l.HasGrandTotal,
		GrandTotal:      l.GrandTotal,
		BalanceSum:      l.BalanceSum,
		GrandTotalValid: l.GrandTotalValid,
	}
	for a := range l.Active() {
		row := AccountValidity{
			Number:       a.Number,
			Name:         a.Name,
			Family:       a.Family.String(),
			Transactions: len(a.Transactions),
			Valid:        a.Valid,
		}
		for _, tx := range a.Transactions {
			if tx.Ambiguous {
				row.Ambiguous++
			}
		}
		for _, m := range a.InvalidMonths() {
			row.InvalidMonths = append(row.InvalidMonths, m.String())
		}
		v.Accounts = append(v.Accounts, row)
	}
	return v
}

// RenderValidity renders the validity report of a ledger as markdown.
func RenderValidity(v *Validity) string {
	partials := map[string]string{
		"validity_accounts": "validity_accounts.md",
	}
	return renderTemplate("validity", "validity.md", partials, v)
}
