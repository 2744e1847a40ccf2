package glreport

import (
	"fmt"

	"github.com/etnz/glreport/date"
)

// Tag is the short code printed on an entry line telling how it was recorded.
type Tag string

const (
	TagAP Tag = "AP" // accounts payable
	TagAR Tag = "AR" // accounts receivable
	TagGL Tag = "GL" // general journal
	TagPS Tag = "PS" // point of sale
	TagPR Tag = "PR" // payroll
	// TagBalanceForward marks the synthesized opening and closing transactions.
	TagBalanceForward Tag = "BF"
)

// Tags is the closed set of markers recognized past TagColumn, in precedence order.
var Tags = []Tag{TagAP, TagAR, TagGL, TagPS, TagPR}

// Key identifies a transaction for deduplication: two transactions with the
// same date and identifier are the same transaction, whatever their amount.
type Key struct {
	Date       date.Date
	Identifier string
}

func (k Key) String() string { return fmt.Sprintf("%s||%s", k.Date, k.Identifier) }

// Transaction is one entry line of the report.
type Transaction struct {
	Date        date.Date `json:"date"`
	Identifier  string    `json:"identifier"`
	Amount      Money     `json:"amount"`
	Tag         Tag       `json:"tag"`
	Ambiguous   bool      `json:"ambiguous,omitempty"`
	Description string    `json:"description"`

	// resolved is set once the sign of an ambiguous amount has been decided.
	resolved bool
}

// Key returns the deduplication identity of the transaction.
func (tx Transaction) Key() Key { return Key{Date: tx.Date, Identifier: tx.Identifier} }

// IsDebit reports whether the amount goes in the debit column.
func (tx Transaction) IsDebit() bool { return !tx.Amount.IsNegative() }

// Unresolved reports whether the sign still awaits disambiguation.
func (tx Transaction) Unresolved() bool { return tx.Ambiguous && !tx.resolved }

func (tx Transaction) String() string {
	return fmt.Sprintf("%s||%s||%s||%s", tx.Date, tx.Identifier, tx.Amount, tx.Description)
}
