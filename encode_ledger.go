package glreport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/etnz/glreport/date"
)

// balanceForwardJSON is the JSON form of the bracketing transactions.
type balanceForwardJSON struct {
	Opening Transaction `json:"opening"`
	Closing Transaction `json:"closing"`
}

// accountJSON is used to decode an account; encoding goes through
// jsonObjectWriter to keep months in calendar order.
type accountJSON struct {
	Number         string              `json:"number"`
	Family         Family              `json:"family"`
	Valid          bool                `json:"valid"`
	PrintedBalance *Balance            `json:"printedBalance,omitempty"`
	BalanceForward *balanceForwardJSON `json:"balanceForward,omitempty"`
	MonthlyTotals  map[string]Balance  `json:"monthlyTotals"`
	MonthlyValid   map[string]bool     `json:"monthlyValid"`
	Transactions   []Transaction       `json:"transactions"`
}

type ledgerJSON struct {
	Year            int                    `json:"year"`
	Run             string                 `json:"run"`
	Valid           bool                   `json:"valid"`
	GrandTotal      *Balance               `json:"grandTotal,omitempty"`
	GrandTotalValid bool                   `json:"grandTotalValid"`
	BalanceSum      Balance                `json:"balanceSum"`
	Accounts        map[string]accountJSON `json:"accounts"`
}

// EncodeLedger writes the ledger as one indented JSON document. Accounts
// without transactions are left out; the others keep account number order.
func EncodeLedger(w io.Writer, l *Ledger) error {
	var doc jsonObjectWriter
	doc.Append("year", l.Year).
		Append("run", l.RunID).
		Append("valid", l.Valid)
	if l.HasGrandTotal {
		doc.Append("grandTotal", l.GrandTotal)
	}
	doc.Append("grandTotalValid", l.GrandTotalValid).
		Append("balanceSum", l.BalanceSum).
		Object("accounts", func(accounts *jsonObjectWriter) {
			for a := range l.Active() {
				accounts.Object(a.Name, func(o *jsonObjectWriter) { encodeAccount(o, a) })
			}
		})
	raw, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode ledger: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("could not indent ledger: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}

func encodeAccount(o *jsonObjectWriter, a *Account) {
	o.Append("number", a.Number).
		Append("family", a.Family).
		Append("valid", a.Valid)
	if a.HasBalance {
		o.Append("printedBalance", a.PrintedBalance).
			Append("balanceForward", balanceForwardJSON{Opening: a.Opening, Closing: a.Closing})
	}
	months := a.Months()
	o.Object("monthlyTotals", func(m *jsonObjectWriter) {
		for _, month := range months {
			m.Append(month.String(), a.MonthlyTotals[month])
		}
	}).Object("monthlyValid", func(m *jsonObjectWriter) {
		for _, month := range months {
			m.Append(month.String(), a.MonthValid[month])
		}
	}).Append("transactions", a.Transactions)
}

// DecodeLedger reads a ledger written by EncodeLedger. Accounts are ordered by
// number then name, and every transaction sign is final.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	var doc ledgerJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not decode ledger: %w", err)
	}
	l := &Ledger{
		Year:            doc.Year,
		RunID:           doc.Run,
		Valid:           doc.Valid,
		GrandTotalValid: doc.GrandTotalValid,
		BalanceSum:      doc.BalanceSum,
		registry:        DefaultRegistry(),
		index:           make(map[string]*Account),
	}
	if doc.GrandTotal != nil {
		l.GrandTotal, l.HasGrandTotal = *doc.GrandTotal, true
	}
	for name, aj := range doc.Accounts {
		a := newAccount(Definition{Number: aj.Number, Name: name, Family: aj.Family})
		a.seen = true
		a.Valid = aj.Valid
		if aj.PrintedBalance != nil {
			a.PrintedBalance, a.HasBalance = *aj.PrintedBalance, true
		}
		if aj.BalanceForward != nil {
			a.Opening, a.Closing = aj.BalanceForward.Opening, aj.BalanceForward.Closing
			a.Opening.resolved, a.Closing.resolved = true, true
		}
		for k, b := range aj.MonthlyTotals {
			m, err := date.ParseMonth(k)
			if err != nil {
				return nil, fmt.Errorf("account %q: %w", name, err)
			}
			a.MonthlyTotals[m] = b
		}
		for k, v := range aj.MonthlyValid {
			m, err := date.ParseMonth(k)
			if err != nil {
				return nil, fmt.Errorf("account %q: %w", name, err)
			}
			a.MonthValid[m] = v
		}
		a.Transactions = aj.Transactions
		for i := range a.Transactions {
			a.Transactions[i].resolved = true
		}
		l.Accounts = append(l.Accounts, a)
		l.index[name] = a
	}
	sort.Slice(l.Accounts, func(i, j int) bool {
		x, y := l.Accounts[i], l.Accounts[j]
		if x.Number != y.Number {
			return x.Number < y.Number
		}
		return x.Name < y.Name
	})
	return l, nil
}
