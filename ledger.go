package glreport

import (
	"context"
	"iter"
	"runtime"

	"github.com/etnz/glreport/logger"
	"github.com/google/uuid"
)

// Options configures a run.
type Options struct {
	// Year is the fiscal year of the report. Entry dates carry it already; it
	// dates the balance forward transactions.
	Year int
	// Strict fails a month when several sign assignments reproduce its totals.
	Strict bool
	// MaxAmbiguous bounds the ambiguous transactions searched per account month.
	MaxAmbiguous int
	// Workers bounds the accounts disambiguated concurrently.
	Workers int
	// Registry defaults to DefaultRegistry.
	Registry *Registry
}

// DefaultOptions returns the options of a plain run for that year.
func DefaultOptions(year int) Options {
	return Options{
		Year:         year,
		MaxAmbiguous: DefaultMaxAmbiguous,
		Workers:      runtime.GOMAXPROCS(0),
	}
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return 1
	}
	return o.Workers
}

// Ledger is the state of one run over a report: one account per registry
// entry, in account number order.
type Ledger struct {
	Year     int
	RunID    string
	Accounts []*Account

	GrandTotal      Balance
	HasGrandTotal   bool
	BalanceSum      Balance // sum of the printed balances of every account in the report
	GrandTotalValid bool
	Valid           bool

	registry *Registry
	index    map[string]*Account // accounts by name
}

// NewLedger creates an empty ledger holding every account of the registry.
func NewLedger(reg *Registry, year int) *Ledger {
	l := &Ledger{
		Year:     year,
		RunID:    uuid.NewString(),
		registry: reg,
		index:    make(map[string]*Account),
	}
	for _, d := range reg.Definitions() {
		a := newAccount(d)
		l.Accounts = append(l.Accounts, a)
		l.index[d.Name] = a
	}
	return l
}

// Account returns the account with that name, or nil.
func (l *Ledger) Account(name string) *Account { return l.index[name] }

// Active iterates over the accounts holding transactions, in order. Those are
// the accounts exported.
func (l *Ledger) Active() iter.Seq[*Account] {
	return func(yield func(*Account) bool) {
		for _, a := range l.Accounts {
			if len(a.Transactions) == 0 {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// Transactions iterates over the transactions of the active accounts.
func (l *Ledger) Transactions() iter.Seq2[*Account, Transaction] {
	return func(yield func(*Account, Transaction) bool) {
		for a := range l.Active() {
			for _, tx := range a.Transactions {
				if !yield(a, tx) {
					return
				}
			}
		}
	}
}

// Process parses the report text, reconciles it against its printed totals,
// and resolves ambiguous signs.
//
// A parse error aborts the run and no ledger is returned. Failed searches do
// not: the ledger is returned along with the joined *DisambiguationError of
// every account month that could not be reconciled.
func Process(ctx context.Context, text string, opts Options) (*Ledger, error) {
	log := logger.FromContext(ctx)
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	l := NewLedger(reg, opts.Year)
	log = logger.WithFields(log, map[string]interface{}{"run": l.RunID, "year": opts.Year})
	ctx = logger.WithContext(ctx, log)

	report := SplitReport(text)
	log.Debug().Int("pages", len(report.Pages)).Int("lines", report.Lines()).Msg("report split")
	if err := l.parse(ctx, report); err != nil {
		return nil, err
	}
	l.reconcile()

	errs, err := l.disambiguate(ctx, opts)
	if err != nil {
		return nil, err
	}
	l.finalize()
	log.Debug().Bool("valid", l.Valid).Bool("grandTotal", l.GrandTotalValid).Msg("ledger processed")
	return l, errs
}
