package glreport

import (
	"context"
	"errors"
	"time"

	"github.com/etnz/glreport/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxAmbiguous bounds the number of ambiguous transactions searched in
// one account month. The search visits 2^n assignments.
const DefaultMaxAmbiguous = 20

// Search enumerates sign assignments of ambiguous amounts.
type Search struct {
	// Relaxed compares debit - credit only.
	Relaxed bool
	// Strict keeps enumerating after the first match and fails when more
	// than one assignment matches.
	Strict bool
	// Max is the largest subset searched, DefaultMaxAmbiguous when zero.
	Max int
}

// SolveSigns runs the default search.
func SolveSigns(magnitudes []Money, target Balance) ([]int, error) {
	signs, _, err := Search{}.Solve(magnitudes, target)
	return signs, err
}

// Solve returns a sign (+1 or -1) per magnitude so that posting the signed
// amounts reproduces target, and the number of matching assignments found.
//
// Assignments are visited in lexicographic order, + before -, the first
// magnitude being the most significant. Without Strict the first match is
// returned: when magnitudes coincide another assignment may match too.
func (s Search) Solve(magnitudes []Money, target Balance) ([]int, int, error) {
	limit := s.Max
	if limit <= 0 {
		limit = DefaultMaxAmbiguous
	}
	n := len(magnitudes)
	if n > limit || n > 62 {
		return nil, 0, ErrSearchTooLarge
	}
	cents := make([]int64, n)
	for i, m := range magnitudes {
		cents[i] = m.Abs().cents()
	}
	wantDebit, wantCredit := target.Debit.cents(), target.Credit.cents()

	var first uint64
	found := 0
	for mask := uint64(0); mask < 1<<n; mask++ {
		var debit, credit int64
		for j := range n {
			if mask&(1<<(n-1-j)) == 0 {
				debit += cents[j]
			} else {
				credit += cents[j]
			}
		}
		match := debit == wantDebit && credit == wantCredit
		if s.Relaxed {
			match = debit-credit == wantDebit-wantCredit
		}
		if !match {
			continue
		}
		if found == 0 {
			first = mask
		}
		found++
		if !s.Strict {
			break
		}
	}
	switch {
	case found == 0:
		return nil, 0, ErrDisambiguationExhausted
	case found > 1:
		return nil, found, ErrMultipleSolutions
	}
	signs := make([]int, n)
	for j := range n {
		signs[j] = 1
		if first&(1<<(n-1-j)) != 0 {
			signs[j] = -1
		}
	}
	return signs, found, nil
}

// disambiguate searches every invalid month of every account. Accounts are
// independent and searched concurrently; their errors are joined in account
// order. The returned fatal error only reports a canceled context.
func (l *Ledger) disambiguate(ctx context.Context, opts Options) (errs error, fatal error) {
	log := logger.FromContext(ctx)
	results := make([]error, len(l.Accounts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, a := range l.Accounts {
		if !a.seen || len(a.InvalidMonths()) == 0 {
			continue
		}
		search := Search{Relaxed: a.Family.Relaxed(), Strict: opts.Strict, Max: opts.MaxAmbiguous}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log.Debug().Str("account", a.Name).Int("ambiguous", a.Ambiguous()).Msg("disambiguating")
			results[i] = a.disambiguate(search)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return errors.Join(results...), nil
}

// disambiguate searches the invalid months of the account.
func (a *Account) disambiguate(s Search) error {
	var errs []error
	for _, m := range a.InvalidMonths() {
		if err := a.disambiguateMonth(m, s); err != nil {
			errs = append(errs, err)
		}
	}
	a.updateValid()
	return errors.Join(errs...)
}

// disambiguateMonth flips the unresolved transactions of month m so that the
// month reproduces its printed totals. Transactions are overwritten in place.
func (a *Account) disambiguateMonth(m time.Month, s Search) error {
	idx := a.InMonth(m)
	var (
		ambiguous  []int
		magnitudes []Money
		fixed      Balance
	)
	for _, i := range idx {
		tx := a.Transactions[i]
		if tx.Unresolved() {
			ambiguous = append(ambiguous, i)
			magnitudes = append(magnitudes, tx.Amount.Abs())
		} else {
			fixed = fixed.Post(tx.Amount)
		}
	}
	target := a.MonthlyTotals[m].Sub(fixed)
	signs, solutions, err := s.Solve(magnitudes, target)
	if err != nil {
		return &DisambiguationError{
			Err:          err,
			Account:      a.Name,
			Month:        m,
			Target:       target,
			Magnitudes:   magnitudes,
			Transactions: len(idx),
			Solutions:    solutions,
		}
	}
	for j, i := range ambiguous {
		tx := &a.Transactions[i]
		tx.Amount = magnitudes[j]
		if signs[j] < 0 {
			tx.Amount = magnitudes[j].Neg()
		}
		tx.resolved = true
	}
	a.MonthValid[m] = true
	return nil
}
