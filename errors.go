package glreport

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrLayoutMismatch is returned when a line does not have the shape its
	// position in the report requires.
	ErrLayoutMismatch = errors.New("layout mismatch")
	// ErrUnknownSection is returned for a section header missing from the registry.
	ErrUnknownSection = errors.New("unknown section")
	// ErrUnknownTag is returned for an entry line without a recognized marker.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrDisambiguationExhausted is returned when no sign assignment reproduces the printed totals.
	ErrDisambiguationExhausted = errors.New("disambiguation exhausted")
	// ErrMultipleSolutions is returned in strict mode when several sign assignments match.
	ErrMultipleSolutions = errors.New("ambiguous multiple solutions")
	// ErrSearchTooLarge is returned when a month holds more ambiguous lines than the search accepts.
	ErrSearchTooLarge = errors.New("too many ambiguous transactions")
)

// ParseError locates a parse failure in the report.
//
// Page and Line are 1-based; they are zero when the error was raised by a
// classifier function that was not told where the line comes from.
type ParseError struct {
	Err    error // one of the sentinel errors
	Page   int
	Line   int
	Text   string
	Detail string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Page > 0 {
		fmt.Fprintf(&b, "page %d line %d: ", e.Page, e.Line)
	}
	b.WriteString(e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Text != "" {
		fmt.Fprintf(&b, " in %q", e.Text)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func layoutError(text, format string, args ...any) *ParseError {
	return &ParseError{Err: ErrLayoutMismatch, Text: text, Detail: fmt.Sprintf(format, args...)}
}

// at sets the coordinates of a *ParseError found in err's chain, and wraps any
// other error into a located layout mismatch.
func at(err error, page, line int) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		return &ParseError{Err: ErrLayoutMismatch, Page: page + 1, Line: line + 1, Detail: err.Error()}
	}
	pe.Page, pe.Line = page+1, line+1
	return err
}

// DisambiguationError reports an account/month whose printed totals could not
// be reproduced by flipping ambiguous signs.
type DisambiguationError struct {
	Err          error // ErrDisambiguationExhausted, ErrMultipleSolutions or ErrSearchTooLarge
	Account      string
	Month        time.Month
	Target       Balance // residual left for the ambiguous subset
	Magnitudes   []Money // absolute amounts of the ambiguous subset
	Transactions int     // transactions dated in that month
	Solutions    int     // matching assignments, in strict mode
}

func (e *DisambiguationError) Error() string {
	mags := make([]string, len(e.Magnitudes))
	for i, m := range e.Magnitudes {
		mags[i] = m.String()
	}
	msg := fmt.Sprintf("%s %s: %v: target %s, ambiguous [%s] of %d transactions",
		e.Account, e.Month, e.Err, e.Target, strings.Join(mags, " "), e.Transactions)
	if e.Solutions > 1 {
		msg += fmt.Sprintf(", %d matching assignments", e.Solutions)
	}
	return msg
}

func (e *DisambiguationError) Unwrap() error { return e.Err }
