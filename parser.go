package glreport

import (
	"context"

	"github.com/etnz/glreport/date"
	"github.com/etnz/glreport/logger"
	"github.com/rs/zerolog"
)

type parserState int

const (
	scanningForHeader parserState = iota
	insideSection
	endOfReport
)

// parser walks the report once, filling the ledger's accounts.
type parser struct {
	ledger *Ledger
	log    zerolog.Logger

	state parserState
	page  int
	line  int
	lines Page
	acct  *Account
}

// parse runs the forward pass over every page of the report.
func (l *Ledger) parse(ctx context.Context, report Report) error {
	p := &parser{ledger: l, log: logger.FromContext(ctx)}
	for i, page := range report.Pages {
		if err := p.parsePage(i, page); err != nil {
			return err
		}
		if p.state == endOfReport {
			break
		}
	}
	return nil
}

func (p *parser) parsePage(n int, page Page) error {
	p.page, p.lines, p.line = n, page, PageHeaderLines
	p.state, p.acct = scanningForHeader, nil
	p.log.Debug().Int("page", n+1).Int("lines", len(page)).Msg("page")
	for p.line < len(p.lines) {
		var err error
		switch p.state {
		case scanningForHeader:
			err = p.scan()
		case insideSection:
			err = p.section()
		case endOfReport:
			return nil
		}
		if err != nil {
			return at(err, p.page, p.line)
		}
	}
	return nil
}

func (p *parser) current() Line { return p.lines[p.line] }

// scan looks for the next section header.
func (p *parser) scan() error {
	text := p.current().Text
	if text == "" {
		p.line++
		return nil
	}
	if IsReportTotals(text) {
		total, err := ExtractTotals(text)
		if err != nil {
			return err
		}
		p.ledger.GrandTotal, p.ledger.HasGrandTotal = total, true
		p.state = endOfReport
		p.line++
		return nil
	}
	def, ok := p.ledger.registry.Match(text)
	if !ok {
		if _, header := HeaderNumber(text); header {
			return &ParseError{Err: ErrUnknownSection, Text: text}
		}
		if IsEntry(text) || IsBalanceForward(text) {
			return layoutError(text, "outside of an account section")
		}
		if _, totals := IsTotalsFor(text); totals {
			return layoutError(text, "outside of an account section")
		}
		p.log.Warn().Int("page", p.page+1).Int("line", p.line+1).Str("text", text).Msg("skipping line outside of an account section")
		p.line++
		return nil
	}
	p.acct = p.ledger.index[def.Name]
	p.acct.Number = def.Number
	p.acct.seen = true
	p.state = insideSection
	p.line += SectionHeaderLines
	p.log.Debug().Int("page", p.page+1).Str("account", def.Name).Str("number", def.Number).Msg("section")
	return nil
}

// section consumes one line of the active account section.
func (p *parser) section() error {
	line := p.current()
	text := line.Text
	if line.Blank() {
		p.line++
		return nil
	}
	if IsEntry(text) {
		return p.entry()
	}
	if month, ok := IsTotalsFor(text); ok {
		totals, err := ExtractTotals(text)
		if err != nil {
			return err
		}
		p.acct.addTotals(month, totals)
		p.line++
		return nil
	}
	if IsBalanceForward(text) {
		return p.balanceForward()
	}
	return layoutError(text, "unexpected line in section %q", p.acct.Name)
}

func (p *parser) entry() error {
	tx, skip, err := ExtractEntry(p.acct.Family, p.current().Text)
	if err != nil {
		return err
	}
	p.line++
	if p.line < len(p.lines) && continues(p.lines[p.line]) {
		tx.Description = joinDescription(tx.Description, p.lines[p.line].Text)
		p.line++
	}
	if skip {
		return nil
	}
	if y := p.ledger.Year; y != 0 && !date.FiscalYear(y).Contains(tx.Date) {
		p.log.Warn().Str("account", p.acct.Name).Stringer("date", tx.Date).Msg("entry dated outside the fiscal year")
	}
	p.acct.append(tx)
	return nil
}

// continues reports whether the line carries the rest of the previous
// entry's description. The printer sometimes wraps a description onto a
// line that starts with a date; it is then indented by at least two columns.
func continues(l Line) bool {
	if l.Blank() || IsSummary(l.Text) {
		return false
	}
	return !IsEntry(l.Text) || l.Indent() >= 2
}

func joinDescription(desc, more string) string {
	if desc == "" {
		return more
	}
	return desc + ", " + more
}

// balanceForward closes the section. The figures are printed either on the
// "Balance Forward" line itself or on the next one.
func (p *parser) balanceForward() error {
	figures := p.current().Text
	if len(decimals(figures)) == 0 {
		p.line++
		if p.line >= len(p.lines) {
			return layoutError(figures, "balance forward without figures")
		}
		figures = p.current().Text
	}
	printed, err := ExtractBalances(figures)
	if err != nil {
		return err
	}
	opening, closing, err := ExtractBalanceForwards(figures)
	if err != nil {
		return err
	}
	p.acct.setBalanceForward(p.ledger.Year, printed, opening, closing)
	p.log.Debug().Str("account", p.acct.Name).Stringer("printed", printed).Int("transactions", len(p.acct.Transactions)).Msg("balance forward")
	p.line++
	p.state, p.acct = scanningForHeader, nil
	return nil
}
