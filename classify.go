package glreport

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Column positions of the report printer, counted on the stripped line.
const (
	// TagColumn is where authoritative tag markers start; markers found earlier
	// belong to the identifier or the description.
	TagColumn = 50
	// CreditColumn is where credit amounts end. Debits are printed left of it.
	CreditColumn = 74
)

var (
	entryPattern   = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}`)
	amountPattern  = regexp.MustCompile(`\d+\.\d\d`)
	markerPattern  = regexp.MustCompile(`(?:\d|\s)(DR|CR)\b`)
	headerPattern  = regexp.MustCompile(`^(\d{4}(?:-\d{2})?)\s+\S`)
	totalsPrefix   = "Totals for "
	reportTotals   = "Totals for Report"
	balanceForward = "Balance Forward"
)

// IsEntry reports whether the stripped line starts with a MM/DD/YY date.
func IsEntry(text string) bool { return entryPattern.MatchString(text) }

// ExtractTag returns the first tag marker found at or past TagColumn.
func ExtractTag(text string) (Tag, bool) {
	tag, _ := findTag(text, Tags)
	return tag, tag != ""
}

// findTag returns the earliest of tags occurring at or past TagColumn and its
// column, or "" and -1.
func findTag(text string, tags []Tag) (Tag, int) {
	runes := []rune(text)
	if len(runes) <= TagColumn {
		return "", -1
	}
	tail := string(runes[TagColumn:])
	found, col := Tag(""), -1
	for _, tag := range tags {
		i := strings.Index(tail, string(tag))
		if i < 0 {
			continue
		}
		c := TagColumn + utf8.RuneCountInString(tail[:i])
		if col < 0 || c < col {
			found, col = tag, c
		}
	}
	return found, col
}

// ExtractAmount returns the signed amount of an entry line and whether its sign
// was inferred rather than read.
//
// Credits are pushed right so that the line reaches CreditColumn. A line longer
// than that has stray characters before the amount pushing it, and the
// position can no longer tell a credit from a polluted debit.
func ExtractAmount(text string) (Money, bool, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Money{}, false, layoutError(text, "empty entry line")
	}
	cand := strings.ReplaceAll(fields[len(fields)-1], ",", "")
	loc := amountPattern.FindStringIndex(cand)
	if loc == nil {
		return Money{}, false, layoutError(text, "no amount in trailing token %q", cand)
	}
	amount, err := ParseMoney(cand[loc[0]:loc[1]])
	if err != nil {
		return Money{}, false, layoutError(text, "%v", err)
	}

	width := utf8.RuneCountInString(text)
	credit := width >= CreditColumn
	switch {
	case width > CreditColumn:
		return amount.Neg(), true, nil
	case loc[0] == 0 && credit:
		return amount.Neg(), false, nil
	case !credit:
		return amount, false, nil
	default:
		// exactly on the credit column, but the token is polluted.
		return amount.Neg(), true, nil
	}
}

// IsTotalsFor reports whether the line is a "Totals for <Month>" line.
func IsTotalsFor(text string) (time.Month, bool) {
	if !strings.HasPrefix(text, totalsPrefix) {
		return 0, false
	}
	rest := text[len(totalsPrefix):]
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.HasPrefix(rest, name) && (len(rest) == len(name) || rest[len(name)] == ' ') {
			return m, true
		}
	}
	return 0, false
}

// IsReportTotals reports whether the line holds the report's grand total.
func IsReportTotals(text string) bool { return strings.HasPrefix(text, reportTotals) }

// IsBalanceForward reports whether the line starts an account's balance forward.
func IsBalanceForward(text string) bool { return strings.HasPrefix(text, balanceForward) }

// IsSummary reports whether the line is any of the summary lines.
func IsSummary(text string) bool {
	_, totals := IsTotalsFor(text)
	return totals || IsBalanceForward(text) || IsReportTotals(text)
}

// HeaderNumber returns the report-internal account number leading a section header.
func HeaderNumber(text string) (string, bool) {
	m := headerPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// decimals returns every amount of the line, thousands separators removed.
func decimals(text string) []string {
	return amountPattern.FindAllString(strings.ReplaceAll(text, ",", ""), -1)
}

func decimalAt(text string, tokens []string, i int) (Money, error) {
	if i >= len(tokens) {
		return Money{}, layoutError(text, "want at least %d amounts, got %d", i+1, len(tokens))
	}
	m, err := ParseMoney(tokens[i])
	if err != nil {
		return Money{}, layoutError(text, "%v", err)
	}
	return m, nil
}

// pair returns the amounts at i and i+1 as a (debit, credit) balance.
func pair(text string, i int) (Balance, error) {
	tokens := decimals(text)
	debit, err := decimalAt(text, tokens, i)
	if err != nil {
		return Balance{}, err
	}
	credit, err := decimalAt(text, tokens, i+1)
	if err != nil {
		return Balance{}, err
	}
	return Balance{Debit: debit, Credit: credit}, nil
}

// ExtractTotals returns the (debit, credit) of a "Totals for" line.
func ExtractTotals(text string) (Balance, error) { return pair(text, 0) }

// ExtractBalances returns the (debit, credit) printed on a balance forward
// figures line, which are its second and third amounts.
func ExtractBalances(text string) (Balance, error) { return pair(text, 1) }

// ExtractBalanceForwards returns the signed opening and closing balances of a
// balance forward figures line.
//
// The first DR/CR marker signs the opening balance (first amount) and the last
// one signs the closing balance (last amount). This is read off the printed
// layout; a line with any other number of markers is rejected rather than
// guessed.
func ExtractBalanceForwards(text string) (opening, closing Money, err error) {
	tokens := decimals(text)
	if len(tokens) < 2 {
		return Money{}, Money{}, layoutError(text, "want opening and closing amounts, got %d amounts", len(tokens))
	}
	markers := markerPattern.FindAllStringSubmatch(text, -1)
	if len(markers) != 2 {
		return Money{}, Money{}, layoutError(text, "want 2 DR/CR markers, got %d", len(markers))
	}
	if opening, err = decimalAt(text, tokens, 0); err != nil {
		return
	}
	if closing, err = decimalAt(text, tokens, len(tokens)-1); err != nil {
		return
	}
	if markers[0][1] == "CR" {
		opening = opening.Neg()
	}
	if markers[len(markers)-1][1] == "CR" {
		closing = closing.Neg()
	}
	return opening, closing, nil
}
