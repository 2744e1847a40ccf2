package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// FiscalYear returns the range covered by a yearly GL report.
func FiscalYear(year int) Range {
	return Range{From: StartOfYear(year), To: EndOfYear(year)}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// String returns the range in "from..to" form.
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
