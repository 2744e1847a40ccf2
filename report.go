package glreport

import (
	"strings"
	"unicode"
)

const (
	// PageBreak separates two pages of the report.
	PageBreak = "\n\n\n\n\n\n\n"
	// PageHeaderLines is the preamble printed at the top of every page.
	PageHeaderLines = 8
	// SectionHeaderLines is the account title and the rule under it.
	SectionHeaderLines = 2
)

// Line is a physical line of the report.
type Line struct {
	Raw  string // as printed
	Text string // without surrounding white space
}

// NewLine returns the line with its stripped text.
func NewLine(raw string) Line { return Line{Raw: raw, Text: strings.TrimSpace(raw)} }

// Blank reports whether the line holds only white space.
func (l Line) Blank() bool { return l.Text == "" }

// Indent returns the number of leading white space characters.
func (l Line) Indent() int {
	n := 0
	for _, r := range l.Raw {
		if !unicode.IsSpace(r) {
			break
		}
		n++
	}
	return n
}

// Page is an ordered sequence of lines, preamble included.
type Page []Line

// Report is the report text cut into pages.
type Report struct {
	Pages []Page
}

// SplitReport cuts the text into pages and lines. Windows line endings are
// normalized first so that the page break is recognized.
func SplitReport(text string) Report {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var r Report
	for _, chunk := range strings.Split(text, PageBreak) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		raws := strings.Split(chunk, "\n")
		page := make(Page, len(raws))
		for i, raw := range raws {
			page[i] = NewLine(raw)
		}
		r.Pages = append(r.Pages, page)
	}
	return r
}

// Lines returns the total number of lines.
func (r Report) Lines() int {
	n := 0
	for _, p := range r.Pages {
		n += len(p)
	}
	return n
}
