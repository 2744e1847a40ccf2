package glreport

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/etnz/glreport/date"
)

// identifierColumn is where the identifier starts, right after the MM/DD/YY date.
const identifierColumn = 8

// consignmentIn marks inventory lines that never reach the ledger.
const consignmentIn = "CONS-IN"

// layout describes how an entry line of a family splits into its fields.
type layout struct {
	tags     []Tag       // markers searched past TagColumn
	widths   map[Tag]int // identifier width per tag
	width    int         // identifier width for tags missing from widths
	fallback bool        // read the tag at identifierColumn when none is found past TagColumn
	skip     string      // lines containing it are dropped
}

func (l layout) identifierWidth(tag Tag) int {
	if w, ok := l.widths[tag]; ok {
		return w
	}
	return l.width
}

var (
	genericLayout = layout{
		tags:     Tags,
		widths:   map[Tag]int{TagAP: 12, TagAR: 8, TagGL: 8, TagPS: 10, TagPR: 7},
		fallback: true,
	}
	cashFloatLayout = layout{tags: Tags, width: 8}
	cogsLayout      = layout{
		tags:   []Tag{TagAP, TagGL, TagPS},
		widths: map[Tag]int{TagAP: 10, TagGL: 8, TagPS: 12},
	}
	// inventory transfers print the location code where the tag goes.
	inventoryLayout = layout{
		tags:   append([]Tag{TagAP, TagGL, TagPS}, locationTags()...),
		widths: map[Tag]int{TagAP: 12, TagGL: 8, TagPS: 10},
		width:  8,
		skip:   consignmentIn,
	}
)

func locationTags() []Tag {
	tags := make([]Tag, len(Locations))
	for i, l := range Locations {
		tags[i] = l.Tag()
	}
	return tags
}

func layoutOf(f Family) layout {
	switch f {
	case FamilyCashFloat:
		return cashFloatLayout
	case FamilyInventory:
		return inventoryLayout
	case FamilyCOGS:
		return cogsLayout
	case FamilyGeneric:
		return genericLayout
	default:
		panic(fmt.Sprintf("no layout for %v", f))
	}
}

// ExtractEntry reads a transaction off an entry line using the rule of the
// account family. skip is true for lines the family drops without recording.
func ExtractEntry(f Family, text string) (tx Transaction, skip bool, err error) {
	l := layoutOf(f)
	if l.skip != "" && strings.Contains(text, l.skip) {
		return Transaction{}, true, nil
	}
	runes := []rune(text)
	if len(runes) < identifierColumn {
		return Transaction{}, false, layoutError(text, "entry line too short")
	}
	day, err := date.ParseReport(string(runes[:identifierColumn]))
	if err != nil {
		return Transaction{}, false, layoutError(text, "%v", err)
	}
	amount, ambiguous, err := ExtractAmount(text)
	if err != nil {
		return Transaction{}, false, err
	}

	tag, end := findTag(text, l.tags)
	if tag == "" && l.fallback && len(runes) >= identifierColumn+2 {
		if t := Tag(runes[identifierColumn : identifierColumn+2]); isTag(t) {
			tag, end = t, amountColumn(text)
		}
	}
	if tag == "" {
		return Transaction{}, false, &ParseError{Err: ErrUnknownTag, Text: text}
	}

	idEnd := identifierColumn + l.identifierWidth(tag)
	if idEnd > end {
		idEnd = end
	}
	if idEnd < identifierColumn {
		return Transaction{}, false, layoutError(text, "no room for an identifier before %s", tag)
	}
	return Transaction{
		Date:        day,
		Identifier:  strings.TrimSpace(string(runes[identifierColumn:idEnd])),
		Amount:      amount,
		Tag:         tag,
		Ambiguous:   ambiguous,
		Description: strings.TrimSpace(string(runes[idEnd:end])),
	}, false, nil
}

func isTag(t Tag) bool {
	for _, x := range Tags {
		if x == t {
			return true
		}
	}
	return false
}

// amountColumn returns the column where the trailing amount token starts.
func amountColumn(text string) int {
	i := strings.LastIndexAny(text, " \t")
	return utf8.RuneCountInString(text[:i+1])
}
