package glreport

import (
	"fmt"
	"sort"
	"strings"
)

// Family selects the extraction rule of an account.
type Family int

const (
	FamilyGeneric Family = iota
	FamilyCashFloat
	FamilyInventory
	FamilyCOGS
)

var familyNames = map[Family]string{
	FamilyGeneric:   "generic",
	FamilyCashFloat: "cash-float",
	FamilyInventory: "inventory",
	FamilyCOGS:      "cogs",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily is the inverse of Family.String.
func ParseFamily(s string) (Family, error) {
	for f, name := range familyNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown account family %q", s)
}

func (f Family) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *Family) UnmarshalText(b []byte) (err error) {
	*f, err = ParseFamily(string(b))
	return err
}

// Relaxed reports whether the family reconciles on net movement only.
func (f Family) Relaxed() bool { return f == FamilyInventory }

// Location is a store location, as named in titles and as printed in place of
// a tag on inventory transfer lines.
type Location struct {
	Name string // "Ware"
	Code string // account number suffix
}

// Tag returns the upper-case code printed on inventory lines.
func (l Location) Tag() Tag { return Tag(strings.ToUpper(l.Name)) }

// Position is a payroll position.
type Position struct {
	Name string
	Code string
}

var (
	Locations = []Location{{"Ware", "01"}, {"Hby", "02"}, {"Abdn", "03"}}
	Positions = []Position{{"Manager", "01"}, {"Supervisor", "02"}, {"Cashier", "03"}, {"Stock", "04"}}
)

// Template is a catalog entry. Titles holding "{loc}" or "{pos}" expand into one
// account per location or position.
type Template struct {
	Number string
	Title  string
	Family Family
}

// Catalog lists every account section the GL report can print.
var Catalog = []Template{
	{"1010", "Cash Float-{loc}", FamilyCashFloat},
	{"1020", "Cash chequing account-In", FamilyGeneric},
	{"1021", "Cash chequing account-Out", FamilyGeneric},
	{"1030", "Petty Cash-{loc}", FamilyGeneric},
	{"1100", "Accounts Receivable", FamilyGeneric},
	{"1150", "GST Receivable", FamilyGeneric},
	{"1200", "Prepaid Expenses", FamilyGeneric},
	{"1250", "Security Deposits-{loc}", FamilyGeneric},
	{"1300", "Inventory-{loc}", FamilyInventory},
	{"1310", "Inventory in Transit", FamilyInventory},
	{"1500", "Equipment-{loc}", FamilyGeneric},
	{"1550", "Accumulated Amortization-{loc}", FamilyGeneric},
	{"2000", "Accounts Payable", FamilyGeneric},
	{"2100", "GST Payable", FamilyGeneric},
	{"2150", "PST Payable", FamilyGeneric},
	{"2200", "Wages Payable-{pos}", FamilyGeneric},
	{"2250", "Source Deductions Payable", FamilyGeneric},
	{"2300", "Shareholder Loan", FamilyGeneric},
	{"3000", "Retained Earnings", FamilyGeneric},
	{"4000", "Sales-{loc}", FamilyGeneric},
	{"4100", "Sales Returns-{loc}", FamilyGeneric},
	{"5000", "Cost of Goods Sold-{loc}", FamilyCOGS},
	{"5500", "Wages-{pos}", FamilyGeneric},
	{"5600", "Rent-{loc}", FamilyGeneric},
	{"5610", "Utilities-{loc}", FamilyGeneric},
	{"5620", "Telephone", FamilyGeneric},
	{"5630", "Insurance", FamilyGeneric},
	{"5640", "Bank Charges", FamilyGeneric},
	{"5650", "Advertising", FamilyGeneric},
	{"5660", "Professional Fees", FamilyGeneric},
	{"5670", "Repairs and Maintenance-{loc}", FamilyGeneric},
	{"5680", "Office Supplies", FamilyGeneric},
	{"5690", "Vehicle Expenses", FamilyGeneric},
}

// Definition is one concrete account of the registry.
type Definition struct {
	Number string
	Name   string
	Family Family
}

// Registry is the expanded catalog, ordered by account number.
type Registry struct {
	defs   []Definition
	byName map[string]int
}

// NewRegistry expands the templates into concrete accounts.
func NewRegistry(templates []Template) (*Registry, error) {
	r := &Registry{byName: make(map[string]int)}
	add := func(d Definition) error {
		if _, dup := r.byName[d.Name]; dup {
			return fmt.Errorf("duplicate account title %q", d.Name)
		}
		r.byName[d.Name] = len(r.defs)
		r.defs = append(r.defs, d)
		return nil
	}
	for _, t := range templates {
		var err error
		switch {
		case strings.Contains(t.Title, "{loc}"):
			for _, l := range Locations {
				if err = add(Definition{t.Number + "-" + l.Code, strings.ReplaceAll(t.Title, "{loc}", l.Name), t.Family}); err != nil {
					break
				}
			}
		case strings.Contains(t.Title, "{pos}"):
			for _, p := range Positions {
				if err = add(Definition{t.Number + "-" + p.Code, strings.ReplaceAll(t.Title, "{pos}", p.Name), t.Family}); err != nil {
					break
				}
			}
		default:
			err = add(Definition{t.Number, t.Title, t.Family})
		}
		if err != nil {
			return nil, err
		}
	}
	sort.SliceStable(r.defs, func(i, j int) bool { return r.defs[i].Number < r.defs[j].Number })
	for i, d := range r.defs {
		r.byName[d.Name] = i
	}
	return r, nil
}

// DefaultRegistry returns the registry of the Catalog.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Catalog)
	if err != nil {
		panic(err)
	}
	return r
}

// Definitions returns the concrete accounts ordered by number.
func (r *Registry) Definitions() []Definition { return r.defs }

// Len returns the number of concrete accounts.
func (r *Registry) Len() int { return len(r.defs) }

// Lookup returns the account with that exact name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Definition{}, false
	}
	return r.defs[i], true
}

// Match finds the account whose title is contained in a section header. The
// longest title wins so that "Inventory in Transit" is not read as a shorter
// title it happens to contain. A leading account number printed in the header
// replaces the catalog one.
func (r *Registry) Match(header string) (Definition, bool) {
	best := -1
	for i, d := range r.defs {
		if strings.Contains(header, d.Name) && (best < 0 || len(d.Name) > len(r.defs[best].Name)) {
			best = i
		}
	}
	if best < 0 {
		return Definition{}, false
	}
	d := r.defs[best]
	if n, ok := HeaderNumber(header); ok {
		d.Number = n
	}
	return d, true
}
