package glreport

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money is an exact amount as printed on the report, always with 2 decimals.
//
// Positive values are debits, negative values are credits.
type Money struct {
	value decimal.Decimal
}

// M returns a Money for the given value.
func M[T float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// ParseMoney parses a plain decimal string such as "-409.23" or "16849.58".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: d}, nil
}

// MustMoney is like ParseMoney but panics on error.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) }
func (m Money) IsZero() bool       { return m.value.IsZero() }
func (m Money) IsPositive() bool   { return m.value.IsPositive() }
func (m Money) IsNegative() bool   { return m.value.IsNegative() }
func (m Money) Neg() Money         { return Money{value: m.value.Neg()} }
func (m Money) Abs() Money         { return Money{value: m.value.Abs()} }
func (m Money) Add(n Money) Money  { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money  { return Money{value: m.value.Sub(n.value)} }

// String returns the amount with exactly two decimals and a leading '-' for credits.
func (m Money) String() string { return m.value.StringFixed(2) }

// cents returns the amount in hundredths. Amounts read from the report always
// have two decimals, so the conversion is exact.
func (m Money) cents() int64 { return m.value.Shift(2).IntPart() }

// Format returns the amount formatted for display in the given currency, e.g. "$1,234.56".
func (m Money) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// MarshalJSON writes the amount as a decimal string to keep it exact.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both a decimal string and a bare JSON number.
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.value.UnmarshalJSON(b)
}

// Balance is a (debit, credit) pair of column totals. Both columns hold
// magnitudes as printed on the report.
type Balance struct {
	Debit  Money `json:"debit"`
	Credit Money `json:"credit"`
}

// Post adds a signed amount into the matching column.
func (b Balance) Post(amount Money) Balance {
	if amount.IsNegative() {
		b.Credit = b.Credit.Add(amount.Neg())
	} else {
		b.Debit = b.Debit.Add(amount)
	}
	return b
}

// Add sums two balances column by column.
func (b Balance) Add(o Balance) Balance {
	return Balance{Debit: b.Debit.Add(o.Debit), Credit: b.Credit.Add(o.Credit)}
}

// Sub subtracts o column by column.
func (b Balance) Sub(o Balance) Balance {
	return Balance{Debit: b.Debit.Sub(o.Debit), Credit: b.Credit.Sub(o.Credit)}
}

// Net returns debit - credit.
func (b Balance) Net() Money { return b.Debit.Sub(b.Credit) }

// Equal compares both columns exactly.
func (b Balance) Equal(o Balance) bool { return b.Debit.Equal(o.Debit) && b.Credit.Equal(o.Credit) }

// NetEqual compares only the net movement.
func (b Balance) NetEqual(o Balance) bool { return b.Net().Equal(o.Net()) }

func (b Balance) String() string { return fmt.Sprintf("(debit %s, credit %s)", b.Debit, b.Credit) }
