package valueobject

import "github.com/shopspring/decimal"

// Amount is a fixed-point monetary quantity whose text form keeps the scale
// it was parsed or computed with. shopspring's default rendering trims
// trailing zeros, turning 1500.000 into "1500"; aggregates must round-trip
// through cache entries and API responses with their scale intact.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal, keeping its exponent
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// String renders the amount at its own scale
func (a Amount) String() string {
	return formatScaled(a.Decimal)
}

// MarshalJSON renders the amount as a quoted decimal string at its own
// scale. Unmarshaling goes through the embedded decimal, which keeps the
// exponent of the parsed text.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// formatScaled renders a decimal without dropping trailing zeros
func formatScaled(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
