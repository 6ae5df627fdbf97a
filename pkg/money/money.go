package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter renders decimal amounts the way the storefront displays them,
// e.g. "€ 7,50". The client treats these as opaque display strings.
type Formatter struct {
	symbol        string
	decimalComma  bool
	displayDigits int32
}

// NewFormatter builds a formatter for the given currency symbol. Belgian
// storefronts use a comma decimal separator.
func NewFormatter(symbol string) *Formatter {
	return &Formatter{
		symbol:        symbol,
		decimalComma:  true,
		displayDigits: 2,
	}
}

// Format renders an amount with the currency symbol, e.g. "€ 1,50".
func (f *Formatter) Format(amount decimal.Decimal) string {
	fixed := amount.StringFixed(f.displayDigits)
	if f.decimalComma {
		fixed = strings.Replace(fixed, ".", ",", 1)
	}
	if f.symbol == "" {
		return fixed
	}
	return f.symbol + " " + fixed
}

// FormatWithPrefix renders an amount with a sign prefix, e.g. "+ € 0,35".
func (f *Formatter) FormatWithPrefix(amount decimal.Decimal, prefix string) string {
	return prefix + f.Format(amount)
}
