package checkout

import (
	"fmt"

	"github.com/bdevries/parceldesk-backend/pkg/money"
	"github.com/bdevries/parceldesk-backend/pkg/settings"
	"github.com/shopspring/decimal"
)

// Pricer computes and formats method prices relative to a base price. The base
// must be primed (from the quote's shipping total, or from a parent rate)
// before price formatting runs.
type Pricer struct {
	store     settings.Store
	formatter *money.Formatter
	base      decimal.Decimal
}

// NewPricer builds a pricer over the given configuration store and formatter.
func NewPricer(store settings.Store, formatter *money.Formatter) (*Pricer, error) {
	if store == nil {
		return nil, fmt.Errorf("settings store required")
	}
	if formatter == nil {
		return nil, fmt.Errorf("money formatter required")
	}
	return &Pricer{store: store, formatter: formatter}, nil
}

// SetBasePrice primes the base price directly, e.g. from a parent carrier rate.
func (p *Pricer) SetBasePrice(base decimal.Decimal) {
	p.base = base
}

// BasePrice returns the primed base price.
func (p *Pricer) BasePrice() decimal.Decimal {
	return p.base
}

// BasePriceFormat renders the primed base price for display.
func (p *Pricer) BasePriceFormat() string {
	return p.formatter.Format(p.base)
}

// MethodPrice returns the configured fee at path, plus the base price when
// includeBase is set.
func (p *Pricer) MethodPrice(path string, includeBase bool) (decimal.Decimal, error) {
	fee, err := p.store.Money(path)
	if err != nil {
		return decimal.Zero, err
	}
	if includeBase {
		return p.base.Add(fee), nil
	}
	return fee, nil
}

// MethodPriceFormat renders the method price at path with an optional sign
// prefix, e.g. "+ € 0,35".
func (p *Pricer) MethodPriceFormat(path string, includeBase bool, prefix string) (string, error) {
	price, err := p.MethodPrice(path, includeBase)
	if err != nil {
		return "", err
	}
	return p.formatter.FormatWithPrefix(price, prefix), nil
}
