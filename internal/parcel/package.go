package parcel

import (
	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/settings"
	"github.com/shopspring/decimal"
)

// CartItem is an immutable snapshot of one cart line, taken once per request.
type CartItem struct {
	ProductID  string
	Qty        int
	UnitWeight decimal.Decimal
}

// MailboxSettings holds the configured mailbox thresholds. The weight limit is
// shop configuration, never a constant.
type MailboxSettings struct {
	WeightLimit          decimal.Decimal
	ShowWithOtherOptions bool
}

// MailboxSettingsFromStore loads the mailbox thresholds from configuration.
func MailboxSettingsFromStore(store settings.Store) (MailboxSettings, error) {
	limit, err := store.Money("mailbox/weight_limit")
	if err != nil {
		return MailboxSettings{}, err
	}
	other, err := store.Bool("mailbox/other_options")
	if err != nil {
		return MailboxSettings{}, err
	}
	return MailboxSettings{WeightLimit: limit, ShowWithOtherOptions: other}, nil
}

// Package accumulates the weight of the current cart and decides mailbox
// eligibility. It is request-scoped: built per checkout request, never persisted.
type Package struct {
	mailbox   MailboxSettings
	weight    decimal.Decimal
	weightSet bool
}

// NewPackage builds a package with the given mailbox configuration.
func NewPackage(mailbox MailboxSettings) (*Package, error) {
	if mailbox.WeightLimit.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeConfig, "mailbox weight limit cannot be negative")
	}
	return &Package{mailbox: mailbox}, nil
}

// SetWeightFromItems sums quantity times unit weight over the cart lines and
// stores the result. When the slice is empty the calculation is skipped
// entirely and the prior weight is kept: callers use the return value as the
// signal that fresh cart data was supplied this request.
func (p *Package) SetWeightFromItems(items []CartItem) bool {
	if len(items) == 0 {
		return false
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitWeight.Mul(decimal.NewFromInt(int64(item.Qty))))
	}
	p.weight = total
	p.weightSet = true
	return true
}

// Weight returns the accumulated package weight.
func (p *Package) Weight() decimal.Decimal {
	return p.weight
}

// WeightSet reports whether a weight calculation has run this request.
func (p *Package) WeightSet() bool {
	return p.weightSet
}

// FitsMailbox reports whether the package fits a mailbox. A weight exactly at
// the configured limit is eligible.
func (p *Package) FitsMailbox() bool {
	return p.weight.LessThanOrEqual(p.mailbox.WeightLimit)
}

// ShowMailboxWithOtherOptions passes through the configured display flag.
func (p *Package) ShowMailboxWithOtherOptions() bool {
	return p.mailbox.ShowWithOtherOptions
}
