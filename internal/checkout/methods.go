package checkout

import (
	"fmt"

	"github.com/bdevries/parceldesk-backend/internal/rates"
	"github.com/shopspring/decimal"
)

// methodSpec maps a method alias to its configuration path prefix. The set is
// fixed; which methods actually attach is decided by their "active" config.
type methodSpec struct {
	alias       string
	settingPath string
}

func methodSpecs() []methodSpec {
	return []methodSpec{
		{alias: "signature", settingPath: "delivery/signature_"},
		{alias: "pickup", settingPath: "pickup/"},
	}
}

// MethodFactory builds this module's rates from a parent carrier rate. It
// implements rates.MethodBuilder.
type MethodFactory struct {
	pricer *Pricer
}

// NewMethodFactory builds a factory over the given pricer.
func NewMethodFactory(pricer *Pricer) (*MethodFactory, error) {
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	return &MethodFactory{pricer: pricer}, nil
}

// BuildMethods derives the active module methods from the parent rate. The
// parent's price becomes the base price for the derived methods. A method with
// no "active" setting at all counts as active.
func (f *MethodFactory) BuildMethods(parent rates.Rate) ([]rates.Rate, error) {
	f.pricer.SetBasePrice(parent.Price)

	var methods []rates.Rate
	for _, spec := range methodSpecs() {
		activePath := spec.settingPath + "active"
		if f.pricer.store.Has(activePath) {
			active, err := f.pricer.store.Bool(activePath)
			if err != nil {
				return nil, err
			}
			if !active {
				continue
			}
		}

		title, err := f.pricer.store.String(spec.settingPath + "title")
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = spec.alias
		}

		price, err := f.pricer.MethodPrice(spec.settingPath+"fee", true)
		if err != nil {
			return nil, err
		}

		methods = append(methods, rates.Rate{
			Carrier:      parent.Carrier,
			Method:       spec.alias,
			CarrierTitle: spec.alias,
			MethodTitle:  title,
			Price:        price,
			Cost:         decimal.Zero,
		})
	}
	return methods, nil
}
