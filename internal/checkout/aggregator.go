package checkout

import (
	"fmt"
	"strings"

	"github.com/bdevries/parceldesk-backend/internal/parcel"
	"github.com/bdevries/parceldesk-backend/pkg/settings"
	"go.uber.org/multierr"
)

// Aggregator builds the checkout settings payload for one quote. A
// configuration value of the wrong shape aborts the aggregation: serving a
// malformed payload would mean serving wrong prices.
type Aggregator struct {
	store  settings.Store
	pricer *Pricer
	pkg    *parcel.Package
}

// NewAggregator wires the aggregator for one request.
func NewAggregator(store settings.Store, pricer *Pricer, pkg *parcel.Package) (*Aggregator, error) {
	if store == nil {
		return nil, fmt.Errorf("settings store required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	if pkg == nil {
		return nil, fmt.Errorf("package required")
	}
	return &Aggregator{store: store, pricer: pricer, pkg: pkg}, nil
}

// Settings derives the full payload from the quote. Shape violations across
// sections are collected so the operator sees all of them at once.
func (a *Aggregator) Settings(quote *Quote) (*Payload, error) {
	if quote == nil {
		return nil, fmt.Errorf("quote required")
	}

	a.pricer.SetBasePrice(quote.ShippingTotal)

	var merr error

	general, err := a.generalSection(quote)
	merr = multierr.Append(merr, err)

	delivery, err := a.deliverySection()
	merr = multierr.Append(merr, err)

	mailbox, err := a.mailboxSection(quote)
	merr = multierr.Append(merr, err)

	pickup, err := a.pickupSection()
	merr = multierr.Append(merr, err)

	belgium, err := a.belgiumPickupSection()
	merr = multierr.Append(merr, err)

	if merr != nil {
		return nil, merr
	}

	// The merchant can exclude delivery types from the remote lookup. Pickup
	// (code 4) is excluded when the pickup option is off; the list is built to
	// take further codes.
	var exclude []string
	if !pickup.Active {
		exclude = append(exclude, ExcludeTypePickup)
	}
	general.ExcludeDeliveryTypes = strings.Join(exclude, ";")

	data := CheckoutSettings{
		General:       general,
		Delivery:      delivery,
		Mailbox:       mailbox,
		Pickup:        pickup,
		BelgiumPickup: belgium,
	}
	return &Payload{Root: Root{Version: Version, Data: data}}, nil
}

func (a *Aggregator) generalSection(quote *Quote) (GeneralSection, error) {
	var merr error

	cutoff, err := a.store.TimeOfDay("general/cutoff_time")
	merr = multierr.Append(merr, err)
	window, err := a.store.Int("general/deliverydays_window")
	merr = multierr.Append(merr, err)
	dropoffDays, err := a.store.StringSlice("general/dropoff_days")
	merr = multierr.Append(merr, err)
	monday, err := a.store.Bool("general/monday_delivery_active")
	merr = multierr.Append(merr, err)
	saturday, err := a.store.Bool("general/saturday_delivery_active")
	merr = multierr.Append(merr, err)
	saturdayCutoff, err := a.store.TimeOfDay("general/saturday_cutoff_time")
	merr = multierr.Append(merr, err)
	delay, err := a.store.Int("general/dropoff_delay")
	merr = multierr.Append(merr, err)
	colorBase, err := a.store.String("general/color_base")
	merr = multierr.Append(merr, err)
	colorSelect, err := a.store.String("general/color_select")
	merr = multierr.Append(merr, err)

	if merr != nil {
		return GeneralSection{}, merr
	}
	return GeneralSection{
		BasePrice:              a.pricer.BasePriceFormat(),
		CutoffTime:             cutoff,
		DeliveryDaysWindow:     window,
		DropoffDays:            dropoffDays,
		MondayDeliveryActive:   monday,
		SaturdayDeliveryActive: saturday,
		SaturdayCutoffTime:     saturdayCutoff,
		DropoffDelay:           delay,
		ColorBase:              colorBase,
		ColorSelect:            colorSelect,
		ParentCarrier:          quote.ParentCarrier,
		ParentMethod:           quote.ParentMethod,
	}, nil
}

func (a *Aggregator) deliverySection() (DeliverySection, error) {
	var merr error

	title, err := a.store.String("delivery/delivery_title")
	merr = multierr.Append(merr, err)
	standardTitle, err := a.store.String("delivery/standard_delivery_title")
	merr = multierr.Append(merr, err)
	active, err := a.store.Bool("delivery/signature_active")
	merr = multierr.Append(merr, err)
	signatureTitle, err := a.store.String("delivery/signature_title")
	merr = multierr.Append(merr, err)
	fee, err := a.pricer.MethodPriceFormat("delivery/signature_fee", false, "+ ")
	merr = multierr.Append(merr, err)

	if merr != nil {
		return DeliverySection{}, merr
	}
	if !active {
		fee = DisabledMarker
	}
	return DeliverySection{
		DeliveryTitle:         title,
		StandardDeliveryTitle: standardTitle,
		SignatureActive:       active,
		SignatureTitle:        signatureTitle,
		SignatureFee:          fee,
	}, nil
}

func (a *Aggregator) mailboxSection(quote *Quote) (MailboxSection, error) {
	a.pkg.SetWeightFromItems(quote.Items)

	var merr error
	title, err := a.store.String("mailbox/title")
	merr = multierr.Append(merr, err)
	fee, err := a.pricer.MethodPriceFormat("mailbox/fee", false, "")
	merr = multierr.Append(merr, err)
	if merr != nil {
		return MailboxSection{}, merr
	}

	active := a.pkg.FitsMailbox()
	if !active {
		fee = DisabledMarker
	}
	return MailboxSection{
		Active:       active,
		OtherOptions: a.pkg.ShowMailboxWithOtherOptions(),
		Title:        title,
		Fee:          fee,
	}, nil
}

func (a *Aggregator) pickupSection() (PickupSection, error) {
	var merr error
	active, err := a.store.Bool("pickup/active")
	merr = multierr.Append(merr, err)
	title, err := a.store.String("pickup/title")
	merr = multierr.Append(merr, err)
	fee, err := a.pricer.MethodPriceFormat("pickup/fee", true, "")
	merr = multierr.Append(merr, err)
	if merr != nil {
		return PickupSection{}, merr
	}
	return PickupSection{Active: active, Title: title, Fee: fee}, nil
}

func (a *Aggregator) belgiumPickupSection() (BelgiumPickupSection, error) {
	active, err := a.store.Bool("belgium_pickup/active")
	if err != nil {
		return BelgiumPickupSection{}, err
	}
	if !active {
		// Explicitly zeroed record, not omission: the storefront reads the
		// keys unconditionally.
		return BelgiumPickupSection{Active: 0, Title: "", Fee: 0}, nil
	}

	var merr error
	title, err := a.store.String("belgium_pickup/title")
	merr = multierr.Append(merr, err)
	fee, err := a.pricer.MethodPriceFormat("belgium_pickup/fee", true, "")
	merr = multierr.Append(merr, err)
	if merr != nil {
		return BelgiumPickupSection{}, merr
	}
	return BelgiumPickupSection{Active: 1, Title: title, Fee: fee}, nil
}
