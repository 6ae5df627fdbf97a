package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/bdevries/parceldesk-backend/internal/checkout"
	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
	"github.com/google/uuid"
)

// PageState is the visible state of the delivery-options block.
type PageState string

const (
	StateInitial       PageState = "initial"
	StateLoading       PageState = "loading"
	StateNoAddress     PageState = "no_address"
	StateAddressPrompt PageState = "address_prompt"
	StateHidden        PageState = "hidden"
	StateReady         PageState = "ready"
)

// Mode distinguishes delivery to the address from pickup at a location.
type Mode string

const (
	ModeDelivery Mode = "delivery"
	ModePickup   Mode = "pickup"
)

// ClosedLabel marks a weekday without opening hours in the rendered view.
const ClosedLabel = "closed"

// OptionsLookup is the page's view of the remote lookup.
type OptionsLookup interface {
	Lookup(ctx context.Context, params LookupParams) (*LookupResponse, error)
}

// PageConfig wires one checkout page load.
type PageConfig struct {
	Settings checkout.CheckoutSettings
	Client   OptionsLookup
	Field    FieldSink

	// Prices overrides the price table derived from the settings payload.
	// Entries must be display strings; anything else fails the shape check.
	Prices map[string]any

	// PriceCommentBuckets maps a slot's price comment to a price-table key,
	// e.g. "standard" -> "default". Carrier-specific labels are configuration.
	PriceCommentBuckets map[string]string
	// PickupBucketByStart maps slot start times to pickup bucket labels,
	// e.g. "16:00:00" -> "normal".
	PickupBucketByStart map[string]string
	PickupDefaultBucket string

	ContainerWidth int
	TabWidth       int

	Logger *logger.Logger
}

// Page is the per-page-load context object. It owns all client-side selection
// state and is the only writer of the order form's hidden selection field.
// Everything runs on the caller's goroutine; a later lookup's response simply
// overwrites state built by an earlier one.
type Page struct {
	id         uuid.UUID
	settings   checkout.CheckoutSettings
	client     OptionsLookup
	serializer *Serializer
	logg       *logger.Logger

	prices              map[string]any
	priceBuckets        map[string]string
	pickupBucketByStart map[string]string
	pickupDefaultBucket string
	containerWidth      int
	tabWidth            int

	state            PageState
	checkoutDisabled bool
	lastPostal       string
	lastStreet       string

	slider      *DaySlider
	pickup      *PickupSelector
	mode        Mode
	currentDate string
	checkedSlot *TimeSlot
	signature   bool
	daysVisible bool
}

// NewPage builds the page context from the settings payload.
func NewPage(cfg PageConfig) (*Page, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("options lookup required")
	}
	if cfg.Field == nil {
		return nil, fmt.Errorf("selection field required")
	}
	serializer, err := NewSerializer(cfg.Field)
	if err != nil {
		return nil, err
	}
	if cfg.PriceCommentBuckets == nil {
		cfg.PriceCommentBuckets = map[string]string{"standard": "default"}
	}
	if cfg.PickupBucketByStart == nil {
		cfg.PickupBucketByStart = map[string]string{"16:00:00": "normal"}
	}
	if cfg.PickupDefaultBucket == "" {
		cfg.PickupDefaultBucket = "normal"
	}
	if cfg.ContainerWidth <= 0 {
		cfg.ContainerWidth = 420
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 105
	}
	prices := cfg.Prices
	if prices == nil {
		prices = map[string]any{
			"default": cfg.Settings.General.BasePrice,
			"signed":  cfg.Settings.Delivery.SignatureFee,
			"pickup":  cfg.Settings.Pickup.Fee,
		}
	}
	return &Page{
		id:                  uuid.New(),
		settings:            cfg.Settings,
		client:              cfg.Client,
		serializer:          serializer,
		logg:                cfg.Logger,
		prices:              prices,
		priceBuckets:        cfg.PriceCommentBuckets,
		pickupBucketByStart: cfg.PickupBucketByStart,
		pickupDefaultBucket: cfg.PickupDefaultBucket,
		containerWidth:      cfg.ContainerWidth,
		tabWidth:            cfg.TabWidth,
		state:               StateInitial,
		mode:                ModeDelivery,
	}, nil
}

// ID identifies this page load.
func (p *Page) ID() uuid.UUID {
	return p.id
}

// State returns the current page state.
func (p *Page) State() PageState {
	return p.state
}

// CheckoutDisabled reports whether order placement is currently blocked
// (unresolved address-correction prompt).
func (p *Page) CheckoutDisabled() bool {
	return p.checkoutDisabled
}

// Slider returns the day slider, nil before the first successful lookup.
func (p *Page) Slider() *DaySlider {
	return p.slider
}

// Pickup returns the pickup selector, nil before the first successful lookup.
func (p *Page) Pickup() *PickupSelector {
	return p.pickup
}

// SlotPrice resolves the display price shown next to a time slot. The slot's
// price comment is translated through the configured bucket labels into the
// price table; a comment without a bucket, or a bucket without a price, shows
// none.
func (p *Page) SlotPrice(slot TimeSlot) (string, bool) {
	bucket, ok := p.priceBuckets[slot.PriceComment]
	if !ok {
		return "", false
	}
	return p.price(bucket)
}

// PickupPrice returns the display price for the pickup option, false when the
// table carries none.
func (p *Page) PickupPrice() (string, bool) {
	return p.price("pickup")
}

func (p *Page) price(key string) (string, bool) {
	text, ok := p.prices[key].(string)
	if !ok || text == "" || text == checkout.DisabledMarker {
		return "", false
	}
	return text, true
}

// UpdatePage runs one lookup for the given address and rebuilds the selection
// state from the response. Recoverable conditions (no address, no results,
// transport failure) land in the corresponding page state instead of an error;
// only configuration-shape problems propagate.
func (p *Page) UpdatePage(ctx context.Context, postalCode, number, street string) error {
	if err := p.validatePrices(); err != nil {
		return err
	}

	if postalCode == "" {
		postalCode = p.lastPostal
	}
	if street == "" {
		street = p.lastStreet
	}

	params := LookupParams{
		PostalCode:           postalCode,
		Number:               number,
		Street:               street,
		CutoffTime:           p.settings.General.CutoffTime,
		DropoffDays:          p.settings.General.DropoffDays,
		SaturdayDelivery:     p.settings.General.SaturdayDeliveryActive,
		DropoffDelay:         p.settings.General.DropoffDelay,
		ExcludeDeliveryTypes: p.settings.General.ExcludeDeliveryTypes,
	}
	// Carry a previously made choice so the service can keep it available.
	if current, ok := p.serializer.Current(); ok {
		params.DeliveryDate = current.Date
		if len(current.Time) > 0 {
			params.DeliveryTime = current.Time[0].Start
		}
	}

	if !params.HasAddress() {
		p.state = StateNoAddress
		return nil
	}
	p.lastPostal = postalCode
	p.lastStreet = street
	p.state = StateLoading

	response, err := p.client.Lookup(ctx, params)
	if err != nil {
		if errors.Is(err, ErrNoAddress) {
			p.state = StateNoAddress
			return nil
		}
		// Transport failure: hide the block rather than show partial state.
		if p.logg != nil {
			p.logg.Error(ctx, "delivery options lookup failed", err)
		}
		p.state = StateHidden
		return nil
	}

	if response.NoResults() {
		p.state = StateAddressPrompt
		p.checkoutDisabled = true
		p.ClearSelection()
		return nil
	}

	p.slider = NewDaySlider(response.Data.Delivery, p.containerWidth, p.tabWidth)
	pickup, err := NewPickupSelector(response.Data.Pickup, p.pickupBucketByStart, p.pickupDefaultBucket)
	if err != nil {
		return err
	}
	p.pickup = pickup
	p.state = StateReady
	p.checkoutDisabled = false
	p.daysVisible = len(p.slider.Days()) > 0

	p.checkedSlot = nil
	p.currentDate = ""
	if days := p.slider.Days(); len(days) > 0 {
		p.mode = ModeDelivery
		return p.SelectDay(days[0].Date)
	}
	if p.pickup.Selected() != nil {
		p.mode = ModePickup
		return p.publish()
	}
	return p.publish()
}

// RetryWithNumber re-runs the lookup after the shopper corrected the house
// number in the address prompt.
func (p *Page) RetryWithNumber(ctx context.Context, number string) error {
	return p.UpdatePage(ctx, p.lastPostal, number, p.lastStreet)
}

// SelectDay re-renders the time-slot list for the given date. If the
// previously checked slot is not offered on that day, a slot is auto-checked
// (the standard-priced one when present) so the selection never goes undefined
// while options exist.
func (p *Page) SelectDay(date string) error {
	if p.slider == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "no delivery days loaded")
	}
	day, ok := p.slider.Day(date)
	if !ok {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "unknown delivery date %q", date)
	}
	p.mode = ModeDelivery
	p.currentDate = date

	if p.checkedSlot != nil && !slotOffered(day.Time, *p.checkedSlot) {
		p.checkedSlot = nil
	}
	if p.checkedSlot == nil && len(day.Time) > 0 {
		slot := preferredSlot(day.Time)
		p.checkedSlot = &slot
	}
	return p.publish()
}

// SelectTimeSlot checks the slot at index within the current day.
func (p *Page) SelectTimeSlot(index int) error {
	day, err := p.currentDay()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(day.Time) {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "time slot index %d out of range", index)
	}
	p.mode = ModeDelivery
	slot := day.Time[index]
	p.checkedSlot = &slot
	return p.publish()
}

// SetSignature toggles the signed-for option.
func (p *Page) SetSignature(on bool) error {
	p.signature = on
	return p.publish()
}

// SelectPickupMode switches the page to pickup delivery.
func (p *Page) SelectPickupMode() error {
	if p.pickup == nil || p.pickup.Selected() == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "no pickup locations available")
	}
	p.mode = ModePickup
	return p.publish()
}

// SelectDeliveryMode switches back to address delivery.
func (p *Page) SelectDeliveryMode() error {
	p.mode = ModeDelivery
	if p.checkedSlot == nil && p.slider != nil {
		if days := p.slider.Days(); len(days) > 0 {
			return p.SelectDay(days[0].Date)
		}
	}
	return p.publish()
}

// SelectPickup chooses a pickup location by its serialized identity. The
// visible summary and the published selection both derive from the selector
// state, so the update is atomic.
func (p *Page) SelectPickup(serialized string) error {
	if p.pickup == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "no pickup locations loaded")
	}
	if err := p.pickup.Select(serialized); err != nil {
		return err
	}
	p.mode = ModePickup
	return p.publish()
}

// ShowDays makes the day strip visible again.
func (p *Page) ShowDays() {
	p.daysVisible = true
}

// HideDays hides the day strip.
func (p *Page) HideDays() {
	p.daysVisible = false
}

// DaysVisible reports whether the day strip is shown.
func (p *Page) DaysVisible() bool {
	return p.daysVisible
}

// ClearSelection empties the published selection and every related checked
// state in one step.
func (p *Page) ClearSelection() {
	p.checkedSlot = nil
	p.currentDate = ""
	p.signature = false
	p.mode = ModeDelivery
	p.serializer.Clear()
}

func (p *Page) currentDay() (DeliveryDay, error) {
	if p.slider == nil || p.currentDate == "" {
		return DeliveryDay{}, pkgerrors.New(pkgerrors.CodeConflict, "no delivery day selected")
	}
	day, ok := p.slider.Day(p.currentDate)
	if !ok {
		return DeliveryDay{}, pkgerrors.Newf(pkgerrors.CodeConflict, "selected date %q no longer offered", p.currentDate)
	}
	return day, nil
}

// publish rebuilds the canonical selection from current state and writes it to
// the form field. The serializer skips the write when nothing changed.
func (p *Page) publish() error {
	if p.mode == ModePickup && p.pickup != nil && p.pickup.Selected() != nil {
		location := p.pickup.Selected()
		selection := &Selection{
			Date:    p.currentDate,
			Options: SelectionOptions{Signature: p.signature},
			Pickup:  location,
		}
		if len(location.Time) > 0 {
			selection.Time = location.Time[:1]
		}
		_, err := p.serializer.Write(selection)
		return err
	}

	if p.checkedSlot == nil {
		p.serializer.Clear()
		return nil
	}
	selection := &Selection{
		Date:    p.currentDate,
		Time:    []TimeSlot{*p.checkedSlot},
		Options: SelectionOptions{Signature: p.signature},
	}
	_, err := p.serializer.Write(selection)
	return err
}

// validatePrices rejects a price table whose entries are not display strings.
// A non-string price means the settings payload is malformed; that is a
// contract error, not something to coerce.
func (p *Page) validatePrices() error {
	for key, value := range p.prices {
		if _, ok := value.(string); !ok {
			return pkgerrors.Newf(pkgerrors.CodeConfig, "price %q must be a string, got %T", key, value)
		}
	}
	return nil
}

func slotOffered(slots []TimeSlot, want TimeSlot) bool {
	for _, slot := range slots {
		if slot == want {
			return true
		}
	}
	return false
}

// preferredSlot picks the standard-priced slot when present, else the first.
func preferredSlot(slots []TimeSlot) TimeSlot {
	for _, slot := range slots {
		if slot.PriceComment == "standard" {
			return slot
		}
	}
	return slots[0]
}
