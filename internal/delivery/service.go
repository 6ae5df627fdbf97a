package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/bdevries/parceldesk-backend/internal/checkout"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
	"github.com/bdevries/parceldesk-backend/pkg/settings"
)

// AddressQuery is the shopper-supplied part of a delivery-options request.
type AddressQuery struct {
	PostalCode   string
	Number       string
	Street       string
	DeliveryDate string
	DeliveryTime string
}

// Service runs delivery-options lookups with the merchant configuration
// folded in.
type Service interface {
	Options(ctx context.Context, query AddressQuery) (*LookupResponse, error)
}

type service struct {
	client OptionsLookup
	store  settings.Store
	logg   *logger.Logger
}

// NewService wires the delivery-options service.
func NewService(client OptionsLookup, store settings.Store, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("options lookup required")
	}
	if store == nil {
		return nil, fmt.Errorf("settings store required")
	}
	return &service{client: client, store: store, logg: logg}, nil
}

// Options merges the address with the configured lookup parameters and calls
// the remote service.
func (s *service) Options(ctx context.Context, query AddressQuery) (*LookupResponse, error) {
	params, err := s.configuredParams()
	if err != nil {
		return nil, err
	}
	params.PostalCode = query.PostalCode
	params.Number = query.Number
	params.Street = query.Street
	params.DeliveryDate = query.DeliveryDate
	params.DeliveryTime = query.DeliveryTime

	return s.client.Lookup(ctx, params)
}

func (s *service) configuredParams() (LookupParams, error) {
	cutoff, err := s.store.TimeOfDay("general/cutoff_time")
	if err != nil {
		return LookupParams{}, err
	}
	dropoffDays, err := s.store.StringSlice("general/dropoff_days")
	if err != nil {
		return LookupParams{}, err
	}
	saturday, err := s.store.Bool("general/saturday_delivery_active")
	if err != nil {
		return LookupParams{}, err
	}
	delay, err := s.store.Int("general/dropoff_delay")
	if err != nil {
		return LookupParams{}, err
	}
	pickupActive, err := s.store.Bool("pickup/active")
	if err != nil {
		return LookupParams{}, err
	}

	var exclude []string
	if !pickupActive {
		exclude = append(exclude, checkout.ExcludeTypePickup)
	}

	return LookupParams{
		CutoffTime:           cutoff,
		DropoffDays:          dropoffDays,
		SaturdayDelivery:     saturday,
		DropoffDelay:         delay,
		ExcludeDeliveryTypes: strings.Join(exclude, ";"),
	}, nil
}
