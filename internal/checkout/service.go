package checkout

import (
	"context"
	"fmt"

	"github.com/bdevries/parceldesk-backend/internal/parcel"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
	"github.com/bdevries/parceldesk-backend/pkg/money"
	"github.com/bdevries/parceldesk-backend/pkg/settings"
	"github.com/google/uuid"
)

// QuoteRepository loads the quote snapshot the settings aggregation runs over.
type QuoteRepository interface {
	Load(ctx context.Context, id uuid.UUID) (*Quote, error)
	Save(ctx context.Context, quote *Quote) error
}

// Service exposes the checkout settings aggregation.
type Service interface {
	Settings(ctx context.Context, quoteID uuid.UUID) (*Payload, error)
	CreateQuote(ctx context.Context, quote *Quote) (*Quote, error)
}

type service struct {
	quotes    QuoteRepository
	store     settings.Store
	formatter *money.Formatter
	logg      *logger.Logger
}

// NewService wires the checkout service.
func NewService(quotes QuoteRepository, store settings.Store, formatter *money.Formatter, logg *logger.Logger) (Service, error) {
	if quotes == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if store == nil {
		return nil, fmt.Errorf("settings store required")
	}
	if formatter == nil {
		return nil, fmt.Errorf("money formatter required")
	}
	return &service{
		quotes:    quotes,
		store:     store,
		formatter: formatter,
		logg:      logg,
	}, nil
}

// Settings loads the quote and derives the full settings payload for it. The
// package and aggregator are request-scoped: nothing survives between calls.
func (s *service) Settings(ctx context.Context, quoteID uuid.UUID) (*Payload, error) {
	quote, err := s.quotes.Load(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	mailbox, err := parcel.MailboxSettingsFromStore(s.store)
	if err != nil {
		return nil, err
	}
	pkg, err := parcel.NewPackage(mailbox)
	if err != nil {
		return nil, err
	}
	pricer, err := NewPricer(s.store, s.formatter)
	if err != nil {
		return nil, err
	}
	aggregator, err := NewAggregator(s.store, pricer, pkg)
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithQuoteID(ctx, quoteID.String())
		s.logg.Info(ctx, "checkout.settings.build")
	}
	return aggregator.Settings(quote)
}

// CreateQuote stores a quote snapshot and assigns it an id when missing.
func (s *service) CreateQuote(ctx context.Context, quote *Quote) (*Quote, error) {
	if quote == nil {
		return nil, fmt.Errorf("quote required")
	}
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if err := s.quotes.Save(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}
