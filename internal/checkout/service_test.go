package checkout

import (
	"context"
	"testing"

	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/money"
	"github.com/google/uuid"
)

func newTestService(t *testing.T) (Service, *MemoryQuoteStore) {
	t.Helper()
	store := NewMemoryQuoteStore()
	svc, err := NewService(store, fixtureStore(), money.NewFormatter("€"), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	if _, err := NewService(nil, fixtureStore(), money.NewFormatter("€"), nil); err == nil {
		t.Fatal("expected error without quote repository")
	}
	if _, err := NewService(NewMemoryQuoteStore(), nil, money.NewFormatter("€"), nil); err == nil {
		t.Fatal("expected error without settings store")
	}
	if _, err := NewService(NewMemoryQuoteStore(), fixtureStore(), nil, nil); err == nil {
		t.Fatal("expected error without formatter")
	}
}

func TestServiceCreateQuoteAssignsID(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateQuote(context.Background(), fixtureQuote())
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected assigned quote id")
	}
}

func TestServiceSettingsRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateQuote(context.Background(), fixtureQuote())
	if err != nil {
		t.Fatalf("create quote: %v", err)
	}

	payload, err := svc.Settings(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if payload.Root.Version != Version {
		t.Fatalf("expected version %s, got %s", Version, payload.Root.Version)
	}
	if payload.Root.Data.General.BasePrice != "€ 7,50" {
		t.Fatalf("unexpected base price %q", payload.Root.Data.General.BasePrice)
	}
}

func TestServiceSettingsUnknownQuote(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Settings(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown quote")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryQuoteStoreRejectsNilID(t *testing.T) {
	store := NewMemoryQuoteStore()
	if err := store.Save(context.Background(), &Quote{}); err == nil {
		t.Fatal("expected error saving quote without id")
	}
}
