package parcel

import (
	"testing"

	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/settings"
	"github.com/shopspring/decimal"
)

func mailbox(limit string) MailboxSettings {
	return MailboxSettings{WeightLimit: decimal.RequireFromString(limit)}
}

func TestNewPackageRejectsNegativeLimit(t *testing.T) {
	_, err := NewPackage(mailbox("-1"))
	if err == nil {
		t.Fatal("expected error for negative weight limit")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestSetWeightFromItemsSums(t *testing.T) {
	pkg, err := NewPackage(mailbox("2"))
	if err != nil {
		t.Fatalf("new package: %v", err)
	}

	ok := pkg.SetWeightFromItems([]CartItem{
		{ProductID: "a", Qty: 2, UnitWeight: decimal.RequireFromString("0.3")},
		{ProductID: "b", Qty: 1, UnitWeight: decimal.RequireFromString("0.5")},
	})
	if !ok {
		t.Fatal("expected weight to be set")
	}
	if got := pkg.Weight(); !got.Equal(decimal.RequireFromString("1.1")) {
		t.Fatalf("expected weight 1.1, got %s", got)
	}
	if !pkg.WeightSet() {
		t.Fatal("expected weight set flag")
	}
}

func TestSetWeightFromItemsEmptyCartLeavesStateUntouched(t *testing.T) {
	pkg, err := NewPackage(mailbox("2"))
	if err != nil {
		t.Fatalf("new package: %v", err)
	}
	pkg.SetWeightFromItems([]CartItem{
		{ProductID: "a", Qty: 1, UnitWeight: decimal.RequireFromString("0.7")},
	})

	ok := pkg.SetWeightFromItems(nil)
	if ok {
		t.Fatal("expected empty cart to report no calculation")
	}
	if got := pkg.Weight(); !got.Equal(decimal.RequireFromString("0.7")) {
		t.Fatalf("expected prior weight kept, got %s", got)
	}
}

func TestFitsMailboxBoundaryIsInclusive(t *testing.T) {
	pkg, err := NewPackage(mailbox("2"))
	if err != nil {
		t.Fatalf("new package: %v", err)
	}

	pkg.SetWeightFromItems([]CartItem{
		{ProductID: "a", Qty: 4, UnitWeight: decimal.RequireFromString("0.5")},
	})
	if !pkg.FitsMailbox() {
		t.Fatal("weight exactly at the limit must fit")
	}

	pkg.SetWeightFromItems([]CartItem{
		{ProductID: "a", Qty: 1, UnitWeight: decimal.RequireFromString("2.001")},
	})
	if pkg.FitsMailbox() {
		t.Fatal("weight over the limit must not fit")
	}
}

func TestMailboxSettingsFromStore(t *testing.T) {
	store := settings.Values{
		"mailbox/weight_limit":  "2",
		"mailbox/other_options": "1",
	}

	cfg, err := MailboxSettingsFromStore(store)
	if err != nil {
		t.Fatalf("load mailbox settings: %v", err)
	}
	if !cfg.WeightLimit.Equal(decimal.RequireFromString("2")) {
		t.Fatalf("expected limit 2, got %s", cfg.WeightLimit)
	}
	if !cfg.ShowWithOtherOptions {
		t.Fatal("expected other options flag set")
	}
}

func TestMailboxSettingsFromStoreShapeError(t *testing.T) {
	store := settings.Values{"mailbox/weight_limit": []string{"2"}}

	_, err := MailboxSettingsFromStore(store)
	if err == nil {
		t.Fatal("expected shape error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}
