package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/redis"
)

type fakeCache struct {
	values map[string]string
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	value, ok := c.values[key]
	if !ok {
		return "", redis.ErrMiss
	}
	return value, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	c.values[key] = value.(string)
	return nil
}

func lookupFixture() LookupResponse {
	return LookupResponse{Data: LookupData{
		Delivery: []DeliveryDay{{Date: "2026-09-01", Time: []TimeSlot{{Start: "09:00:00", End: "17:00:00", PriceComment: "standard"}}}},
		Pickup:   []PickupLocation{{Location: "Shop A", Distance: 250}},
	}}
}

func TestNewClientRequiresAbsoluteBaseURL(t *testing.T) {
	if _, err := NewClient(ClientConfig{}); err == nil {
		t.Fatal("expected error without base url")
	}
	if _, err := NewClient(ClientConfig{BaseURL: "/relative"}); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestLookupWithoutAddress(t *testing.T) {
	client, err := NewClient(ClientConfig{BaseURL: "http://lookup.test/v1"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, lookupErr := client.Lookup(context.Background(), LookupParams{CutoffTime: "17:00"})
	if !errors.Is(lookupErr, ErrNoAddress) {
		t.Fatalf("expected ErrNoAddress, got %v", lookupErr)
	}
}

func TestLookupSendsConfiguredQuery(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(lookupFixture())
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL, CountryCode: "BE", CarrierID: 2})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	params := LookupParams{
		PostalCode:           "9000",
		Number:               "12",
		CutoffTime:           "17:00",
		DropoffDays:          []string{"1", "2", "5"},
		DropoffDelay:         1,
		ExcludeDeliveryTypes: "4",
	}
	if _, err := client.Lookup(context.Background(), params); err != nil {
		t.Fatalf("lookup: %v", err)
	}

	expect := map[string]string{
		"cc":                    "BE",
		"carrier":               "2",
		"postal_code":           "9000",
		"number":                "12",
		"cutoff_time":           "17:00",
		"dropoff_days":          "1;2;5",
		"dropoff_delay":         "1",
		"exclude_delivery_type": "4",
	}
	for key, want := range expect {
		if got.Get(key) != want {
			t.Fatalf("query %s: expected %q got %q", key, want, got.Get(key))
		}
	}
	if got.Has("saturday_delivery") {
		t.Fatal("saturday_delivery must be absent when false")
	}
}

func TestLookupSaturdayDeliveryOnlyWhenTrue(t *testing.T) {
	var got url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(lookupFixture())
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.Lookup(context.Background(), LookupParams{PostalCode: "9000", SaturdayDelivery: true}); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Get("saturday_delivery") != "1" {
		t.Fatalf("expected saturday_delivery=1, got %q", got.Get("saturday_delivery"))
	}
}

func TestLookupStatusErrorIsDependency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, lookupErr := client.Lookup(context.Background(), LookupParams{PostalCode: "9000"})
	if lookupErr == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(lookupErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", lookupErr)
	}
}

func TestLookupCachesSuccessfulResponses(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode(lookupFixture())
	}))
	defer server.Close()

	cache := newFakeCache()
	client, err := NewClient(ClientConfig{BaseURL: server.URL, Cache: cache, CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	params := LookupParams{PostalCode: "9000", Number: "12"}
	first, err := client.Lookup(context.Background(), params)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := client.Lookup(context.Background(), params)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}

	if hits != 1 {
		t.Fatalf("expected one upstream call, got %d", hits)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}
	if len(first.Data.Delivery) != len(second.Data.Delivery) {
		t.Fatal("cached response must match the upstream response")
	}
}

func TestLookupDoesNotCacheNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(LookupResponse{Data: LookupData{Message: NoResultsMessage}})
	}))
	defer server.Close()

	cache := newFakeCache()
	client, err := NewClient(ClientConfig{BaseURL: server.URL, Cache: cache, CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	response, err := client.Lookup(context.Background(), LookupParams{PostalCode: "9000"})
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !response.NoResults() {
		t.Fatal("expected no-results response")
	}
	if cache.sets != 0 {
		t.Fatalf("no-results responses must not be cached, got %d writes", cache.sets)
	}
}
