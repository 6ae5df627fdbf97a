package delivery

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
	"github.com/bdevries/parceldesk-backend/pkg/metrics"
	"github.com/bdevries/parceldesk-backend/pkg/redis"
)

// ErrNoAddress signals that no lookup was attempted because no part of the
// address was supplied. The UI shows a "no address" state for it.
var ErrNoAddress = pkgerrors.New(pkgerrors.CodeValidation, "no address supplied")

type lookupCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// ClientConfig wires the delivery-options client. BaseURL is required: there
// is deliberately no default endpoint to fall back to.
type ClientConfig struct {
	BaseURL     string
	CountryCode string
	CarrierID   int
	HTTPClient  *http.Client
	Cache       lookupCache
	CacheTTL    time.Duration
	Metrics     *metrics.LookupMetrics
	Logger      *logger.Logger
}

// Client performs the remote delivery-options lookup.
type Client struct {
	baseURL    string
	country    string
	carrierID  int
	httpClient *http.Client
	cache      lookupCache
	cacheTTL   time.Duration
	metrics    *metrics.LookupMetrics
	logg       *logger.Logger
}

// NewClient validates the config and builds a client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("delivery options base url required")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing delivery options base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("delivery options base url must be absolute, got %q", cfg.BaseURL)
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "BE"
	}
	if cfg.CarrierID == 0 {
		cfg.CarrierID = 1
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		country:    cfg.CountryCode,
		carrierID:  cfg.CarrierID,
		httpClient: httpClient,
		cache:      cfg.Cache,
		cacheTTL:   cfg.CacheTTL,
		metrics:    cfg.Metrics,
		logg:       cfg.Logger,
	}, nil
}

// LookupParams carries the fixed request parameter set for one lookup.
type LookupParams struct {
	PostalCode           string
	Number               string
	Street               string
	DeliveryTime         string
	DeliveryDate         string
	CutoffTime           string
	DropoffDays          []string
	SaturdayDelivery     bool
	DropoffDelay         int
	ExcludeDeliveryTypes string
}

// HasAddress reports whether any address component was supplied.
func (p LookupParams) HasAddress() bool {
	return p.PostalCode != "" || p.Number != "" || p.Street != ""
}

func (p LookupParams) query(country string, carrierID int) url.Values {
	q := url.Values{}
	q.Set("cc", country)
	q.Set("carrier", strconv.Itoa(carrierID))
	if p.Number != "" {
		q.Set("number", p.Number)
	}
	if p.PostalCode != "" {
		q.Set("postal_code", p.PostalCode)
	}
	if p.DeliveryTime != "" {
		q.Set("delivery_time", p.DeliveryTime)
	}
	if p.DeliveryDate != "" {
		q.Set("delivery_date", p.DeliveryDate)
	}
	if p.CutoffTime != "" {
		q.Set("cutoff_time", p.CutoffTime)
	}
	if len(p.DropoffDays) > 0 {
		q.Set("dropoff_days", strings.Join(p.DropoffDays, ";"))
	}
	// Present only when true, per the lookup contract.
	if p.SaturdayDelivery {
		q.Set("saturday_delivery", "1")
	}
	if p.DropoffDelay > 0 {
		q.Set("dropoff_delay", strconv.Itoa(p.DropoffDelay))
	}
	if p.ExcludeDeliveryTypes != "" {
		q.Set("exclude_delivery_type", p.ExcludeDeliveryTypes)
	}
	return q
}

// Lookup fetches delivery days and pickup locations for the address. Transport
// and decode failures come back as DEPENDENCY_ERROR; a domain-level "no
// results" is a successful response the caller inspects via NoResults.
func (c *Client) Lookup(ctx context.Context, params LookupParams) (*LookupResponse, error) {
	if !params.HasAddress() {
		return nil, ErrNoAddress
	}

	query := params.query(c.country, c.carrierID).Encode()

	if c.cache != nil {
		key := redis.LookupKey(fingerprint(query))
		if cached, err := c.cache.Get(ctx, key); err == nil {
			var response LookupResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				c.metrics.IncOutcome(metrics.LookupOutcomeCacheHit)
				return &response, nil
			}
		} else if !errors.Is(err, redis.ErrMiss) && c.logg != nil {
			c.logg.Warn(ctx, "lookup cache read failed")
		}
	}

	requestURL := c.baseURL + "?" + query
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building lookup request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		c.metrics.IncOutcome(metrics.LookupOutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delivery options lookup failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncOutcome(metrics.LookupOutcomeError)
		return nil, pkgerrors.Newf(pkgerrors.CodeDependency,
			"delivery options lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncOutcome(metrics.LookupOutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading lookup response")
	}

	var response LookupResponse
	if err := json.Unmarshal(body, &response); err != nil {
		c.metrics.IncOutcome(metrics.LookupOutcomeError)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding lookup response")
	}

	if response.NoResults() {
		c.metrics.IncOutcome(metrics.LookupOutcomeNoResults)
		return &response, nil
	}

	c.metrics.IncOutcome(metrics.LookupOutcomeOK)

	if c.cache != nil && c.cacheTTL > 0 {
		key := redis.LookupKey(fingerprint(query))
		if err := c.cache.Set(ctx, key, string(body), c.cacheTTL); err != nil && c.logg != nil {
			c.logg.Warn(ctx, "lookup cache write failed")
		}
	}

	return &response, nil
}

func fingerprint(query string) string {
	sum := sha256.Sum256([]byte(query))
	return hex.EncodeToString(sum[:16])
}
