package delivery

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
)

// PickupSelector sorts pickup locations by distance, partitions them into
// time-window buckets, and tracks which one the shopper picked. The bucket
// labels and the slot start times that map onto them are injected
// configuration, not constants.
type PickupSelector struct {
	locations     []PickupLocation
	buckets       map[string][]PickupLocation
	defaultBucket string
	selected      *PickupLocation
}

// NewPickupSelector builds a selector over the fetched locations.
// bucketByStart maps a slot start time (e.g. "16:00:00") to a bucket label;
// slots with unmapped start times do not contribute to any bucket. The nearest
// location in the default bucket becomes the initial selection.
func NewPickupSelector(locations []PickupLocation, bucketByStart map[string]string, defaultBucket string) (*PickupSelector, error) {
	if defaultBucket == "" {
		return nil, fmt.Errorf("default bucket label required")
	}

	sorted := make([]PickupLocation, len(locations))
	copy(sorted, locations)
	// Stable: equal distances keep the carrier's order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})

	buckets := make(map[string][]PickupLocation)
	for _, location := range sorted {
		seen := make(map[string]struct{})
		for _, slot := range location.Time {
			label, ok := bucketByStart[slot.Start]
			if !ok {
				continue
			}
			if _, dup := seen[label]; dup {
				continue
			}
			seen[label] = struct{}{}
			buckets[label] = append(buckets[label], location)
		}
	}

	selector := &PickupSelector{
		locations:     sorted,
		buckets:       buckets,
		defaultBucket: defaultBucket,
	}
	if preferred := buckets[defaultBucket]; len(preferred) > 0 {
		first := preferred[0]
		selector.selected = &first
	}
	return selector, nil
}

// Locations returns all locations in non-decreasing distance order.
func (p *PickupSelector) Locations() []PickupLocation {
	return p.locations
}

// Bucket returns the locations offering a slot in the given time-window
// bucket, nearest first.
func (p *PickupSelector) Bucket(label string) []PickupLocation {
	return p.buckets[label]
}

// DefaultBucket returns the configured default bucket label.
func (p *PickupSelector) DefaultBucket() string {
	return p.defaultBucket
}

// Selected returns the currently chosen location, or nil when none is
// available.
func (p *PickupSelector) Selected() *PickupLocation {
	return p.selected
}

// Select picks a location by its serialized identity, as carried on the
// rendered option the shopper clicked.
func (p *PickupSelector) Select(serialized string) error {
	var chosen PickupLocation
	if err := json.Unmarshal([]byte(serialized), &chosen); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decoding pickup selection")
	}
	for _, candidate := range p.locations {
		if sameLocation(candidate, chosen) {
			p.selected = &candidate
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "pickup location not in current result set")
}

func sameLocation(a, b PickupLocation) bool {
	return a.Location == b.Location &&
		a.Street == b.Street &&
		a.Number == b.Number &&
		a.City == b.City
}

// Summary renders the chosen location as the one-line address summary shown
// next to the pickup option.
func (p *PickupSelector) Summary() string {
	if p.selected == nil {
		return ""
	}
	loc := p.selected
	return fmt.Sprintf("%s, %s %s, %s", loc.Location, loc.Street, loc.Number, loc.City)
}

// FormatDistance renders meters as kilometers with one decimal and a comma
// separator, e.g. 1234 -> "1,2 Km".
func FormatDistance(meters int) string {
	km := float64((meters+50)/100) / 10
	return strings.Replace(strconv.FormatFloat(km, 'f', 1, 64), ".", ",", 1) + " Km"
}
