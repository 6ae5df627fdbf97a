package delivery

// TimeSlot is one bookable delivery window within a day. PriceComment tags the
// price bucket the slot belongs to ("standard", or a carrier-specific label).
type TimeSlot struct {
	Start        string `json:"start"`
	End          string `json:"end"`
	PriceComment string `json:"price_comment"`
}

// DeliveryDay is a calendar day (no time component) with its offered slots.
type DeliveryDay struct {
	Date string     `json:"date"`
	Time []TimeSlot `json:"time"`
}

// PickupLocation is a staffed collection point. Distance is meters from the
// shopper's address. OpeningHours is keyed by lowercase English weekday name,
// each entry an ordered list of human-readable time ranges.
type PickupLocation struct {
	Location     string              `json:"location"`
	Street       string              `json:"street"`
	Number       string              `json:"number"`
	City         string              `json:"city"`
	Distance     int                 `json:"distance"`
	OpeningHours map[string][]string `json:"opening_hours"`
	Time         []TimeSlot          `json:"time"`
}

// NoResultsMessage is the domain-level "nothing found" signal inside an
// otherwise successful lookup response.
const NoResultsMessage = "No results"

// LookupResponse is the remote delivery-options service response.
type LookupResponse struct {
	Data LookupData `json:"data"`
}

type LookupData struct {
	Message  string           `json:"message,omitempty"`
	Delivery []DeliveryDay    `json:"delivery"`
	Pickup   []PickupLocation `json:"pickup"`
}

// NoResults reports whether the response carries the domain-level empty signal.
func (r *LookupResponse) NoResults() bool {
	return r != nil && r.Data.Message == NoResultsMessage
}

// weekdays in Monday-first order, matching the remote service's keys.
var weekdays = [7]string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// OrderedOpeningHours returns the location's opening hours as a Monday-first
// list, one entry per weekday. A weekday missing from the source map yields an
// empty list, which the rendering layer shows as closed.
func (p PickupLocation) OrderedOpeningHours() [7][]string {
	var ordered [7][]string
	for i, day := range weekdays {
		ordered[i] = p.OpeningHours[day]
	}
	return ordered
}

// OpeningHourLines renders the Monday-first opening hours with closed days
// marked, ready for display next to the location.
func (p PickupLocation) OpeningHourLines() [7][]string {
	ordered := p.OrderedOpeningHours()
	for i := range ordered {
		if len(ordered[i]) == 0 {
			ordered[i] = []string{ClosedLabel}
		}
	}
	return ordered
}
