package checkout

// Version identifies the settings payload contract shipped to the storefront.
const Version = "1.8.3"

// DisabledMarker replaces a fee when its feature is inactive. The storefront
// hides the price display for a fee holding this literal.
const DisabledMarker = "disabled"

// ExcludeTypePickup is the remote service's numeric code for pickup delivery.
const ExcludeTypePickup = "4"

// Payload is the settings envelope sent to the storefront once per page load.
type Payload struct {
	Root Root `json:"root"`
}

type Root struct {
	Version string           `json:"version"`
	Data    CheckoutSettings `json:"data"`
}

// CheckoutSettings is the fixed-shape configuration and pricing record the
// selection engine consumes. Every leaf has a declared type; fee fields are
// display strings and may hold the disabled marker.
type CheckoutSettings struct {
	General       GeneralSection       `json:"general"`
	Delivery      DeliverySection      `json:"delivery"`
	Mailbox       MailboxSection       `json:"mailbox"`
	Pickup        PickupSection        `json:"pickup"`
	BelgiumPickup BelgiumPickupSection `json:"belgium_pickup"`
}

type GeneralSection struct {
	BasePrice              string   `json:"base_price"`
	CutoffTime             string   `json:"cutoff_time"`
	DeliveryDaysWindow     int      `json:"deliverydays_window"`
	DropoffDays            []string `json:"dropoff_days"`
	MondayDeliveryActive   bool     `json:"monday_delivery_active"`
	SaturdayDeliveryActive bool     `json:"saturday_delivery_active"`
	SaturdayCutoffTime     string   `json:"saturday_cutoff_time"`
	DropoffDelay           int      `json:"dropoff_delay"`
	ColorBase              string   `json:"color_base"`
	ColorSelect            string   `json:"color_select"`
	ParentCarrier          string   `json:"parent_carrier"`
	ParentMethod           string   `json:"parent_method"`
	ExcludeDeliveryTypes   string   `json:"exclude_delivery_types"`
}

type DeliverySection struct {
	DeliveryTitle         string `json:"delivery_title"`
	StandardDeliveryTitle string `json:"standard_delivery_title"`
	SignatureActive       bool   `json:"signature_active"`
	SignatureTitle        string `json:"signature_title"`
	SignatureFee          string `json:"signature_fee"`
}

type MailboxSection struct {
	Active       bool   `json:"active"`
	OtherOptions bool   `json:"mailbox_other_options"`
	Title        string `json:"title"`
	Fee          string `json:"fee"`
}

type PickupSection struct {
	Active bool   `json:"active"`
	Title  string `json:"title"`
	Fee    string `json:"fee"`
}

// BelgiumPickupSection defaults to an explicitly zeroed record when its
// "active" config is unset; the storefront expects the keys to exist either
// way. Fee is a display string when active and the number 0 otherwise.
type BelgiumPickupSection struct {
	Active int    `json:"active"`
	Title  string `json:"title"`
	Fee    any    `json:"fee"`
}
