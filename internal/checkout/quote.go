package checkout

import (
	"github.com/bdevries/parceldesk-backend/internal/parcel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote is the read-only slice of the platform quote this module needs:
// cart lines, the shipping total currently on the quote, and the parent
// carrier/method the shopper picked. Loaded once per request.
type Quote struct {
	ID            uuid.UUID
	Items         []parcel.CartItem
	ShippingTotal decimal.Decimal
	ParentCarrier string
	ParentMethod  string
}
