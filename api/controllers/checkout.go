package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bdevries/parceldesk-backend/api/responses"
	"github.com/bdevries/parceldesk-backend/api/validators"
	"github.com/bdevries/parceldesk-backend/internal/checkout"
	"github.com/bdevries/parceldesk-backend/internal/parcel"
	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
)

// CheckoutSettings serves the settings payload for one quote. The body shape
// is the storefront contract, so it goes out unenveloped.
func CheckoutSettings(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		raw := strings.TrimSpace(r.URL.Query().Get("quote_id"))
		if raw == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "quote_id is required"))
			return
		}
		quoteID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "quote_id must be a valid uuid"))
			return
		}

		payload, err := svc.Settings(r.Context(), quoteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, payload)
	}
}

type createQuoteRequest struct {
	ShippingTotal string                   `json:"shipping_total" validate:"required"`
	ParentCarrier string                   `json:"parent_carrier" validate:"required"`
	ParentMethod  string                   `json:"parent_method" validate:"required"`
	Items         []createQuoteItemRequest `json:"items" validate:"dive"`
}

type createQuoteItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int    `json:"qty" validate:"required,min=1"`
	Weight    string `json:"weight" validate:"required"`
}

// CreateQuote stores a quote snapshot and returns its id. Platforms with their
// own quote storage skip this endpoint and wire a repository instead.
func CreateQuote(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload createQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := toQuote(payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateQuote(r.Context(), quote)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"quote_id": created.ID.String()})
	}
}

func toQuote(payload createQuoteRequest) (*checkout.Quote, error) {
	total, err := decimal.NewFromString(payload.ShippingTotal)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping_total must be a decimal string")
	}

	items := make([]parcel.CartItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		weight, err := decimal.NewFromString(item.Weight)
		if err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "item %s weight must be a decimal string", item.ProductID)
		}
		items = append(items, parcel.CartItem{
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			UnitWeight: weight,
		})
	}

	return &checkout.Quote{
		Items:         items,
		ShippingTotal: total,
		ParentCarrier: payload.ParentCarrier,
		ParentMethod:  payload.ParentMethod,
	}, nil
}
