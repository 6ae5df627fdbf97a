package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bdevries/parceldesk-backend/api/responses"
	deliverysvc "github.com/bdevries/parceldesk-backend/internal/delivery"
	pkgerrors "github.com/bdevries/parceldesk-backend/pkg/errors"
	"github.com/bdevries/parceldesk-backend/pkg/logger"
)

// DeliveryOptions proxies the delivery-options lookup for the storefront
// widget. The response body is the carrier contract and goes out unenveloped.
func DeliveryOptions(svc deliverysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "delivery service unavailable"))
			return
		}

		q := r.URL.Query()
		query := deliverysvc.AddressQuery{
			PostalCode:   strings.TrimSpace(q.Get("postal_code")),
			Number:       strings.TrimSpace(q.Get("number")),
			Street:       strings.TrimSpace(q.Get("street")),
			DeliveryDate: strings.TrimSpace(q.Get("delivery_date")),
			DeliveryTime: strings.TrimSpace(q.Get("delivery_time")),
		}

		response, err := svc.Options(r.Context(), query)
		if err != nil {
			if errors.Is(err, deliverysvc.ErrNoAddress) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "postal_code, number or street is required"))
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, response)
	}
}
