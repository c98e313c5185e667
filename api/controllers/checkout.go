package controllers

import (
	"net/http"

	"github.com/foodfetch/storefront-backend/api/responses"
	"github.com/foodfetch/storefront-backend/api/validators"
	"github.com/foodfetch/storefront-backend/internal/checkout"
	"github.com/foodfetch/storefront-backend/internal/orders"
	pkgerrors "github.com/foodfetch/storefront-backend/pkg/errors"
	"github.com/foodfetch/storefront-backend/pkg/logger"
)

type placeOrderPayload struct {
	Street        string `json:"street" validate:"required"`
	City          string `json:"city" validate:"required"`
	ZipCode       string `json:"zipCode" validate:"required"`
	Notes         string `json:"notes,omitempty"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card cash"`
}

// CheckoutQuote prices the current cart.
func CheckoutQuote(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.QuoteCart(ctx))
	}
}

// CheckoutPlaceOrder places one upstream order per restaurant in the cart.
func CheckoutPlaceOrder(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload placeOrderPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		address := orders.Address{
			Street:  payload.Street,
			City:    payload.City,
			ZipCode: payload.ZipCode,
			Notes:   payload.Notes,
		}
		result, err := svc.PlaceOrder(ctx, address, payload.PaymentMethod)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
