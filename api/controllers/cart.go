package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/foodfetch/storefront-backend/api/responses"
	"github.com/foodfetch/storefront-backend/api/validators"
	"github.com/foodfetch/storefront-backend/internal/cart"
	pkgerrors "github.com/foodfetch/storefront-backend/pkg/errors"
	"github.com/foodfetch/storefront-backend/pkg/logger"
)

type addCartItemPayload struct {
	ID             string            `json:"id" validate:"required"`
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description,omitempty"`
	Price          decimal.Decimal   `json:"price" validate:"required"`
	Image          string            `json:"image,omitempty"`
	Quantity       int               `json:"quantity,omitempty"`
	RestaurantID   string            `json:"restaurantId" validate:"required"`
	RestaurantName string            `json:"restaurantName" validate:"required"`
	Options        map[string]string `json:"options,omitempty"`
}

type setQuantityPayload struct {
	Quantity int `json:"quantity"`
}

// CartGet returns the current cart snapshot.
func CartGet(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartAddItem adds or merges one line into the cart.
func CartAddItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if payload.Price.IsNegative() {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative"))
			return
		}

		state := store.AddItem(ctx, cart.Item{
			ID:             payload.ID,
			Name:           payload.Name,
			Description:    payload.Description,
			Price:          payload.Price,
			Image:          payload.Image,
			Quantity:       payload.Quantity,
			RestaurantID:   payload.RestaurantID,
			RestaurantName: payload.RestaurantName,
			Options:        payload.Options,
		})
		responses.WriteSuccess(w, state)
	}
}

// CartRemoveItem drops one line from the cart. Unknown ids are a no-op.
func CartRemoveItem(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		responses.WriteSuccess(w, store.RemoveItem(ctx, itemID))
	}
}

// CartSetQuantity replaces a line's quantity; zero or less removes the line.
func CartSetQuantity(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload setQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, store.SetQuantity(ctx, itemID, payload.Quantity))
	}
}

// CartClear empties the cart.
func CartClear(store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Clear(ctx))
	}
}
