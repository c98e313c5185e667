package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foodfetch/storefront-backend/api/responses"
	"github.com/foodfetch/storefront-backend/api/validators"
	"github.com/foodfetch/storefront-backend/internal/cart"
	"github.com/foodfetch/storefront-backend/internal/menu"
	pkgerrors "github.com/foodfetch/storefront-backend/pkg/errors"
	"github.com/foodfetch/storefront-backend/pkg/logger"
)

const maxSearchQueryLen = 120

// MenuForRestaurant proxies a restaurant's menu.
func MenuForRestaurant(client *menu.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu client unavailable"))
			return
		}

		restaurantID := strings.TrimSpace(chi.URLParam(r, "restaurantId"))
		if restaurantID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required"))
			return
		}

		items, err := client.ForRestaurant(ctx, restaurantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// MenuGetItem proxies a single catalog item with its customization groups.
func MenuGetItem(client *menu.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu client unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		item, err := client.GetByID(ctx, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// MenuSearch proxies a free-text menu search. An optional limit query
// parameter truncates the proxied result.
func MenuSearch(client *menu.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu client unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQueryLen)
		if query == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "query parameter q is required"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, err := client.Search(ctx, query)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		responses.WriteSuccess(w, items)
	}
}

// MenuCustomize resolves a catalog item plus the customer's selection into
// a cart line and adds it to the cart.
func MenuCustomize(client *menu.Client, store *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil || store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "menu client unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var sel menu.Selection
		if err := validators.DecodeJSONBody(r, &sel); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sel.SpecialInstructions = validators.SanitizeString(sel.SpecialInstructions, 500)

		detail, err := client.GetByID(ctx, itemID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		line, err := menu.Customize(*detail, sel)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store.AddItem(ctx, line))
	}
}
