package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foodfetch/storefront-backend/api/responses"
	"github.com/foodfetch/storefront-backend/internal/orders"
	pkgerrors "github.com/foodfetch/storefront-backend/pkg/errors"
	"github.com/foodfetch/storefront-backend/pkg/logger"
)

// OrdersList proxies the authenticated user's order history.
func OrdersList(client *orders.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order client unavailable"))
			return
		}

		list, err := client.ListForUser(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrdersGet proxies a single order.
func OrdersGet(client *orders.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order client unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "orderId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}

		order, err := client.GetByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
