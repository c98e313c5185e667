package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/foodfetch/storefront-backend/api/controllers"
	"github.com/foodfetch/storefront-backend/api/middleware"
	"github.com/foodfetch/storefront-backend/internal/cart"
	checkoutsvc "github.com/foodfetch/storefront-backend/internal/checkout"
	"github.com/foodfetch/storefront-backend/internal/menu"
	"github.com/foodfetch/storefront-backend/internal/orders"
	"github.com/foodfetch/storefront-backend/internal/restaurants"
	"github.com/foodfetch/storefront-backend/pkg/config"
	"github.com/foodfetch/storefront-backend/pkg/logger"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Pingers     map[string]controllers.Pinger
	Registry    *prometheus.Registry
	CartStore   *cart.Store
	Checkout    *checkoutsvc.Service
	Restaurants *restaurants.Client
	Menu        *menu.Client
	Orders      *orders.Client
}

// NewRouter assembles the storefront routes. Cart, restaurant and menu
// routes are public; checkout and order history require a bearer token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.CORS(d.Config.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.Pingers))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(d.CartStore, d.Logger))
			r.Delete("/", controllers.CartClear(d.CartStore, d.Logger))
			r.Post("/items", controllers.CartAddItem(d.CartStore, d.Logger))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(d.CartStore, d.Logger))
			r.Put("/items/{itemId}/quantity", controllers.CartSetQuantity(d.CartStore, d.Logger))
		})

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", controllers.RestaurantsList(d.Restaurants, d.Logger))
			r.Get("/featured", controllers.RestaurantsFeatured(d.Restaurants, d.Logger))
			r.Get("/{restaurantId}", controllers.RestaurantsGet(d.Restaurants, d.Logger))
			r.Get("/{restaurantId}/menu", controllers.MenuForRestaurant(d.Menu, d.Logger))
		})

		r.Route("/menu", func(r chi.Router) {
			r.Get("/search", controllers.MenuSearch(d.Menu, d.Logger))
			r.Get("/{itemId}", controllers.MenuGetItem(d.Menu, d.Logger))
			r.Post("/{itemId}/customize", controllers.MenuCustomize(d.Menu, d.CartStore, d.Logger))
		})

		authed := middleware.Auth(d.Config.JWT, d.Logger)
		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Get("/checkout/quote", controllers.CheckoutQuote(d.Checkout, d.Logger))
			r.Post("/checkout", controllers.CheckoutPlaceOrder(d.Checkout, d.Logger))
			r.Get("/orders", controllers.OrdersList(d.Orders, d.Logger))
			r.Get("/orders/{orderId}", controllers.OrdersGet(d.Orders, d.Logger))
		})
	})

	return r
}
