// Package checkout turns the current cart into priced quotes and placed
// orders.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/foodfetch/storefront-backend/internal/cart"
	"github.com/foodfetch/storefront-backend/internal/orders"
	"github.com/foodfetch/storefront-backend/pkg/config"
	pkgerrors "github.com/foodfetch/storefront-backend/pkg/errors"
	"github.com/foodfetch/storefront-backend/pkg/logger"
)

// PaymentMethodCard and PaymentMethodCash are the accepted payment methods.
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// Quote is the priced breakdown shown before placing an order.
type Quote struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"itemCount"`
}

// PlacementResult reports the orders created for one checkout.
type PlacementResult struct {
	Orders []orders.Order `json:"orders"`
}

type cartStore interface {
	Snapshot() cart.State
	Clear(ctx context.Context) cart.State
}

type orderCreator interface {
	Create(ctx context.Context, order orders.Order) (*orders.Order, error)
}

// Service prices carts and places one upstream order per restaurant.
type Service struct {
	store       cartStore
	orders      orderCreator
	logg        *logger.Logger
	deliveryFee decimal.Decimal
	taxRate     decimal.Decimal
}

// NewService parses the pricing constants and wires the collaborators.
func NewService(cfg config.CheckoutConfig, store cartStore, creator orderCreator, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("checkout service: cart store is required")
	}
	if creator == nil {
		return nil, errors.New("checkout service: order client is required")
	}
	if logg == nil {
		return nil, errors.New("checkout service: logger is required")
	}
	fee, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("parsing delivery fee %q: %w", cfg.DeliveryFee, err)
	}
	rate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("parsing tax rate %q: %w", cfg.TaxRate, err)
	}
	return &Service{
		store:       store,
		orders:      creator,
		logg:        logg,
		deliveryFee: fee,
		taxRate:     rate,
	}, nil
}

// QuoteCart prices the current cart. The delivery fee applies only when the
// cart holds at least one item; tax is charged on the subtotal.
func (s *Service) QuoteCart(ctx context.Context) Quote {
	return s.quote(s.store.Snapshot())
}

func (s *Service) quote(state cart.State) Quote {
	subtotal := state.TotalPrice
	fee := decimal.Zero
	if len(state.CartItems) > 0 {
		fee = s.deliveryFee
	}
	tax := subtotal.Mul(s.taxRate).Round(2)
	return Quote{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
		ItemCount:   len(state.CartItems),
	}
}

// PlaceOrder groups the cart per restaurant and creates one upstream order
// per group. The cart is cleared only when every order succeeded; on partial
// failure the cart stays intact so the customer can retry.
func (s *Service) PlaceOrder(ctx context.Context, address orders.Address, paymentMethod string) (*PlacementResult, error) {
	if err := validatePlacement(address, paymentMethod); err != nil {
		return nil, err
	}

	state := s.store.Snapshot()
	if len(state.CartItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	result := &PlacementResult{}
	var errs error
	for _, group := range groupByRestaurant(state.CartItems) {
		order := orders.Order{
			RestaurantID:  group.restaurantID,
			Items:         group.lines,
			Address:       address,
			PaymentMethod: paymentMethod,
		}
		created, err := s.orders.Create(ctx, order)
		if err != nil {
			ctx := s.logg.WithRestaurantID(ctx, group.restaurantID)
			s.logg.Error(ctx, "order placement failed", err)
			errs = multierr.Append(errs, fmt.Errorf("restaurant %s: %w", group.restaurantID, err))
			continue
		}
		result.Orders = append(result.Orders, *created)
	}

	if errs != nil {
		return result, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "some orders could not be placed")
	}

	s.store.Clear(ctx)
	return result, nil
}

func validatePlacement(address orders.Address, paymentMethod string) error {
	if strings.TrimSpace(address.Street) == "" ||
		strings.TrimSpace(address.City) == "" ||
		strings.TrimSpace(address.ZipCode) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is incomplete")
	}
	if paymentMethod != PaymentMethodCard && paymentMethod != PaymentMethodCash {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("payment method must be %q or %q", PaymentMethodCard, PaymentMethodCash))
	}
	return nil
}

type restaurantGroup struct {
	restaurantID string
	lines        []orders.Line
}

// groupByRestaurant buckets cart lines per restaurant, preserving the order
// in which restaurants first appear in the cart.
func groupByRestaurant(items []cart.Item) []restaurantGroup {
	index := map[string]int{}
	var groups []restaurantGroup
	for _, item := range items {
		line := orders.Line{
			MenuItemID: item.ID,
			Quantity:   item.Quantity,
			Options:    item.Options,
		}
		if i, ok := index[item.RestaurantID]; ok {
			groups[i].lines = append(groups[i].lines, line)
			continue
		}
		index[item.RestaurantID] = len(groups)
		groups = append(groups, restaurantGroup{
			restaurantID: item.RestaurantID,
			lines:        []orders.Line{line},
		})
	}
	return groups
}
