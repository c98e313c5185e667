package checkout

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/foodfetch/storefront-backend/internal/cart"
	"github.com/foodfetch/storefront-backend/internal/orders"
	"github.com/foodfetch/storefront-backend/pkg/config"
	pkgerrors "github.com/foodfetch/storefront-backend/pkg/errors"
	"github.com/foodfetch/storefront-backend/pkg/kv"
	"github.com/foodfetch/storefront-backend/pkg/logger"
)

type fakeOrderClient struct {
	created []orders.Order
	failFor map[string]error
}

func (f *fakeOrderClient) Create(_ context.Context, order orders.Order) (*orders.Order, error) {
	if err, ok := f.failFor[order.RestaurantID]; ok {
		return nil, err
	}
	f.created = append(f.created, order)
	stored := order
	stored.ID = "order-" + order.RestaurantID
	stored.Status = "pending"
	return &stored, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func seededStore(t *testing.T, items ...cart.Item) *cart.Store {
	t.Helper()
	store, err := cart.NewStore(context.Background(), kv.NewMemorySlot(), "foodfetch_cart", nil, testLogger(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for _, item := range items {
		store.AddItem(context.Background(), item)
	}
	return store
}

func newService(t *testing.T, store *cart.Store, client *fakeOrderClient) *Service {
	t.Helper()
	svc, err := NewService(config.CheckoutConfig{DeliveryFee: "2.99", TaxRate: "0.07"}, store, client, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func burger() cart.Item {
	return cart.Item{
		ID:             "burger-1",
		Name:           "Classic Cheeseburger",
		Price:          decimal.RequireFromString("8.99"),
		Quantity:       2,
		RestaurantID:   "rest-1",
		RestaurantName: "Burger Palace",
	}
}

func sushi() cart.Item {
	return cart.Item{
		ID:             "roll-9",
		Name:           "Dragon Roll",
		Price:          decimal.RequireFromString("12.00"),
		RestaurantID:   "rest-2",
		RestaurantName: "Sushi Spot",
	}
}

func testAddress() orders.Address {
	return orders.Address{Street: "1 Main St", City: "Springfield", ZipCode: "12345"}
}

func TestQuoteEmptyCartHasNoFee(t *testing.T) {
	svc := newService(t, seededStore(t), &fakeOrderClient{})

	quote := svc.QuoteCart(context.Background())

	if !quote.Subtotal.IsZero() || !quote.DeliveryFee.IsZero() || !quote.Total.IsZero() {
		t.Fatalf("empty cart should quote zero, got %+v", quote)
	}
}

func TestQuoteAppliesFeeAndTax(t *testing.T) {
	svc := newService(t, seededStore(t, burger()), &fakeOrderClient{})

	quote := svc.QuoteCart(context.Background())

	// subtotal 17.98, fee 2.99, tax 7% of 17.98 = 1.26 rounded
	if !quote.Subtotal.Equal(decimal.RequireFromString("17.98")) {
		t.Fatalf("unexpected subtotal %s", quote.Subtotal)
	}
	if !quote.DeliveryFee.Equal(decimal.RequireFromString("2.99")) {
		t.Fatalf("unexpected fee %s", quote.DeliveryFee)
	}
	if !quote.Tax.Equal(decimal.RequireFromString("1.26")) {
		t.Fatalf("unexpected tax %s", quote.Tax)
	}
	if !quote.Total.Equal(decimal.RequireFromString("22.23")) {
		t.Fatalf("unexpected total %s", quote.Total)
	}
}

func TestPlaceOrderGroupsPerRestaurant(t *testing.T) {
	client := &fakeOrderClient{}
	store := seededStore(t, burger(), sushi())
	svc := newService(t, store, client)

	result, err := svc.PlaceOrder(context.Background(), testAddress(), PaymentMethodCard)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if len(result.Orders) != 2 {
		t.Fatalf("expected one order per restaurant, got %d", len(result.Orders))
	}
	if client.created[0].RestaurantID != "rest-1" || client.created[1].RestaurantID != "rest-2" {
		t.Fatalf("restaurant order not preserved: %+v", client.created)
	}
	if client.created[0].Items[0].MenuItemID != "burger-1" || client.created[0].Items[0].Quantity != 2 {
		t.Fatalf("unexpected order lines %+v", client.created[0].Items)
	}

	if len(store.Snapshot().CartItems) != 0 {
		t.Fatal("cart should be cleared after full success")
	}
}

func TestPlaceOrderKeepsCartOnPartialFailure(t *testing.T) {
	client := &fakeOrderClient{failFor: map[string]error{"rest-2": errors.New("kitchen closed")}}
	store := seededStore(t, burger(), sushi())
	svc := newService(t, store, client)

	result, err := svc.PlaceOrder(context.Background(), testAddress(), PaymentMethodCash)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if len(result.Orders) != 1 || result.Orders[0].RestaurantID != "rest-1" {
		t.Fatalf("expected the successful order reported, got %+v", result.Orders)
	}
	if len(store.Snapshot().CartItems) != 2 {
		t.Fatal("cart must stay intact when any order fails")
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc := newService(t, seededStore(t), &fakeOrderClient{})

	_, err := svc.PlaceOrder(context.Background(), testAddress(), PaymentMethodCard)

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceOrderValidatesInput(t *testing.T) {
	svc := newService(t, seededStore(t, burger()), &fakeOrderClient{})

	if _, err := svc.PlaceOrder(context.Background(), orders.Address{City: "x"}, PaymentMethodCard); pkgerrors.As(err) == nil {
		t.Fatalf("expected address validation error, got %v", err)
	}
	if _, err := svc.PlaceOrder(context.Background(), testAddress(), "crypto"); pkgerrors.As(err) == nil {
		t.Fatalf("expected payment method validation error, got %v", err)
	}
}
