package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/foodfetch/storefront-backend/internal/cart"
	"github.com/foodfetch/storefront-backend/pkg/kv"
	"github.com/foodfetch/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
}

func newCartStore(t *testing.T) *cart.Store {
	t.Helper()
	store, err := cart.NewStore(context.Background(), kv.NewMemorySlot(), "foodfetch_cart", nil, testLogger(), nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func cartRouter(store *cart.Store) http.Handler {
	logg := testLogger()
	r := chi.NewRouter()
	r.Get("/cart", CartGet(store, logg))
	r.Post("/cart/items", CartAddItem(store, logg))
	r.Delete("/cart/items/{itemId}", CartRemoveItem(store, logg))
	r.Put("/cart/items/{itemId}/quantity", CartSetQuantity(store, logg))
	r.Delete("/cart", CartClear(store, logg))
	return r
}

func decodeState(t *testing.T, body *bytes.Buffer) cart.State {
	t.Helper()
	var envelope struct {
		Data cart.State `json:"data"`
	}
	if err := json.Unmarshal(body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope.Data
}

const addBurgerBody = `{
	"id": "burger-1",
	"name": "Classic Cheeseburger",
	"price": 8.99,
	"quantity": 3,
	"restaurantId": "rest-1",
	"restaurantName": "Burger Palace"
}`

func TestCartAddAndGet(t *testing.T) {
	router := cartRouter(newCartStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(addBurgerBody)))
	if w.Code != http.StatusOK {
		t.Fatalf("add returned %d: %s", w.Code, w.Body.String())
	}

	state := decodeState(t, w.Body)
	if len(state.CartItems) != 1 || state.CartItems[0].Quantity != 3 {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.TotalPrice.String() != "26.97" {
		t.Fatalf("expected total 26.97, got %s", state.TotalPrice)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get returned %d", w.Code)
	}
	if got := decodeState(t, w.Body); len(got.CartItems) != 1 {
		t.Fatalf("cart not retained: %+v", got)
	}
}

func TestCartAddValidatesBody(t *testing.T) {
	router := cartRouter(newCartStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"name":"x"}`)))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCartRemoveUnknownIsNoOp(t *testing.T) {
	store := newCartStore(t)
	router := cartRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(addBurgerBody)))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cart/items/ghost", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeState(t, w.Body); len(got.CartItems) != 1 {
		t.Fatalf("unknown id removal must not change the cart: %+v", got)
	}
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	router := cartRouter(newCartStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(addBurgerBody)))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/cart/items/burger-1/quantity", strings.NewReader(`{"quantity":0}`))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeState(t, w.Body); len(got.CartItems) != 0 {
		t.Fatalf("zero quantity should remove the line: %+v", got)
	}
}

func TestCartClear(t *testing.T) {
	router := cartRouter(newCartStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(addBurgerBody)))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeState(t, w.Body); len(got.CartItems) != 0 || !got.TotalPrice.IsZero() {
		t.Fatalf("clear should empty the cart: %+v", got)
	}
}
