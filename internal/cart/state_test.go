package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func burger() Item {
	return Item{
		ID:             "burger-1",
		Name:           "Classic Cheeseburger",
		Price:          decimal.RequireFromString("8.99"),
		RestaurantID:   "rest-1",
		RestaurantName: "Burger Palace",
	}
}

func fries() Item {
	return Item{
		ID:             "fries-1",
		Name:           "Loaded Fries",
		Price:          decimal.RequireFromString("4.50"),
		RestaurantID:   "rest-1",
		RestaurantName: "Burger Palace",
	}
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	state := Empty().Add(burger())

	if len(state.CartItems) != 1 {
		t.Fatalf("expected 1 item, got %d", len(state.CartItems))
	}
	if state.CartItems[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", state.CartItems[0].Quantity)
	}
	if !state.TotalPrice.Equal(decimal.RequireFromString("8.99")) {
		t.Fatalf("unexpected total %s", state.TotalPrice)
	}
}

func TestAddMergesSameID(t *testing.T) {
	item := burger()
	item.Quantity = 2

	state := Empty().Add(burger()).Add(fries()).Add(item)

	if len(state.CartItems) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.CartItems))
	}
	if state.CartItems[0].ID != "burger-1" || state.CartItems[0].Quantity != 3 {
		t.Fatalf("expected merged burger line with quantity 3, got %+v", state.CartItems[0])
	}
	// 8.99*3 + 4.50
	if !state.TotalPrice.Equal(decimal.RequireFromString("31.47")) {
		t.Fatalf("unexpected total %s", state.TotalPrice)
	}
}

func TestTotalIsDerivedExactly(t *testing.T) {
	item := burger()
	item.Quantity = 3

	state := Empty().Add(item)

	if !state.TotalPrice.Equal(decimal.RequireFromString("26.97")) {
		t.Fatalf("expected 26.97, got %s", state.TotalPrice)
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	soda := Item{ID: "soda-1", Name: "Cola", Price: decimal.RequireFromString("1.99")}
	state := Empty().Add(burger()).Add(fries()).Add(soda).Remove("fries-1")

	if len(state.CartItems) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.CartItems))
	}
	if state.CartItems[0].ID != "burger-1" || state.CartItems[1].ID != "soda-1" {
		t.Fatalf("order not preserved: %+v", state.CartItems)
	}
	if !state.TotalPrice.Equal(decimal.RequireFromString("10.98")) {
		t.Fatalf("unexpected total %s", state.TotalPrice)
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	before := Empty().Add(burger())
	after := before.Remove("nope")

	if len(after.CartItems) != 1 || !after.TotalPrice.Equal(before.TotalPrice) {
		t.Fatalf("unexpected change: %+v", after)
	}
}

func TestSetQuantityReplaces(t *testing.T) {
	state := Empty().Add(burger()).SetQuantity("burger-1", 5)

	if state.CartItems[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", state.CartItems[0].Quantity)
	}
	if !state.TotalPrice.Equal(decimal.RequireFromString("44.95")) {
		t.Fatalf("unexpected total %s", state.TotalPrice)
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	state := Empty().Add(burger()).Add(fries()).SetQuantity("burger-1", 0)

	if len(state.CartItems) != 1 || state.CartItems[0].ID != "fries-1" {
		t.Fatalf("expected only fries left, got %+v", state.CartItems)
	}
}

func TestSetQuantityNegativeRemoves(t *testing.T) {
	state := Empty().Add(burger()).SetQuantity("burger-1", -2)

	if len(state.CartItems) != 0 {
		t.Fatalf("expected empty cart, got %+v", state.CartItems)
	}
	if !state.TotalPrice.IsZero() {
		t.Fatalf("expected zero total, got %s", state.TotalPrice)
	}
}

func TestSetQuantityUnknownIDIsNoOp(t *testing.T) {
	before := Empty().Add(burger())
	after := before.SetQuantity("nope", 9)

	if len(after.CartItems) != 1 || after.CartItems[0].Quantity != 1 {
		t.Fatalf("unexpected change: %+v", after)
	}
}

func TestTransitionsDoNotMutateReceiver(t *testing.T) {
	base := Empty().Add(burger())
	base.Add(fries())
	base.SetQuantity("burger-1", 7)
	base.Remove("burger-1")

	if len(base.CartItems) != 1 || base.CartItems[0].Quantity != 1 {
		t.Fatalf("receiver mutated: %+v", base.CartItems)
	}
}

func TestStateJSONShape(t *testing.T) {
	state := Empty().Add(burger())

	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["cartItems"]; !ok {
		t.Fatalf("missing cartItems key in %s", data)
	}
	if string(decoded["totalPrice"]) != "8.99" {
		t.Fatalf("expected bare-number total, got %s", decoded["totalPrice"])
	}
}
