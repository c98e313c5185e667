// Package cart owns the authoritative shopping cart state: pure transitions
// over an ordered line-item sequence plus a store that persists every
// mutation to a durable slot.
package cart

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Persisted snapshots store prices as bare JSON numbers, matching the
	// slot format consumed by the storefront clients.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is one purchasable configuration. A customized item carries a
// synthesized id distinct from its catalog id; Price is per unit and already
// includes any selected customizations. Quantity is optional on input and
// always at least 1 once the item is in the cart.
type Item struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Price          decimal.Decimal   `json:"price"`
	Image          string            `json:"image,omitempty"`
	Quantity       int               `json:"quantity"`
	RestaurantID   string            `json:"restaurantId"`
	RestaurantName string            `json:"restaurantName"`
	Options        map[string]string `json:"options,omitempty"`
}

// State is a cart snapshot: line items in first-addition order, unique by id,
// and the derived total. TotalPrice is recomputed on every transition, never
// set directly.
type State struct {
	CartItems  []Item          `json:"cartItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Empty returns the canonical empty state.
func Empty() State {
	return State{CartItems: []Item{}, TotalPrice: decimal.Zero}
}

// Add merges the item into an existing line with the same id (summing
// quantities, keeping its position) or appends it at the end. An absent or
// non-positive quantity counts as 1.
func (s State) Add(item Item) State {
	qty := item.Quantity
	if qty <= 0 {
		qty = 1
	}

	items := cloneItems(s.CartItems)
	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = qty
		items = append(items, item)
	}
	return State{CartItems: items, TotalPrice: totalOf(items)}
}

// Remove drops the line item with the given id; unknown ids are a no-op.
func (s State) Remove(id string) State {
	items := make([]Item, 0, len(s.CartItems))
	for _, item := range s.CartItems {
		if item.ID != id {
			items = append(items, item)
		}
	}
	return State{CartItems: items, TotalPrice: totalOf(items)}
}

// SetQuantity replaces the quantity of the line item with the given id.
// A non-positive quantity removes the item; unknown ids are a no-op.
func (s State) SetQuantity(id string, quantity int) State {
	if quantity <= 0 {
		return s.Remove(id)
	}

	items := cloneItems(s.CartItems)
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = quantity
			break
		}
	}
	return State{CartItems: items, TotalPrice: totalOf(items)}
}

// clone returns a deep copy safe to hand out as a read-only snapshot.
func (s State) clone() State {
	return State{CartItems: cloneItems(s.CartItems), TotalPrice: s.TotalPrice}
}

func cloneItems(items []Item) []Item {
	cloned := make([]Item, len(items))
	copy(cloned, items)
	for i := range cloned {
		if cloned[i].Options == nil {
			continue
		}
		options := make(map[string]string, len(cloned[i].Options))
		for k, v := range cloned[i].Options {
			options[k] = v
		}
		cloned[i].Options = options
	}
	return cloned
}

// totalOf is the linear fold Σ price×quantity over the line items.
func totalOf(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
