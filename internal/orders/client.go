// Package orders proxies order placement and history through the gateway.
package orders

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// Line references one menu item within an order.
type Line struct {
	MenuItemID string            `json:"menuItemId"`
	Quantity   int               `json:"quantity"`
	Options    map[string]string `json:"options,omitempty"`
}

// Address is the delivery destination.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Notes   string `json:"notes,omitempty"`
}

// Order is the upstream order record. Status, total and timestamps are
// assigned by the order service.
type Order struct {
	ID            string          `json:"id,omitempty"`
	RestaurantID  string          `json:"restaurantId"`
	Items         []Line          `json:"items"`
	Address       Address         `json:"address"`
	Status        string          `json:"status,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
}

type caller interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Client talks to the upstream order service.
type Client struct {
	gw caller
}

func NewClient(gw caller) *Client {
	return &Client{gw: gw}
}

// Create places one order and returns the stored record.
func (c *Client) Create(ctx context.Context, order Order) (*Order, error) {
	var out Order
	if err := c.gw.Post(ctx, "/orders", order, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListForUser returns the authenticated user's order history.
func (c *Client) ListForUser(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.gw.Get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one order.
func (c *Client) GetByID(ctx context.Context, id string) (*Order, error) {
	var out Order
	path := fmt.Sprintf("/orders/%s", url.PathEscape(id))
	if err := c.gw.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
