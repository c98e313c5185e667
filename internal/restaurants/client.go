// Package restaurants proxies the restaurant catalog from the upstream
// gateway.
package restaurants

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// Restaurant is the catalog entry shown on the storefront.
type Restaurant struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Address      string          `json:"address"`
	Rating       float64         `json:"rating"`
	DeliveryTime string          `json:"deliveryTime"`
	DeliveryFee  decimal.Decimal `json:"deliveryFee"`
	Categories   []string        `json:"categories"`
	Featured     bool            `json:"featured,omitempty"`
}

type getter interface {
	Get(ctx context.Context, path string, out any) error
}

// Client reads restaurant data through the gateway.
type Client struct {
	gw getter
}

func NewClient(gw getter) *Client {
	return &Client{gw: gw}
}

// List returns all restaurants.
func (c *Client) List(ctx context.Context) ([]Restaurant, error) {
	var out []Restaurant
	if err := c.gw.Get(ctx, "/restaurants", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Featured returns the restaurants highlighted on the landing page.
func (c *Client) Featured(ctx context.Context) ([]Restaurant, error) {
	var out []Restaurant
	if err := c.gw.Get(ctx, "/restaurants/featured", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single restaurant.
func (c *Client) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	var out Restaurant
	path := fmt.Sprintf("/restaurants/%s", url.PathEscape(id))
	if err := c.gw.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
