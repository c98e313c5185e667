// Package menu proxies the menu catalog and resolves item customizations
// into cart lines.
package menu

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// Item is a catalog menu entry.
type Item struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Price          decimal.Decimal     `json:"price"`
	Image          string              `json:"image"`
	RestaurantID   string              `json:"restaurantId"`
	RestaurantName string              `json:"restaurantName"`
	Categories     []string            `json:"categories"`
	Options        map[string][]string `json:"options,omitempty"`
}

// Choice is one selectable option or extra with its price surcharge.
type Choice struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OptionGroup is a named single-select customization (size, patty type).
type OptionGroup struct {
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	Items    []Choice `json:"items"`
}

// ItemDetail is the full catalog record used by the customization flow.
type ItemDetail struct {
	Item
	OptionGroups []OptionGroup `json:"optionGroups,omitempty"`
	Extras       []Choice      `json:"extras,omitempty"`
}

type getter interface {
	Get(ctx context.Context, path string, out any) error
}

// Client reads menu data through the gateway.
type Client struct {
	gw getter
}

func NewClient(gw getter) *Client {
	return &Client{gw: gw}
}

// ForRestaurant lists a restaurant's menu.
func (c *Client) ForRestaurant(ctx context.Context, restaurantID string) ([]Item, error) {
	var out []Item
	path := fmt.Sprintf("/restaurants/%s/menu", url.PathEscape(restaurantID))
	if err := c.gw.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the full catalog record for one menu item.
func (c *Client) GetByID(ctx context.Context, id string) (*ItemDetail, error) {
	var out ItemDetail
	path := fmt.Sprintf("/menu/%s", url.PathEscape(id))
	if err := c.gw.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search looks up menu items by free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]Item, error) {
	var out []Item
	path := fmt.Sprintf("/menu/search?q=%s", url.QueryEscape(query))
	if err := c.gw.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
