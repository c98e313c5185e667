package menu

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/foodfetch/storefront-backend/internal/cart"
	pkgerrors "github.com/foodfetch/storefront-backend/pkg/errors"
)

// Selection captures the customer's choices for one catalog item.
type Selection struct {
	// Options maps an option group name to the chosen choice id.
	Options             map[string]string `json:"options,omitempty"`
	ExtraIDs            []string          `json:"extraIds,omitempty"`
	SpecialInstructions string            `json:"specialInstructions,omitempty"`
	Quantity            int               `json:"quantity,omitempty"`
}

// Customize resolves a catalog item plus a selection into a cart line.
// Each customization gets its own synthesized line id so two differently
// configured copies of the same dish never merge. The unit price folds in
// every selected option and extra surcharge.
func Customize(detail ItemDetail, sel Selection) (cart.Item, error) {
	unitPrice := detail.Price
	display := map[string]string{}

	for _, group := range detail.OptionGroups {
		choiceID, chosen := sel.Options[group.Name]
		if !chosen {
			if group.Required {
				return cart.Item{}, pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("option %q is required", group.Name))
			}
			continue
		}
		choice, ok := findChoice(group.Items, choiceID)
		if !ok {
			return cart.Item{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unknown choice %q for option %q", choiceID, group.Name))
		}
		unitPrice = unitPrice.Add(choice.Price)
		display[group.Name] = choice.Name
	}

	var extraNames []string
	for _, extraID := range sel.ExtraIDs {
		extra, ok := findChoice(detail.Extras, extraID)
		if !ok {
			return cart.Item{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unknown extra %q", extraID))
		}
		unitPrice = unitPrice.Add(extra.Price)
		extraNames = append(extraNames, extra.Name)
	}
	if len(extraNames) > 0 {
		display["Extras"] = strings.Join(extraNames, ", ")
	}
	if instructions := strings.TrimSpace(sel.SpecialInstructions); instructions != "" {
		display["Special Instructions"] = instructions
	}
	if len(display) == 0 {
		display = nil
	}

	quantity := sel.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	return cart.Item{
		ID:             fmt.Sprintf("%s-%s", detail.ID, uuid.NewString()),
		Name:           detail.Name,
		Description:    detail.Description,
		Price:          unitPrice,
		Image:          detail.Image,
		Quantity:       quantity,
		RestaurantID:   detail.RestaurantID,
		RestaurantName: detail.RestaurantName,
		Options:        display,
	}, nil
}

func findChoice(choices []Choice, id string) (Choice, bool) {
	for _, c := range choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}
