package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a single distinguishable cart entry, unique by
// product + variant + customization. UnitPrice is snapshotted when the item
// is added; later product price changes never touch an existing line item.
type Item struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	VariantID         string          `json:"variant_id,omitempty"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	VariantAdjustment decimal.Decimal `json:"variant_adjustment"`
	Customization     map[string]any  `json:"customization,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// LineTotal is the item's contribution to the cart total:
// (unit price + variant adjustment) × quantity.
func (i Item) LineTotal() decimal.Decimal {
	qty := decimal.NewFromInt(int64(i.Quantity))
	return i.UnitPrice.Mul(qty).Add(i.VariantAdjustment.Mul(qty))
}

// Customized reports whether the item carries any customization data.
func (i Item) Customized() bool {
	return len(i.Customization) > 0
}

// Cart is the session's line-item collection. Mutations are copy-on-write:
// service methods return a new Cart value and never modify the argument's
// backing array in place.
type Cart struct {
	Items []Item `json:"items"`
}

// TotalItems is the sum of quantities across all line items.
func (c Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums every line total with decimal arithmetic.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Item returns the line item with the given id, nil when absent.
func (c Cart) Item(itemID string) *Item {
	for idx := range c.Items {
		if c.Items[idx].ID == itemID {
			return &c.Items[idx]
		}
	}
	return nil
}
