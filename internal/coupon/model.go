package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID             string          `json:"id"`
	SellerID       *string         `json:"seller_id,omitempty"` // nil for marketplace-wide coupons
	Code           string          `json:"code"`
	Type           DiscountType    `json:"type"`
	Value          decimal.Decimal `json:"value"`
	MinOrderAmount decimal.Decimal `json:"min_order_amount"`
	UsageLimit     *int            `json:"usage_limit,omitempty"`
	UsageCount     int             `json:"usage_count"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Expired reports whether the coupon's expiry has passed at the given time.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Exhausted reports whether the usage limit has been reached.
func (c *Coupon) Exhausted() bool {
	return c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit
}

// DiscountFor computes the discount against a subtotal. Percentage coupons
// round half-up to cents; fixed coupons never exceed the subtotal.
func (c *Coupon) DiscountFor(subtotal decimal.Decimal) decimal.Decimal {
	switch c.Type {
	case DiscountPercentage:
		return subtotal.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFixed:
		if c.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return c.Value
	}
	return decimal.Zero
}
