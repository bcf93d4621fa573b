package checkout

import (
	"context"
	"fmt"

	"hampernest-be/internal/cart"
	"hampernest-be/internal/coupon"
	"hampernest-be/internal/order"
	"hampernest-be/internal/product"

	"github.com/shopspring/decimal"
)

// Result reports whether a cart may proceed to checkout. Each error is a
// human-readable message the UI can point at the offending field.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

type AssembleParams struct {
	CustomerID      string
	ShippingAddress order.Address
	BillingAddress  order.Address
	CouponCode      string
}

type Service interface {
	ValidateCart(ctx context.Context, c cart.Cart) Result
	AssembleOrder(ctx context.Context, c cart.Cart, params AssembleParams) (*order.Submission, error)
}

type service struct {
	products product.Resolver
	pricing  Estimator
	coupons  coupon.Resolver
	currency string
}

func NewService(products product.Resolver, pricing Estimator, coupons coupon.Resolver, currency string) Service {
	return &service{products: products, pricing: pricing, coupons: coupons, currency: currency}
}

// ValidateCart checks every line item: the product must still resolve, and a
// customizable product's required options must all carry non-empty values.
// Pure; no side effects.
func (s *service) ValidateCart(ctx context.Context, c cart.Cart) Result {
	var errs []string

	for _, item := range c.Items {
		p, err := s.products.GetProductByID(ctx, product.GetProductOptions{ProductID: item.ProductID})
		if err != nil || p == nil {
			errs = append(errs, fmt.Sprintf("product not found for cart item %s", item.ID))
			continue
		}

		if !p.IsCustomizable {
			continue
		}
		for idx, opt := range p.CustomizationOptions {
			if !opt.Required {
				continue
			}
			key := fmt.Sprintf("option_%d", idx)
			if !hasValue(item.Customization, key) {
				errs = append(errs, fmt.Sprintf("required customization %q missing for %s", opt.Label, p.Name))
			}
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// AssembleOrder turns a validated cart into a submission ready for the
// order-creation collaborator. Calling it on an invalid cart returns a
// *PreconditionError; assembly never silently proceeds.
func (s *service) AssembleOrder(ctx context.Context, c cart.Cart, params AssembleParams) (*order.Submission, error) {
	if res := s.ValidateCart(ctx, c); !res.Valid {
		return nil, &PreconditionError{Errors: res.Errors}
	}

	subtotal := c.TotalPrice()

	quote, err := s.pricing.Estimate(ctx, params.ShippingAddress, subtotal)
	if err != nil {
		return nil, fmt.Errorf("estimate tax and shipping: %w", err)
	}

	discount := decimal.Zero
	if params.CouponCode != "" {
		discount, err = s.coupons.Resolve(ctx, params.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
	}

	sub := &order.Submission{
		CustomerID:      params.CustomerID,
		Subtotal:        subtotal,
		TaxAmount:       quote.Tax,
		ShippingAmount:  quote.Shipping,
		DiscountAmount:  discount,
		TotalAmount:     subtotal.Add(quote.Tax).Add(quote.Shipping).Sub(discount),
		Currency:        s.currency,
		ShippingAddress: params.ShippingAddress,
		BillingAddress:  params.BillingAddress,
	}

	for _, item := range c.Items {
		p, err := s.products.GetProductByID(ctx, product.GetProductOptions{ProductID: item.ProductID})
		if err != nil {
			return nil, err
		}
		if p == nil {
			// Validation just resolved it; losing it mid-assembly means the
			// caller raced a product deletion.
			return nil, &PreconditionError{
				Errors: []string{fmt.Sprintf("product not found for cart item %s", item.ID)},
			}
		}

		si := order.SubmissionItem{
			ProductID:     item.ProductID,
			SellerID:      p.SellerID,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TotalPrice:    item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
			Customization: item.Customization,
		}
		if item.VariantID != "" {
			v := item.VariantID
			si.VariantID = &v
		}
		if item.Customized() {
			pending := order.CustomizationPending
			si.CustomizationStatus = &pending
		}
		sub.Items = append(sub.Items, si)
	}

	return sub, nil
}

// hasValue reports whether the customization value under key is present and
// non-empty. Empty strings and empty objects count as missing.
func hasValue(customization map[string]any, key string) bool {
	v, ok := customization[key]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return val != ""
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	}
	return true
}
