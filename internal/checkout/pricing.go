package checkout

import (
	"context"

	"hampernest-be/internal/order"

	"github.com/shopspring/decimal"
)

// Quote carries the tax and shipping amounts for a prospective order.
type Quote struct {
	Tax      decimal.Decimal
	Shipping decimal.Decimal
}

// Estimator computes tax and shipping for a destination and subtotal.
// Assembly threads whatever the estimator returns into the order totals; the
// arithmetic contract (total = subtotal + tax + shipping - discount) holds
// regardless of how the quote was produced.
type Estimator interface {
	Estimate(ctx context.Context, dest order.Address, subtotal decimal.Decimal) (Quote, error)
}

// FlatEstimator is the built-in pricing policy: a flat tax rate on the
// subtotal plus flat shipping, waived above a free-shipping threshold.
type FlatEstimator struct {
	TaxRate          decimal.Decimal
	FlatShipping     decimal.Decimal
	FreeShippingOver decimal.Decimal
}

func (e FlatEstimator) Estimate(_ context.Context, _ order.Address, subtotal decimal.Decimal) (Quote, error) {
	q := Quote{
		Tax:      subtotal.Mul(e.TaxRate).Round(2),
		Shipping: e.FlatShipping,
	}
	if e.FreeShippingOver.IsPositive() && subtotal.GreaterThanOrEqual(e.FreeShippingOver) {
		q.Shipping = decimal.Zero
	}
	return q, nil
}
