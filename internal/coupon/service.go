package coupon

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Resolver turns an applied coupon code into a discount amount for a given
// subtotal. Checkout consumes this; a failed resolution carries a sentinel
// error and a zero discount.
type Resolver interface {
	Resolve(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error)
}

type Service interface {
	Resolver
	Redeem(ctx context.Context, code string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Resolve(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	c, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	if c == nil || !c.IsActive {
		return decimal.Zero, ErrCouponNotFound
	}
	if c.Expired(s.now()) {
		return decimal.Zero, ErrCouponExpired
	}
	if c.Exhausted() {
		return decimal.Zero, ErrCouponExhausted
	}
	if subtotal.LessThan(c.MinOrderAmount) {
		return decimal.Zero, ErrMinOrderNotMet
	}
	return c.DiscountFor(subtotal), nil
}

// Redeem bumps the usage counter once an order using the coupon is placed.
func (s *service) Redeem(ctx context.Context, code string) error {
	return s.repo.IncrementUsage(ctx, code)
}
