package coupon

import "errors"

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrMinOrderNotMet  = errors.New("order subtotal below coupon minimum")
)
