package coupon

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	IncrementUsage(ctx context.Context, code string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	c := &Coupon{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, seller_id, code, type, value, min_order_amount,
		       usage_limit, usage_count, expires_at, is_active, created_at
		FROM coupons WHERE code = $1`,
		strings.ToUpper(strings.TrimSpace(code)),
	).Scan(&c.ID, &c.SellerID, &c.Code, &c.Type, &c.Value, &c.MinOrderAmount,
		&c.UsageLimit, &c.UsageCount, &c.ExpiresAt, &c.IsActive, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	return c, nil
}

func (r *repository) IncrementUsage(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET usage_count = usage_count + 1 WHERE code = $1`,
		strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return fmt.Errorf("increment coupon usage: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCouponNotFound
	}
	return nil
}
