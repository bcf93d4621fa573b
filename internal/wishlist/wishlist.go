package wishlist

import (
	"context"
	"database/sql"
	"time"

	"hampernest-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	List(ctx context.Context, userID string) ([]Item, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Add is idempotent; re-adding a wishlisted product is a no-op.
func (r *repository) Add(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO wishlist_items (id, user_id, product_id) VALUES ($1, $2, $3) ON CONFLICT (user_id, product_id) DO NOTHING",
		uuid.NewString(), userID, productID,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to add wishlist item",
			zap.String("user_id", userID),
			zap.String("product_id", productID),
			zap.Error(err),
		)
	}
	return err
}

func (r *repository) Remove(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	return err
}

func (r *repository) List(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, product_id, created_at FROM wishlist_items WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProductID, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
