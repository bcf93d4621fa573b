package review

import (
	"context"
	"database/sql"
	"strings"

	"hampernest-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, input NewReviewInput) (Review, error)
	ListForProduct(ctx context.Context, productID string) ([]Review, error)
	ListPending(ctx context.Context) ([]Review, error)
	Approve(ctx context.Context, reviewID string) error
	Remove(ctx context.Context, reviewID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, input NewReviewInput) (Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return Review{}, ErrInvalidRating
	}

	var rv Review
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO reviews (id, product_id, customer_id, rating, title, comment) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, product_id, customer_id, rating, title, comment, is_approved, created_at, updated_at",
		uuid.NewString(), input.ProductID, input.CustomerID, input.Rating, input.Title, input.Comment,
	).Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.Rating, &rv.Title, &rv.Comment, &rv.IsApproved, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "reviews_customer_product_key") {
			return Review{}, ErrAlreadyReviewed
		}
		logger.FromCtx(ctx).Error("db: failed to insert review",
			zap.String("product_id", input.ProductID),
			zap.String("customer_id", input.CustomerID),
			zap.Error(err),
		)
		return Review{}, err
	}

	return rv, nil
}

// ListForProduct returns only approved reviews; pending ones stay hidden
// from the storefront until moderation.
func (r *repository) ListForProduct(ctx context.Context, productID string) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, customer_id, rating, title, comment, is_approved, created_at, updated_at FROM reviews WHERE product_id = $1 AND is_approved = TRUE ORDER BY created_at DESC",
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReviews(rows)
}

func (r *repository) ListPending(ctx context.Context) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, product_id, customer_id, rating, title, comment, is_approved, created_at, updated_at FROM reviews WHERE is_approved = FALSE ORDER BY created_at ASC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReviews(rows)
}

func (r *repository) Approve(ctx context.Context, reviewID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE reviews SET is_approved = TRUE, updated_at = NOW() WHERE id = $1",
		reviewID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, reviewID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM reviews WHERE id = $1",
		reviewID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func scanReviews(rows *sql.Rows) ([]Review, error) {
	var reviews []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.CustomerID, &rv.Rating, &rv.Title, &rv.Comment, &rv.IsApproved, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
