package user

import (
	"context"
	"database/sql"

	"hampernest-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, password, role string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	CreateSellerProfile(ctx context.Context, userID, storeName string) (SellerProfile, error)
	ApproveSellerProfile(ctx context.Context, sellerID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, password, role string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (id, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id, email, password, role, created_at, updated_at",
		uuid.NewString(), email, password, role,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("email", email),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT u.id, u.email, u.password, u.role, s.id, u.created_at, u.updated_at FROM users u LEFT JOIN seller_profiles s ON u.id = s.user_id WHERE u.email=$1",
		email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.SellerID, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}

	return u, err
}

func (r *repository) FindByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		"SELECT u.id, u.email, u.password, u.role, s.id, u.created_at, u.updated_at FROM users u LEFT JOIN seller_profiles s ON u.id = s.user_id WHERE u.id=$1",
		id,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.SellerID, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrUserNotFound
	}

	return u, err
}

func (r *repository) CreateSellerProfile(ctx context.Context, userID, storeName string) (SellerProfile, error) {
	log := logger.FromCtx(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return SellerProfile{}, err
	}
	defer tx.Rollback()

	var p SellerProfile
	err = tx.QueryRowContext(ctx,
		"INSERT INTO seller_profiles (id, user_id, store_name) VALUES ($1, $2, $3) RETURNING id, user_id, store_name, approved, created_at, updated_at",
		uuid.NewString(), userID, storeName,
	).Scan(&p.ID, &p.UserID, &p.StoreName, &p.Approved, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("db: failed to insert seller profile",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return SellerProfile{}, err
	}

	// Seller capability is granted up front; approval only gates storefront
	// visibility.
	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2",
		"seller", userID,
	); err != nil {
		return SellerProfile{}, err
	}

	return p, tx.Commit()
}

func (r *repository) ApproveSellerProfile(ctx context.Context, sellerID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE seller_profiles SET approved = TRUE, updated_at = NOW() WHERE id = $1",
		sellerID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
