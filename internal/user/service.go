package user

import (
	"context"
	"strings"

	"hampernest-be/internal/logger"
	"hampernest-be/internal/rbac"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	BecomeSeller(ctx context.Context, userID, storeName string) (SellerProfile, error)
	ApproveSeller(ctx context.Context, sellerID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed, string(rbac.RoleCustomer))
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, u.Role, email, nil)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Info("login failed, email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("login failed, password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Role, email, u.SellerID)
	return token, u, err
}

func (s *service) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *service) BecomeSeller(ctx context.Context, userID, storeName string) (SellerProfile, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return SellerProfile{}, err
	}
	if u.SellerID != nil {
		return SellerProfile{}, ErrAlreadySeller
	}

	return s.repo.CreateSellerProfile(ctx, userID, storeName)
}

// ApproveSeller makes the profile's storefront visible to customers.
func (s *service) ApproveSeller(ctx context.Context, sellerID string) error {
	if err := s.repo.ApproveSellerProfile(ctx, sellerID); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("seller profile approved", zap.String("seller_id", sellerID))
	return nil
}
