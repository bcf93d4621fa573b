package cart

import (
	"context"
	"fmt"
	"time"

	"hampernest-be/internal/logger"
	"hampernest-be/internal/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AddParams struct {
	ProductID     string
	VariantID     string
	Quantity      int
	Customization map[string]any
}

// Service reconciles a session's cart. Every mutation takes the current cart
// value, returns the next one, and persists it to the store; the caller's
// cart is never modified in place.
type Service interface {
	Load(ctx context.Context, sessionID string) Cart
	Add(ctx context.Context, sessionID string, c Cart, params AddParams) (Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, c Cart, itemID string, quantity int) (Cart, error)
	Remove(ctx context.Context, sessionID string, c Cart, itemID string) (Cart, error)
	Clear(ctx context.Context, sessionID string) (Cart, error)
	GroupBySeller(ctx context.Context, c Cart) map[string][]Item
}

type service struct {
	store    Store
	products product.Resolver
	now      func() time.Time
	newID    func() string
}

func NewService(store Store, products product.Resolver) Service {
	return &service{
		store:    store,
		products: products,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Load rehydrates the session's cart. Store failures degrade to an empty
// cart so a broken backend never takes the storefront down with it.
func (s *service) Load(ctx context.Context, sessionID string) Cart {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		logger.FromCtx(ctx).Warn("cart load failed, starting empty",
			zap.String("cart_session", sessionID), zap.Error(err))
		return Cart{}
	}
	return c
}

// Add merges the product into the cart. An add matching an existing item's
// identity (product + variant + customization) increments that item's
// quantity; otherwise a new line item snapshots the product's current price.
func (s *service) Add(ctx context.Context, sessionID string, c Cart, params AddParams) (Cart, error) {
	if params.Quantity <= 0 {
		return c, ErrInvalidQuantity
	}

	p, err := s.products.GetProductByID(ctx, product.GetProductOptions{
		ProductID:  params.ProductID,
		OnlyActive: true,
	})
	if err != nil {
		return c, err
	}
	if p == nil {
		return c, ErrProductNotFound
	}

	adjustment := decimal.Zero
	if params.VariantID != "" {
		v := p.Variant(params.VariantID)
		if v == nil {
			return c, ErrVariantNotFound
		}
		adjustment = v.PriceAdjustment
	}

	key, err := identityKey(params.ProductID, params.VariantID, params.Customization)
	if err != nil {
		return c, err
	}

	next := cloneItems(c)
	for idx := range next.Items {
		item := next.Items[idx]
		itemKey, err := identityKey(item.ProductID, item.VariantID, item.Customization)
		if err != nil {
			return c, err
		}
		if itemKey == key {
			next.Items[idx].Quantity += params.Quantity
			next.Items[idx].UpdatedAt = s.now()
			return s.persist(ctx, sessionID, next)
		}
	}

	now := s.now()
	next.Items = append(next.Items, Item{
		ID:                s.newID(),
		ProductID:         p.ID,
		VariantID:         params.VariantID,
		Quantity:          params.Quantity,
		UnitPrice:         p.BasePrice,
		VariantAdjustment: adjustment,
		Customization:     params.Customization,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	return s.persist(ctx, sessionID, next)
}

// UpdateQuantity replaces an item's quantity. A quantity of zero or less is
// exactly a removal.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, c Cart, itemID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, c, itemID)
	}

	next := cloneItems(c)
	for idx := range next.Items {
		if next.Items[idx].ID == itemID {
			next.Items[idx].Quantity = quantity
			next.Items[idx].UpdatedAt = s.now()
			return s.persist(ctx, sessionID, next)
		}
	}
	// Absent item: nothing to update.
	return c, nil
}

// Remove drops the item if present; removing an absent item is a no-op.
func (s *service) Remove(ctx context.Context, sessionID string, c Cart, itemID string) (Cart, error) {
	next := Cart{Items: make([]Item, 0, len(c.Items))}
	removed := false
	for _, item := range c.Items {
		if item.ID == itemID {
			removed = true
			continue
		}
		next.Items = append(next.Items, item)
	}
	if !removed {
		return c, nil
	}
	return s.persist(ctx, sessionID, next)
}

func (s *service) Clear(ctx context.Context, sessionID string) (Cart, error) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return Cart{}, nil
}

// GroupBySeller maps seller id to that seller's line items for multi-vendor
// fulfillment. Items whose product cannot be resolved land in the "unknown"
// bucket instead of disappearing.
func (s *service) GroupBySeller(ctx context.Context, c Cart) map[string][]Item {
	groups := make(map[string][]Item)
	for _, item := range c.Items {
		sellerID := SellerUnknown
		p, err := s.products.GetProductByID(ctx, product.GetProductOptions{ProductID: item.ProductID})
		if err != nil {
			logger.FromCtx(ctx).Warn("seller grouping could not resolve product",
				zap.String("product_id", item.ProductID), zap.Error(err))
		} else if p != nil {
			sellerID = p.SellerID
		}
		groups[sellerID] = append(groups[sellerID], item)
	}
	return groups
}

func (s *service) persist(ctx context.Context, sessionID string, next Cart) (Cart, error) {
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		logger.FromCtx(ctx).Error("cart save failed",
			zap.String("cart_session", sessionID), zap.Error(err))
		return next, fmt.Errorf("%w: %v", ErrFailedSaveCart, err)
	}
	return next, nil
}

func cloneItems(c Cart) Cart {
	return Cart{Items: append([]Item(nil), c.Items...)}
}
