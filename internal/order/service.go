package order

import (
	"context"
	"fmt"

	"hampernest-be/internal/events"
	"hampernest-be/internal/logger"
	"hampernest-be/internal/payment"

	"go.uber.org/zap"
)

type Service interface {
	CreateFromSubmission(ctx context.Context, sub *Submission, customerEmail string) (*Order, *payment.Invoice, error)
	GetOrderDetail(ctx context.Context, orderID, customerID string, isAdmin bool) (*Order, error)
	ListForCustomer(ctx context.Context, customerID string) ([]*Order, error)
	ListForSeller(ctx context.Context, sellerID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, next Status) error
	AdvanceCustomization(ctx context.Context, itemID, sellerID string, next CustomizationStatus) error
	AdvanceFulfillment(ctx context.Context, itemID, sellerID string, next FulfillmentStatus, tracking *string) error
	MarkAsPaid(ctx context.Context, paymentRef string) error
	MarkAsFailed(ctx context.Context, paymentRef string) error
}

type service struct {
	repo      Repository
	gateway   payment.Gateway
	publisher *events.Publisher
}

func NewService(repo Repository, gateway payment.Gateway, publisher *events.Publisher) Service {
	return &service{repo: repo, gateway: gateway, publisher: publisher}
}

// CreateFromSubmission persists an assembled submission and opens a payment
// invoice for its total. The submission is trusted: checkout validated it.
func (s *service) CreateFromSubmission(ctx context.Context, sub *Submission, customerEmail string) (*Order, *payment.Invoice, error) {
	if sub == nil || len(sub.Items) == 0 {
		return nil, nil, ErrEmptySubmission
	}

	o := &Order{
		OrderNumber:     GenerateOrderNumber(),
		CustomerID:      sub.CustomerID,
		Status:          StatusPending,
		Subtotal:        sub.Subtotal,
		TaxAmount:       sub.TaxAmount,
		ShippingAmount:  sub.ShippingAmount,
		DiscountAmount:  sub.DiscountAmount,
		TotalAmount:     sub.TotalAmount,
		Currency:        sub.Currency,
		PaymentStatus:   PaymentPending,
		ShippingAddress: sub.ShippingAddress,
		BillingAddress:  sub.BillingAddress,
	}
	for _, si := range sub.Items {
		o.Items = append(o.Items, &Item{
			ProductID:           si.ProductID,
			VariantID:           si.VariantID,
			SellerID:            si.SellerID,
			Quantity:            si.Quantity,
			UnitPrice:           si.UnitPrice,
			TotalPrice:          si.TotalPrice,
			Customization:       si.Customization,
			CustomizationStatus: si.CustomizationStatus,
			FulfillmentStatus:   FulfillmentPending,
		})
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, nil, err
	}

	inv, err := s.gateway.CreateInvoice(ctx, o.ID, customerEmail, o.TotalAmount)
	if err != nil {
		// The order exists; the customer can retry payment against it.
		return o, nil, fmt.Errorf("create payment invoice: %w", err)
	}
	if err := s.repo.SetPaymentRef(ctx, o.ID, inv.ExternalID); err != nil {
		return o, inv, err
	}
	o.PaymentRef = &inv.ExternalID

	s.publisher.Publish(ctx, events.EventOrderCreated, o.ID, events.OrderCreatedPayload{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount.StringFixed(2),
		Currency:    o.Currency,
		ItemCount:   len(o.Items),
		SellerIDs:   sellerIDs(o.Items),
	})

	return o, inv, nil
}

// GetOrderDetail returns the order; customers only see their own orders.
func (s *service) GetOrderDetail(ctx context.Context, orderID, customerID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.CustomerID != customerID {
		return nil, ErrNotOrderOwner
	}
	return o, nil
}

func (s *service) ListForCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) ListForSeller(ctx context.Context, sellerID string) ([]*Order, error) {
	return s.repo.ListBySeller(ctx, sellerID)
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, next Status) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !o.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.EventOrderStatusChanged, orderID, events.OrderStatusChangedPayload{
		OrderID: orderID,
		From:    string(o.Status),
		To:      string(next),
	})
	return nil
}

// AdvanceCustomization moves a personalized item one step along its
// workflow. Items without customization have no workflow to advance.
func (s *service) AdvanceCustomization(ctx context.Context, itemID, sellerID string, next CustomizationStatus) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.CustomizationStatus == nil {
		return fmt.Errorf("%w: item has no customization workflow", ErrInvalidTransition)
	}
	if !item.CustomizationStatus.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, *item.CustomizationStatus, next)
	}
	return s.repo.UpdateItemCustomizationStatus(ctx, itemID, sellerID, next)
}

func (s *service) AdvanceFulfillment(ctx context.Context, itemID, sellerID string, next FulfillmentStatus, tracking *string) error {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.FulfillmentStatus.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.FulfillmentStatus, next)
	}
	return s.repo.UpdateItemFulfillment(ctx, itemID, sellerID, next, tracking)
}

func (s *service) MarkAsPaid(ctx context.Context, paymentRef string) error {
	if err := s.repo.SetPaymentStatus(ctx, paymentRef, PaymentPaid); err != nil {
		return err
	}
	logger.FromCtx(ctx).Info("order marked paid", zap.String("payment_ref", paymentRef))

	s.publisher.Publish(ctx, events.EventOrderPaid, paymentRef, events.OrderPaidPayload{
		PaymentRef: paymentRef,
	})
	return nil
}

func (s *service) MarkAsFailed(ctx context.Context, paymentRef string) error {
	if err := s.repo.SetPaymentStatus(ctx, paymentRef, PaymentFailed); err != nil {
		return err
	}
	logger.FromCtx(ctx).Warn("order payment failed", zap.String("payment_ref", paymentRef))
	return nil
}

func sellerIDs(items []*Item) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, item := range items {
		if !seen[item.SellerID] {
			seen[item.SellerID] = true
			ids = append(ids, item.SellerID)
		}
	}
	return ids
}
