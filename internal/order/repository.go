package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hampernest-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetItem(ctx context.Context, itemID string) (*Item, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
	UpdateItemCustomizationStatus(ctx context.Context, itemID, sellerID string, status CustomizationStatus) error
	UpdateItemFulfillment(ctx context.Context, itemID, sellerID string, status FulfillmentStatus, tracking *string) error
	SetPaymentRef(ctx context.Context, orderID, paymentRef string) error
	SetPaymentStatus(ctx context.Context, paymentRef string, status PaymentStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, order_number, customer_id, status, subtotal, tax_amount,
	shipping_amount, discount_amount, total_amount, currency, payment_status,
	payment_ref, shipping_address, billing_address, created_at, updated_at`

const itemColumns = `id, order_id, product_id, variant_id, seller_id, quantity,
	unit_price, total_price, customization, customization_status,
	fulfillment_status, tracking_number, created_at, updated_at`

// Create persists the order header and all its items in one transaction.
func (r *repository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedCreateOrder, err)
	}
	defer tx.Rollback()

	shipJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encode shipping address: %w", err)
	}
	billJSON, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return fmt.Errorf("encode billing address: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, customer_id, status, subtotal, tax_amount,
			shipping_amount, discount_amount, total_amount, currency,
			payment_status, shipping_address, billing_address
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`,
		o.OrderNumber, o.CustomerID, o.Status, o.Subtotal, o.TaxAmount,
		o.ShippingAmount, o.DiscountAmount, o.TotalAmount, o.Currency,
		o.PaymentStatus, shipJSON, billJSON,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedCreateOrder, err)
	}

	for _, item := range o.Items {
		item.OrderID = o.ID

		var customJSON []byte
		if len(item.Customization) > 0 {
			customJSON, err = json.Marshal(item.Customization)
			if err != nil {
				return fmt.Errorf("encode customization: %w", err)
			}
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, product_id, variant_id, seller_id, quantity,
				unit_price, total_price, customization, customization_status,
				fulfillment_status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at, updated_at`,
			item.OrderID, item.ProductID, item.VariantID, item.SellerID,
			item.Quantity, item.UnitPrice, item.TotalPrice, customJSON,
			item.CustomizationStatus, item.FulfillmentStatus,
		).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedCreateOrder, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedCreateOrder, err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetItem(ctx context.Context, itemID string) (*Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE id = $1`, itemID))
	if err == sql.ErrNoRows {
		return nil, ErrOrderItemNotFound
	}
	return item, err
}

func (r *repository) ListByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListBySeller returns the orders containing at least one of the seller's
// items. Headers only; the seller dashboard fetches details per order.
func (r *repository) ListBySeller(ctx context.Context, sellerID string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT o.id, o.order_number, o.customer_id, o.status, o.subtotal,
			o.tax_amount, o.shipping_amount, o.discount_amount, o.total_amount,
			o.currency, o.payment_status, o.payment_ref, o.shipping_address,
			o.billing_address, o.created_at, o.updated_at
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE oi.seller_id = $1
		ORDER BY o.created_at DESC`,
		sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller orders: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *repository) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) UpdateItemCustomizationStatus(ctx context.Context, itemID, sellerID string, status CustomizationStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE order_items SET customization_status = $1, updated_at = NOW()
		WHERE id = $2 AND seller_id = $3 AND customization_status IS NOT NULL`,
		status, itemID, sellerID)
	if err != nil {
		return fmt.Errorf("update customization status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotItemSeller
	}
	return nil
}

func (r *repository) UpdateItemFulfillment(ctx context.Context, itemID, sellerID string, status FulfillmentStatus, tracking *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE order_items
		SET fulfillment_status = $1, tracking_number = COALESCE($2, tracking_number),
		    updated_at = NOW()
		WHERE id = $3 AND seller_id = $4`,
		status, tracking, itemID, sellerID)
	if err != nil {
		return fmt.Errorf("update fulfillment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotItemSeller
	}
	return nil
}

func (r *repository) SetPaymentRef(ctx context.Context, orderID, paymentRef string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_ref = $1, updated_at = NOW() WHERE id = $2`,
		paymentRef, orderID)
	if err != nil {
		return fmt.Errorf("set payment ref: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) SetPaymentStatus(ctx context.Context, paymentRef string, status PaymentStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE payment_ref = $2`,
		status, paymentRef)
	if err != nil {
		return fmt.Errorf("set payment status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM order_items WHERE order_id = $1 ORDER BY created_at`,
		o.ID)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var shipJSON, billJSON []byte

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.Subtotal,
		&o.TaxAmount, &o.ShippingAmount, &o.DiscountAmount, &o.TotalAmount,
		&o.Currency, &o.PaymentStatus, &o.PaymentRef, &shipJSON, &billJSON,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(shipJSON) > 0 {
		if err := json.Unmarshal(shipJSON, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address: %w", err)
		}
	}
	if len(billJSON) > 0 {
		if err := json.Unmarshal(billJSON, &o.BillingAddress); err != nil {
			return nil, fmt.Errorf("decode billing address: %w", err)
		}
	}
	return o, nil
}

func scanItem(row rowScanner) (*Item, error) {
	item := &Item{}
	var customJSON []byte
	var customStatus sql.NullString

	err := row.Scan(
		&item.ID, &item.OrderID, &item.ProductID, &item.VariantID, &item.SellerID,
		&item.Quantity, &item.UnitPrice, &item.TotalPrice, &customJSON,
		&customStatus, &item.FulfillmentStatus, &item.TrackingNumber,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(customJSON) > 0 {
		if err := json.Unmarshal(customJSON, &item.Customization); err != nil {
			return nil, fmt.Errorf("decode customization: %w", err)
		}
	}
	if customStatus.Valid {
		s := CustomizationStatus(customStatus.String)
		item.CustomizationStatus = &s
	}
	return item, nil
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
