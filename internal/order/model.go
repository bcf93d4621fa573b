package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// CustomizationStatus tracks the seller-driven workflow for personalized
// items. Items without customization data carry no status at all.
type CustomizationStatus string

const (
	CustomizationPending    CustomizationStatus = "pending"
	CustomizationApproved   CustomizationStatus = "approved"
	CustomizationInProgress CustomizationStatus = "in_progress"
	CustomizationCompleted  CustomizationStatus = "completed"
)

type FulfillmentStatus string

const (
	FulfillmentPending    FulfillmentStatus = "pending"
	FulfillmentProcessing FulfillmentStatus = "processing"
	FulfillmentShipped    FulfillmentStatus = "shipped"
	FulfillmentDelivered  FulfillmentStatus = "delivered"
)

// Address is an order's shipping or billing address snapshot.
type Address struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Company      *string `json:"company,omitempty"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postal_code"`
	Country      string  `json:"country"`
	Phone        *string `json:"phone,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CustomerID      string          `json:"customer_id"`
	Status          Status          `json:"status"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	ShippingAmount  decimal.Decimal `json:"shipping_amount"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Currency        string          `json:"currency"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	PaymentRef      *string         `json:"payment_ref,omitempty"`
	ShippingAddress Address         `json:"shipping_address"`
	BillingAddress  Address         `json:"billing_address"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	Items []*Item `json:"items,omitempty"`
}

type Item struct {
	ID                  string               `json:"id"`
	OrderID             string               `json:"order_id"`
	ProductID           string               `json:"product_id"`
	VariantID           *string              `json:"variant_id,omitempty"`
	SellerID            string               `json:"seller_id"`
	Quantity            int                  `json:"quantity"`
	UnitPrice           decimal.Decimal      `json:"unit_price"`
	TotalPrice          decimal.Decimal      `json:"total_price"`
	Customization       map[string]any       `json:"customization,omitempty"`
	CustomizationStatus *CustomizationStatus `json:"customization_status,omitempty"`
	FulfillmentStatus   FulfillmentStatus    `json:"fulfillment_status"`
	TrackingNumber      *string              `json:"tracking_number,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// Submission is a validated, assembled order that has not been persisted or
// charged yet. Checkout produces it; this package turns it into rows.
type Submission struct {
	CustomerID      string
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	ShippingAmount  decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	Currency        string
	ShippingAddress Address
	BillingAddress  Address
	Items           []SubmissionItem
}

type SubmissionItem struct {
	ProductID           string
	VariantID           *string
	SellerID            string
	Quantity            int
	UnitPrice           decimal.Decimal
	TotalPrice          decimal.Decimal
	Customization       map[string]any
	CustomizationStatus *CustomizationStatus
}
