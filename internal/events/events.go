// Package events publishes order lifecycle notifications to Kafka for
// downstream consumers (seller dashboards, notification workers). Publishing
// is best-effort: a broker hiccup is logged, never surfaced to the customer.
package events

import (
	"encoding/json"
	"time"
)

const (
	TopicOrders = "hampernest.orders"

	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderPaid          = "OrderPaid"
)

type Envelope struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Producer   string          `json:"producer"`
	Payload    json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	CustomerID  string `json:"customer_id"`
	// Money travels as decimal strings, never binary floats.
	TotalAmount string   `json:"total_amount"`
	Currency    string   `json:"currency"`
	ItemCount   int      `json:"item_count"`
	SellerIDs   []string `json:"seller_ids"`
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type OrderPaidPayload struct {
	OrderID    string `json:"order_id"`
	PaymentRef string `json:"payment_ref"`
	Amount     string `json:"amount"`
}

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
