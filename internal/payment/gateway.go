// Package payment holds the gateway boundary. The marketplace runs against a
// simulated gateway; a real PSP would implement the same interface.
package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceFailed  InvoiceStatus = "failed"
)

type Invoice struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	OrderID    string          `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Status     InvoiceStatus   `json:"status"`
	InvoiceURL string          `json:"invoice_url"`
	CreatedAt  time.Time       `json:"created_at"`
}

var ErrPaymentDeclined = errors.New("payment declined")

type Gateway interface {
	CreateInvoice(ctx context.Context, orderID, customerEmail string, amount decimal.Decimal) (*Invoice, error)
	GetInvoice(ctx context.Context, externalID string) (*Invoice, error)
}

// SimulatedGateway issues invoices locally without talking to a processor.
// Checkout and webhook handlers hit it from separate goroutines, so the
// invoice map is mutex-guarded.
type SimulatedGateway struct {
	// DeclineAll makes every invoice creation fail. Test hook.
	DeclineAll bool

	mu       sync.RWMutex
	invoices map[string]*Invoice
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{invoices: make(map[string]*Invoice)}
}

func (g *SimulatedGateway) CreateInvoice(_ context.Context, orderID, _ string, amount decimal.Decimal) (*Invoice, error) {
	if g.DeclineAll {
		return nil, ErrPaymentDeclined
	}

	inv := &Invoice{
		ID:         uuid.NewString(),
		ExternalID: "sim_" + uuid.NewString(),
		OrderID:    orderID,
		Amount:     amount,
		Status:     InvoicePending,
		CreatedAt:  time.Now(),
	}
	inv.InvoiceURL = fmt.Sprintf("https://pay.sim.invalid/invoice/%s", inv.ExternalID)

	// Store a private copy; the returned invoice is the caller's alone.
	stored := *inv
	g.mu.Lock()
	g.invoices[inv.ExternalID] = &stored
	g.mu.Unlock()

	return inv, nil
}

func (g *SimulatedGateway) GetInvoice(_ context.Context, externalID string) (*Invoice, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	inv, ok := g.invoices[externalID]
	if !ok {
		return nil, fmt.Errorf("invoice %s not found", externalID)
	}

	// Copy so MarkPaid never races a caller reading the returned invoice.
	out := *inv
	return &out, nil
}

// MarkPaid settles a simulated invoice, standing in for a gateway webhook.
func (g *SimulatedGateway) MarkPaid(externalID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	inv, ok := g.invoices[externalID]
	if !ok {
		return false
	}
	inv.Status = InvoicePaid
	return true
}
