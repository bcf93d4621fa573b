package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := OrderCreatedPayload{
		OrderID:     "order-1",
		OrderNumber: "HN-20260829-0001",
		CustomerID:  "cust-1",
		TotalAmount: "45.28",
		Currency:    "USD",
		ItemCount:   2,
		SellerIDs:   []string{"seller-1"},
	}

	raw := MustMarshal(Envelope{
		EventID:   "ev-1",
		EventType: EventOrderCreated,
		Producer:  "hampernest-be",
		Payload:   MustMarshal(payload),
	})

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Equal(t, EventOrderCreated, env.EventType)

	var got OrderCreatedPayload
	require.NoError(t, json.Unmarshal(env.Payload, &got))
	assert.Equal(t, payload, got)
	assert.Equal(t, "45.28", got.TotalAmount, "amounts must survive as strings")
}

func TestNilPublisherIsNoop(t *testing.T) {
	var p *Publisher
	// Must not panic.
	p.Publish(context.Background(), EventOrderCreated, "order-1", OrderCreatedPayload{})
	assert.NoError(t, p.Close())
}

func TestNewPublisherWithoutBrokers(t *testing.T) {
	assert.Nil(t, NewPublisher(nil))
}
