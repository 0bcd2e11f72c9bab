package domain

import (
	"encoding/json"
	"testing"
	"time"

	"ticket-sales/internal/core/access"

	"github.com/stretchr/testify/assert"
)

func TestOrder_MarshalJSON(t *testing.T) {
	order := Order{
		ID:         12,
		CustomerID: 3,
		Status:     OrderStatusPaid,
		TotalCents: 9000,
		CreatedAt:  time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(order)
	assert.NoError(t, err)

	// The owner is rendered under the relation name.
	jsonString := string(data)
	assert.Contains(t, jsonString, `"customer":3`)
	assert.Contains(t, jsonString, `"status":"paid"`)
	assert.Contains(t, jsonString, `"total_cents":9000`)
}

func TestNewOrder_DefaultsToPending(t *testing.T) {
	o := NewOrder(7, OrderInput{TotalCents: 100})
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, int64(7), o.CustomerID)

	o = NewOrder(7, OrderInput{Status: OrderStatusCancelled})
	assert.Equal(t, OrderStatusCancelled, o.Status)
}

func TestOrder_Resource(t *testing.T) {
	o := &Order{ID: 1, CustomerID: 9}
	assert.Equal(t, access.Resource{Kind: access.KindOrder, OwnerID: 9}, o.Resource())
}

func TestOrderPatch_Apply(t *testing.T) {
	o := &Order{Status: OrderStatusPending, TotalCents: 500}
	paid := OrderStatusPaid
	OrderPatch{Status: &paid}.Apply(o)

	assert.Equal(t, OrderStatusPaid, o.Status)
	assert.Equal(t, int64(500), o.TotalCents)

	OrderInput{TotalCents: 0}.Patch().Apply(o)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, int64(0), o.TotalCents)
}
