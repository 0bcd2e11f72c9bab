package domain

import (
	"errors"
	"time"

	"ticket-sales/internal/core/access"
)

// ErrOrderNotFound is returned when the order does not exist or the caller may not see it.
var ErrOrderNotFound = errors.New("order not found")

// OrderStatus represents the current state of an order.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been placed but not paid.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusPaid indicates payment has been received.
	OrderStatusPaid OrderStatus = "paid"
	// OrderStatusCancelled indicates the order will not be fulfilled.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a customer's purchase of one or more tickets.
type Order struct {
	// ID is the unique identifier for the order.
	ID int64 `json:"id"`
	// CustomerID is the customer who placed the order. It is always the caller at creation.
	CustomerID int64 `json:"customer"`
	// Status represents the current state of the order.
	Status OrderStatus `json:"status"`
	// TotalCents is the order total in the smallest currency unit.
	TotalCents int64 `json:"total_cents"`
	// CreatedAt is the timestamp when the order was created.
	CreatedAt time.Time `json:"created_at"`
}

// Resource describes the order for permission checks.
func (o *Order) Resource() access.Resource {
	return access.Resource{Kind: access.KindOrder, OwnerID: o.CustomerID}
}

// OrderInput is the body of create and full update requests. The customer is
// never taken from the body.
type OrderInput struct {
	// Status defaults to pending when empty.
	Status     OrderStatus `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	TotalCents int64       `json:"total_cents" validate:"gte=0"`
}

// OrderPatch is a partial update.
type OrderPatch struct {
	Status     *OrderStatus `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	TotalCents *int64       `json:"total_cents" validate:"omitempty,gte=0"`
}

// NewOrder builds an unsaved order owned by customerID.
func NewOrder(customerID int64, in OrderInput) *Order {
	status := in.Status
	if status == "" {
		status = OrderStatusPending
	}
	return &Order{
		CustomerID: customerID,
		Status:     status,
		TotalCents: in.TotalCents,
	}
}

// Patch turns a full update into a patch. An empty status resets to pending.
func (in OrderInput) Patch() OrderPatch {
	status := in.Status
	if status == "" {
		status = OrderStatusPending
	}
	return OrderPatch{Status: &status, TotalCents: &in.TotalCents}
}

func (p OrderPatch) Apply(o *Order) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.TotalCents != nil {
		o.TotalCents = *p.TotalCents
	}
}
