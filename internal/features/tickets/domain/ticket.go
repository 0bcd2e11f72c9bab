package domain

import (
	"errors"
	"time"

	"ticket-sales/internal/core/access"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrUnknownOrder   = errors.New("order does not exist")
	ErrUnknownEvent   = errors.New("event does not exist")
	// ErrForeignOrder is returned when a customer attaches a ticket to someone else's order.
	ErrForeignOrder = errors.New("you can only add tickets to your own orders")
)

// Ticket is a seat for an event, bought through an order.
type Ticket struct {
	ID         int64  `json:"id"`
	OrderID    int64  `json:"order"`
	EventID    int64  `json:"event"`
	Seat       string `json:"seat"`
	PriceCents int64  `json:"price_cents"`
	// CustomerID is the owning order's customer. It is read-only.
	CustomerID int64     `json:"customer"`
	CreatedAt  time.Time `json:"created_at"`
}

// Resource describes the ticket for permission checks; tickets belong to their order's customer.
func (t *Ticket) Resource() access.Resource {
	return access.Resource{Kind: access.KindTicket, OwnerID: t.CustomerID}
}

type TicketInput struct {
	OrderID    int64  `json:"order" validate:"required,gt=0"`
	EventID    int64  `json:"event" validate:"required,gt=0"`
	Seat       string `json:"seat" validate:"max=32"`
	PriceCents int64  `json:"price_cents" validate:"gte=0"`
}

type TicketPatch struct {
	OrderID    *int64  `json:"order" validate:"omitempty,gt=0"`
	EventID    *int64  `json:"event" validate:"omitempty,gt=0"`
	Seat       *string `json:"seat" validate:"omitempty,max=32"`
	PriceCents *int64  `json:"price_cents" validate:"omitempty,gte=0"`
}

func (in TicketInput) Patch() TicketPatch {
	return TicketPatch{OrderID: &in.OrderID, EventID: &in.EventID, Seat: &in.Seat, PriceCents: &in.PriceCents}
}

func (p TicketPatch) Apply(t *Ticket) {
	if p.OrderID != nil {
		t.OrderID = *p.OrderID
	}
	if p.EventID != nil {
		t.EventID = *p.EventID
	}
	if p.Seat != nil {
		t.Seat = *p.Seat
	}
	if p.PriceCents != nil {
		t.PriceCents = *p.PriceCents
	}
}
