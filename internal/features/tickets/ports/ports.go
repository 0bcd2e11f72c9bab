package ports

import (
	"context"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/features/tickets/domain"
)

type TicketService interface {
	List(ctx context.Context, p access.Principal) ([]*domain.Ticket, error)
	Get(ctx context.Context, p access.Principal, id int64) (*domain.Ticket, error)
	Create(ctx context.Context, p access.Principal, in domain.TicketInput) (*domain.Ticket, error)
	Update(ctx context.Context, p access.Principal, id int64, patch domain.TicketPatch) (*domain.Ticket, error)
	Delete(ctx context.Context, p access.Principal, id int64) error
}

// TicketRepository persists tickets. Tickets are returned with the customer of
// their order filled in. Create and Update return domain.ErrUnknownOrder or
// domain.ErrUnknownEvent for dangling references.
type TicketRepository interface {
	// List returns every ticket, or only those on customerID's orders when it is not nil.
	List(ctx context.Context, customerID *int64) ([]*domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
	// OrderOwner returns the customer of orderID, or domain.ErrUnknownOrder.
	OrderOwner(ctx context.Context, orderID int64) (int64, error)
}
