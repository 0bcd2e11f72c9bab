package ports

import (
	"context"

	"ticket-sales/internal/features/events/domain"
)

type EventService interface {
	List(ctx context.Context) ([]*domain.Event, error)
	Get(ctx context.Context, id int64) (*domain.Event, error)
	Create(ctx context.Context, in domain.EventInput) (*domain.Event, error)
	Replace(ctx context.Context, id int64, in domain.EventInput) (*domain.Event, error)
	Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

// EventRepository persists events. Create and Update return
// domain.ErrUnknownCategory when the category does not exist, and Delete
// returns domain.ErrEventHasTickets while tickets still reference the event.
type EventRepository interface {
	List(ctx context.Context) ([]*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}
