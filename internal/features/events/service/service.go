package service

import (
	"context"
	"fmt"

	"ticket-sales/internal/features/events/domain"
	"ticket-sales/internal/features/events/ports"
)

// EventServiceImpl implements ports.EventService.
type EventServiceImpl struct {
	repo ports.EventRepository
}

func NewEventService(repo ports.EventRepository) *EventServiceImpl {
	return &EventServiceImpl{repo: repo}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list events: %w", err)
	}
	return events, nil
}

func (s *EventServiceImpl) Get(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get event: %w", err)
	}
	return event, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	event, err := s.repo.Create(ctx, domain.NewEvent(in))
	if err != nil {
		return nil, fmt.Errorf("service: failed to create event: %w", err)
	}
	return event, nil
}

// Replace is a full update; an omitted category clears it.
func (s *EventServiceImpl) Replace(ctx context.Context, id int64, in domain.EventInput) (*domain.Event, error) {
	return s.save(ctx, id, in.Replace)
}

func (s *EventServiceImpl) Update(ctx context.Context, id int64, patch domain.EventPatch) (*domain.Event, error) {
	return s.save(ctx, id, patch.Apply)
}

func (s *EventServiceImpl) save(ctx context.Context, id int64, change func(*domain.Event)) (*domain.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	change(event)

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update event: %w", err)
	}
	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete event: %w", err)
	}
	return nil
}
