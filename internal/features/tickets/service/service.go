package service

import (
	"context"
	"fmt"

	"ticket-sales/internal/core/access"
	"ticket-sales/internal/features/tickets/domain"
	"ticket-sales/internal/features/tickets/ports"
)

// TicketServiceImpl implements ports.TicketService. Ticket visibility follows the owning order.
type TicketServiceImpl struct {
	repo ports.TicketRepository
}

// NewTicketService creates a new TicketServiceImpl.
func NewTicketService(repo ports.TicketRepository) *TicketServiceImpl {
	return &TicketServiceImpl{repo: repo}
}

// List returns the tickets p may see: every ticket for staff, otherwise those on p's orders.
func (s *TicketServiceImpl) List(ctx context.Context, p access.Principal) ([]*domain.Ticket, error) {
	tickets, err := s.repo.List(ctx, access.Scope(p))
	if err != nil {
		return nil, fmt.Errorf("service: failed to list tickets: %w", err)
	}
	return tickets, nil
}

// Get returns one ticket. Tickets on another customer's order read as not found.
func (s *TicketServiceImpl) Get(ctx context.Context, p access.Principal, id int64) (*domain.Ticket, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get ticket: %w", err)
	}
	if !access.Allowed(p, ticket.Resource()) {
		return nil, domain.ErrTicketNotFound
	}
	return ticket, nil
}

// Create adds a ticket to an order p may write to.
func (s *TicketServiceImpl) Create(ctx context.Context, p access.Principal, in domain.TicketInput) (*domain.Ticket, error) {
	if err := s.checkOrder(ctx, p, in.OrderID); err != nil {
		return nil, err
	}

	ticket, err := s.repo.Create(ctx, &domain.Ticket{
		OrderID:    in.OrderID,
		EventID:    in.EventID,
		Seat:       in.Seat,
		PriceCents: in.PriceCents,
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to create ticket: %w", err)
	}
	return ticket, nil
}

// Update applies patch. Moving the ticket to another order re-checks ownership of that order.
func (s *TicketServiceImpl) Update(ctx context.Context, p access.Principal, id int64, patch domain.TicketPatch) (*domain.Ticket, error) {
	ticket, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if patch.OrderID != nil && *patch.OrderID != ticket.OrderID {
		if err := s.checkOrder(ctx, p, *patch.OrderID); err != nil {
			return nil, err
		}
	}
	patch.Apply(ticket)

	updated, err := s.repo.Update(ctx, ticket)
	if err != nil {
		return nil, fmt.Errorf("service: failed to update ticket: %w", err)
	}
	return updated, nil
}

// Delete removes a ticket p can see.
func (s *TicketServiceImpl) Delete(ctx context.Context, p access.Principal, id int64) error {
	if _, err := s.Get(ctx, p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete ticket: %w", err)
	}
	return nil
}

// checkOrder fails unless orderID exists and p may attach tickets to it.
func (s *TicketServiceImpl) checkOrder(ctx context.Context, p access.Principal, orderID int64) error {
	owner, err := s.repo.OrderOwner(ctx, orderID)
	if err != nil {
		return fmt.Errorf("service: failed to check order: %w", err)
	}
	if !access.Allowed(p, access.Resource{Kind: access.KindOrder, OwnerID: owner}) {
		return domain.ErrForeignOrder
	}
	return nil
}
