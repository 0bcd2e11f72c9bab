package domain

import (
	"errors"
	"time"
)

var (
	ErrEventNotFound = errors.New("event not found")
	// ErrUnknownCategory is returned when an event references a category that does not exist.
	ErrUnknownCategory = errors.New("category does not exist")
	ErrEventHasTickets = errors.New("event has tickets and cannot be deleted")
)

// Event is something tickets are sold for.
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CategoryID  *int64    `json:"category"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	PriceCents  int64     `json:"price_cents"`
	Capacity    int       `json:"capacity"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventInput is the body of create and full update requests.
type EventInput struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	CategoryID  *int64    `json:"category" validate:"omitempty,gt=0"`
	Venue       string    `json:"venue" validate:"max=255"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	PriceCents  int64     `json:"price_cents" validate:"gte=0"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
	ImageURL    string    `json:"image_url" validate:"omitempty,url"`
}

// EventPatch is a partial update. A category can be set but not cleared through a patch.
type EventPatch struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	CategoryID  *int64     `json:"category" validate:"omitempty,gt=0"`
	Venue       *string    `json:"venue" validate:"omitempty,max=255"`
	StartsAt    *time.Time `json:"starts_at"`
	PriceCents  *int64     `json:"price_cents" validate:"omitempty,gte=0"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gte=0"`
	ImageURL    *string    `json:"image_url" validate:"omitempty,url"`
}

// NewEvent builds an unsaved event from in.
func NewEvent(in EventInput) *Event {
	return &Event{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Venue:       in.Venue,
		StartsAt:    in.StartsAt.UTC(),
		PriceCents:  in.PriceCents,
		Capacity:    in.Capacity,
		ImageURL:    in.ImageURL,
	}
}

// Replace overwrites every editable field of e, including clearing the category.
func (in EventInput) Replace(e *Event) {
	created := e.CreatedAt
	id := e.ID
	*e = *NewEvent(in)
	e.ID = id
	e.CreatedAt = created
}

func (p EventPatch) Apply(e *Event) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.CategoryID != nil {
		id := *p.CategoryID
		e.CategoryID = &id
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.StartsAt != nil {
		e.StartsAt = p.StartsAt.UTC()
	}
	if p.PriceCents != nil {
		e.PriceCents = *p.PriceCents
	}
	if p.Capacity != nil {
		e.Capacity = *p.Capacity
	}
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
	}
}
