package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventInput_ReplaceClearsCategory(t *testing.T) {
	category := int64(2)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	e := &Event{ID: 7, Title: "Old", CategoryID: &category, CreatedAt: created}

	EventInput{Title: "New", StartsAt: created.Add(time.Hour)}.Replace(e)

	assert.Equal(t, int64(7), e.ID)
	assert.Equal(t, created, e.CreatedAt)
	assert.Equal(t, "New", e.Title)
	assert.Nil(t, e.CategoryID)
}

func TestEventPatch_Apply(t *testing.T) {
	e := &Event{Title: "Gig", Venue: "Hall", PriceCents: 1000}
	price := int64(0)
	category := int64(3)

	EventPatch{PriceCents: &price, CategoryID: &category}.Apply(e)

	assert.Equal(t, "Gig", e.Title)
	assert.Equal(t, "Hall", e.Venue)
	assert.Equal(t, int64(0), e.PriceCents)
	if assert.NotNil(t, e.CategoryID) {
		assert.Equal(t, int64(3), *e.CategoryID)
	}
}
