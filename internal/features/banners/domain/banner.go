package domain

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrBannerNotFound = errors.New("banner not found")
	// ErrBrokenRanking means a write would leave orders that are not exactly 1..N.
	ErrBrokenRanking = errors.New("banner ranking is not dense")
)

// Banner is a promotional banner. Order is its 1-based display rank; across
// all banners the orders always form the sequence 1..N with no gaps or repeats.
type Banner struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BannerInput is the writable content of a banner. Order is never accepted from clients.
type BannerInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	LinkURL  string `json:"link_url" validate:"omitempty,url"`
}

// BannerPatch is a partial update; nil fields are left alone.
type BannerPatch struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
	LinkURL  *string `json:"link_url" validate:"omitempty,url"`
}

// Patch turns a full input into a patch that overwrites every field.
func (in BannerInput) Patch() BannerPatch {
	return BannerPatch{
		Title:    &in.Title,
		ImageURL: &in.ImageURL,
		LinkURL:  &in.LinkURL,
	}
}

// Apply writes the set fields of p onto b.
func (p BannerPatch) Apply(b *Banner) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.ImageURL != nil {
		b.ImageURL = *p.ImageURL
	}
	if p.LinkURL != nil {
		b.LinkURL = *p.LinkURL
	}
}

// NewBanner builds a banner placed at the given rank.
func NewBanner(in BannerInput, order int) *Banner {
	now := time.Now().UTC()
	return &Banner{
		Title:     in.Title,
		ImageURL:  in.ImageURL,
		LinkURL:   in.LinkURL,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDenseRanking reports whether orders is a permutation of 1..len(orders).
func IsDenseRanking(orders []int) bool {
	sorted := append([]int(nil), orders...)
	sort.Ints(sorted)
	for i, o := range sorted {
		if o != i+1 {
			return false
		}
	}
	return true
}

// SortByOrder sorts banners by rank, ascending.
func SortByOrder(banners []*Banner) {
	sort.Slice(banners, func(i, j int) bool {
		return banners[i].Order < banners[j].Order
	})
}
