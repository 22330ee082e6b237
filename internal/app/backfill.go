package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

// SlugBackfill assigns slugs to hotels stored without one.
type SlugBackfill struct {
	hotels domain.HotelRepository
}

func NewSlugBackfill(h domain.HotelRepository) *SlugBackfill {
	return &SlugBackfill{hotels: h}
}

// Run processes hotels in batches until none are missing a slug and returns how
// many were updated. Hotels that already have a slug are never touched.
func (b *SlugBackfill) Run(ctx context.Context, batch int) (int, error) {
	if batch <= 0 {
		batch = 200
	}
	done := 0
	for {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		hs, err := b.hotels.ListHotelsMissingSlug(ctx, batch)
		if err != nil {
			return done, fmt.Errorf("list hotels missing slug: %w", err)
		}
		if len(hs) == 0 {
			return done, nil
		}
		for _, h := range hs {
			if h.Slug, err = uniqueSlug(ctx, b.hotels, h.Name, h.ID); err != nil {
				return done, err
			}
			h.UpdatedBy = "backfill"
			if err := b.hotels.UpdateHotel(ctx, h); err != nil {
				return done, fmt.Errorf("update hotel %d: %w", h.ID, err)
			}
			log.Info().Int64("id", h.ID).Str("slug", h.Slug).Msg("slug assigned")
			done++
		}
	}
}
