package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

type HotelService struct {
	hotels   domain.HotelRepository
	accounts domain.AccountRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelService(h domain.HotelRepository, a domain.AccountRepository, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{hotels: h, accounts: a, cache: c, cacheTTL: ttl}
}

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

// List is public browsing: active hotels only, whoever asks.
func (s *HotelService) List(ctx context.Context, subj domain.Subject, q domain.HotelsQuery) (domain.Page[domain.Hotel], error) {
	q.Scope = authz.ScopeForList(subj, authz.ActionList, authz.KindHotel)
	return s.hotels.ListHotels(ctx, q)
}

// ListManaged returns the hotels subj may edit, inactive ones included.
func (s *HotelService) ListManaged(ctx context.Context, subj domain.Subject, q domain.HotelsQuery) (domain.Page[domain.Hotel], error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Page[domain.Hotel]{}, err
	}
	q.Scope = authz.ScopeForList(subj, authz.ActionUpdate, authz.KindHotel)
	if emptyScope(q.Scope) {
		return domain.Page[domain.Hotel]{}, nil
	}
	return s.hotels.ListHotels(ctx, q)
}

func (s *HotelService) Get(ctx context.Context, subj domain.Subject, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok && authz.Visible(subj, authz.KindHotel, &h) {
			return h, nil
		}
	}
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if !authz.Visible(subj, authz.KindHotel, &h) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if s.cache != nil && h.IsActive {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

func (s *HotelService) GetBySlug(ctx context.Context, subj domain.Subject, slug string) (domain.Hotel, error) {
	h, err := s.hotels.GetHotelBySlug(ctx, slug)
	if err != nil {
		return domain.Hotel{}, err
	}
	if !authz.Visible(subj, authz.KindHotel, &h) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (s *HotelService) Create(ctx context.Context, subj domain.Subject, in domain.HotelInput) (domain.Hotel, error) {
	t := authz.Target{Kind: authz.KindHotel, LandlordID: in.LandlordID}
	if subj.IsAdmin() && in.LandlordID != nil {
		acc, err := s.accounts.GetAccount(ctx, *in.LandlordID)
		switch {
		case err == nil:
			t.Landlord = &acc
		case !errors.Is(err, domain.ErrNotFound):
			return domain.Hotel{}, fmt.Errorf("load landlord %d: %w", *in.LandlordID, err)
		}
	}
	d, err := authorize(subj, authz.ActionCreate, t)
	if err != nil {
		return domain.Hotel{}, err
	}

	h := domain.Hotel{StarRating: domain.DefaultStarRating, LandlordID: d.Owner, IsActive: true}
	in.Apply(&h)
	if err := h.Validate(); err != nil {
		return domain.Hotel{}, err
	}
	h.CreatedBy, h.UpdatedBy = subj.Actor(), subj.Actor()

	// Two hotels with the same name may race for a slug; the loser picks the next suffix.
	for attempt := 0; ; attempt++ {
		if h.Slug, err = uniqueSlug(ctx, s.hotels, h.Name, 0); err != nil {
			return domain.Hotel{}, err
		}
		err = s.hotels.CreateHotel(ctx, &h)
		if err == nil || !errors.Is(err, domain.ErrConflict) || attempt == 2 {
			break
		}
	}
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("create hotel: %w", err)
	}
	return h, nil
}

func (s *HotelService) Update(ctx context.Context, subj domain.Subject, id int64, in domain.HotelInput) (domain.Hotel, error) {
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if _, err := authorize(subj, authz.ActionUpdate, authz.Target{Kind: authz.KindHotel, Resource: &h}); err != nil {
		return domain.Hotel{}, err
	}
	in.Apply(&h) // landlord is fixed at creation; Apply never touches it
	if err := h.Validate(); err != nil {
		return domain.Hotel{}, err
	}
	h.UpdatedBy = subj.Actor()
	if err := s.hotels.UpdateHotel(ctx, h); err != nil {
		return domain.Hotel{}, fmt.Errorf("update hotel %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	return h, nil
}

// Delete deactivates the hotel. Repeating it on an inactive hotel is harmless.
func (s *HotelService) Delete(ctx context.Context, subj domain.Subject, id int64) error {
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return err
	}
	if _, err := authorize(subj, authz.ActionDelete, authz.Target{Kind: authz.KindHotel, Resource: &h}); err != nil {
		return err
	}
	h.IsActive = false
	h.UpdatedBy = subj.Actor()
	if err := s.hotels.UpdateHotel(ctx, h); err != nil {
		return fmt.Errorf("deactivate hotel %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HotelService) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(id))
	}
}
