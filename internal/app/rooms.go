package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

type RoomService struct {
	rooms    domain.RoomRepository
	hotels   domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewRoomService(r domain.RoomRepository, h domain.HotelRepository, c domain.Cache, ttl time.Duration) *RoomService {
	return &RoomService{rooms: r, hotels: h, cache: c, cacheTTL: ttl}
}

func roomKey(id int64) string { return fmt.Sprintf("room:%d", id) }

func (s *RoomService) List(ctx context.Context, subj domain.Subject, q domain.RoomsQuery) (domain.Page[domain.Room], error) {
	q.Scope = authz.ScopeForList(subj, authz.ActionList, authz.KindRoom)
	return s.rooms.ListRooms(ctx, q)
}

func (s *RoomService) ListManaged(ctx context.Context, subj domain.Subject, q domain.RoomsQuery) (domain.Page[domain.Room], error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Page[domain.Room]{}, err
	}
	q.Scope = authz.ScopeForList(subj, authz.ActionUpdate, authz.KindRoom)
	if emptyScope(q.Scope) {
		return domain.Page[domain.Room]{}, nil
	}
	return s.rooms.ListRooms(ctx, q)
}

func (s *RoomService) Get(ctx context.Context, subj domain.Subject, id int64) (domain.Room, error) {
	key := roomKey(id)
	var r domain.Room
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &r); ok && authz.Visible(subj, authz.KindRoom, &r) {
			return r, nil
		}
	}
	r, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	if !authz.Visible(subj, authz.KindRoom, &r) {
		return domain.Room{}, domain.ErrNotFound
	}
	if s.cache != nil && r.IsActive {
		_ = s.cache.Set(ctx, key, r, int(s.cacheTTL.Seconds()))
	}
	return r, nil
}

// Create adds a room to an existing hotel. A missing hotel id is rejected as
// bad input before any role is considered.
func (s *RoomService) Create(ctx context.Context, subj domain.Subject, in domain.RoomInput) (domain.Room, error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Room{}, err
	}
	if in.HotelID == nil {
		return domain.Room{}, &domain.ValidationError{Field: "hotel", Message: "is required"}
	}
	t := authz.Target{Kind: authz.KindRoom, HotelID: in.HotelID}
	h, err := s.hotels.GetHotel(ctx, *in.HotelID)
	switch {
	case err == nil:
		t.Hotel = &h
	case !errors.Is(err, domain.ErrNotFound):
		return domain.Room{}, fmt.Errorf("load hotel %d: %w", *in.HotelID, err)
	}
	if _, err := authorize(subj, authz.ActionCreate, t); err != nil {
		return domain.Room{}, err
	}
	// Admins pass the engine without a resolved parent; the hotel must still exist.
	if t.Hotel == nil {
		return domain.Room{}, fmt.Errorf("hotel %d: %w", *in.HotelID, domain.ErrNotFound)
	}

	r := domain.Room{HotelID: in.HotelID, IsActive: true, IsAvailable: true}
	in.Apply(&r)
	if err := r.Validate(); err != nil {
		return domain.Room{}, err
	}
	r.CreatedBy, r.UpdatedBy = subj.Actor(), subj.Actor()
	if err := s.rooms.CreateRoom(ctx, &r); err != nil {
		return domain.Room{}, fmt.Errorf("create room: %w", err)
	}
	r.Hotel = t.Hotel
	return r, nil
}

func (s *RoomService) Update(ctx context.Context, subj domain.Subject, id int64, in domain.RoomInput) (domain.Room, error) {
	r, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	if _, err := authorize(subj, authz.ActionUpdate, authz.Target{Kind: authz.KindRoom, Resource: &r}); err != nil {
		return domain.Room{}, err
	}
	in.Apply(&r)
	if err := r.Validate(); err != nil {
		return domain.Room{}, err
	}
	r.UpdatedBy = subj.Actor()
	if err := s.rooms.UpdateRoom(ctx, r); err != nil {
		return domain.Room{}, fmt.Errorf("update room %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	return r, nil
}

// Delete retires the room. Occupancy (IsAvailable) is left as it was.
func (s *RoomService) Delete(ctx context.Context, subj domain.Subject, id int64) error {
	r, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return err
	}
	if _, err := authorize(subj, authz.ActionDelete, authz.Target{Kind: authz.KindRoom, Resource: &r}); err != nil {
		return err
	}
	r.IsActive = false
	r.UpdatedBy = subj.Actor()
	if err := s.rooms.UpdateRoom(ctx, r); err != nil {
		return fmt.Errorf("deactivate room %d: %w", id, err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *RoomService) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, roomKey(id))
	}
}
