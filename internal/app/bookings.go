package app

import (
	"context"
	"errors"
	"fmt"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

type BookingService struct {
	bookings domain.BookingRepository
	rooms    domain.RoomRepository
}

func NewBookingService(b domain.BookingRepository, r domain.RoomRepository) *BookingService {
	return &BookingService{bookings: b, rooms: r}
}

func (s *BookingService) List(ctx context.Context, subj domain.Subject, q domain.BookingsQuery) (domain.Page[domain.Booking], error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Page[domain.Booking]{}, err
	}
	q.Scope = authz.ScopeForList(subj, authz.ActionList, authz.KindBooking)
	if emptyScope(q.Scope) {
		return domain.Page[domain.Booking]{}, nil
	}
	return s.bookings.ListBookings(ctx, q)
}

func (s *BookingService) Get(ctx context.Context, subj domain.Subject, id int64) (domain.Booking, error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Booking{}, err
	}
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if !authz.Visible(subj, authz.KindBooking, &b) {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, nil
}

// Create books a room. Any authenticated caller may book; the room must be live.
func (s *BookingService) Create(ctx context.Context, subj domain.Subject, in domain.BookingInput) (domain.Booking, error) {
	if _, err := authorize(subj, authz.ActionCreate, authz.Target{Kind: authz.KindBooking}); err != nil {
		return domain.Booking{}, err
	}
	if in.RoomID == nil {
		return domain.Booking{}, &domain.ValidationError{Field: "room", Message: "is required"}
	}
	room, err := s.rooms.GetRoom(ctx, *in.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Booking{}, fmt.Errorf("room %d: %w", *in.RoomID, domain.ErrNotFound)
		}
		return domain.Booking{}, fmt.Errorf("load room %d: %w", *in.RoomID, err)
	}
	if !room.IsActive {
		return domain.Booking{}, fmt.Errorf("room %d: %w", room.ID, domain.ErrNotFound)
	}

	b := domain.Booking{RoomID: in.RoomID, Price: room.Price, IsActive: true}
	in.Apply(&b)
	if err := b.Validate(); err != nil {
		return domain.Booking{}, err
	}
	b.CreatedBy, b.UpdatedBy = subj.Actor(), subj.Actor()
	if err := s.bookings.CreateBooking(ctx, &b); err != nil {
		return domain.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	b.Room = &room
	return b, nil
}

func (s *BookingService) Update(ctx context.Context, subj domain.Subject, id int64, in domain.BookingInput) (domain.Booking, error) {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return domain.Booking{}, err
	}
	if _, err := authorize(subj, authz.ActionUpdate, authz.Target{Kind: authz.KindBooking, Resource: &b}); err != nil {
		return domain.Booking{}, err
	}
	in.Apply(&b)
	if err := b.Validate(); err != nil {
		return domain.Booking{}, err
	}
	b.UpdatedBy = subj.Actor()
	if err := s.bookings.UpdateBooking(ctx, b); err != nil {
		return domain.Booking{}, fmt.Errorf("update booking %d: %w", id, err)
	}
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, subj domain.Subject, id int64) error {
	b, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if _, err := authorize(subj, authz.ActionDelete, authz.Target{Kind: authz.KindBooking, Resource: &b}); err != nil {
		return err
	}
	b.IsActive = false
	b.UpdatedBy = subj.Actor()
	if err := s.bookings.UpdateBooking(ctx, b); err != nil {
		return fmt.Errorf("cancel booking %d: %w", id, err)
	}
	return nil
}
