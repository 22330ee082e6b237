package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

type chainFixture struct {
	*fixture
	hotel    domain.Hotel
	room     domain.Room
	bookings *app.BookingService
	payments *app.PaymentService
	rooms    *app.RoomService
}

// newChain gives alice a hotel with one room priced at 120.
func newChain(t *testing.T) *chainFixture {
	t.Helper()
	f := newFixture()
	ctx := context.Background()
	hotels := app.NewHotelService(f.store, f.store, nil, time.Minute)
	c := &chainFixture{
		fixture:  f,
		rooms:    app.NewRoomService(f.store, f.store, nil, time.Minute),
		bookings: app.NewBookingService(f.store, f.store),
		payments: app.NewPaymentService(f.store, f.store),
	}
	var err error
	if c.hotel, err = hotels.Create(ctx, f.alice, hotelInput("Chain")); err != nil {
		t.Fatalf("hotel: %v", err)
	}
	in := roomInput(c.hotel.ID, "1")
	in.Price = ptr(120.0)
	if c.room, err = c.rooms.Create(ctx, f.alice, in); err != nil {
		t.Fatalf("room: %v", err)
	}
	return c
}

func TestBookingCreate(t *testing.T) {
	c := newChain(t)
	ctx := context.Background()

	if _, err := c.bookings.Create(ctx, domain.Anonymous(), domain.BookingInput{RoomID: &c.room.ID}); err == nil {
		t.Fatalf("anonymous booking should be rejected")
	}

	b, err := c.bookings.Create(ctx, c.carol, domain.BookingInput{RoomID: &c.room.ID, CustomerPhoneNo: ptr("01700000000")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Price != 120 || b.CreatedBy != c.carol.Email || !b.IsActive || b.BookingTime.IsZero() {
		t.Fatalf("booking: %+v", b)
	}
	if owner, ok := authz.ResolveOwner(&b); !ok || owner != c.alice.AccountID {
		t.Fatalf("owner: %d %v", owner, ok)
	}

	_, err = c.bookings.Create(ctx, c.carol, domain.BookingInput{RoomID: &c.room.ID})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "customer_phone_no" {
		t.Fatalf("missing phone: %v", err)
	}
	if _, err := c.bookings.Create(ctx, c.carol, domain.BookingInput{RoomID: ptr(int64(999)), CustomerPhoneNo: ptr("1")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing room: %v", err)
	}

	if err := c.rooms.Delete(ctx, c.alice, c.room.ID); err != nil {
		t.Fatalf("delete room: %v", err)
	}
	if _, err := c.bookings.Create(ctx, c.carol, domain.BookingInput{RoomID: &c.room.ID, CustomerPhoneNo: ptr("1")}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("inactive room: %v", err)
	}
}

func TestBookingVisibilityAndWrites(t *testing.T) {
	c := newChain(t)
	ctx := context.Background()

	b, err := c.bookings.Create(ctx, c.carol, domain.BookingInput{RoomID: &c.room.ID, CustomerPhoneNo: ptr("1")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, s := range []domain.Subject{c.carol, c.alice, c.admin} {
		if _, err := c.bookings.Get(ctx, s, b.ID); err != nil {
			t.Fatalf("%s get: %v", s.Email, err)
		}
		page, err := c.bookings.List(ctx, s, domain.BookingsQuery{Page: domain.PageQuery{Limit: 10}})
		if err != nil || len(page.Items) != 1 {
			t.Fatalf("%s list: %+v %v", s.Email, page, err)
		}
	}
	if _, err := c.bookings.Get(ctx, c.bob, b.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("bob get: %v", err)
	}
	if page, _ := c.bookings.List(ctx, c.bob, domain.BookingsQuery{}); len(page.Items) != 0 {
		t.Fatalf("bob list: %+v", page)
	}

	// the customer reads but does not own the booking
	_, err = c.bookings.Update(ctx, c.carol, b.ID, domain.BookingInput{CustomerPhoneNo: ptr("2")})
	if reason, _ := authz.ReasonOf(err); reason != authz.NotOwner {
		t.Fatalf("customer update: %v", err)
	}
	got, err := c.bookings.Update(ctx, c.alice, b.ID, domain.BookingInput{DiscountedPrice: ptr(100.0)})
	if err != nil || got.DiscountedPrice == nil || *got.DiscountedPrice != 100 || got.UpdatedBy != c.alice.Email {
		t.Fatalf("landlord update: %+v %v", got, err)
	}
	start := time.Now().Add(48 * time.Hour)
	end := start.Add(-time.Hour)
	_, err = c.bookings.Update(ctx, c.alice, b.ID, domain.BookingInput{StartTime: &start, EndTime: &end})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "booking_end_time" {
		t.Fatalf("reversed window: %v", err)
	}

	if err := c.bookings.Delete(ctx, c.alice, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	stored, _ := c.store.GetBooking(ctx, b.ID)
	if stored.IsActive {
		t.Fatalf("booking still active")
	}
}

func TestPayments(t *testing.T) {
	c := newChain(t)
	ctx := context.Background()

	b, err := c.bookings.Create(ctx, c.carol, domain.BookingInput{RoomID: &c.room.ID, CustomerPhoneNo: ptr("1")})
	if err != nil {
		t.Fatalf("booking: %v", err)
	}

	p, err := c.payments.Create(ctx, c.carol, domain.PaymentInput{BookingID: &b.ID, Amount: ptr(60.0)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Method != domain.PaymentCash || p.Booking == nil || p.Booking.ID != b.ID {
		t.Fatalf("payment: %+v", p)
	}
	if owner, ok := authz.ResolveOwner(&p); !ok || owner != c.alice.AccountID {
		t.Fatalf("owner through chain: %d %v", owner, ok)
	}

	bad := domain.PaymentMethod("cheque")
	_, err = c.payments.Create(ctx, c.carol, domain.PaymentInput{BookingID: &b.ID, Amount: ptr(1.0), Method: &bad})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "payment_method" {
		t.Fatalf("bad method: %v", err)
	}
	_, err = c.payments.Create(ctx, c.carol, domain.PaymentInput{BookingID: &b.ID, Amount: ptr(0.0)})
	if !errors.As(err, &verr) || verr.Field != "amount" {
		t.Fatalf("zero amount: %v", err)
	}

	if _, err := c.payments.Get(ctx, c.bob, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("bob get: %v", err)
	}
	if _, err := c.payments.Update(ctx, c.bob, p.ID, domain.PaymentInput{Amount: ptr(1.0)}); err == nil {
		t.Fatalf("bob update should be denied")
	}
	bkash := domain.PaymentBkash
	got, err := c.payments.Update(ctx, c.alice, p.ID, domain.PaymentInput{Method: &bkash})
	if err != nil || got.Method != bkash || got.Amount != 60 {
		t.Fatalf("landlord update: %+v %v", got, err)
	}

	if err := c.bookings.Delete(ctx, c.alice, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := c.payments.Create(ctx, c.carol, domain.PaymentInput{BookingID: &b.ID, Amount: ptr(1.0)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("payment for cancelled booking: %v", err)
	}
	if err := c.payments.Delete(ctx, c.admin, p.ID); err != nil {
		t.Fatalf("admin void: %v", err)
	}
	page, err := c.payments.List(ctx, c.carol, domain.PaymentsQuery{Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(page.Items) != 1 || page.Items[0].IsActive {
		t.Fatalf("creator list: %+v %v", page, err)
	}
}
