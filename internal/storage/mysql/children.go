package mysql

import (
	"context"
	"fmt"

	"hotel_booking/internal/domain"
)

/********** rooms **********/

func (r *Repo) CreateRoom(ctx context.Context, rm *domain.Room) error {
	now := r.now()
	id, err := r.insert(ctx, insertRoomSQL,
		valInt64(rm.HotelID), rm.RoomNo, rm.FloorNo, rm.Capacity, rm.Price, valStr(rm.Details),
		rm.IsActive, rm.IsAvailable, rm.CreatedBy, rm.UpdatedBy, now, now)
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	rm.ID, rm.CreatedAt, rm.UpdatedAt = id, now, now
	return nil
}

func (r *Repo) UpdateRoom(ctx context.Context, rm domain.Room) error {
	return r.exec(ctx, "rooms", rm.ID, updateRoomSQL,
		rm.RoomNo, rm.FloorNo, rm.Capacity, rm.Price, valStr(rm.Details),
		rm.IsActive, rm.IsAvailable, rm.UpdatedBy, r.now(), rm.ID)
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, roomSelect+"WHERE r.id = ?", id))
	return rm, mapErr(err)
}

func (r *Repo) ListRooms(ctx context.Context, q domain.RoomsQuery) (domain.Page[domain.Room], error) {
	w := &where{}
	w.addScope(q.Scope, "r")
	if q.HotelID != nil {
		w.add("r.hotel_id = ?", *q.HotelID)
	}
	if q.RoomNo != nil {
		w.add("r.room_no = ?", *q.RoomNo)
	}
	if q.FloorNo != nil {
		w.add("r.floor_no = ?", *q.FloorNo)
	}
	if q.Capacity != nil {
		w.add("r.capacity = ?", *q.Capacity)
	}
	if q.IsAvailable != nil {
		w.add("r.is_available = ?", *q.IsAvailable)
	}
	order := "r.created_at DESC, r.id DESC"
	switch q.Sort {
	case "price":
		order = "r.price ASC, r.id ASC"
	case "-price":
		order = "r.price DESC, r.id DESC"
	}
	return listPage(ctx, r.db, roomSelect, w, order, q.Page, scanRoom)
}

/********** bookings **********/

func (r *Repo) CreateBooking(ctx context.Context, b *domain.Booking) error {
	now := r.now()
	if b.BookingTime.IsZero() {
		b.BookingTime = now
	}
	id, err := r.insert(ctx, insertBookingSQL,
		valInt64(b.RoomID), b.CustomerPhoneNo, b.BookingTime.UTC(), valTime(b.StartTime), valTime(b.EndTime),
		valTime(b.LastCheckinTime), valTime(b.LastCheckoutTime), b.Price, valF64(b.DiscountedPrice),
		b.IsActive, b.CreatedBy, b.UpdatedBy, now, now)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	b.ID, b.CreatedAt, b.UpdatedAt = id, now, now
	return nil
}

func (r *Repo) UpdateBooking(ctx context.Context, b domain.Booking) error {
	return r.exec(ctx, "bookings", b.ID, updateBookingSQL,
		b.CustomerPhoneNo, valTime(b.StartTime), valTime(b.EndTime), valTime(b.LastCheckinTime),
		valTime(b.LastCheckoutTime), b.Price, valF64(b.DiscountedPrice), b.IsActive, b.UpdatedBy, r.now(), b.ID)
}

func (r *Repo) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+"WHERE b.id = ?", id))
	return b, mapErr(err)
}

func (r *Repo) ListBookings(ctx context.Context, q domain.BookingsQuery) (domain.Page[domain.Booking], error) {
	w := &where{}
	w.addScope(q.Scope, "b")
	if q.RoomID != nil {
		w.add("b.room_id = ?", *q.RoomID)
	}
	if q.CustomerPhoneNo != nil {
		w.add("b.customer_phone_no = ?", *q.CustomerPhoneNo)
	}
	return listPage(ctx, r.db, bookingSelect, w, "b.created_at DESC, b.id DESC", q.Page, scanBooking)
}

/********** payments **********/

func (r *Repo) CreatePayment(ctx context.Context, p *domain.Payment) error {
	now := r.now()
	id, err := r.insert(ctx, insertPaymentSQL,
		valInt64(p.BookingID), p.Amount, string(p.Method), p.IsActive, p.CreatedBy, p.UpdatedBy, now, now)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
	return nil
}

func (r *Repo) UpdatePayment(ctx context.Context, p domain.Payment) error {
	return r.exec(ctx, "payments", p.ID, updatePaymentSQL,
		p.Amount, string(p.Method), p.IsActive, p.UpdatedBy, r.now(), p.ID)
}

func (r *Repo) GetPayment(ctx context.Context, id int64) (domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, paymentSelect+"WHERE p.id = ?", id))
	return p, mapErr(err)
}

func (r *Repo) ListPayments(ctx context.Context, q domain.PaymentsQuery) (domain.Page[domain.Payment], error) {
	w := &where{}
	w.addScope(q.Scope, "p")
	if q.BookingID != nil {
		w.add("p.booking_id = ?", *q.BookingID)
	}
	if q.Method != nil {
		w.add("p.payment_method = ?", string(*q.Method))
	}
	return listPage(ctx, r.db, paymentSelect, w, "p.created_at DESC, p.id DESC", q.Page, scanPayment)
}
