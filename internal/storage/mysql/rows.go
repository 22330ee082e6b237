package mysql

import (
	"database/sql"
	"time"

	"hotel_booking/internal/domain"
)

type scanner interface{ Scan(dest ...any) error }

// Every column is scanned as nullable: the same row types read a parent that
// a LEFT JOIN may not have found.

type auditRow struct {
	createdBy, updatedBy sql.NullString
	createdAt, updatedAt sql.NullTime
}

func (a *auditRow) dest() []any {
	return []any{&a.createdBy, &a.updatedBy, &a.createdAt, &a.updatedAt}
}

func (a *auditRow) audit() domain.Audit {
	return domain.Audit{
		CreatedBy: a.createdBy.String, UpdatedBy: a.updatedBy.String,
		CreatedAt: a.createdAt.Time, UpdatedAt: a.updatedAt.Time,
	}
}

type hotelRow struct {
	id, star, landlord                              sql.NullInt64
	name, slug, desc, image, address, city, country sql.NullString
	phone, email                                    sql.NullString
	active                                          sql.NullBool
	auditRow
}

func (r *hotelRow) dest() []any {
	return append([]any{
		&r.id, &r.name, &r.slug, &r.desc, &r.image, &r.address, &r.city, &r.country,
		&r.phone, &r.email, &r.star, &r.landlord, &r.active,
	}, r.auditRow.dest()...)
}

func (r *hotelRow) hotel() *domain.Hotel {
	if !r.id.Valid {
		return nil
	}
	return &domain.Hotel{
		ID: r.id.Int64, Name: r.name.String, Slug: r.slug.String,
		Description: strPtr(r.desc), ImageURL: strPtr(r.image),
		Address: r.address.String, City: r.city.String, Country: r.country.String,
		PhoneNo: strPtr(r.phone), Email: strPtr(r.email),
		StarRating: int(r.star.Int64), LandlordID: r.landlord.Int64, // NULL landlord reads as 0: unresolvable
		IsActive: r.active.Bool, Audit: r.audit(),
	}
}

type roomRow struct {
	id, hotelID, floor, capacity sql.NullInt64
	roomNo, details              sql.NullString
	price                        sql.NullFloat64
	active, available            sql.NullBool
	auditRow
}

func (r *roomRow) dest() []any {
	return append([]any{
		&r.id, &r.hotelID, &r.roomNo, &r.floor, &r.capacity, &r.price, &r.details, &r.active, &r.available,
	}, r.auditRow.dest()...)
}

func (r *roomRow) room() *domain.Room {
	if !r.id.Valid {
		return nil
	}
	return &domain.Room{
		ID: r.id.Int64, HotelID: int64Ptr(r.hotelID), RoomNo: r.roomNo.String,
		FloorNo: int(r.floor.Int64), Capacity: int(r.capacity.Int64), Price: r.price.Float64,
		Details: strPtr(r.details), IsActive: r.active.Bool, IsAvailable: r.available.Bool,
		Audit: r.audit(),
	}
}

type bookingRow struct {
	id, roomID                              sql.NullInt64
	phone                                   sql.NullString
	bookedAt, start, end, checkin, checkout sql.NullTime
	price, discounted                       sql.NullFloat64
	active                                  sql.NullBool
	auditRow
}

func (r *bookingRow) dest() []any {
	return append([]any{
		&r.id, &r.roomID, &r.phone, &r.bookedAt, &r.start, &r.end, &r.checkin, &r.checkout,
		&r.price, &r.discounted, &r.active,
	}, r.auditRow.dest()...)
}

func (r *bookingRow) booking() *domain.Booking {
	if !r.id.Valid {
		return nil
	}
	return &domain.Booking{
		ID: r.id.Int64, RoomID: int64Ptr(r.roomID), CustomerPhoneNo: r.phone.String,
		BookingTime: r.bookedAt.Time, StartTime: timePtr(r.start), EndTime: timePtr(r.end),
		LastCheckinTime: timePtr(r.checkin), LastCheckoutTime: timePtr(r.checkout),
		Price: r.price.Float64, DiscountedPrice: f64Ptr(r.discounted), IsActive: r.active.Bool,
		Audit: r.audit(),
	}
}

type paymentRow struct {
	id, bookingID sql.NullInt64
	amount        sql.NullFloat64
	method        sql.NullString
	active        sql.NullBool
	auditRow
}

func (r *paymentRow) dest() []any {
	return append([]any{&r.id, &r.bookingID, &r.amount, &r.method, &r.active}, r.auditRow.dest()...)
}

func (r *paymentRow) payment() *domain.Payment {
	if !r.id.Valid {
		return nil
	}
	return &domain.Payment{
		ID: r.id.Int64, BookingID: int64Ptr(r.bookingID), Amount: r.amount.Float64,
		Method: domain.PaymentMethod(r.method.String), IsActive: r.active.Bool, Audit: r.audit(),
	}
}

type customerRow struct {
	id                                    sql.NullInt64
	first, last, gender, email, phone     sql.NullString
	address, country, occupation, details sql.NullString
	active                                sql.NullBool
	auditRow
}

func (r *customerRow) dest() []any {
	return append([]any{
		&r.id, &r.first, &r.last, &r.gender, &r.email, &r.phone,
		&r.address, &r.country, &r.occupation, &r.details, &r.active,
	}, r.auditRow.dest()...)
}

func (r *customerRow) customer() domain.Customer {
	c := domain.Customer{
		ID: r.id.Int64, FirstName: r.first.String, LastName: r.last.String,
		Email: strPtr(r.email), PhoneNo: r.phone.String, Address: strPtr(r.address),
		Country: strPtr(r.country), Occupation: strPtr(r.occupation), Details: strPtr(r.details),
		IsActive: r.active.Bool, Audit: r.audit(),
	}
	if r.gender.Valid {
		g := domain.Gender(r.gender.String)
		c.Gender = &g
	}
	return c
}

// ---- chain scans ----

func scanHotel(s scanner) (domain.Hotel, error) {
	var h hotelRow
	if err := s.Scan(h.dest()...); err != nil {
		return domain.Hotel{}, err
	}
	return *h.hotel(), nil
}

func scanRoom(s scanner) (domain.Room, error) {
	var (
		r roomRow
		h hotelRow
	)
	if err := s.Scan(append(r.dest(), h.dest()...)...); err != nil {
		return domain.Room{}, err
	}
	room := r.room()
	room.Hotel = h.hotel()
	return *room, nil
}

func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b bookingRow
		r roomRow
		h hotelRow
	)
	dest := append(b.dest(), r.dest()...)
	if err := s.Scan(append(dest, h.dest()...)...); err != nil {
		return domain.Booking{}, err
	}
	booking := b.booking()
	if room := r.room(); room != nil {
		room.Hotel = h.hotel()
		booking.Room = room
	}
	return *booking, nil
}

func scanPayment(s scanner) (domain.Payment, error) {
	var (
		p paymentRow
		b bookingRow
		r roomRow
		h hotelRow
	)
	dest := append(p.dest(), b.dest()...)
	dest = append(dest, r.dest()...)
	if err := s.Scan(append(dest, h.dest()...)...); err != nil {
		return domain.Payment{}, err
	}
	payment := p.payment()
	if booking := b.booking(); booking != nil {
		if room := r.room(); room != nil {
			room.Hotel = h.hotel()
			booking.Room = room
		}
		payment.Booking = booking
	}
	return *payment, nil
}

func scanCustomer(s scanner) (domain.Customer, error) {
	var c customerRow
	if err := s.Scan(c.dest()...); err != nil {
		return domain.Customer{}, err
	}
	return c.customer(), nil
}

// ---- nullable conversions ----

func strPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func f64Ptr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func timePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	t := n.Time
	return &t
}
