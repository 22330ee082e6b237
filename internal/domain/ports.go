package domain

import (
	"context"
	"time"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id int64) (Account, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	UpdateAccount(ctx context.Context, a Account) error
}

// Read paths return rows regardless of their active flag; callers scope them.
// Child reads resolve the parent chain (Room.Hotel, Booking.Room.Hotel, ...).
type HotelRepository interface {
	CreateHotel(ctx context.Context, h *Hotel) error
	UpdateHotel(ctx context.Context, h Hotel) error
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	GetHotelBySlug(ctx context.Context, slug string) (Hotel, error)
	ListHotels(ctx context.Context, q HotelsQuery) (Page[Hotel], error)
	SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error)
	ListHotelsMissingSlug(ctx context.Context, limit int) ([]Hotel, error)
}

type RoomRepository interface {
	CreateRoom(ctx context.Context, r *Room) error
	UpdateRoom(ctx context.Context, r Room) error
	GetRoom(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context, q RoomsQuery) (Page[Room], error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, b *Booking) error
	UpdateBooking(ctx context.Context, b Booking) error
	GetBooking(ctx context.Context, id int64) (Booking, error)
	ListBookings(ctx context.Context, q BookingsQuery) (Page[Booking], error)
}

type PaymentRepository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	UpdatePayment(ctx context.Context, p Payment) error
	GetPayment(ctx context.Context, id int64) (Payment, error)
	ListPayments(ctx context.Context, q PaymentsQuery) (Page[Payment], error)
}

type CustomerRepository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	UpdateCustomer(ctx context.Context, c Customer) error
	GetCustomer(ctx context.Context, id int64) (Customer, error)
	ListCustomers(ctx context.Context, q CustomersQuery) (Page[Customer], error)
}

// Store is everything a backing database provides.
type Store interface {
	AccountRepository
	HotelRepository
	RoomRepository
	BookingRepository
	PaymentRepository
	CustomerRepository
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Scoping

type ScopeKind int

const (
	// ScopeNone is the zero value so an unset scope matches nothing.
	ScopeNone ScopeKind = iota
	ScopeAll
	ScopeActive
	ScopeOwned
	ScopeCreatedBy
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "all"
	case ScopeActive:
		return "active"
	case ScopeOwned:
		return "owned"
	case ScopeCreatedBy:
		return "created_by"
	}
	return "none"
}

// Scope is the row filter a subject is entitled to for a collection query.
type Scope struct {
	Kind    ScopeKind
	OwnerID int64  // ScopeOwned
	Creator string // ScopeCreatedBy
}

// Read models & queries

type PageQuery struct {
	Limit  int
	Offset int
}

type Page[T any] struct {
	Items      []T
	NextOffset *int
}

// NewPage trims a result fetched with Limit+1 rows and reports whether more exist.
func NewPage[T any](items []T, pg PageQuery) Page[T] {
	if pg.Limit > 0 && len(items) > pg.Limit {
		next := pg.Offset + pg.Limit
		return Page[T]{Items: items[:pg.Limit], NextOffset: &next}
	}
	return Page[T]{Items: items}
}

type HotelsQuery struct {
	Scope      Scope
	Q          *string
	City       *string
	Country    *string
	StarRating *int
	LandlordID *int64
	Sort       string // -created_at | name | star_rating | -star_rating
	Page       PageQuery
}

type RoomsQuery struct {
	Scope       Scope
	HotelID     *int64
	RoomNo      *string
	FloorNo     *int
	Capacity    *int
	IsAvailable *bool
	Sort        string // -created_at | price | -price
	Page        PageQuery
}

type BookingsQuery struct {
	Scope           Scope
	RoomID          *int64
	CustomerPhoneNo *string
	Page            PageQuery
}

type PaymentsQuery struct {
	Scope     Scope
	BookingID *int64
	Method    *PaymentMethod
	Page      PageQuery
}

type CustomersQuery struct {
	Scope      Scope
	Q          *string // matches names, email, phone, address, country, occupation
	PhoneNo    *string
	Gender     *Gender
	Country    *string
	Occupation *string
	Page       PageQuery
}

// Identity collaborators

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns ErrInvalidCredentials when password does not match hash.
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(a Account) (token string, expires time.Time, err error)
	// Parse returns the account id the token was issued for.
	Parse(token string) (int64, error)
}
