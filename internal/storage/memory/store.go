// Package memory is a process-local Store used for STORE_DRIVER=memory and in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

type Store struct {
	mu        sync.RWMutex
	seq       int64
	now       func() time.Time
	accounts  map[int64]domain.Account
	hotels    map[int64]domain.Hotel
	rooms     map[int64]domain.Room
	bookings  map[int64]domain.Booking
	payments  map[int64]domain.Payment
	customers map[int64]domain.Customer
}

var _ domain.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		now:       func() time.Time { return time.Now().UTC() },
		accounts:  map[int64]domain.Account{},
		hotels:    map[int64]domain.Hotel{},
		rooms:     map[int64]domain.Room{},
		bookings:  map[int64]domain.Booking{},
		payments:  map[int64]domain.Payment{},
		customers: map[int64]domain.Customer{},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func stamp(a *domain.Audit, now time.Time, create bool) {
	if create && a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}

/********** accounts **********/

func (s *Store) CreateAccount(ctx context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.accounts {
		if strings.EqualFold(other.Email, a.Email) {
			return fmt.Errorf("email %s: %w", a.Email, domain.ErrConflict)
		}
	}
	a.ID = s.nextID()
	if a.DateJoined.IsZero() {
		a.DateJoined = s.now()
	}
	s.accounts[a.ID] = *a
	return nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return a, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return domain.Account{}, domain.ErrNotFound
}

func (s *Store) UpdateAccount(ctx context.Context, a domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.ID]; !ok {
		return domain.ErrNotFound
	}
	s.accounts[a.ID] = a
	return nil
}

/********** hotels **********/

func (s *Store) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.Slug != "" && s.slugTaken(h.Slug, 0) {
		return fmt.Errorf("slug %s: %w", h.Slug, domain.ErrConflict)
	}
	h.ID = s.nextID()
	stamp(&h.Audit, s.now(), true)
	s.hotels[h.ID] = *h
	return nil
}

func (s *Store) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.hotels[h.ID]; !ok {
		return domain.ErrNotFound
	}
	if h.Slug != "" && s.slugTaken(h.Slug, h.ID) {
		return fmt.Errorf("slug %s: %w", h.Slug, domain.ErrConflict)
	}
	stamp(&h.Audit, s.now(), false)
	s.hotels[h.ID] = h
	return nil
}

func (s *Store) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (s *Store) GetHotelBySlug(ctx context.Context, slug string) (domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.hotels {
		if h.Slug == slug {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (s *Store) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slugTaken(slug, exceptID), nil
}

func (s *Store) slugTaken(slug string, exceptID int64) bool {
	for _, h := range s.hotels {
		if h.Slug == slug && h.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *Store) ListHotelsMissingSlug(ctx context.Context, limit int) ([]domain.Hotel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Hotel
	for _, h := range s.hotels {
		if h.Slug == "" {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListHotels(ctx context.Context, q domain.HotelsQuery) (domain.Page[domain.Hotel], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Hotel
	for _, h := range s.hotels {
		h := h
		if !authz.Match(q.Scope, &h) {
			continue
		}
		if q.City != nil && !strings.EqualFold(h.City, *q.City) ||
			q.Country != nil && !strings.EqualFold(h.Country, *q.Country) ||
			q.StarRating != nil && h.StarRating != *q.StarRating ||
			q.LandlordID != nil && h.LandlordID != *q.LandlordID {
			continue
		}
		if q.Q != nil && !containsFold(*q.Q, h.Name, h.City, h.Country) {
			continue
		}
		out = append(out, h)
	}
	sort.SliceStable(out, hotelLess(out, q.Sort))
	return paginate(out, q.Page), nil
}

func hotelLess(hs []domain.Hotel, sortKey string) func(i, j int) bool {
	switch sortKey {
	case "name":
		return func(i, j int) bool { return hs[i].Name < hs[j].Name }
	case "star_rating":
		return func(i, j int) bool { return hs[i].StarRating < hs[j].StarRating }
	case "-star_rating":
		return func(i, j int) bool { return hs[i].StarRating > hs[j].StarRating }
	}
	return func(i, j int) bool { return newer(hs[i].Audit, hs[j].Audit, hs[i].ID, hs[j].ID) }
}

/********** rooms **********/

func (s *Store) CreateRoom(ctx context.Context, r *domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roomNoTaken(r.HotelID, r.RoomNo, 0) {
		return fmt.Errorf("room %s: %w", r.RoomNo, domain.ErrConflict)
	}
	r.ID = s.nextID()
	r.Hotel = nil
	stamp(&r.Audit, s.now(), true)
	s.rooms[r.ID] = *r
	r.Hotel = s.hotelRef(r.HotelID)
	return nil
}

func (s *Store) UpdateRoom(ctx context.Context, r domain.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[r.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.roomNoTaken(r.HotelID, r.RoomNo, r.ID) {
		return fmt.Errorf("room %s: %w", r.RoomNo, domain.ErrConflict)
	}
	r.Hotel = nil
	stamp(&r.Audit, s.now(), false)
	s.rooms[r.ID] = r
	return nil
}

func (s *Store) roomNoTaken(hotelID *int64, roomNo string, exceptID int64) bool {
	if hotelID == nil {
		return false
	}
	for _, r := range s.rooms {
		if r.ID != exceptID && r.HotelID != nil && *r.HotelID == *hotelID && r.RoomNo == roomNo {
			return true
		}
	}
	return false
}

func (s *Store) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.room(id)
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return *r, nil
}

func (s *Store) ListRooms(ctx context.Context, q domain.RoomsQuery) (domain.Page[domain.Room], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Room
	for id := range s.rooms {
		r, _ := s.room(id)
		if !authz.Match(q.Scope, r) {
			continue
		}
		if q.HotelID != nil && (r.HotelID == nil || *r.HotelID != *q.HotelID) ||
			q.RoomNo != nil && r.RoomNo != *q.RoomNo ||
			q.FloorNo != nil && r.FloorNo != *q.FloorNo ||
			q.Capacity != nil && r.Capacity != *q.Capacity ||
			q.IsAvailable != nil && r.IsAvailable != *q.IsAvailable {
			continue
		}
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		switch q.Sort {
		case "price":
			return out[i].Price < out[j].Price
		case "-price":
			return out[i].Price > out[j].Price
		}
		return newer(out[i].Audit, out[j].Audit, out[i].ID, out[j].ID)
	})
	return paginate(out, q.Page), nil
}

/********** bookings **********/

func (s *Store) CreateBooking(ctx context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID()
	b.Room = nil
	if b.BookingTime.IsZero() {
		b.BookingTime = s.now()
	}
	stamp(&b.Audit, s.now(), true)
	s.bookings[b.ID] = *b
	resolved, _ := s.booking(b.ID)
	b.Room = resolved.Room
	return nil
}

func (s *Store) UpdateBooking(ctx context.Context, b domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[b.ID]; !ok {
		return domain.ErrNotFound
	}
	b.Room = nil
	stamp(&b.Audit, s.now(), false)
	s.bookings[b.ID] = b
	return nil
}

func (s *Store) GetBooking(ctx context.Context, id int64) (domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.booking(id)
	if !ok {
		return domain.Booking{}, domain.ErrNotFound
	}
	return *b, nil
}

func (s *Store) ListBookings(ctx context.Context, q domain.BookingsQuery) (domain.Page[domain.Booking], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for id := range s.bookings {
		b, _ := s.booking(id)
		if !authz.Match(q.Scope, b) {
			continue
		}
		if q.RoomID != nil && (b.RoomID == nil || *b.RoomID != *q.RoomID) ||
			q.CustomerPhoneNo != nil && b.CustomerPhoneNo != *q.CustomerPhoneNo {
			continue
		}
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].Audit, out[j].Audit, out[i].ID, out[j].ID) })
	return paginate(out, q.Page), nil
}

/********** payments **********/

func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID()
	p.Booking = nil
	stamp(&p.Audit, s.now(), true)
	s.payments[p.ID] = *p
	resolved, _ := s.payment(p.ID)
	p.Booking = resolved.Booking
	return nil
}

func (s *Store) UpdatePayment(ctx context.Context, p domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.payments[p.ID]; !ok {
		return domain.ErrNotFound
	}
	p.Booking = nil
	stamp(&p.Audit, s.now(), false)
	s.payments[p.ID] = p
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id int64) (domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payment(id)
	if !ok {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *p, nil
}

func (s *Store) ListPayments(ctx context.Context, q domain.PaymentsQuery) (domain.Page[domain.Payment], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Payment
	for id := range s.payments {
		p, _ := s.payment(id)
		if !authz.Match(q.Scope, p) {
			continue
		}
		if q.BookingID != nil && (p.BookingID == nil || *p.BookingID != *q.BookingID) ||
			q.Method != nil && p.Method != *q.Method {
			continue
		}
		out = append(out, *p)
	}
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].Audit, out[j].Audit, out[i].ID, out[j].ID) })
	return paginate(out, q.Page), nil
}

/********** customers **********/

func (s *Store) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phoneTaken(c.PhoneNo, 0) {
		return fmt.Errorf("phone %s: %w", c.PhoneNo, domain.ErrConflict)
	}
	c.ID = s.nextID()
	stamp(&c.Audit, s.now(), true)
	s.customers[c.ID] = *c
	return nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if s.phoneTaken(c.PhoneNo, c.ID) {
		return fmt.Errorf("phone %s: %w", c.PhoneNo, domain.ErrConflict)
	}
	stamp(&c.Audit, s.now(), false)
	s.customers[c.ID] = c
	return nil
}

func (s *Store) phoneTaken(phone string, exceptID int64) bool {
	for _, c := range s.customers {
		if c.ID != exceptID && c.PhoneNo == phone {
			return true
		}
	}
	return false
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context, q domain.CustomersQuery) (domain.Page[domain.Customer], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Customer
	for _, c := range s.customers {
		c := c
		if !authz.Match(q.Scope, &c) {
			continue
		}
		if q.PhoneNo != nil && c.PhoneNo != *q.PhoneNo ||
			q.Gender != nil && (c.Gender == nil || *c.Gender != *q.Gender) ||
			q.Country != nil && !strings.EqualFold(deref(c.Country), *q.Country) ||
			q.Occupation != nil && !strings.EqualFold(deref(c.Occupation), *q.Occupation) {
			continue
		}
		if q.Q != nil && !containsFold(*q.Q, c.FirstName, c.LastName, deref(c.Email), c.PhoneNo,
			deref(c.Address), deref(c.Country), deref(c.Occupation)) {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].Audit, out[j].Audit, out[i].ID, out[j].ID) })
	return paginate(out, q.Page), nil
}

/********** chain resolution (callers hold s.mu) **********/

func (s *Store) hotelRef(id *int64) *domain.Hotel {
	if id == nil {
		return nil
	}
	h, ok := s.hotels[*id]
	if !ok {
		return nil
	}
	return &h
}

func (s *Store) room(id int64) (*domain.Room, bool) {
	r, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	r.Hotel = s.hotelRef(r.HotelID)
	return &r, true
}

func (s *Store) booking(id int64) (*domain.Booking, bool) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, false
	}
	if b.RoomID != nil {
		if r, ok := s.room(*b.RoomID); ok {
			b.Room = r
		}
	}
	return &b, true
}

func (s *Store) payment(id int64) (*domain.Payment, bool) {
	p, ok := s.payments[id]
	if !ok {
		return nil, false
	}
	if p.BookingID != nil {
		if b, ok := s.booking(*p.BookingID); ok {
			p.Booking = b
		}
	}
	return &p, true
}

/********** helpers **********/

func newer(a, b domain.Audit, aID, bID int64) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return aID > bID
}

func containsFold(needle string, haystack ...string) bool {
	n := strings.ToLower(strings.TrimSpace(needle))
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), n) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func paginate[T any](items []T, pg domain.PageQuery) domain.Page[T] {
	if pg.Offset >= len(items) {
		return domain.Page[T]{}
	}
	items = items[pg.Offset:]
	if pg.Limit > 0 && len(items) > pg.Limit+1 {
		items = items[:pg.Limit+1]
	}
	return domain.NewPage(items, pg)
}
