package httpserver

import (
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

type auditJSON struct {
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func auditOf(a domain.Audit) auditJSON {
	return auditJSON{CreatedBy: a.CreatedBy, UpdatedBy: a.UpdatedBy, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

type accountJSON struct {
	ID         int64      `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsAdmin    bool       `json:"is_admin"`
	IsStaff    bool       `json:"is_staff"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

func accountOf(a domain.Account) accountJSON {
	return accountJSON{
		ID: a.ID, Email: a.Email, FirstName: a.FirstName, LastName: a.LastName, FullName: a.FullName(),
		Role: string(a.Role), IsActive: a.IsActive, IsAdmin: a.IsAdmin(), IsStaff: a.IsStaff(),
		DateJoined: a.DateJoined, LastLogin: a.LastLogin,
	}
}

type hotelJSON struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	PhoneNo     *string `json:"phone_no,omitempty"`
	Email       *string `json:"email,omitempty"`
	StarRating  int     `json:"star_rating"`
	Landlord    int64   `json:"landlord"`
	IsActive    bool    `json:"is_active"`
	auditJSON
}

func hotelOf(h domain.Hotel) hotelJSON {
	return hotelJSON{
		ID: h.ID, Name: h.Name, Slug: h.Slug, Description: h.Description, ImageURL: h.ImageURL,
		Address: h.Address, City: h.City, Country: h.Country, PhoneNo: h.PhoneNo, Email: h.Email,
		StarRating: h.StarRating, Landlord: h.LandlordID, IsActive: h.IsActive, auditJSON: auditOf(h.Audit),
	}
}

type hotelRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	PhoneNo     *string `json:"phone_no"`
	Email       *string `json:"email"`
	StarRating  *int    `json:"star_rating"`
	Landlord    *int64  `json:"landlord"`
}

func (b hotelRequest) input() domain.HotelInput {
	return domain.HotelInput{
		Name: b.Name, Description: b.Description, ImageURL: b.ImageURL, Address: b.Address,
		City: b.City, Country: b.Country, PhoneNo: b.PhoneNo, Email: b.Email,
		StarRating: b.StarRating, LandlordID: b.Landlord,
	}
}

func (b hotelRequest) complete() error {
	return requireAll(
		field{"name", b.Name != nil},
		field{"address", b.Address != nil},
		field{"city", b.City != nil},
		field{"country", b.Country != nil},
	)
}

type roomJSON struct {
	ID          int64   `json:"id"`
	Hotel       *int64  `json:"hotel"`
	HotelName   string  `json:"hotel_name,omitempty"`
	RoomNo      string  `json:"room_no"`
	FloorNo     int     `json:"floor_no"`
	Capacity    int     `json:"capacity"`
	Price       float64 `json:"price"`
	Details     *string `json:"details,omitempty"`
	IsActive    bool    `json:"is_active"`
	IsAvailable bool    `json:"is_available"`
	auditJSON
}

func roomOf(r domain.Room) roomJSON {
	out := roomJSON{
		ID: r.ID, Hotel: r.HotelID, RoomNo: r.RoomNo, FloorNo: r.FloorNo, Capacity: r.Capacity,
		Price: r.Price, Details: r.Details, IsActive: r.IsActive, IsAvailable: r.IsAvailable,
		auditJSON: auditOf(r.Audit),
	}
	if r.Hotel != nil {
		out.HotelName = r.Hotel.Name
	}
	return out
}

type roomRequest struct {
	Hotel       *int64   `json:"hotel"`
	RoomNo      *string  `json:"room_no"`
	FloorNo     *int     `json:"floor_no"`
	Capacity    *int     `json:"capacity"`
	Price       *float64 `json:"price"`
	Details     *string  `json:"details"`
	IsAvailable *bool    `json:"is_available"`
}

func (b roomRequest) input() domain.RoomInput {
	return domain.RoomInput{
		HotelID: b.Hotel, RoomNo: b.RoomNo, FloorNo: b.FloorNo, Capacity: b.Capacity,
		Price: b.Price, Details: b.Details, IsAvailable: b.IsAvailable,
	}
}

func (b roomRequest) complete() error {
	return requireAll(field{"room_no", b.RoomNo != nil}, field{"price", b.Price != nil})
}

type bookingJSON struct {
	ID               int64      `json:"id"`
	Room             *int64     `json:"room"`
	CustomerPhoneNo  string     `json:"customer_phone_no"`
	BookingTime      time.Time  `json:"booking_time"`
	StartTime        *time.Time `json:"booking_start_time,omitempty"`
	EndTime          *time.Time `json:"booking_end_time,omitempty"`
	LastCheckinTime  *time.Time `json:"last_checkin_time,omitempty"`
	LastCheckoutTime *time.Time `json:"last_checkout_time,omitempty"`
	Price            float64    `json:"price"`
	DiscountedPrice  *float64   `json:"discounted_price,omitempty"`
	Status           string     `json:"status"`
	IsActive         bool       `json:"is_active"`
	auditJSON
}

func bookingOf(now time.Time) func(domain.Booking) bookingJSON {
	return func(b domain.Booking) bookingJSON {
		return bookingJSON{
			ID: b.ID, Room: b.RoomID, CustomerPhoneNo: b.CustomerPhoneNo, BookingTime: b.BookingTime,
			StartTime: b.StartTime, EndTime: b.EndTime, LastCheckinTime: b.LastCheckinTime,
			LastCheckoutTime: b.LastCheckoutTime, Price: b.Price, DiscountedPrice: b.DiscountedPrice,
			Status: string(b.Status(now)), IsActive: b.IsActive, auditJSON: auditOf(b.Audit),
		}
	}
}

type bookingRequest struct {
	Room             *int64     `json:"room"`
	CustomerPhoneNo  *string    `json:"customer_phone_no"`
	StartTime        *time.Time `json:"booking_start_time"`
	EndTime          *time.Time `json:"booking_end_time"`
	LastCheckinTime  *time.Time `json:"last_checkin_time"`
	LastCheckoutTime *time.Time `json:"last_checkout_time"`
	Price            *float64   `json:"price"`
	DiscountedPrice  *float64   `json:"discounted_price"`
}

func (b bookingRequest) input() domain.BookingInput {
	return domain.BookingInput{
		RoomID: b.Room, CustomerPhoneNo: b.CustomerPhoneNo, StartTime: b.StartTime, EndTime: b.EndTime,
		LastCheckinTime: b.LastCheckinTime, LastCheckoutTime: b.LastCheckoutTime,
		Price: b.Price, DiscountedPrice: b.DiscountedPrice,
	}
}

func (b bookingRequest) complete() error {
	return requireAll(field{"customer_phone_no", b.CustomerPhoneNo != nil})
}

type paymentJSON struct {
	ID       int64   `json:"id"`
	Booking  *int64  `json:"booking"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"payment_method"`
	IsActive bool    `json:"is_active"`
	auditJSON
}

func paymentOf(p domain.Payment) paymentJSON {
	return paymentJSON{ID: p.ID, Booking: p.BookingID, Amount: p.Amount, Method: string(p.Method), IsActive: p.IsActive, auditJSON: auditOf(p.Audit)}
}

type paymentRequest struct {
	Booking *int64   `json:"booking"`
	Amount  *float64 `json:"amount"`
	Method  *string  `json:"payment_method"`
}

func (b paymentRequest) input() domain.PaymentInput {
	in := domain.PaymentInput{BookingID: b.Booking, Amount: b.Amount}
	if b.Method != nil {
		m := domain.PaymentMethod(*b.Method)
		in.Method = &m
	}
	return in
}

func (b paymentRequest) complete() error {
	return requireAll(field{"amount", b.Amount != nil}, field{"payment_method", b.Method != nil})
}

type customerJSON struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	Gender     *string `json:"gender,omitempty"`
	Email      *string `json:"email,omitempty"`
	PhoneNo    string  `json:"phone_no"`
	Address    *string `json:"address,omitempty"`
	Country    *string `json:"country,omitempty"`
	Occupation *string `json:"occupation,omitempty"`
	Details    *string `json:"details,omitempty"`
	IsActive   bool    `json:"is_active"`
	auditJSON
}

func customerOf(c domain.Customer) customerJSON {
	out := customerJSON{
		ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, FullName: c.FullName(),
		Email: c.Email, PhoneNo: c.PhoneNo, Address: c.Address, Country: c.Country,
		Occupation: c.Occupation, Details: c.Details, IsActive: c.IsActive, auditJSON: auditOf(c.Audit),
	}
	if c.Gender != nil {
		g := string(*c.Gender)
		out.Gender = &g
	}
	return out
}

type customerRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Gender     *string `json:"gender"`
	Email      *string `json:"email"`
	PhoneNo    *string `json:"phone_no"`
	Address    *string `json:"address"`
	Country    *string `json:"country"`
	Occupation *string `json:"occupation"`
	Details    *string `json:"details"`
}

func (b customerRequest) input() domain.CustomerInput {
	in := domain.CustomerInput{
		FirstName: b.FirstName, LastName: b.LastName, Email: b.Email, PhoneNo: b.PhoneNo,
		Address: b.Address, Country: b.Country, Occupation: b.Occupation, Details: b.Details,
	}
	if b.Gender != nil {
		g := domain.Gender(strings.ToLower(strings.TrimSpace(*b.Gender)))
		in.Gender = &g
	}
	return in
}

func (b customerRequest) complete() error {
	return requireAll(
		field{"first_name", b.FirstName != nil},
		field{"last_name", b.LastName != nil},
		field{"phone_no", b.PhoneNo != nil},
	)
}
