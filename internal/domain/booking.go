package domain

import "time"

type Booking struct {
	ID               int64
	RoomID           *int64
	Room             *Room // resolved parent chain, nil when broken
	CustomerPhoneNo  string
	BookingTime      time.Time
	StartTime        *time.Time
	EndTime          *time.Time
	LastCheckinTime  *time.Time
	LastCheckoutTime *time.Time
	Price            float64
	DiscountedPrice  *float64
	IsActive         bool
	Audit
}

type BookingStatus string

const (
	BookingUpcoming  BookingStatus = "upcoming"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
)

// Status is derived from the booking window relative to now.
func (b Booking) Status(now time.Time) BookingStatus {
	if b.EndTime != nil && b.EndTime.Before(now) {
		return BookingCompleted
	}
	if b.StartTime != nil && !b.StartTime.After(now) {
		if b.EndTime == nil || !now.After(*b.EndTime) {
			return BookingActive
		}
	}
	return BookingUpcoming
}

type BookingInput struct {
	RoomID           *int64
	CustomerPhoneNo  *string
	StartTime        *time.Time
	EndTime          *time.Time
	LastCheckinTime  *time.Time
	LastCheckoutTime *time.Time
	Price            *float64
	DiscountedPrice  *float64
}

// Apply copies the set fields. RoomID is creation-only and ignored here.
func (in BookingInput) Apply(b *Booking) {
	if in.CustomerPhoneNo != nil {
		b.CustomerPhoneNo = *in.CustomerPhoneNo
	}
	if in.StartTime != nil {
		b.StartTime = in.StartTime
	}
	if in.EndTime != nil {
		b.EndTime = in.EndTime
	}
	if in.LastCheckinTime != nil {
		b.LastCheckinTime = in.LastCheckinTime
	}
	if in.LastCheckoutTime != nil {
		b.LastCheckoutTime = in.LastCheckoutTime
	}
	if in.Price != nil {
		b.Price = *in.Price
	}
	if in.DiscountedPrice != nil {
		b.DiscountedPrice = in.DiscountedPrice
	}
}

func (b Booking) Validate() error {
	switch {
	case b.CustomerPhoneNo == "":
		return &ValidationError{Field: "customer_phone_no", Message: "is required"}
	case len(b.CustomerPhoneNo) > 20:
		return &ValidationError{Field: "customer_phone_no", Message: "must be at most 20 characters"}
	case b.Price < 0:
		return &ValidationError{Field: "price", Message: "must not be negative"}
	case b.DiscountedPrice != nil && *b.DiscountedPrice < 0:
		return &ValidationError{Field: "discounted_price", Message: "must not be negative"}
	case b.StartTime != nil && b.EndTime != nil && b.EndTime.Before(*b.StartTime):
		return &ValidationError{Field: "booking_end_time", Message: "must not be before booking_start_time"}
	}
	return nil
}
