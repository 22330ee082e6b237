package domain

// Room keeps its lifecycle (IsActive) apart from occupancy (IsAvailable).
// Soft delete only ever touches IsActive.
type Room struct {
	ID          int64
	HotelID     *int64
	Hotel       *Hotel // resolved parent, nil when the reference is broken
	RoomNo      string
	FloorNo     int
	Capacity    int
	Price       float64
	Details     *string
	IsActive    bool
	IsAvailable bool
	Audit
}

type RoomInput struct {
	HotelID     *int64
	RoomNo      *string
	FloorNo     *int
	Capacity    *int
	Price       *float64
	Details     *string
	IsAvailable *bool
}

// Apply copies the set fields. HotelID is creation-only and ignored here.
func (in RoomInput) Apply(r *Room) {
	if in.RoomNo != nil {
		r.RoomNo = *in.RoomNo
	}
	if in.FloorNo != nil {
		r.FloorNo = *in.FloorNo
	}
	if in.Capacity != nil {
		r.Capacity = *in.Capacity
	}
	if in.Price != nil {
		r.Price = *in.Price
	}
	if in.Details != nil {
		r.Details = in.Details
	}
	if in.IsAvailable != nil {
		r.IsAvailable = *in.IsAvailable
	}
}

func (r Room) Validate() error {
	switch {
	case r.RoomNo == "":
		return &ValidationError{Field: "room_no", Message: "is required"}
	case r.Capacity < 0:
		return &ValidationError{Field: "capacity", Message: "must not be negative"}
	case r.Price < 0:
		return &ValidationError{Field: "price", Message: "must not be negative"}
	case r.Details != nil && len(*r.Details) > 500:
		return &ValidationError{Field: "details", Message: "must be at most 500 characters"}
	}
	return nil
}
