package domain

import "time"

type Hotel struct {
	ID          int64
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	Address     string
	City        string
	Country     string
	PhoneNo     *string
	Email       *string
	StarRating  int
	LandlordID  int64
	IsActive    bool
	Audit
}

type Audit struct {
	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const DefaultStarRating = 3

// HotelInput carries the writable hotel fields. Nil pointers leave a field untouched on update.
type HotelInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	Address     *string
	City        *string
	Country     *string
	PhoneNo     *string
	Email       *string
	StarRating  *int
	LandlordID  *int64 // honoured only for admin creation
}

func (in HotelInput) Apply(h *Hotel) {
	if in.Name != nil {
		h.Name = *in.Name
	}
	if in.Description != nil {
		h.Description = in.Description
	}
	if in.ImageURL != nil {
		h.ImageURL = in.ImageURL
	}
	if in.Address != nil {
		h.Address = *in.Address
	}
	if in.City != nil {
		h.City = *in.City
	}
	if in.Country != nil {
		h.Country = *in.Country
	}
	if in.PhoneNo != nil {
		h.PhoneNo = in.PhoneNo
	}
	if in.Email != nil {
		h.Email = in.Email
	}
	if in.StarRating != nil {
		h.StarRating = *in.StarRating
	}
}

func (h Hotel) Validate() error {
	switch {
	case h.Name == "":
		return &ValidationError{Field: "name", Message: "is required"}
	case h.Address == "":
		return &ValidationError{Field: "address", Message: "is required"}
	case h.City == "":
		return &ValidationError{Field: "city", Message: "is required"}
	case h.Country == "":
		return &ValidationError{Field: "country", Message: "is required"}
	case h.StarRating < 1 || h.StarRating > 5:
		return &ValidationError{Field: "star_rating", Message: "must be between 1 and 5"}
	}
	return nil
}
