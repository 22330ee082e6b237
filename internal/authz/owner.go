package authz

import "hotel_booking/internal/domain"

// ResolveOwner returns the landlord account that owns res. ok is false when the
// chain is broken (a nil parent) or res is not an owned resource.
//
// Accounts own themselves.
func ResolveOwner(res any) (owner int64, ok bool) {
	switch r := res.(type) {
	case *domain.Hotel:
		if r == nil || r.LandlordID == 0 {
			return 0, false
		}
		return r.LandlordID, true
	case *domain.Room:
		if r == nil {
			return 0, false
		}
		return ResolveOwner(r.Hotel)
	case *domain.Booking:
		if r == nil {
			return 0, false
		}
		return ResolveOwner(r.Room)
	case *domain.Payment:
		if r == nil {
			return 0, false
		}
		return ResolveOwner(r.Booking)
	case *domain.Account:
		if r == nil || r.ID == 0 {
			return 0, false
		}
		return r.ID, true
	}
	return 0, false
}

// activeOf reports the lifecycle flag of res; unknown values count as inactive.
func activeOf(res any) bool {
	switch r := res.(type) {
	case *domain.Hotel:
		return r != nil && r.IsActive
	case *domain.Room:
		return r != nil && r.IsActive
	case *domain.Booking:
		return r != nil && r.IsActive
	case *domain.Payment:
		return r != nil && r.IsActive
	case *domain.Customer:
		return r != nil && r.IsActive
	case *domain.Account:
		return r != nil && r.IsActive
	}
	return false
}

func createdByOf(res any) string {
	switch r := res.(type) {
	case *domain.Hotel:
		if r != nil {
			return r.CreatedBy
		}
	case *domain.Room:
		if r != nil {
			return r.CreatedBy
		}
	case *domain.Booking:
		if r != nil {
			return r.CreatedBy
		}
	case *domain.Payment:
		if r != nil {
			return r.CreatedBy
		}
	case *domain.Customer:
		if r != nil {
			return r.CreatedBy
		}
	}
	return ""
}
