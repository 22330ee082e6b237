package authz

import "hotel_booking/internal/domain"

// Target names what a write acts on. Update and delete set Resource; create
// sets the parent hint for its kind.
type Target struct {
	Kind     Kind
	Resource any // *domain.Hotel, *domain.Room, *domain.Booking, *domain.Payment, *domain.Customer or *domain.Account

	// Room creation: the hotel id the caller named and the hotel it resolved to
	// (nil when no such hotel exists).
	HotelID *int64
	Hotel   *domain.Hotel

	// Admin hotel creation: the landlord id the caller named and the account it
	// resolved to (nil when no such account exists).
	LandlordID *int64
	Landlord   *domain.Account

	// RoleChange marks account writes that assign a role.
	RoleChange bool
}

// AuthorizeWrite decides a create, update or delete. Rules are evaluated in
// order and the first match wins.
func AuthorizeWrite(s domain.Subject, a Action, t Target) Decision {
	if !s.Authenticated {
		return deny(AuthenticationRequired, "authentication required")
	}
	if !a.isWrite() {
		return deny(RoleNotPermitted, "%s is not a write action", a)
	}
	if s.IsAdmin() {
		if a == ActionCreate && t.Kind == KindHotel {
			return adminCreateHotel(t)
		}
		owner, _ := ownerHint(a, t)
		return allow(owner)
	}
	if a == ActionCreate {
		return authorizeCreate(s, t)
	}
	return authorizeChange(s, a, t)
}

// adminCreateHotel has no ownership chain to check against: the admin names the
// landlord, who must hold the LANDLORD role at this moment.
func adminCreateHotel(t Target) Decision {
	if t.LandlordID == nil {
		return deny(RoleNotPermitted, "admin must specify landlord_id")
	}
	if t.Landlord == nil {
		return deny(ResourceNotFound, "landlord %d not found", *t.LandlordID)
	}
	if t.Landlord.Role != domain.RoleLandlord {
		return deny(RoleNotPermitted, "account %d is not a landlord", t.Landlord.ID)
	}
	return allow(t.Landlord.ID)
}

func authorizeCreate(s domain.Subject, t Target) Decision {
	switch t.Kind {
	case KindHotel:
		if !s.IsLandlord() {
			return deny(RoleNotPermitted, "only landlords and admins can create hotels")
		}
		return allow(s.AccountID)
	case KindRoom:
		if t.HotelID == nil {
			return deny(ResourceNotFound, "hotel is required")
		}
		if t.Hotel == nil {
			return deny(ResourceNotFound, "hotel %d not found", *t.HotelID)
		}
		owner, ok := ResolveOwner(t.Hotel)
		if !ok {
			return deny(BrokenOwnershipChain, "hotel %d has no landlord", t.Hotel.ID)
		}
		if owner != s.AccountID {
			return deny(NotOwner, "you can only add rooms to your own hotels")
		}
		return allow(owner)
	case KindBooking, KindPayment, KindCustomer:
		// Transactions and guest records are not owner gated; the caller stamps created_by.
		return allow(0)
	case KindAccount:
		if t.RoleChange {
			return deny(RoleNotPermitted, "only admins can assign the admin role")
		}
		return allow(0)
	}
	return deny(RoleNotPermitted, "cannot create %s", t.Kind)
}

func authorizeChange(s domain.Subject, a Action, t Target) Decision {
	if t.Kind == KindAccount && (t.RoleChange || a == ActionDelete) {
		return deny(RoleNotPermitted, "only admins can change roles or deactivate accounts")
	}
	if t.Kind == KindCustomer {
		return authorizeRecorder(s, a, t)
	}
	owner, ok := ResolveOwner(t.Resource)
	if !ok {
		return deny(BrokenOwnershipChain, "%s has no resolvable owner", t.Kind)
	}
	if owner != s.AccountID {
		return deny(NotOwner, "you can only %s your own %ss", a, t.Kind)
	}
	return allow(owner)
}

// authorizeRecorder gates records that have no landlord: the account that
// created the row is the only non-admin allowed to change it.
func authorizeRecorder(s domain.Subject, a Action, t Target) Decision {
	creator := createdByOf(t.Resource)
	if creator == "" {
		return deny(BrokenOwnershipChain, "%s has no recorded creator", t.Kind)
	}
	if creator != s.Email {
		return deny(NotOwner, "you can only %s %ss you recorded", a, t.Kind)
	}
	return allow(0)
}

func ownerHint(a Action, t Target) (int64, bool) {
	if a == ActionCreate {
		if t.Hotel != nil {
			return ResolveOwner(t.Hotel)
		}
		return 0, false
	}
	return ResolveOwner(t.Resource)
}

// Authenticated denies anonymous subjects. Handlers that only need a caller
// (profile reads, "my hotels") use it as their whole decision.
func Authenticated(s domain.Subject) Decision {
	if !s.Authenticated {
		return deny(AuthenticationRequired, "authentication required")
	}
	return allow(0)
}
