package authz

import "hotel_booking/internal/domain"

// ScopeForList returns the rows of kind that s may see for action. Public
// browsing (list/retrieve on hotels and rooms) ignores the subject entirely;
// write actions narrow the set to what s may change.
func ScopeForList(s domain.Subject, a Action, k Kind) domain.Scope {
	switch k {
	case KindHotel, KindRoom:
		if a == ActionList || a == ActionRetrieve {
			return domain.Scope{Kind: domain.ScopeActive}
		}
		return writeScope(s)
	case KindBooking, KindPayment:
		switch {
		case s.IsAdmin():
			return domain.Scope{Kind: domain.ScopeAll}
		case s.IsLandlord():
			return domain.Scope{Kind: domain.ScopeOwned, OwnerID: s.AccountID}
		case s.IsUser() && (a == ActionList || a == ActionRetrieve):
			return domain.Scope{Kind: domain.ScopeCreatedBy, Creator: s.Email}
		}
	case KindCustomer:
		switch {
		case s.IsAdmin():
			return domain.Scope{Kind: domain.ScopeAll}
		case s.Authenticated:
			return domain.Scope{Kind: domain.ScopeCreatedBy, Creator: s.Email}
		}
	case KindAccount:
		switch {
		case s.IsAdmin():
			return domain.Scope{Kind: domain.ScopeAll}
		case s.Authenticated:
			return domain.Scope{Kind: domain.ScopeOwned, OwnerID: s.AccountID}
		}
	}
	return domain.Scope{Kind: domain.ScopeNone}
}

func writeScope(s domain.Subject) domain.Scope {
	switch {
	case s.IsAdmin():
		return domain.Scope{Kind: domain.ScopeAll}
	case s.IsLandlord():
		return domain.Scope{Kind: domain.ScopeOwned, OwnerID: s.AccountID}
	}
	return domain.Scope{Kind: domain.ScopeNone}
}

// Match evaluates sc against a single resource in memory.
func Match(sc domain.Scope, res any) bool {
	switch sc.Kind {
	case domain.ScopeAll:
		return true
	case domain.ScopeActive:
		return activeOf(res)
	case domain.ScopeOwned:
		owner, ok := ResolveOwner(res)
		return ok && owner == sc.OwnerID
	case domain.ScopeCreatedBy:
		return sc.Creator != "" && createdByOf(res) == sc.Creator
	}
	return false
}

// Visible reports whether s may read res by id: either it is publicly
// visible, or s could write it (owners and admins still reach inactive rows).
func Visible(s domain.Subject, k Kind, res any) bool {
	return Match(ScopeForList(s, ActionRetrieve, k), res) || Match(ScopeForList(s, ActionUpdate, k), res)
}
