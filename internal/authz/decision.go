package authz

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindAccount  Kind = "account"
	KindHotel    Kind = "hotel"
	KindRoom     Kind = "room"
	KindBooking  Kind = "booking"
	KindPayment  Kind = "payment"
	KindCustomer Kind = "customer"
)

type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
)

func (a Action) isWrite() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// Reason is why a write was denied. It is always one of the constants below.
type Reason string

const (
	AuthenticationRequired Reason = "authentication_required"
	RoleNotPermitted       Reason = "role_not_permitted"
	NotOwner               Reason = "not_owner"
	ResourceNotFound       Reason = "resource_not_found"
	BrokenOwnershipChain   Reason = "broken_ownership_chain"
)

type Decision struct {
	Allowed bool
	Reason  Reason // empty when allowed
	Detail  string
	// Owner is the landlord the resource belongs to, or will belong to on
	// create. Zero when not applicable.
	Owner int64
}

func allow(owner int64) Decision { return Decision{Allowed: true, Owner: owner} }

func deny(r Reason, format string, args ...any) Decision {
	return Decision{Reason: r, Detail: fmt.Sprintf(format, args...)}
}

// Err returns nil for an allow and a *Denial otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &Denial{Reason: d.Reason, Detail: d.Detail}
}

// Outcome is "allow" or the deny reason, for logs and metrics labels.
func (d Decision) Outcome() string {
	if d.Allowed {
		return "allow"
	}
	return string(d.Reason)
}

type Denial struct {
	Reason Reason
	Detail string
}

func (e *Denial) Error() string {
	if e.Detail == "" {
		return "authz: " + string(e.Reason)
	}
	return fmt.Sprintf("authz: %s: %s", e.Reason, e.Detail)
}

// ReasonOf extracts the deny reason from an error chain.
func ReasonOf(err error) (Reason, bool) {
	var d *Denial
	if errors.As(err, &d) {
		return d.Reason, true
	}
	return "", false
}
