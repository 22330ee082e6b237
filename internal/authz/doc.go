// Package authz decides who may write which resource and which rows a caller
// may see.
//
// Every decision is a pure function of the caller (a domain.Subject), the
// action and the resource with its parent chain already loaded. Ownership is
// never stored on child resources: a payment belongs to whoever owns the
// booking's room's hotel, and ResolveOwner walks that chain on each call.
//
// Reads and writes are asymmetric. Public listings of hotels and rooms only
// hide inactive rows and look the same for every caller, while updates and
// deletes require the caller to own the resource or be an admin:
//
//	d := authz.AuthorizeWrite(subject, authz.ActionUpdate, authz.Target{Kind: authz.KindHotel, Resource: &hotel})
//	if err := d.Err(); err != nil {
//		return err // *authz.Denial carrying one of the Reason values
//	}
package authz
