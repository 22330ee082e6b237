package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

const (
	landlordA int64 = 10
	landlordB int64 = 11
	adminID   int64 = 1
	userID    int64 = 20
)

var (
	admin   = domain.Subject{AccountID: adminID, Email: "admin@example.com", Role: domain.RoleAdmin, Authenticated: true}
	ownerA  = domain.Subject{AccountID: landlordA, Email: "a@example.com", Role: domain.RoleLandlord, Authenticated: true}
	ownerB  = domain.Subject{AccountID: landlordB, Email: "b@example.com", Role: domain.RoleLandlord, Authenticated: true}
	guest   = domain.Subject{AccountID: userID, Email: "guest@example.com", Role: domain.RoleUser, Authenticated: true}
	anon    = domain.Anonymous()
	writers = []authz.Action{authz.ActionCreate, authz.ActionUpdate, authz.ActionDelete}
)

type chain struct {
	hotel   *domain.Hotel
	room    *domain.Room
	booking *domain.Booking
	payment *domain.Payment
}

func newChain(owner int64) chain {
	h := &domain.Hotel{ID: 1, Name: "Sea View", LandlordID: owner, IsActive: true}
	hid := h.ID
	r := &domain.Room{ID: 2, HotelID: &hid, Hotel: h, RoomNo: "101", IsActive: true}
	rid := r.ID
	b := &domain.Booking{ID: 3, RoomID: &rid, Room: r, CustomerPhoneNo: "555", IsActive: true}
	bid := b.ID
	p := &domain.Payment{ID: 4, BookingID: &bid, Booking: b, Amount: 10, Method: domain.PaymentCash, IsActive: true}
	return chain{hotel: h, room: r, booking: b, payment: p}
}

func targets(c chain) map[authz.Kind]any {
	return map[authz.Kind]any{
		authz.KindHotel:   c.hotel,
		authz.KindRoom:    c.room,
		authz.KindBooking: c.booking,
		authz.KindPayment: c.payment,
	}
}

func TestResolveOwner_Transitive(t *testing.T) {
	c := newChain(landlordA)

	for kind, res := range targets(c) {
		owner, ok := authz.ResolveOwner(res)
		require.True(t, ok, kind)
		assert.Equal(t, landlordA, owner, kind)
	}
}

func TestResolveOwner_BrokenChains(t *testing.T) {
	orphanRoom := &domain.Room{ID: 5}
	orphanBooking := &domain.Booking{ID: 6}
	orphanPayment := &domain.Payment{ID: 7}
	deepBroken := &domain.Payment{ID: 8, Booking: &domain.Booking{ID: 9, Room: &domain.Room{ID: 10}}}
	var nilRoom *domain.Room

	for name, res := range map[string]any{
		"room without hotel":       orphanRoom,
		"booking without room":     orphanBooking,
		"payment without booking":  orphanPayment,
		"payment with broken room": deepBroken,
		"typed nil":                nilRoom,
		"hotel without landlord":   &domain.Hotel{ID: 3},
		"not a resource":           "hotel",
	} {
		_, ok := authz.ResolveOwner(res)
		assert.False(t, ok, name)
	}
}

func TestAuthorizeWrite_FailClosedOnBrokenChain(t *testing.T) {
	broken := map[authz.Kind]any{
		authz.KindRoom:    &domain.Room{ID: 1},
		authz.KindBooking: &domain.Booking{ID: 1},
		authz.KindPayment: &domain.Payment{ID: 1},
	}
	for kind, res := range broken {
		for _, act := range []authz.Action{authz.ActionUpdate, authz.ActionDelete} {
			for _, s := range []domain.Subject{ownerA, ownerB, guest} {
				d := authz.AuthorizeWrite(s, act, authz.Target{Kind: kind, Resource: res})
				assert.False(t, d.Allowed)
				assert.Equal(t, authz.BrokenOwnershipChain, d.Reason, "%s %s by %s", act, kind, s.Role)
			}
			d := authz.AuthorizeWrite(admin, act, authz.Target{Kind: kind, Resource: res})
			assert.True(t, d.Allowed, "admin %s %s", act, kind)
		}
	}
}

func TestAuthorizeWrite_AdminUniversality(t *testing.T) {
	c := newChain(landlordA)
	hid := c.hotel.ID
	landlord := &domain.Account{ID: landlordA, Role: domain.RoleLandlord, IsActive: true}
	lid := landlord.ID

	for kind, res := range targets(c) {
		for _, act := range writers {
			tg := authz.Target{Kind: kind, Resource: res, HotelID: &hid, Hotel: c.hotel}
			if kind == authz.KindHotel && act == authz.ActionCreate {
				tg.LandlordID, tg.Landlord = &lid, landlord
			}
			d := authz.AuthorizeWrite(admin, act, tg)
			assert.True(t, d.Allowed, "admin %s %s: %s", act, kind, d.Detail)
		}
	}

	t.Run("hotel create without landlord id", func(t *testing.T) {
		d := authz.AuthorizeWrite(admin, authz.ActionCreate, authz.Target{Kind: authz.KindHotel})
		assert.False(t, d.Allowed)
		assert.Equal(t, authz.RoleNotPermitted, d.Reason)
	})
	t.Run("hotel create with unknown landlord", func(t *testing.T) {
		missing := int64(99)
		d := authz.AuthorizeWrite(admin, authz.ActionCreate, authz.Target{Kind: authz.KindHotel, LandlordID: &missing})
		assert.Equal(t, authz.ResourceNotFound, d.Reason)
	})
	t.Run("hotel create for a non-landlord", func(t *testing.T) {
		u := &domain.Account{ID: userID, Role: domain.RoleUser}
		d := authz.AuthorizeWrite(admin, authz.ActionCreate, authz.Target{Kind: authz.KindHotel, LandlordID: &u.ID, Landlord: u})
		assert.Equal(t, authz.RoleNotPermitted, d.Reason)
	})
	t.Run("hotel create assigns the named landlord", func(t *testing.T) {
		d := authz.AuthorizeWrite(admin, authz.ActionCreate, authz.Target{Kind: authz.KindHotel, LandlordID: &lid, Landlord: landlord})
		require.True(t, d.Allowed)
		assert.Equal(t, landlordA, d.Owner)
	})
}

func TestAuthorizeWrite_NonOwnerDenied(t *testing.T) {
	c := newChain(landlordA)
	tg := authz.Target{Kind: authz.KindHotel, Resource: c.hotel}

	d := authz.AuthorizeWrite(ownerB, authz.ActionUpdate, tg)
	assert.False(t, d.Allowed)
	assert.Equal(t, authz.NotOwner, d.Reason)

	d = authz.AuthorizeWrite(ownerA, authz.ActionUpdate, tg)
	assert.True(t, d.Allowed)
	assert.Equal(t, landlordA, d.Owner)

	d = authz.AuthorizeWrite(admin, authz.ActionUpdate, tg)
	assert.True(t, d.Allowed)
}

func TestAuthorizeWrite_OwnershipThroughChain(t *testing.T) {
	c := newChain(landlordA)
	for kind, res := range targets(c) {
		for _, act := range []authz.Action{authz.ActionUpdate, authz.ActionDelete} {
			assert.True(t, authz.AuthorizeWrite(ownerA, act, authz.Target{Kind: kind, Resource: res}).Allowed)
			assert.Equal(t, authz.NotOwner, authz.AuthorizeWrite(ownerB, act, authz.Target{Kind: kind, Resource: res}).Reason)
			assert.Equal(t, authz.NotOwner, authz.AuthorizeWrite(guest, act, authz.Target{Kind: kind, Resource: res}).Reason)
		}
	}
}

func TestAuthorizeWrite_AuthenticationFirst(t *testing.T) {
	c := newChain(landlordA)
	for kind, res := range targets(c) {
		for _, act := range writers {
			d := authz.AuthorizeWrite(anon, act, authz.Target{Kind: kind, Resource: res})
			assert.Equal(t, authz.AuthenticationRequired, d.Reason)
		}
	}
	// An admin role on an unauthenticated subject grants nothing.
	forged := domain.Subject{AccountID: adminID, Role: domain.RoleAdmin}
	assert.Equal(t, authz.AuthenticationRequired, authz.AuthorizeWrite(forged, authz.ActionDelete, authz.Target{Kind: authz.KindHotel, Resource: c.hotel}).Reason)
}

func TestAuthorizeWrite_Create(t *testing.T) {
	c := newChain(landlordA)
	hid := c.hotel.ID

	t.Run("landlord creates hotel for themselves", func(t *testing.T) {
		d := authz.AuthorizeWrite(ownerB, authz.ActionCreate, authz.Target{Kind: authz.KindHotel})
		require.True(t, d.Allowed)
		assert.Equal(t, landlordB, d.Owner)
	})
	t.Run("user cannot create hotel", func(t *testing.T) {
		d := authz.AuthorizeWrite(guest, authz.ActionCreate, authz.Target{Kind: authz.KindHotel})
		assert.Equal(t, authz.RoleNotPermitted, d.Reason)
	})
	t.Run("room in own hotel", func(t *testing.T) {
		d := authz.AuthorizeWrite(ownerA, authz.ActionCreate, authz.Target{Kind: authz.KindRoom, HotelID: &hid, Hotel: c.hotel})
		assert.True(t, d.Allowed)
	})
	t.Run("room in someone else's hotel", func(t *testing.T) {
		d := authz.AuthorizeWrite(ownerB, authz.ActionCreate, authz.Target{Kind: authz.KindRoom, HotelID: &hid, Hotel: c.hotel})
		assert.Equal(t, authz.NotOwner, d.Reason)
	})
	t.Run("room in missing hotel", func(t *testing.T) {
		missing := int64(404)
		d := authz.AuthorizeWrite(ownerA, authz.ActionCreate, authz.Target{Kind: authz.KindRoom, HotelID: &missing})
		assert.Equal(t, authz.ResourceNotFound, d.Reason)
		assert.Error(t, d.Err())
	})
	t.Run("bookings and payments are not owner gated", func(t *testing.T) {
		assert.True(t, authz.AuthorizeWrite(guest, authz.ActionCreate, authz.Target{Kind: authz.KindBooking}).Allowed)
		assert.True(t, authz.AuthorizeWrite(guest, authz.ActionCreate, authz.Target{Kind: authz.KindPayment}).Allowed)
	})
}

func TestAuthorizeWrite_Accounts(t *testing.T) {
	self := &domain.Account{ID: userID, Role: domain.RoleUser, IsActive: true}
	other := &domain.Account{ID: landlordA, Role: domain.RoleLandlord, IsActive: true}

	assert.True(t, authz.AuthorizeWrite(guest, authz.ActionUpdate, authz.Target{Kind: authz.KindAccount, Resource: self}).Allowed)
	assert.Equal(t, authz.NotOwner, authz.AuthorizeWrite(guest, authz.ActionUpdate, authz.Target{Kind: authz.KindAccount, Resource: other}).Reason)
	assert.Equal(t, authz.RoleNotPermitted, authz.AuthorizeWrite(guest, authz.ActionUpdate, authz.Target{Kind: authz.KindAccount, Resource: self, RoleChange: true}).Reason)
	assert.Equal(t, authz.RoleNotPermitted, authz.AuthorizeWrite(guest, authz.ActionDelete, authz.Target{Kind: authz.KindAccount, Resource: self}).Reason)
	assert.True(t, authz.AuthorizeWrite(admin, authz.ActionUpdate, authz.Target{Kind: authz.KindAccount, Resource: other, RoleChange: true}).Allowed)
}

func TestAuthorizeWrite_SoftDeleteDecisionIsRepeatable(t *testing.T) {
	c := newChain(landlordA)
	tg := authz.Target{Kind: authz.KindHotel, Resource: c.hotel}

	first := authz.AuthorizeWrite(ownerA, authz.ActionDelete, tg)
	require.True(t, first.Allowed)
	c.hotel.IsActive = false
	second := authz.AuthorizeWrite(ownerA, authz.ActionDelete, tg)
	assert.True(t, second.Allowed)
	assert.False(t, c.hotel.IsActive)

	assert.Equal(t, authz.NotOwner, authz.AuthorizeWrite(ownerB, authz.ActionDelete, tg).Reason)
	assert.Equal(t, authz.NotOwner, authz.AuthorizeWrite(ownerB, authz.ActionDelete, tg).Reason)
}

func TestAuthorizeWrite_RejectsReadActions(t *testing.T) {
	c := newChain(landlordA)
	d := authz.AuthorizeWrite(ownerA, authz.ActionList, authz.Target{Kind: authz.KindHotel, Resource: c.hotel})
	assert.False(t, d.Allowed)
	assert.Equal(t, authz.RoleNotPermitted, d.Reason)
}

func TestDenial_Error(t *testing.T) {
	d := authz.AuthorizeWrite(ownerB, authz.ActionUpdate, authz.Target{Kind: authz.KindHotel, Resource: newChain(landlordA).hotel})
	err := d.Err()
	require.Error(t, err)

	reason, ok := authz.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, authz.NotOwner, reason)
	assert.Equal(t, "not_owner", d.Outcome())
	assert.Contains(t, err.Error(), "not_owner")

	assert.NoError(t, authz.AuthorizeWrite(ownerA, authz.ActionUpdate, authz.Target{Kind: authz.KindHotel, Resource: newChain(landlordA).hotel}).Err())
}

func TestAuthorizeWrite_CustomersBelongToWhoeverRecordedThem(t *testing.T) {
	c := &domain.Customer{ID: 1, FirstName: "Rahim", LastName: "Uddin", PhoneNo: "555", IsActive: true,
		Audit: domain.Audit{CreatedBy: ownerA.Email}}

	for _, s := range []domain.Subject{guest, ownerA, ownerB, admin} {
		assert.True(t, authz.AuthorizeWrite(s, authz.ActionCreate, authz.Target{Kind: authz.KindCustomer}).Allowed, s.Email)
	}
	assert.Equal(t, authz.AuthenticationRequired,
		authz.AuthorizeWrite(anon, authz.ActionCreate, authz.Target{Kind: authz.KindCustomer}).Reason)

	for _, act := range []authz.Action{authz.ActionUpdate, authz.ActionDelete} {
		tgt := authz.Target{Kind: authz.KindCustomer, Resource: c}
		assert.True(t, authz.AuthorizeWrite(ownerA, act, tgt).Allowed, act)
		assert.True(t, authz.AuthorizeWrite(admin, act, tgt).Allowed, act)
		assert.Equal(t, authz.NotOwner, authz.AuthorizeWrite(ownerB, act, tgt).Reason, act)
		assert.Equal(t, authz.NotOwner, authz.AuthorizeWrite(guest, act, tgt).Reason, act)

		unstamped := authz.Target{Kind: authz.KindCustomer, Resource: &domain.Customer{ID: 2}}
		assert.Equal(t, authz.BrokenOwnershipChain, authz.AuthorizeWrite(ownerA, act, unstamped).Reason, act)
	}
}
