package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

func TestHotelGet_CacheMissThenHit(t *testing.T) {
	f := newFixture()
	cache := &fakeCache{}
	svc := app.NewHotelService(f.store, f.store, cache, 10*time.Minute)
	ctx := context.Background()

	h, err := svc.Create(ctx, f.alice, hotelInput("Sea View"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Miss (first time, populates cache)
	if _, err := svc.Get(ctx, domain.Anonymous(), h.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if cache.sets != 1 || cache.hits != 0 {
		t.Fatalf("after miss: sets=%d hits=%d", cache.sets, cache.hits)
	}
	// Hit
	got, err := svc.Get(ctx, domain.Anonymous(), h.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cache.hits != 1 || got.Name != "Sea View" || got.LandlordID != f.alice.AccountID {
		t.Fatalf("after hit: hits=%d hotel=%+v", cache.hits, got)
	}

	// writes invalidate
	if _, err := svc.Update(ctx, f.alice, h.ID, domain.HotelInput{Name: ptr("Sea View II")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if cache.dels != 1 || len(cache.store) != 0 {
		t.Fatalf("cache not invalidated: %+v", cache)
	}
}

func TestHotelGet_InactiveVisibleToOwnerOnly(t *testing.T) {
	f := newFixture()
	cache := &fakeCache{}
	svc := app.NewHotelService(f.store, f.store, cache, time.Minute)
	ctx := context.Background()

	h, err := svc.Create(ctx, f.alice, hotelInput("Closed"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 2; i++ { // deleting twice is allowed
		if err := svc.Delete(ctx, f.alice, h.ID); err != nil {
			t.Fatalf("delete #%d: %v", i+1, err)
		}
	}

	if _, err := svc.Get(ctx, domain.Anonymous(), h.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("anonymous: want ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, f.bob, h.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("other landlord: want ErrNotFound, got %v", err)
	}
	for _, s := range []domain.Subject{f.alice, f.admin} {
		got, err := svc.Get(ctx, s, h.ID)
		if err != nil || got.IsActive {
			t.Fatalf("%s: %+v %v", s.Email, got, err)
		}
	}
	if cache.sets != 0 {
		t.Fatalf("inactive hotel must not be cached")
	}

	// still writable by its owner
	if _, err := svc.Update(ctx, f.alice, h.ID, domain.HotelInput{Description: ptr("renovating")}); err != nil {
		t.Fatalf("owner update of inactive hotel: %v", err)
	}
	stored, _ := f.store.GetHotel(ctx, h.ID)
	if stored.IsActive || stored.UpdatedBy != f.alice.Email {
		t.Fatalf("stored: %+v", stored)
	}
}

func TestHotelCreate_SlugsAndOwnership(t *testing.T) {
	f := newFixture()
	svc := app.NewHotelService(f.store, f.store, nil, time.Minute)
	ctx := context.Background()

	a, err := svc.Create(ctx, f.alice, hotelInput("Grand Palace"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	in := hotelInput("Grand Palace")
	in.LandlordID = ptr(f.bob.AccountID) // ignored for a landlord caller
	b, err := svc.Create(ctx, f.alice, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Slug != "grand-palace" || b.Slug != "grand-palace-1" || b.LandlordID != f.alice.AccountID {
		t.Fatalf("slugs/owner: %q %q %d", a.Slug, b.Slug, b.LandlordID)
	}
	if a.StarRating != domain.DefaultStarRating || !a.IsActive || a.CreatedBy != f.alice.Email {
		t.Fatalf("defaults: %+v", a)
	}

	in.LandlordID = ptr(f.bob.AccountID)
	c, err := svc.Create(ctx, f.admin, in)
	if err != nil || c.LandlordID != f.bob.AccountID || c.Slug != "grand-palace-2" {
		t.Fatalf("admin create: %+v %v", c, err)
	}

	_, err = svc.Create(ctx, f.carol, hotelInput("Nope"))
	if r, _ := authz.ReasonOf(err); r != authz.RoleNotPermitted {
		t.Fatalf("user create: %v", err)
	}
	_, err = svc.Create(ctx, f.alice, domain.HotelInput{Name: ptr("No address")})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "address" {
		t.Fatalf("validation: %v", err)
	}

	// an update cannot move a hotel to another landlord
	moved, err := svc.Update(ctx, f.admin, a.ID, domain.HotelInput{LandlordID: ptr(f.bob.AccountID)})
	if err != nil || moved.LandlordID != f.alice.AccountID {
		t.Fatalf("landlord changed on update: %+v %v", moved, err)
	}
}

func TestHotelListing_Scopes(t *testing.T) {
	f := newFixture()
	svc := app.NewHotelService(f.store, f.store, nil, time.Minute)
	ctx := context.Background()

	open, _ := svc.Create(ctx, f.alice, hotelInput("Open"))
	closed, _ := svc.Create(ctx, f.alice, hotelInput("Closed"))
	_, _ = svc.Create(ctx, f.bob, hotelInput("Bobs"))
	if err := svc.Delete(ctx, f.alice, closed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	pub, err := svc.List(ctx, domain.Anonymous(), domain.HotelsQuery{Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(pub.Items) != 2 {
		t.Fatalf("public: %+v %v", pub, err)
	}
	pub, _ = svc.List(ctx, f.admin, domain.HotelsQuery{Q: ptr("ope"), Page: domain.PageQuery{Limit: 10}})
	if len(pub.Items) != 1 || pub.Items[0].ID != open.ID {
		t.Fatalf("admin public search: %+v", pub)
	}

	mine, err := svc.ListManaged(ctx, f.alice, domain.HotelsQuery{Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(mine.Items) != 2 {
		t.Fatalf("alice managed: %+v %v", mine, err)
	}
	mine, _ = svc.ListManaged(ctx, f.carol, domain.HotelsQuery{Page: domain.PageQuery{Limit: 10}})
	if len(mine.Items) != 0 {
		t.Fatalf("user managed: %+v", mine)
	}
	if _, err := svc.ListManaged(ctx, domain.Anonymous(), domain.HotelsQuery{}); err == nil {
		t.Fatalf("anonymous managed listing should be rejected")
	}
	all, _ := svc.ListManaged(ctx, f.admin, domain.HotelsQuery{Page: domain.PageQuery{Limit: 2}})
	if len(all.Items) != 2 || all.NextOffset == nil {
		t.Fatalf("admin managed page: %+v", all)
	}
}

func TestHotelGetBySlug(t *testing.T) {
	f := newFixture()
	svc := app.NewHotelService(f.store, f.store, nil, time.Minute)
	ctx := context.Background()

	h, _ := svc.Create(ctx, f.alice, hotelInput("Café Olé"))
	got, err := svc.GetBySlug(ctx, domain.Anonymous(), "cafe-ole")
	if err != nil || got.ID != h.ID {
		t.Fatalf("by slug: %+v %v", got, err)
	}
	if _, err := svc.GetBySlug(ctx, domain.Anonymous(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing slug: %v", err)
	}
}
