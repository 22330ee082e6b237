//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string     { return &s }
func pint64(i int64) *int64     { return &i }
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// startMySQL runs an isolated MySQL; Docker picks a free host port.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel_booking",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "hotel_booking")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_ChainsScopesAndConflicts(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange
	alice := domain.Account{Email: "alice@example.com", FirstName: "A", LastName: "L", Role: domain.RoleLandlord, PasswordHash: "x", IsActive: true}
	bob := domain.Account{Email: "bob@example.com", FirstName: "B", LastName: "L", Role: domain.RoleLandlord, PasswordHash: "x", IsActive: true}
	for _, a := range []*domain.Account{&alice, &bob} {
		if err := repo.CreateAccount(ctx, a); err != nil {
			t.Fatalf("CreateAccount: %v", err)
		}
	}
	dup := domain.Account{Email: "alice@example.com", FirstName: "A", LastName: "L", Role: domain.RoleUser, PasswordHash: "x"}
	if err := repo.CreateAccount(ctx, &dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate email: want ErrConflict, got %v", err)
	}

	hotel := domain.Hotel{Name: "Sea View", Slug: "sea-view", Address: "1 Road", City: "Dhaka", Country: "Bangladesh",
		StarRating: 4, LandlordID: alice.ID, IsActive: true, Audit: domain.Audit{CreatedBy: alice.Email, UpdatedBy: alice.Email}}
	if err := repo.CreateHotel(ctx, &hotel); err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	clash := hotel
	if err := repo.CreateHotel(ctx, &clash); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate slug: want ErrConflict, got %v", err)
	}
	unslugged := domain.Hotel{Name: "Old Import", Address: "2 Road", City: "Dhaka", Country: "Bangladesh", StarRating: 3, LandlordID: bob.ID, IsActive: true}
	if err := repo.CreateHotel(ctx, &unslugged); err != nil {
		t.Fatalf("CreateHotel (no slug): %v", err)
	}

	room := domain.Room{HotelID: pint64(hotel.ID), RoomNo: "101", Capacity: 2, Price: 80.5, IsActive: true, IsAvailable: true}
	if err := repo.CreateRoom(ctx, &room); err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if err := repo.CreateRoom(ctx, &domain.Room{HotelID: pint64(hotel.ID), RoomNo: "101", IsActive: true}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate room_no: want ErrConflict, got %v", err)
	}
	if err := repo.CreateRoom(ctx, &domain.Room{HotelID: pint64(987654), RoomNo: "1", IsActive: true}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing hotel: want ErrNotFound, got %v", err)
	}

	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	booking := domain.Booking{RoomID: pint64(room.ID), CustomerPhoneNo: "+880170", StartTime: &start, Price: 80.5,
		DiscountedPrice: pfloat(70), IsActive: true, Audit: domain.Audit{CreatedBy: "carol@example.com"}}
	if err := repo.CreateBooking(ctx, &booking); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	payment := domain.Payment{BookingID: pint64(booking.ID), Amount: 70, Method: domain.PaymentBkash, IsActive: true,
		Audit: domain.Audit{CreatedBy: "carol@example.com"}}
	if err := repo.CreatePayment(ctx, &payment); err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	// Assert: the payment arrives with its whole chain resolved
	got, err := repo.GetPayment(ctx, payment.ID)
	if err != nil {
		t.Fatalf("GetPayment: %v", err)
	}
	owner, ok := authz.ResolveOwner(&got)
	if !ok || owner != alice.ID {
		t.Fatalf("payment owner: %d %v", owner, ok)
	}
	if got.Booking.DiscountedPrice == nil || *got.Booking.DiscountedPrice != 70 || !got.Booking.StartTime.Equal(start) {
		t.Fatalf("booking columns: %+v", got.Booking)
	}

	// scopes translate to SQL the same way Match evaluates them
	owned, err := repo.ListBookings(ctx, domain.BookingsQuery{Scope: domain.Scope{Kind: domain.ScopeOwned, OwnerID: alice.ID}, Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(owned.Items) != 1 {
		t.Fatalf("owned bookings: %+v %v", owned, err)
	}
	foreign, err := repo.ListPayments(ctx, domain.PaymentsQuery{Scope: domain.Scope{Kind: domain.ScopeOwned, OwnerID: bob.ID}, Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(foreign.Items) != 0 {
		t.Fatalf("bob payments: %+v %v", foreign, err)
	}
	mine, err := repo.ListPayments(ctx, domain.PaymentsQuery{Scope: domain.Scope{Kind: domain.ScopeCreatedBy, Creator: "carol@example.com"}, Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(mine.Items) != 1 {
		t.Fatalf("carol payments: %+v %v", mine, err)
	}
	none, err := repo.ListHotels(ctx, domain.HotelsQuery{Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(none.Items) != 0 {
		t.Fatalf("zero scope must match nothing: %+v %v", none, err)
	}

	// soft delete keeps the row for owners, hides it from the public scope
	hotel.IsActive = false
	if err := repo.UpdateHotel(ctx, hotel); err != nil {
		t.Fatalf("UpdateHotel: %v", err)
	}
	public, err := repo.ListHotels(ctx, domain.HotelsQuery{Scope: domain.Scope{Kind: domain.ScopeActive}, Q: pstr("sea"), Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(public.Items) != 0 {
		t.Fatalf("public hotels: %+v %v", public, err)
	}
	managed, err := repo.ListHotels(ctx, domain.HotelsQuery{Scope: domain.Scope{Kind: domain.ScopeOwned, OwnerID: alice.ID}, Page: domain.PageQuery{Limit: 10}})
	if err != nil || len(managed.Items) != 1 || managed.Items[0].IsActive {
		t.Fatalf("managed hotels: %+v %v", managed, err)
	}

	missing, err := repo.ListHotelsMissingSlug(ctx, 10)
	if err != nil || len(missing) != 1 || missing[0].ID != unslugged.ID {
		t.Fatalf("missing slugs: %+v %v", missing, err)
	}
	if err := repo.UpdateHotel(ctx, domain.Hotel{ID: 424242, Name: "x", StarRating: 3}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update unknown hotel: want ErrNotFound, got %v", err)
	}
}

func TestRepo_MySQL_Pagination(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		h := domain.Hotel{Name: fmt.Sprintf("H%d", i), Slug: fmt.Sprintf("h%d", i), Address: "a", City: "c", Country: "k", StarRating: i%5 + 1, IsActive: true}
		if err := repo.CreateHotel(ctx, &h); err != nil {
			t.Fatalf("CreateHotel: %v", err)
		}
	}
	all := domain.Scope{Kind: domain.ScopeAll}
	p1, err := repo.ListHotels(ctx, domain.HotelsQuery{Scope: all, Sort: "name", Page: domain.PageQuery{Limit: 2}})
	if err != nil || len(p1.Items) != 2 || p1.NextOffset == nil || *p1.NextOffset != 2 || p1.Items[0].Name != "H0" {
		t.Fatalf("page 1: %+v %v", p1, err)
	}
	p3, err := repo.ListHotels(ctx, domain.HotelsQuery{Scope: all, Sort: "name", Page: domain.PageQuery{Limit: 2, Offset: 4}})
	if err != nil || len(p3.Items) != 1 || p3.NextOffset != nil {
		t.Fatalf("page 3: %+v %v", p3, err)
	}
}

func TestRepo_MySQL_Customers(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	female := domain.GenderFemale
	c := domain.Customer{FirstName: "Nadia", LastName: "Islam", Gender: &female, Email: pstr("nadia@example.com"),
		PhoneNo: "01710000000", Country: pstr("Bangladesh"), IsActive: true,
		Audit: domain.Audit{CreatedBy: "desk@example.com", UpdatedBy: "desk@example.com"}}
	if err := repo.CreateCustomer(ctx, &c); err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	dup := domain.Customer{FirstName: "X", LastName: "Y", PhoneNo: c.PhoneNo, IsActive: true}
	if err := repo.CreateCustomer(ctx, &dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate phone: want ErrConflict, got %v", err)
	}

	got, err := repo.GetCustomer(ctx, c.ID)
	if err != nil || got.Gender == nil || *got.Gender != female || got.Address != nil || got.CreatedBy != "desk@example.com" {
		t.Fatalf("GetCustomer: %+v %v", got, err)
	}

	got.IsActive = false
	got.UpdatedBy = "admin@example.com"
	if err := repo.UpdateCustomer(ctx, got); err != nil {
		t.Fatalf("UpdateCustomer: %v", err)
	}
	if err := repo.UpdateCustomer(ctx, domain.Customer{ID: 9999, PhoneNo: "1"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update missing: want ErrNotFound, got %v", err)
	}

	mine := domain.Scope{Kind: domain.ScopeCreatedBy, Creator: "desk@example.com"}
	page, err := repo.ListCustomers(ctx, domain.CustomersQuery{Scope: mine, Q: pstr("nadia")})
	if err != nil || len(page.Items) != 1 || page.Items[0].IsActive {
		t.Fatalf("ListCustomers mine: %+v %v", page, err)
	}
	page, err = repo.ListCustomers(ctx, domain.CustomersQuery{Scope: domain.Scope{Kind: domain.ScopeCreatedBy, Creator: "other@example.com"}})
	if err != nil || len(page.Items) != 0 {
		t.Fatalf("ListCustomers other: %+v %v", page, err)
	}
}
