package mysql

import "fmt"

// Column lists take the table alias as their only argument so the same list
// serves a plain select and a LEFT JOIN of the parent chain.
const (
	hotelColumns = "%[1]s.id, %[1]s.name, %[1]s.slug, %[1]s.description, %[1]s.image_url, %[1]s.address, " +
		"%[1]s.city, %[1]s.country, %[1]s.phone_no, %[1]s.email, %[1]s.star_rating, %[1]s.landlord_id, " +
		"%[1]s.is_active, %[1]s.created_by, %[1]s.updated_by, %[1]s.created_at, %[1]s.updated_at"
	roomColumns = "%[1]s.id, %[1]s.hotel_id, %[1]s.room_no, %[1]s.floor_no, %[1]s.capacity, %[1]s.price, " +
		"%[1]s.details, %[1]s.is_active, %[1]s.is_available, " +
		"%[1]s.created_by, %[1]s.updated_by, %[1]s.created_at, %[1]s.updated_at"
	bookingColumns = "%[1]s.id, %[1]s.room_id, %[1]s.customer_phone_no, %[1]s.booking_time, " +
		"%[1]s.booking_start_time, %[1]s.booking_end_time, %[1]s.last_checkin_time, %[1]s.last_checkout_time, " +
		"%[1]s.price, %[1]s.discounted_price, %[1]s.is_active, " +
		"%[1]s.created_by, %[1]s.updated_by, %[1]s.created_at, %[1]s.updated_at"
	paymentColumns = "%[1]s.id, %[1]s.booking_id, %[1]s.amount, %[1]s.payment_method, %[1]s.is_active, " +
		"%[1]s.created_by, %[1]s.updated_by, %[1]s.created_at, %[1]s.updated_at"
	customerColumns = "%[1]s.id, %[1]s.first_name, %[1]s.last_name, %[1]s.gender, %[1]s.email, %[1]s.phone_no, " +
		"%[1]s.address, %[1]s.country, %[1]s.occupation, %[1]s.details, %[1]s.is_active, " +
		"%[1]s.created_by, %[1]s.updated_by, %[1]s.created_at, %[1]s.updated_at"
)

func cols(list, alias string) string { return fmt.Sprintf(list, alias) }

// -----------------------------------------------------------------------------
// ACCOUNTS
// -----------------------------------------------------------------------------

const accountSelect = `
SELECT id, email, first_name, last_name, role, password_hash, is_active, date_joined, last_login
FROM accounts
`

const insertAccountSQL = `
INSERT INTO accounts
  (email, first_name, last_name, role, password_hash, is_active, date_joined, last_login)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const updateAccountSQL = `
UPDATE accounts SET
  email         = ?,
  first_name    = ?,
  last_name     = ?,
  role          = ?,
  password_hash = ?,
  is_active     = ?,
  last_login    = ?
WHERE id = ?
`

// -----------------------------------------------------------------------------
// HOTELS
// -----------------------------------------------------------------------------

var hotelSelect = "SELECT " + cols(hotelColumns, "h") + "\nFROM hotels h\n"

// Empty slugs are stored as NULL so the unique key ignores them until backfilled.
const insertHotelSQL = `
INSERT INTO hotels
  (name, slug, description, image_url, address, city, country, phone_no, email,
   star_rating, landlord_id, is_active, created_by, updated_by, created_at, updated_at)
VALUES
  (?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// landlord_id is fixed at creation and deliberately absent here.
const updateHotelSQL = `
UPDATE hotels SET
  name        = ?,
  slug        = NULLIF(?, ''),
  description = ?,
  image_url   = ?,
  address     = ?,
  city        = ?,
  country     = ?,
  phone_no    = ?,
  email       = ?,
  star_rating = ?,
  is_active   = ?,
  updated_by  = ?,
  updated_at  = ?
WHERE id = ?
`

const slugTakenSQL = `SELECT EXISTS(SELECT 1 FROM hotels WHERE slug = ? AND id <> ?)`

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

var roomSelect = "SELECT " + cols(roomColumns, "r") + ", " + cols(hotelColumns, "h") + `
FROM rooms r
LEFT JOIN hotels h ON h.id = r.hotel_id
`

const insertRoomSQL = `
INSERT INTO rooms
  (hotel_id, room_no, floor_no, capacity, price, details, is_active, is_available,
   created_by, updated_by, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateRoomSQL = `
UPDATE rooms SET
  room_no      = ?,
  floor_no     = ?,
  capacity     = ?,
  price        = ?,
  details      = ?,
  is_active    = ?,
  is_available = ?,
  updated_by   = ?,
  updated_at   = ?
WHERE id = ?
`

// -----------------------------------------------------------------------------
// BOOKINGS
// -----------------------------------------------------------------------------

var bookingSelect = "SELECT " + cols(bookingColumns, "b") + ", " + cols(roomColumns, "r") + ", " + cols(hotelColumns, "h") + `
FROM bookings b
LEFT JOIN rooms r ON r.id = b.room_id
LEFT JOIN hotels h ON h.id = r.hotel_id
`

const insertBookingSQL = `
INSERT INTO bookings
  (room_id, customer_phone_no, booking_time, booking_start_time, booking_end_time,
   last_checkin_time, last_checkout_time, price, discounted_price, is_active,
   created_by, updated_by, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateBookingSQL = `
UPDATE bookings SET
  customer_phone_no  = ?,
  booking_start_time = ?,
  booking_end_time   = ?,
  last_checkin_time  = ?,
  last_checkout_time = ?,
  price              = ?,
  discounted_price   = ?,
  is_active          = ?,
  updated_by         = ?,
  updated_at         = ?
WHERE id = ?
`

// -----------------------------------------------------------------------------
// PAYMENTS
// -----------------------------------------------------------------------------

var paymentSelect = "SELECT " + cols(paymentColumns, "p") + ", " + cols(bookingColumns, "b") + ", " +
	cols(roomColumns, "r") + ", " + cols(hotelColumns, "h") + `
FROM payments p
LEFT JOIN bookings b ON b.id = p.booking_id
LEFT JOIN rooms r ON r.id = b.room_id
LEFT JOIN hotels h ON h.id = r.hotel_id
`

const insertPaymentSQL = `
INSERT INTO payments
  (booking_id, amount, payment_method, is_active, created_by, updated_by, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const updatePaymentSQL = `
UPDATE payments SET
  amount         = ?,
  payment_method = ?,
  is_active      = ?,
  updated_by     = ?,
  updated_at     = ?
WHERE id = ?
`

// -----------------------------------------------------------------------------
// CUSTOMERS
// -----------------------------------------------------------------------------

var customerSelect = "SELECT " + cols(customerColumns, "c") + "\nFROM customers c\n"

const insertCustomerSQL = `
INSERT INTO customers
  (first_name, last_name, gender, email, phone_no, address, country, occupation, details,
   is_active, created_by, updated_by, created_at, updated_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateCustomerSQL = `
UPDATE customers SET
  first_name = ?,
  last_name  = ?,
  gender     = ?,
  email      = ?,
  phone_no   = ?,
  address    = ?,
  country    = ?,
  occupation = ?,
  details    = ?,
  is_active  = ?,
  updated_by = ?,
  updated_at = ?
WHERE id = ?
`
