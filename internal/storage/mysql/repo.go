package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"hotel_booking/internal/domain"
)

const (
	errDuplicateKey = 1062
	errNoParentRow  = 1452
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.UTC()
}

// valOwner stores an unset landlord as NULL.
func valOwner(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

type Repo struct {
	db  *sql.DB
	now func() time.Time
}

var _ domain.Store = (*Repo)(nil)

func New(db *sql.DB) *Repo {
	return &Repo{db: db, now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }}
}

// mapErr translates driver errors into domain sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var me *gomysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDuplicateKey:
			return fmt.Errorf("%s: %w", me.Message, domain.ErrConflict)
		case errNoParentRow:
			return fmt.Errorf("%s: %w", me.Message, domain.ErrNotFound)
		}
	}
	return err
}

// exec runs an UPDATE by id and reports ErrNotFound when no row has that id.
func (r *Repo) exec(ctx context.Context, table string, id int64, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	// MySQL reports 0 affected rows when nothing changed, so check the id itself.
	var one int
	err = r.db.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = ?", id).Scan(&one)
	return mapErr(err)
}

func (r *Repo) insert(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.LastInsertId()
}

// ---- query building ----

type where struct {
	clauses []string
	args    []any
}

func (w *where) add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.clauses, " AND ") + "\n"
}

// addScope translates a Scope into SQL. self is the alias of the listed
// table; ownership always goes through the joined hotel aliased h.
func (w *where) addScope(sc domain.Scope, self string) {
	switch sc.Kind {
	case domain.ScopeAll:
	case domain.ScopeActive:
		w.add(self + ".is_active = 1")
	case domain.ScopeOwned:
		w.add("h.landlord_id = ?", sc.OwnerID)
	case domain.ScopeCreatedBy:
		if sc.Creator == "" {
			w.add("1 = 0")
			return
		}
		w.add(self+".created_by = ?", sc.Creator)
	default:
		w.add("1 = 0")
	}
}

func likeArg(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}

// pageSQL fetches one row past the limit so NewPage can tell whether more exist.
func pageSQL(pg domain.PageQuery) (string, []any) {
	if pg.Limit <= 0 {
		if pg.Offset > 0 {
			return "LIMIT 18446744073709551615 OFFSET ?", []any{pg.Offset}
		}
		return "", nil
	}
	return "LIMIT ? OFFSET ?", []any{pg.Limit + 1, pg.Offset}
}

func list[T any](ctx context.Context, db *sql.DB, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func listPage[T any](ctx context.Context, db *sql.DB, base string, w *where, order string, pg domain.PageQuery, scan func(scanner) (T, error)) (domain.Page[T], error) {
	limit, largs := pageSQL(pg)
	query := base + w.String() + "ORDER BY " + order + "\n" + limit
	items, err := list(ctx, db, query, append(w.args, largs...), scan)
	if err != nil {
		return domain.Page[T]{}, err
	}
	return domain.NewPage(items, pg), nil
}

/********** accounts **********/

func scanAccount(s scanner) (domain.Account, error) {
	var (
		a         domain.Account
		role      string
		lastLogin sql.NullTime
	)
	if err := s.Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &role, &a.PasswordHash, &a.IsActive, &a.DateJoined, &lastLogin); err != nil {
		return domain.Account{}, err
	}
	a.Role = domain.Role(role)
	a.LastLogin = timePtr(lastLogin)
	return a, nil
}

func (r *Repo) CreateAccount(ctx context.Context, a *domain.Account) error {
	if a.DateJoined.IsZero() {
		a.DateJoined = r.now()
	}
	id, err := r.insert(ctx, insertAccountSQL,
		a.Email, a.FirstName, a.LastName, string(a.Role), a.PasswordHash, a.IsActive, a.DateJoined, valTime(a.LastLogin))
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	a.ID = id
	return nil
}

func (r *Repo) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, accountSelect+"WHERE id = ?", id))
	return a, mapErr(err)
}

func (r *Repo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, accountSelect+"WHERE email = ?", email))
	return a, mapErr(err)
}

func (r *Repo) UpdateAccount(ctx context.Context, a domain.Account) error {
	return r.exec(ctx, "accounts", a.ID, updateAccountSQL,
		a.Email, a.FirstName, a.LastName, string(a.Role), a.PasswordHash, a.IsActive, valTime(a.LastLogin), a.ID)
}

/********** hotels **********/

func (r *Repo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	now := r.now()
	id, err := r.insert(ctx, insertHotelSQL,
		h.Name, h.Slug, valStr(h.Description), valStr(h.ImageURL), h.Address, h.City, h.Country,
		valStr(h.PhoneNo), valStr(h.Email), h.StarRating, valOwner(h.LandlordID), h.IsActive,
		h.CreatedBy, h.UpdatedBy, now, now)
	if err != nil {
		return fmt.Errorf("insert hotel: %w", err)
	}
	h.ID, h.CreatedAt, h.UpdatedAt = id, now, now
	return nil
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	return r.exec(ctx, "hotels", h.ID, updateHotelSQL,
		h.Name, h.Slug, valStr(h.Description), valStr(h.ImageURL), h.Address, h.City, h.Country,
		valStr(h.PhoneNo), valStr(h.Email), h.StarRating, h.IsActive, h.UpdatedBy, r.now(), h.ID)
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, hotelSelect+"WHERE h.id = ?", id))
	return h, mapErr(err)
}

func (r *Repo) GetHotelBySlug(ctx context.Context, slug string) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, hotelSelect+"WHERE h.slug = ?", slug))
	return h, mapErr(err)
}

func (r *Repo) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, slugTakenSQL, slug, exceptID).Scan(&taken)
	return taken, err
}

func (r *Repo) ListHotelsMissingSlug(ctx context.Context, limit int) ([]domain.Hotel, error) {
	query := hotelSelect + "WHERE h.slug IS NULL OR h.slug = ''\nORDER BY h.id\n"
	var args []any
	if limit > 0 {
		query += "LIMIT ?"
		args = append(args, limit)
	}
	return list(ctx, r.db, query, args, scanHotel)
}

func (r *Repo) ListHotels(ctx context.Context, q domain.HotelsQuery) (domain.Page[domain.Hotel], error) {
	w := &where{}
	w.addScope(q.Scope, "h")
	if q.City != nil {
		w.add("h.city = ?", *q.City)
	}
	if q.Country != nil {
		w.add("h.country = ?", *q.Country)
	}
	if q.StarRating != nil {
		w.add("h.star_rating = ?", *q.StarRating)
	}
	if q.LandlordID != nil {
		w.add("h.landlord_id = ?", *q.LandlordID)
	}
	if q.Q != nil {
		like := likeArg(*q.Q)
		w.add("(h.name LIKE ? OR h.city LIKE ? OR h.country LIKE ?)", like, like, like)
	}
	order := "h.created_at DESC, h.id DESC"
	switch q.Sort {
	case "name":
		order = "h.name ASC, h.id ASC"
	case "star_rating":
		order = "h.star_rating ASC, h.id ASC"
	case "-star_rating":
		order = "h.star_rating DESC, h.id DESC"
	}
	return listPage(ctx, r.db, hotelSelect, w, order, q.Page, scanHotel)
}
