// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/app"
	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
	maxBody      = 1 << 20
)

type Handlers struct {
	Accounts  *app.AccountService
	Hotels    *app.HotelService
	Rooms     *app.RoomService
	Bookings  *app.BookingService
	Payments  *app.PaymentService
	Customers *app.CustomerService
	Login     *IPLimiter // nil disables throttling
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Reason string `json:"reason,omitempty"`
	Field  string `json:"field,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Group(func(r chi.Router) {
		r.Use(Authenticate(h.Accounts))

		r.Route("/v1/account", func(r chi.Router) {
			r.Post("/register", h.register)
			r.With(RateLimit(h.Login)).Post("/login", h.login)
			r.Group(func(r chi.Router) {
				r.Use(RequireSubject)
				r.Get("/me", h.me)
				r.Patch("/me", h.updateMe)
				r.Post("/change-password", h.changePassword)
			})
		})
		r.With(RequireSubject).Patch("/v1/accounts/{id}", h.updateAccount)
		r.With(RequireSubject).Delete("/v1/accounts/{id}", h.deactivateAccount)

		r.Route("/v1/hotels", func(r chi.Router) {
			r.Get("/", h.listHotels)
			r.Get("/slug/{slug}", h.getHotelBySlug)
			r.Get("/{id}", h.getHotel)
			r.Group(func(r chi.Router) {
				r.Use(RequireSubject)
				r.Get("/mine", h.listMyHotels)
				r.Post("/", h.createHotel)
				r.Put("/{id}", h.replaceHotel)
				r.Patch("/{id}", h.patchHotel)
				r.Delete("/{id}", h.deleteHotel)
			})
		})

		r.Route("/v1/rooms", func(r chi.Router) {
			r.Get("/", h.listRooms)
			r.Get("/{id}", h.getRoom)
			r.Group(func(r chi.Router) {
				r.Use(RequireSubject)
				r.Get("/mine", h.listMyRooms)
				r.Post("/", h.createRoom)
				r.Put("/{id}", h.replaceRoom)
				r.Patch("/{id}", h.patchRoom)
				r.Delete("/{id}", h.deleteRoom)
			})
		})

		// bookings, payments and customers are never public
		r.Route("/v1/bookings", func(r chi.Router) {
			r.Use(RequireSubject)
			r.Get("/", h.listBookings)
			r.Post("/", h.createBooking)
			r.Get("/{id}", h.getBooking)
			r.Put("/{id}", h.replaceBooking)
			r.Patch("/{id}", h.patchBooking)
			r.Delete("/{id}", h.deleteBooking)
		})
		r.Route("/v1/payments", func(r chi.Router) {
			r.Use(RequireSubject)
			r.Get("/", h.listPayments)
			r.Post("/", h.createPayment)
			r.Get("/{id}", h.getPayment)
			r.Put("/{id}", h.replacePayment)
			r.Patch("/{id}", h.patchPayment)
			r.Delete("/{id}", h.deletePayment)
		})
		r.Route("/v1/customers", func(r chi.Router) {
			r.Use(RequireSubject)
			r.Get("/", h.listCustomers)
			r.Post("/", h.createCustomer)
			r.Get("/{id}", h.getCustomer)
			r.Put("/{id}", h.replaceCustomer)
			r.Patch("/{id}", h.patchCustomer)
			r.Delete("/{id}", h.deleteCustomer)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	if p.Type == "" {
		p.Type = "about:blank"
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

var denialStatus = map[authz.Reason]int{
	authz.AuthenticationRequired: http.StatusUnauthorized,
	authz.RoleNotPermitted:       http.StatusForbidden,
	authz.NotOwner:               http.StatusForbidden,
	authz.BrokenOwnershipChain:   http.StatusForbidden,
	authz.ResourceNotFound:       http.StatusNotFound,
}

// writeError maps an error chain to a problem response. Only 5xx are logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		denial *authz.Denial
		verr   *domain.ValidationError
	)
	switch {
	case errors.As(err, &denial):
		status, ok := denialStatus[denial.Reason]
		if !ok {
			status = http.StatusForbidden
		}
		observability.ObserveDenial(routeOf(r), string(denial.Reason))
		writeProblemBody(w, problem{Title: http.StatusText(status), Status: status, Detail: denial.Detail, Reason: string(denial.Reason)})
	case errors.As(err, &verr):
		writeProblemBody(w, problem{Title: "Invalid input", Status: http.StatusBadRequest, Detail: verr.Error(), Field: verr.Field})
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, domain.ErrInactiveAccount):
		writeProblem(w, http.StatusForbidden, "Forbidden", "account is inactive")
	default:
		log.Error().Err(err).Str("route", routeOf(r)).Str("method", r.Method).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCached answers GETs with an ETag and honours If-None-Match.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if etag != "" {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a positive number")
		return 0, false
	}
	return id, true
}

func parsePage(r *http.Request) (domain.PageQuery, error) {
	pg := domain.PageQuery{Limit: defaultLimit}
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > maxLimit {
			return pg, &domain.ValidationError{Field: "limit", Message: fmt.Sprintf("must be an integer between 1 and %d", maxLimit)}
		}
		pg.Limit = l
	}
	if ofs := r.URL.Query().Get("offset"); ofs != "" {
		o, err := strconv.Atoi(ofs)
		if err != nil || o < 0 {
			return pg, &domain.ValidationError{Field: "offset", Message: "must be a non-negative integer"}
		}
		pg.Offset = o
	}
	return pg, nil
}

// query holds the first parse failure so handlers can read several params and check once.
type query struct {
	r   *http.Request
	err error
}

func (q *query) str(name string) *string {
	v := strings.TrimSpace(q.r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

func (q *query) int(name string) *int {
	v := q.str(name)
	if v == nil {
		return nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		q.fail(name, "must be an integer")
		return nil
	}
	return &n
}

func (q *query) int64(name string) *int64 {
	v := q.str(name)
	if v == nil {
		return nil
	}
	n, err := strconv.ParseInt(*v, 10, 64)
	if err != nil {
		q.fail(name, "must be an integer")
		return nil
	}
	return &n
}

func (q *query) bool(name string) *bool {
	v := q.str(name)
	if v == nil {
		return nil
	}
	b, err := strconv.ParseBool(*v)
	if err != nil {
		q.fail(name, "must be true or false")
		return nil
	}
	return &b
}

func (q *query) fail(field, msg string) {
	if q.err == nil {
		q.err = &domain.ValidationError{Field: field, Message: msg}
	}
}

type pageJSON[T any] struct {
	Items      []T  `json:"items"`
	NextOffset *int `json:"next_offset,omitempty"`
}

func pageOf[S, T any](p domain.Page[S], conv func(S) T) pageJSON[T] {
	out := pageJSON[T]{Items: make([]T, 0, len(p.Items)), NextOffset: p.NextOffset}
	for _, it := range p.Items {
		out.Items = append(out.Items, conv(it))
	}
	return out
}

type field struct {
	name    string
	present bool
}

// requireAll reports the first required field absent from a full replacement.
func requireAll(fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return &domain.ValidationError{Field: f.name, Message: "is required"}
		}
	}
	return nil
}
