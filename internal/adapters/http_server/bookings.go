package httpserver

import (
	"net/http"
	"time"

	"hotel_booking/internal/domain"
)

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	pg, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := &query{r: r}
	bq := domain.BookingsQuery{RoomID: q.int64("room"), CustomerPhoneNo: q.str("customer_phone_no"), Page: pg}
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}
	page, err := h.Bookings.List(r.Context(), SubjectFrom(r.Context()), bq)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageOf(page, bookingOf(time.Now())))
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.Bookings.Get(r.Context(), SubjectFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingOf(time.Now())(b))
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var body bookingRequest
	if !decode(w, r, &body) {
		return
	}
	b, err := h.Bookings.Create(r.Context(), SubjectFrom(r.Context()), body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, bookingOf(time.Now())(b))
}

func (h *Handlers) replaceBooking(w http.ResponseWriter, r *http.Request) { h.updateBooking(w, r, true) }
func (h *Handlers) patchBooking(w http.ResponseWriter, r *http.Request)   { h.updateBooking(w, r, false) }

func (h *Handlers) updateBooking(w http.ResponseWriter, r *http.Request, full bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body bookingRequest
	if !decode(w, r, &body) {
		return
	}
	if full {
		if err := body.complete(); err != nil {
			writeError(w, r, err)
			return
		}
	}
	b, err := h.Bookings.Update(r.Context(), SubjectFrom(r.Context()), id, body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingOf(time.Now())(b))
}

func (h *Handlers) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(r.Context(), SubjectFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
