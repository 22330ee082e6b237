package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/domain"
)

func hotelsQuery(r *http.Request) (domain.HotelsQuery, error) {
	pg, err := parsePage(r)
	if err != nil {
		return domain.HotelsQuery{}, err
	}
	q := &query{r: r}
	hq := domain.HotelsQuery{
		Q:          q.str("q"),
		City:       q.str("city"),
		Country:    q.str("country"),
		StarRating: q.int("star_rating"),
		LandlordID: q.int64("landlord"),
		Page:       pg,
	}
	switch sort := r.URL.Query().Get("ordering"); sort {
	case "", "-created_at", "name", "star_rating", "-star_rating":
		hq.Sort = sort
	default:
		q.fail("ordering", "must be one of -created_at, name, star_rating, -star_rating")
	}
	return hq, q.err
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	q, err := hotelsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.Hotels.List(r.Context(), SubjectFrom(r.Context()), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, pageOf(page, hotelOf))
}

func (h *Handlers) listMyHotels(w http.ResponseWriter, r *http.Request) {
	q, err := hotelsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.Hotels.ListManaged(r.Context(), SubjectFrom(r.Context()), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageOf(page, hotelOf))
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	hotel, err := h.Hotels.Get(r.Context(), SubjectFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, hotelOf(hotel))
}

func (h *Handlers) getHotelBySlug(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.Hotels.GetBySlug(r.Context(), SubjectFrom(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, hotelOf(hotel))
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var body hotelRequest
	if !decode(w, r, &body) {
		return
	}
	hotel, err := h.Hotels.Create(r.Context(), SubjectFrom(r.Context()), body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, hotelOf(hotel))
}

func (h *Handlers) replaceHotel(w http.ResponseWriter, r *http.Request) { h.updateHotel(w, r, true) }
func (h *Handlers) patchHotel(w http.ResponseWriter, r *http.Request)   { h.updateHotel(w, r, false) }

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request, full bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body hotelRequest
	if !decode(w, r, &body) {
		return
	}
	if full {
		if err := body.complete(); err != nil {
			writeError(w, r, err)
			return
		}
	}
	hotel, err := h.Hotels.Update(r.Context(), SubjectFrom(r.Context()), id, body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hotelOf(hotel))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Hotels.Delete(r.Context(), SubjectFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
