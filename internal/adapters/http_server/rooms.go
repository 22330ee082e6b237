package httpserver

import (
	"net/http"

	"hotel_booking/internal/domain"
)

func roomsQuery(r *http.Request) (domain.RoomsQuery, error) {
	pg, err := parsePage(r)
	if err != nil {
		return domain.RoomsQuery{}, err
	}
	q := &query{r: r}
	rq := domain.RoomsQuery{
		HotelID:     q.int64("hotel"),
		RoomNo:      q.str("room_no"),
		FloorNo:     q.int("floor_no"),
		Capacity:    q.int("capacity"),
		IsAvailable: q.bool("is_available"),
		Page:        pg,
	}
	switch sort := r.URL.Query().Get("ordering"); sort {
	case "", "-created_at", "price", "-price":
		rq.Sort = sort
	default:
		q.fail("ordering", "must be one of -created_at, price, -price")
	}
	return rq, q.err
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	q, err := roomsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.Rooms.List(r.Context(), SubjectFrom(r.Context()), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, pageOf(page, roomOf))
}

func (h *Handlers) listMyRooms(w http.ResponseWriter, r *http.Request) {
	q, err := roomsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.Rooms.ListManaged(r.Context(), SubjectFrom(r.Context()), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageOf(page, roomOf))
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	room, err := h.Rooms.Get(r.Context(), SubjectFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, roomOf(room))
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var body roomRequest
	if !decode(w, r, &body) {
		return
	}
	room, err := h.Rooms.Create(r.Context(), SubjectFrom(r.Context()), body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, roomOf(room))
}

func (h *Handlers) replaceRoom(w http.ResponseWriter, r *http.Request) { h.updateRoom(w, r, true) }
func (h *Handlers) patchRoom(w http.ResponseWriter, r *http.Request)   { h.updateRoom(w, r, false) }

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request, full bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body roomRequest
	if !decode(w, r, &body) {
		return
	}
	if full {
		if err := body.complete(); err != nil {
			writeError(w, r, err)
			return
		}
	}
	room, err := h.Rooms.Update(r.Context(), SubjectFrom(r.Context()), id, body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roomOf(room))
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Rooms.Delete(r.Context(), SubjectFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
