package httpserver

import (
	"net/http"
	"strings"

	"hotel_booking/internal/domain"
)

func customersQuery(r *http.Request) (domain.CustomersQuery, error) {
	pg, err := parsePage(r)
	if err != nil {
		return domain.CustomersQuery{}, err
	}
	q := &query{r: r}
	cq := domain.CustomersQuery{
		Q: q.str("q"), PhoneNo: q.str("phone_no"), Country: q.str("country"), Occupation: q.str("occupation"), Page: pg,
	}
	if g := q.str("gender"); g != nil {
		gender := domain.Gender(strings.ToLower(*g))
		if !gender.Valid() {
			q.fail("gender", "must be male, female or other")
		}
		cq.Gender = &gender
	}
	return cq, q.err
}

func (h *Handlers) listCustomers(w http.ResponseWriter, r *http.Request) {
	cq, err := customersQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.Customers.List(r.Context(), SubjectFrom(r.Context()), cq)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageOf(page, customerOf))
}

func (h *Handlers) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.Customers.Get(r.Context(), SubjectFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerOf(c))
}

func (h *Handlers) createCustomer(w http.ResponseWriter, r *http.Request) {
	var body customerRequest
	if !decode(w, r, &body) {
		return
	}
	c, err := h.Customers.Create(r.Context(), SubjectFrom(r.Context()), body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customerOf(c))
}

func (h *Handlers) replaceCustomer(w http.ResponseWriter, r *http.Request) { h.updateCustomer(w, r, true) }
func (h *Handlers) patchCustomer(w http.ResponseWriter, r *http.Request)   { h.updateCustomer(w, r, false) }

func (h *Handlers) updateCustomer(w http.ResponseWriter, r *http.Request, full bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body customerRequest
	if !decode(w, r, &body) {
		return
	}
	if full {
		if err := body.complete(); err != nil {
			writeError(w, r, err)
			return
		}
	}
	c, err := h.Customers.Update(r.Context(), SubjectFrom(r.Context()), id, body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customerOf(c))
}

func (h *Handlers) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Customers.Delete(r.Context(), SubjectFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
