package httpserver

import (
	"net/http"

	"hotel_booking/internal/domain"
)

func (h *Handlers) listPayments(w http.ResponseWriter, r *http.Request) {
	pg, err := parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := &query{r: r}
	pq := domain.PaymentsQuery{BookingID: q.int64("booking"), Page: pg}
	if m := q.str("payment_method"); m != nil {
		method := domain.PaymentMethod(*m)
		if !method.Valid() {
			q.fail("payment_method", "unknown method")
		}
		pq.Method = &method
	}
	if q.err != nil {
		writeError(w, r, q.err)
		return
	}
	page, err := h.Payments.List(r.Context(), SubjectFrom(r.Context()), pq)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageOf(page, paymentOf))
}

func (h *Handlers) getPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.Payments.Get(r.Context(), SubjectFrom(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentOf(p))
}

func (h *Handlers) createPayment(w http.ResponseWriter, r *http.Request) {
	var body paymentRequest
	if !decode(w, r, &body) {
		return
	}
	p, err := h.Payments.Create(r.Context(), SubjectFrom(r.Context()), body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, paymentOf(p))
}

func (h *Handlers) replacePayment(w http.ResponseWriter, r *http.Request) { h.updatePayment(w, r, true) }
func (h *Handlers) patchPayment(w http.ResponseWriter, r *http.Request)   { h.updatePayment(w, r, false) }

func (h *Handlers) updatePayment(w http.ResponseWriter, r *http.Request, full bool) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body paymentRequest
	if !decode(w, r, &body) {
		return
	}
	if full {
		if err := body.complete(); err != nil {
			writeError(w, r, err)
			return
		}
	}
	p, err := h.Payments.Update(r.Context(), SubjectFrom(r.Context()), id, body.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentOf(p))
}

func (h *Handlers) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Payments.Delete(r.Context(), SubjectFrom(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
