package domain

import "fmt"

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentBkash  PaymentMethod = "bkash"
	PaymentNagad  PaymentMethod = "nagad"
	PaymentUpay   PaymentMethod = "upay"
	PaymentCard   PaymentMethod = "card"
	PaymentOthers PaymentMethod = "others"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentBkash, PaymentNagad, PaymentUpay, PaymentCard, PaymentOthers:
		return true
	}
	return false
}

type Payment struct {
	ID        int64
	BookingID *int64
	Booking   *Booking // resolved parent chain, nil when broken
	Amount    float64
	Method    PaymentMethod
	IsActive  bool
	Audit
}

type PaymentInput struct {
	BookingID *int64
	Amount    *float64
	Method    *PaymentMethod
}

// Apply copies the set fields. BookingID is creation-only and ignored here.
func (in PaymentInput) Apply(p *Payment) {
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.Method != nil {
		p.Method = *in.Method
	}
}

func (p Payment) Validate() error {
	if p.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if !p.Method.Valid() {
		return &ValidationError{Field: "payment_method", Message: fmt.Sprintf("unknown method %q", p.Method)}
	}
	return nil
}
