package app

import (
	"context"
	"errors"
	"fmt"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

type PaymentService struct {
	payments domain.PaymentRepository
	bookings domain.BookingRepository
}

func NewPaymentService(p domain.PaymentRepository, b domain.BookingRepository) *PaymentService {
	return &PaymentService{payments: p, bookings: b}
}

func (s *PaymentService) List(ctx context.Context, subj domain.Subject, q domain.PaymentsQuery) (domain.Page[domain.Payment], error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Page[domain.Payment]{}, err
	}
	q.Scope = authz.ScopeForList(subj, authz.ActionList, authz.KindPayment)
	if emptyScope(q.Scope) {
		return domain.Page[domain.Payment]{}, nil
	}
	return s.payments.ListPayments(ctx, q)
}

func (s *PaymentService) Get(ctx context.Context, subj domain.Subject, id int64) (domain.Payment, error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Payment{}, err
	}
	p, err := s.payments.GetPayment(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}
	if !authz.Visible(subj, authz.KindPayment, &p) {
		return domain.Payment{}, domain.ErrNotFound
	}
	return p, nil
}

func (s *PaymentService) Create(ctx context.Context, subj domain.Subject, in domain.PaymentInput) (domain.Payment, error) {
	if _, err := authorize(subj, authz.ActionCreate, authz.Target{Kind: authz.KindPayment}); err != nil {
		return domain.Payment{}, err
	}
	if in.BookingID == nil {
		return domain.Payment{}, &domain.ValidationError{Field: "booking", Message: "is required"}
	}
	b, err := s.bookings.GetBooking(ctx, *in.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Payment{}, fmt.Errorf("booking %d: %w", *in.BookingID, domain.ErrNotFound)
		}
		return domain.Payment{}, fmt.Errorf("load booking %d: %w", *in.BookingID, err)
	}
	if !b.IsActive {
		return domain.Payment{}, fmt.Errorf("booking %d: %w", b.ID, domain.ErrNotFound)
	}

	p := domain.Payment{BookingID: in.BookingID, Method: domain.PaymentCash, IsActive: true}
	in.Apply(&p)
	if err := p.Validate(); err != nil {
		return domain.Payment{}, err
	}
	p.CreatedBy, p.UpdatedBy = subj.Actor(), subj.Actor()
	if err := s.payments.CreatePayment(ctx, &p); err != nil {
		return domain.Payment{}, fmt.Errorf("create payment: %w", err)
	}
	p.Booking = &b
	return p, nil
}

func (s *PaymentService) Update(ctx context.Context, subj domain.Subject, id int64, in domain.PaymentInput) (domain.Payment, error) {
	p, err := s.payments.GetPayment(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}
	if _, err := authorize(subj, authz.ActionUpdate, authz.Target{Kind: authz.KindPayment, Resource: &p}); err != nil {
		return domain.Payment{}, err
	}
	in.Apply(&p)
	if err := p.Validate(); err != nil {
		return domain.Payment{}, err
	}
	p.UpdatedBy = subj.Actor()
	if err := s.payments.UpdatePayment(ctx, p); err != nil {
		return domain.Payment{}, fmt.Errorf("update payment %d: %w", id, err)
	}
	return p, nil
}

func (s *PaymentService) Delete(ctx context.Context, subj domain.Subject, id int64) error {
	p, err := s.payments.GetPayment(ctx, id)
	if err != nil {
		return err
	}
	if _, err := authorize(subj, authz.ActionDelete, authz.Target{Kind: authz.KindPayment, Resource: &p}); err != nil {
		return err
	}
	p.IsActive = false
	p.UpdatedBy = subj.Actor()
	if err := s.payments.UpdatePayment(ctx, p); err != nil {
		return fmt.Errorf("void payment %d: %w", id, err)
	}
	return nil
}
