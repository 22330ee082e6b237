package app

import (
	"context"
	"fmt"
	"strings"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

// CustomerService keeps the guest directory. Rows belong to whoever recorded
// them; admins see and change every row.
type CustomerService struct {
	customers domain.CustomerRepository
}

func NewCustomerService(c domain.CustomerRepository) *CustomerService {
	return &CustomerService{customers: c}
}

func (s *CustomerService) List(ctx context.Context, subj domain.Subject, q domain.CustomersQuery) (domain.Page[domain.Customer], error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Page[domain.Customer]{}, err
	}
	q.Scope = authz.ScopeForList(subj, authz.ActionList, authz.KindCustomer)
	if emptyScope(q.Scope) {
		return domain.Page[domain.Customer]{}, nil
	}
	return s.customers.ListCustomers(ctx, q)
}

func (s *CustomerService) Get(ctx context.Context, subj domain.Subject, id int64) (domain.Customer, error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Customer{}, err
	}
	c, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if !authz.Visible(subj, authz.KindCustomer, &c) {
		return domain.Customer{}, domain.ErrNotFound
	}
	return c, nil
}

func (s *CustomerService) Create(ctx context.Context, subj domain.Subject, in domain.CustomerInput) (domain.Customer, error) {
	if _, err := authorize(subj, authz.ActionCreate, authz.Target{Kind: authz.KindCustomer}); err != nil {
		return domain.Customer{}, err
	}
	c := domain.Customer{IsActive: true}
	if err := applyCustomer(&c, in); err != nil {
		return domain.Customer{}, err
	}
	c.CreatedBy, c.UpdatedBy = subj.Actor(), subj.Actor()
	if err := s.customers.CreateCustomer(ctx, &c); err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, subj domain.Subject, id int64, in domain.CustomerInput) (domain.Customer, error) {
	c, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if _, err := authorize(subj, authz.ActionUpdate, authz.Target{Kind: authz.KindCustomer, Resource: &c}); err != nil {
		return domain.Customer{}, err
	}
	if err := applyCustomer(&c, in); err != nil {
		return domain.Customer{}, err
	}
	c.UpdatedBy = subj.Actor()
	if err := s.customers.UpdateCustomer(ctx, c); err != nil {
		return domain.Customer{}, fmt.Errorf("update customer %d: %w", id, err)
	}
	return c, nil
}

// Delete deactivates the record; it stays readable by the recorder and admins.
func (s *CustomerService) Delete(ctx context.Context, subj domain.Subject, id int64) error {
	c, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if _, err := authorize(subj, authz.ActionDelete, authz.Target{Kind: authz.KindCustomer, Resource: &c}); err != nil {
		return err
	}
	c.IsActive = false
	c.UpdatedBy = subj.Actor()
	if err := s.customers.UpdateCustomer(ctx, c); err != nil {
		return fmt.Errorf("deactivate customer %d: %w", id, err)
	}
	return nil
}

// applyCustomer trims the text fields, normalizes a non-empty email and
// validates the result. An empty email clears it.
func applyCustomer(c *domain.Customer, in domain.CustomerInput) error {
	for _, p := range []**string{&in.FirstName, &in.LastName, &in.PhoneNo} {
		if *p != nil {
			v := strings.TrimSpace(**p)
			*p = &v
		}
	}
	if in.Email != nil {
		if strings.TrimSpace(*in.Email) == "" {
			c.Email, in.Email = nil, nil
		} else {
			email, err := normalizeEmail(*in.Email)
			if err != nil {
				return err
			}
			in.Email = &email
		}
	}
	in.Apply(c)
	return c.Validate()
}
