package mysql

import (
	"context"
	"fmt"

	"hotel_booking/internal/domain"
)

func valGender(g *domain.Gender) any {
	if g == nil {
		return nil
	}
	return string(*g)
}

func (r *Repo) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	now := r.now()
	id, err := r.insert(ctx, insertCustomerSQL,
		c.FirstName, c.LastName, valGender(c.Gender), valStr(c.Email), c.PhoneNo, valStr(c.Address),
		valStr(c.Country), valStr(c.Occupation), valStr(c.Details), c.IsActive,
		c.CreatedBy, c.UpdatedBy, now, now)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	c.ID, c.CreatedAt, c.UpdatedAt = id, now, now
	return nil
}

func (r *Repo) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	return r.exec(ctx, "customers", c.ID, updateCustomerSQL,
		c.FirstName, c.LastName, valGender(c.Gender), valStr(c.Email), c.PhoneNo, valStr(c.Address),
		valStr(c.Country), valStr(c.Occupation), valStr(c.Details), c.IsActive, c.UpdatedBy, r.now(), c.ID)
}

func (r *Repo) GetCustomer(ctx context.Context, id int64) (domain.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, customerSelect+"WHERE c.id = ?", id))
	return c, mapErr(err)
}

func (r *Repo) ListCustomers(ctx context.Context, q domain.CustomersQuery) (domain.Page[domain.Customer], error) {
	w := &where{}
	w.addScope(q.Scope, "c")
	if q.PhoneNo != nil {
		w.add("c.phone_no = ?", *q.PhoneNo)
	}
	if q.Gender != nil {
		w.add("c.gender = ?", string(*q.Gender))
	}
	if q.Country != nil {
		w.add("c.country = ?", *q.Country)
	}
	if q.Occupation != nil {
		w.add("c.occupation = ?", *q.Occupation)
	}
	if q.Q != nil {
		like := likeArg(*q.Q)
		w.add("(c.first_name LIKE ? OR c.last_name LIKE ? OR c.email LIKE ? OR c.phone_no LIKE ? "+
			"OR c.address LIKE ? OR c.country LIKE ? OR c.occupation LIKE ?)",
			like, like, like, like, like, like, like)
	}
	return listPage(ctx, r.db, customerSelect, w, "c.created_at DESC, c.id DESC", q.Page, scanCustomer)
}
