package domain

import "fmt"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Customer is a guest on record. It belongs to no landlord; whoever recorded it
// (CreatedBy) may change it.
type Customer struct {
	ID         int64
	FirstName  string
	LastName   string
	Gender     *Gender
	Email      *string
	PhoneNo    string
	Address    *string
	Country    *string
	Occupation *string
	Details    *string
	IsActive   bool
	Audit
}

func (c Customer) FullName() string { return c.FirstName + " " + c.LastName }

type CustomerInput struct {
	FirstName  *string
	LastName   *string
	Gender     *Gender
	Email      *string
	PhoneNo    *string
	Address    *string
	Country    *string
	Occupation *string
	Details    *string
}

func (in CustomerInput) Apply(c *Customer) {
	if in.FirstName != nil {
		c.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		c.LastName = *in.LastName
	}
	if in.Gender != nil {
		c.Gender = in.Gender
	}
	if in.Email != nil {
		c.Email = in.Email
	}
	if in.PhoneNo != nil {
		c.PhoneNo = *in.PhoneNo
	}
	if in.Address != nil {
		c.Address = in.Address
	}
	if in.Country != nil {
		c.Country = in.Country
	}
	if in.Occupation != nil {
		c.Occupation = in.Occupation
	}
	if in.Details != nil {
		c.Details = in.Details
	}
}

func (c Customer) Validate() error {
	switch {
	case c.FirstName == "":
		return &ValidationError{Field: "first_name", Message: "is required"}
	case len(c.FirstName) > 100:
		return &ValidationError{Field: "first_name", Message: "must be at most 100 characters"}
	case c.LastName == "":
		return &ValidationError{Field: "last_name", Message: "is required"}
	case len(c.LastName) > 100:
		return &ValidationError{Field: "last_name", Message: "must be at most 100 characters"}
	case c.PhoneNo == "":
		return &ValidationError{Field: "phone_no", Message: "is required"}
	case len(c.PhoneNo) > 20:
		return &ValidationError{Field: "phone_no", Message: "must be at most 20 characters"}
	case c.Gender != nil && !c.Gender.Valid():
		return &ValidationError{Field: "gender", Message: fmt.Sprintf("unknown gender %q", *c.Gender)}
	case c.Details != nil && len(*c.Details) > 500:
		return &ValidationError{Field: "details", Message: "must be at most 500 characters"}
	}
	return nil
}
