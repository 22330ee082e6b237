package domain

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleLandlord Role = "LANDLORD"
	RoleUser     Role = "USER"
)

// ParseRole accepts the role names case-insensitively. Empty input yields RoleUser.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, nil
	case RoleLandlord:
		return RoleLandlord, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", &ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", s)}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleLandlord || r == RoleUser
}

type Account struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	Role         Role
	PasswordHash string
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

// IsAdmin and IsStaff are derived from Role; there is no separately stored flag.
func (a Account) IsAdmin() bool { return a.Role == RoleAdmin }
func (a Account) IsStaff() bool { return a.Role == RoleAdmin }

func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Subject is the caller a decision is made for. The zero value is anonymous.
type Subject struct {
	AccountID     int64
	Email         string
	Role          Role
	Authenticated bool
}

func Anonymous() Subject { return Subject{} }

// SubjectOf builds an authenticated subject. Inactive accounts stay anonymous.
func SubjectOf(a Account) Subject {
	if !a.IsActive {
		return Anonymous()
	}
	return Subject{AccountID: a.ID, Email: a.Email, Role: a.Role, Authenticated: true}
}

func (s Subject) IsAdmin() bool    { return s.Authenticated && s.Role == RoleAdmin }
func (s Subject) IsLandlord() bool { return s.Authenticated && s.Role == RoleLandlord }
func (s Subject) IsUser() bool     { return s.Authenticated && s.Role == RoleUser }

// Actor is the value stamped into created_by/updated_by.
func (s Subject) Actor() string {
	if !s.Authenticated {
		return "anonymous"
	}
	return s.Email
}
