package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

const minPasswordLen = 8

type AccountService struct {
	accounts domain.AccountRepository
	hasher   domain.PasswordHasher
	tokens   domain.TokenIssuer
	now      func() time.Time
}

func NewAccountService(r domain.AccountRepository, h domain.PasswordHasher, t domain.TokenIssuer) *AccountService {
	return &AccountService{accounts: r, hasher: h, tokens: t, now: func() time.Time { return time.Now().UTC() }}
}

type Registration struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
	Password  string
	Password2 string
}

type ProfileChange struct {
	FirstName *string
	LastName  *string
	Role      *string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Account   domain.Account
}

// Register creates an account. Role defaults to USER; only an admin caller may
// register another admin.
func (s *AccountService) Register(ctx context.Context, subj domain.Subject, in Registration) (domain.Account, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return domain.Account{}, err
	}
	if role == domain.RoleAdmin {
		if _, err := authorize(subj, authz.ActionCreate, authz.Target{Kind: authz.KindAccount, RoleChange: true}); err != nil {
			return domain.Account{}, err
		}
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return domain.Account{}, err
	}
	switch {
	case strings.TrimSpace(in.FirstName) == "":
		return domain.Account{}, &domain.ValidationError{Field: "first_name", Message: "is required"}
	case strings.TrimSpace(in.LastName) == "":
		return domain.Account{}, &domain.ValidationError{Field: "last_name", Message: "is required"}
	}
	if err := checkPassword("password", in.Password); err != nil {
		return domain.Account{}, err
	}
	if in.Password != in.Password2 {
		return domain.Account{}, &domain.ValidationError{Field: "password2", Message: "passwords must match"}
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}
	a := domain.Account{
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
		DateJoined:   s.now(),
	}
	if err := s.accounts.CreateAccount(ctx, &a); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

// Login verifies credentials and issues a bearer token.
func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	a, err := s.accounts.GetAccountByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("load account: %w", err)
	}
	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return Session{}, domain.ErrInvalidCredentials
	}
	if !a.IsActive {
		return Session{}, domain.ErrInactiveAccount
	}
	now := s.now()
	a.LastLogin = &now
	if err := s.accounts.UpdateAccount(ctx, a); err != nil {
		return Session{}, fmt.Errorf("record login: %w", err)
	}
	tok, exp, err := s.tokens.Issue(a)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: tok, ExpiresAt: exp, Account: a}, nil
}

// Authenticate resolves a bearer token to the subject it was issued for. The
// role comes from the stored account, so role changes apply immediately.
func (s *AccountService) Authenticate(ctx context.Context, token string) (domain.Subject, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Anonymous(), domain.ErrInvalidCredentials
	}
	a, err := s.accounts.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Anonymous(), domain.ErrInvalidCredentials
		}
		return domain.Anonymous(), fmt.Errorf("load account %d: %w", id, err)
	}
	if !a.IsActive {
		return domain.Anonymous(), domain.ErrInactiveAccount
	}
	return domain.SubjectOf(a), nil
}

func (s *AccountService) Me(ctx context.Context, subj domain.Subject) (domain.Account, error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Account{}, err
	}
	return s.accounts.GetAccount(ctx, subj.AccountID)
}

// UpdateProfile edits names, and the role when the caller is an admin.
func (s *AccountService) UpdateProfile(ctx context.Context, subj domain.Subject, id int64, in ProfileChange) (domain.Account, error) {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return domain.Account{}, err
	}
	a, err := s.accounts.GetAccount(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	role := a.Role
	if in.Role != nil {
		// the USER default applies to registration only
		if strings.TrimSpace(*in.Role) == "" {
			return domain.Account{}, &domain.ValidationError{Field: "role", Message: "must not be empty"}
		}
		if role, err = domain.ParseRole(*in.Role); err != nil {
			return domain.Account{}, err
		}
	}
	t := authz.Target{Kind: authz.KindAccount, Resource: &a, RoleChange: role != a.Role}
	if _, err := authorize(subj, authz.ActionUpdate, t); err != nil {
		return domain.Account{}, err
	}
	if in.FirstName != nil {
		a.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		a.LastName = strings.TrimSpace(*in.LastName)
	}
	a.Role = role
	if err := s.accounts.UpdateAccount(ctx, a); err != nil {
		return domain.Account{}, fmt.Errorf("update account %d: %w", id, err)
	}
	return a, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, subj domain.Subject, oldPassword, newPassword string) error {
	if err := authz.Authenticated(subj).Err(); err != nil {
		return err
	}
	a, err := s.accounts.GetAccount(ctx, subj.AccountID)
	if err != nil {
		return err
	}
	if _, err := authorize(subj, authz.ActionUpdate, authz.Target{Kind: authz.KindAccount, Resource: &a}); err != nil {
		return err
	}
	if err := s.hasher.Compare(a.PasswordHash, oldPassword); err != nil {
		return &domain.ValidationError{Field: "old_password", Message: "wrong password"}
	}
	if err := checkPassword("new_password", newPassword); err != nil {
		return err
	}
	if a.PasswordHash, err = s.hasher.Hash(newPassword); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.accounts.UpdateAccount(ctx, a)
}

// Deactivate is the only way an account leaves service; rows are never removed.
func (s *AccountService) Deactivate(ctx context.Context, subj domain.Subject, id int64) error {
	a, err := s.accounts.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if _, err := authorize(subj, authz.ActionDelete, authz.Target{Kind: authz.KindAccount, Resource: &a}); err != nil {
		return err
	}
	if a.ID == subj.AccountID {
		return &domain.ValidationError{Field: "id", Message: "cannot deactivate your own account"}
	}
	a.IsActive = false
	return s.accounts.UpdateAccount(ctx, a)
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Address != strings.TrimSpace(raw) {
		return "", &domain.ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	return strings.ToLower(addr.Address), nil
}

func checkPassword(field, pw string) error {
	if len(pw) < minPasswordLen {
		return &domain.ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	return nil
}
