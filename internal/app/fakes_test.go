package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hotel_booking/internal/domain"
	"hotel_booking/internal/storage/memory"
)

// ---- fakes ----

// fakeCache round-trips through JSON like the Redis adapter does.
type fakeCache struct {
	store map[string][]byte
	hits  int
	sets  int
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels++
	return nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (fakeHasher) Compare(hash, pw string) error {
	if hash != "hashed:"+pw {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokens issues "tok-<id>".
type fakeTokens struct{}

func (fakeTokens) Issue(a domain.Account) (string, time.Time, error) {
	return fmt.Sprintf("tok-%d", a.ID), time.Now().Add(time.Hour), nil
}

func (fakeTokens) Parse(tok string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(strings.TrimPrefix(tok, "tok-"), "%d", &id); err != nil || !strings.HasPrefix(tok, "tok-") {
		return 0, domain.ErrInvalidCredentials
	}
	return id, nil
}

// ---- fixtures ----

type fixture struct {
	store                    *memory.Store
	admin, alice, bob, carol domain.Subject
}

func newFixture() *fixture {
	f := &fixture{store: memory.New()}
	seed := func(email string, role domain.Role) domain.Subject {
		a := domain.Account{Email: email, FirstName: "T", LastName: "T", Role: role, PasswordHash: "hashed:password1", IsActive: true}
		if err := f.store.CreateAccount(context.Background(), &a); err != nil {
			panic(err)
		}
		return domain.SubjectOf(a)
	}
	f.admin = seed("admin@example.com", domain.RoleAdmin)
	f.alice = seed("alice@example.com", domain.RoleLandlord)
	f.bob = seed("bob@example.com", domain.RoleLandlord)
	f.carol = seed("carol@example.com", domain.RoleUser)
	return f
}

func ptr[T any](v T) *T { return &v }

func hotelInput(name string) domain.HotelInput {
	return domain.HotelInput{Name: ptr(name), Address: ptr("1 Road"), City: ptr("Dhaka"), Country: ptr("Bangladesh")}
}
