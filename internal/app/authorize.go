package app

import (
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/authz"
	"hotel_booking/internal/domain"
)

// authorize runs the engine for a write and turns a deny into a *authz.Denial.
func authorize(s domain.Subject, a authz.Action, t authz.Target) (authz.Decision, error) {
	d := authz.AuthorizeWrite(s, a, t)
	if !d.Allowed {
		log.Debug().
			Str("kind", string(t.Kind)).
			Str("action", string(a)).
			Int64("subject", s.AccountID).
			Str("reason", string(d.Reason)).
			Msg("write denied")
	}
	return d, d.Err()
}

// emptyScope reports whether a scope can never match a row, so the store need not be asked.
func emptyScope(sc domain.Scope) bool { return sc.Kind == domain.ScopeNone }
