package session

import (
	"context"
	"errors"

	"semaphore/my-espace/internal/logging"
	"semaphore/my-espace/internal/metrics"
)

// Gate decides navigation from the stored session. Evaluating may clear the
// store: a session with the wrong role or a broken invariant does not survive.
type Gate struct {
	store *Store
}

func NewGate(store *Store) *Gate {
	return &Gate{store: store}
}

// Evaluate returns the session when it grants access to protected views, or
// the reason it does not.
func (g *Gate) Evaluate(ctx context.Context) (Session, error) {
	sess, ok, err := g.store.Read(ctx)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrNoSession
	}
	switch err := sess.Validate(); {
	case err == nil:
		return sess, nil
	case errors.Is(err, ErrNotLoggedIn):
		return Session{}, err
	default:
		if clearErr := g.store.Clear(ctx); clearErr != nil {
			return Session{}, clearErr
		}
		return Session{}, err
	}
}

// Protected evaluates the protected-view gate and records the decision.
func (g *Gate) Protected(ctx context.Context) (Session, error) {
	sess, err := g.Evaluate(ctx)
	record(ctx, "protected", err)
	return sess, err
}

func (g *Gate) CanEnterProtected(ctx context.Context) bool {
	_, err := g.Protected(ctx)
	return err == nil
}

// CanEnterLogin is false only for an already valid student session, so the
// caller redirects away from the login view.
func (g *Gate) CanEnterLogin(ctx context.Context) bool {
	_, err := g.Evaluate(ctx)
	record(ctx, "login", err)
	return err != nil
}

// LoginAllowed applies the same role rule to a login response before any
// session is written.
func LoginAllowed(roles []string) bool {
	return HasStudentRole(roles)
}

func record(ctx context.Context, gate string, err error) {
	outcome := "valid"
	switch {
	case err == nil:
	case errors.Is(err, ErrNoSession):
		outcome = "no_session"
	case errors.Is(err, ErrNotLoggedIn):
		outcome = "not_logged_in"
	case errors.Is(err, ErrRoleDenied):
		outcome = "role_denied"
	case errors.Is(err, ErrSessionCorrupt):
		outcome = "corrupt"
	default:
		outcome = "error"
		logging.FromContext(ctx).Error("session gate failed", "gate", gate, "error", err)
	}
	metrics.GateDecisions.WithLabelValues(gate, outcome).Inc()
}
