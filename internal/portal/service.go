// Package portal implements the page use-cases: fetch the student's DTOs
// from the school backend and shape them for display.
package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"semaphore/my-espace/internal/clients"
	"semaphore/my-espace/internal/dto"
	"semaphore/my-espace/internal/kv"
	"semaphore/my-espace/internal/logging"
	"semaphore/my-espace/internal/metrics"
	"semaphore/my-espace/internal/normalize"
	"semaphore/my-espace/internal/session"
)

var (
	ErrFetchFailed        = errors.New("backend fetch failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Backend is the subset of the school API the portal consumes.
type Backend interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Dashboard(ctx context.Context, token, studentID string) (dto.Dashboard, error)
	Alertes(ctx context.Context, token, studentID string) ([]dto.Alerte, error)
	RecentNotes(ctx context.Context, token, studentID string) ([]dto.Note, error)
	NoteGroups(ctx context.Context, token, studentID string) ([]dto.NoteGroup, error)
	Releves(ctx context.Context, token, studentID string) ([]dto.Releve, error)
	Programmes(ctx context.Context, token, studentID string) ([]dto.Programme, error)
	ProgrammeDocuments(ctx context.Context, token, studentID string) ([]dto.CourseDocuments, error)
	Profile(ctx context.Context, token, studentID string) (dto.Profile, error)
}

type Service struct {
	backend    Backend
	sessions   kv.Store
	sessionTTL time.Duration
	locale     *normalize.Locale
	now        func() time.Time
}

func NewService(backend Backend, sessions kv.Store, sessionTTL time.Duration, locale *normalize.Locale) *Service {
	if locale == nil {
		locale = normalize.French
	}
	return &Service{
		backend:    backend,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		locale:     locale,
		now:        time.Now,
	}
}

// WithClock replaces the reference time used for relative dates and weeks.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Store returns the session store of one device.
func (s *Service) Store(deviceID string) *session.Store {
	return session.NewStore(s.sessions, deviceID, s.sessionTTL)
}

func (s *Service) Gate(deviceID string) *session.Gate {
	return session.NewGate(s.Store(deviceID))
}

// Login authenticates against the backend and stores the session of the
// device. Accounts without the student role are refused and leave no
// session behind.
func (s *Service) Login(ctx context.Context, deviceID string, req dto.LoginRequest) (session.Session, error) {
	store := s.Store(deviceID)
	resp, err := s.backend.Login(ctx, req)
	if err != nil {
		var reqErr *clients.RequestError
		if errors.Is(err, clients.ErrUnauthorized) || (errors.As(err, &reqErr) && reqErr.Status == http.StatusBadRequest) {
			return session.Session{}, ErrInvalidCredentials
		}
		return session.Session{}, fmt.Errorf("%w: login: %v", ErrFetchFailed, err)
	}
	if !session.LoginAllowed(resp.Roles) {
		if err := store.Clear(ctx); err != nil {
			return session.Session{}, err
		}
		logging.FromContext(ctx).Info("login refused for role", "student", resp.LocalID, "roles", resp.Roles)
		return session.Session{}, session.ErrRoleDenied
	}
	sess := session.Session{
		LoggedIn: true,
		LocalID:  resp.LocalID,
		Nom:      resp.Nom,
		Prenom:   resp.Prenom,
		Email:    resp.Email,
		Username: resp.Username,
		Type:     resp.Type,
		Roles:    resp.Roles,
		Token:    resp.Token,
	}
	if err := store.Write(ctx, sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Logout clears the device session. The backend is told on a best-effort
// basis.
func (s *Service) Logout(ctx context.Context, deviceID string) error {
	store := s.Store(deviceID)
	token, err := store.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		if err := s.backend.Logout(ctx, token); err != nil {
			logging.FromContext(ctx).Warn("backend logout failed", "error", err)
		}
	}
	return store.Clear(ctx)
}

// degraded records a failed fetch. Pages keep going with an empty view.
func (s *Service) degraded(ctx context.Context, resource string, err error) bool {
	if err == nil {
		return false
	}
	logging.FromContext(ctx).Warn("backend fetch failed", "resource", resource, "error", fmt.Errorf("%w: %v", ErrFetchFailed, err))
	metrics.FetchFailures.WithLabelValues(resource).Inc()
	return true
}
