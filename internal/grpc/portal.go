package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"semaphore/my-espace/internal/auth"
	"semaphore/my-espace/internal/config"
	"semaphore/my-espace/internal/logging"
	"semaphore/my-espace/internal/portal"
	"semaphore/my-espace/internal/session"
)

// PortalServer serves the read-only portal pages to trusted internal
// callers acting for a student device.
type PortalServer struct {
	cfg    config.Config
	portal *portal.Service
}

func NewPortalServer(cfg config.Config, svc *portal.Service) *PortalServer {
	return &PortalServer{cfg: cfg, portal: svc}
}

func (s *PortalServer) GetSchedule(ctx context.Context, in *ScheduleRequest) (*portal.SchedulePage, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	page := s.portal.Schedule(ctx, sess, in.Day, int(in.WeekOffset))
	return &page, nil
}

func (s *PortalServer) GetNotes(ctx context.Context, in *NotesRequest) (*portal.NotesPage, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	page := s.portal.Notes(ctx, sess, in.Filter)
	return &page, nil
}

func (s *PortalServer) GetAlerts(ctx context.Context, in *AlertsRequest) (*portal.AlertsPage, error) {
	sess, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	page := s.portal.Alerts(ctx, sess, in.Category)
	return &page, nil
}

// session runs the protected-view gate for the device named by the portal
// token in the call metadata.
func (s *PortalServer) session(ctx context.Context) (session.Session, error) {
	token := bearerFromMetadata(ctx)
	if token == "" {
		return session.Session{}, status.Error(codes.Unauthenticated, "missing_token")
	}
	claims, err := auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
	if err != nil {
		return session.Session{}, status.Error(codes.Unauthenticated, "invalid_token")
	}
	sess, err := s.portal.Gate(claims.DeviceID).Protected(ctx)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, session.ErrRoleDenied):
		return session.Session{}, status.Error(codes.PermissionDenied, "role_denied")
	case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrNotLoggedIn), errors.Is(err, session.ErrSessionCorrupt):
		return session.Session{}, status.Error(codes.Unauthenticated, "session_required")
	default:
		logging.FromContext(ctx).Error("session gate failed", "error", err)
		return session.Session{}, status.Error(codes.Unavailable, "session_unavailable")
	}
}
