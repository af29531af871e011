package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"semaphore/my-espace/internal/auth"
	"semaphore/my-espace/internal/config"
	"semaphore/my-espace/internal/dto"
	"semaphore/my-espace/internal/logging"
	"semaphore/my-espace/internal/normalize"
	"semaphore/my-espace/internal/portal"
	"semaphore/my-espace/internal/session"
)

type Server struct {
	cfg    config.Config
	portal *portal.Service
	logger *slog.Logger
}

func NewServer(cfg config.Config, svc *portal.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, portal: svc, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", s.handleLogin)
	r.Get("/auth/session", s.handleSession)
	r.With(s.authMiddleware).Post("/auth/logout", s.handleLogout)

	r.Route("/portal", func(r chi.Router) {
		r.Use(s.authMiddleware, s.gateMiddleware)
		r.Get("/home", s.handleHome)
		r.Get("/schedule", s.handleSchedule)
		r.Get("/notes", s.handleNotes)
		r.Get("/releves", s.handleReleves)
		r.Get("/documents", s.handleDocuments)
		r.Get("/documents/{docId}/open", s.handleOpenDocument)
		r.Get("/alerts", s.handleAlerts)
		r.Get("/profile", s.handleProfile)
	})

	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"accessToken"`
	DeviceID    string         `json:"deviceId"`
	Student     studentSummary `json:"student"`
}

type studentSummary struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Username  string   `json:"username"`
	Initials  string   `json:"initials"`
	Roles     []string `json:"roles"`
}

func summarize(sess session.Session) studentSummary {
	return studentSummary{
		ID:        sess.LocalID,
		FirstName: sess.Prenom,
		LastName:  sess.Nom,
		Email:     sess.Email,
		Username:  sess.Username,
		Initials:  normalize.Initials(sess.Prenom, sess.Nom),
		Roles:     sess.Roles,
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}

	// A device that already holds a portal token keeps its namespace.
	deviceID := ""
	if claims, err := s.parseBearer(r); err == nil {
		deviceID = claims.DeviceID
	}
	if deviceID == "" {
		deviceID = auth.NewDeviceID()
	}

	sess, err := s.portal.Login(r.Context(), deviceID, dto.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, portal.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
		case errors.Is(err, session.ErrRoleDenied):
			writeError(w, http.StatusForbidden, "role_denied")
		case errors.Is(err, portal.ErrFetchFailed):
			logging.FromContext(r.Context()).Warn("login failed", "error", err)
			writeError(w, http.StatusBadGateway, "backend_unavailable")
		default:
			logging.FromContext(r.Context()).Error("login failed", "error", err)
			writeError(w, http.StatusInternalServerError, "server_error")
		}
		return
	}

	token, err := auth.NewAccessToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.AccessTokenTTL, auth.Claims{
		DeviceID:  deviceID,
		StudentID: sess.LocalID,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_error")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, DeviceID: deviceID, Student: summarize(sess)})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if err := s.portal.Logout(r.Context(), claims.DeviceID); err != nil {
		logging.FromContext(r.Context()).Error("logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type sessionResponse struct {
	CanEnterLogin bool `json:"canEnterLogin"`
}

// handleSession answers the login-view check. Without a usable portal token
// the device has no session to validate.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	claims, err := s.parseBearer(r)
	if err != nil {
		writeJSON(w, http.StatusOK, sessionResponse{CanEnterLogin: true})
		return
	}
	allowed := s.portal.Gate(claims.DeviceID).CanEnterLogin(r.Context())
	writeJSON(w, http.StatusOK, sessionResponse{CanEnterLogin: allowed})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.portal.Home(r.Context(), sessionFromContext(r.Context())))
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		offset = parsed
	}
	page := s.portal.Schedule(r.Context(), sessionFromContext(r.Context()), r.URL.Query().Get("day"), offset)
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	switch filter {
	case "", "all", "recent", "best":
	default:
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	writeJSON(w, http.StatusOK, s.portal.Notes(r.Context(), sessionFromContext(r.Context()), filter))
}

func (s *Server) handleReleves(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.portal.Releves(r.Context(), sessionFromContext(r.Context())))
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	switch filter {
	case "", "all", "recent":
	default:
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	writeJSON(w, http.StatusOK, s.portal.Documents(r.Context(), sessionFromContext(r.Context()), filter))
}

func (s *Server) handleOpenDocument(w http.ResponseWriter, r *http.Request) {
	target, err := s.portal.OpenDocument(r.Context(), sessionFromContext(r.Context()), chi.URLParam(r, "docId"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, target)
	case errors.Is(err, normalize.ErrDocumentUnavailable):
		writeError(w, http.StatusNotFound, "document_unavailable")
	default:
		writeError(w, http.StatusBadGateway, "backend_unavailable")
	}
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	switch category {
	case "", "all", normalize.AlertExam, normalize.AlertNote, normalize.AlertEvent, normalize.AlertInfo, normalize.AlertOther:
	default:
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	writeJSON(w, http.StatusOK, s.portal.Alerts(r.Context(), sessionFromContext(r.Context()), category))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.portal.Profile(r.Context(), sessionFromContext(r.Context())))
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With("request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithLogger(r.Context(), logger)))
	})
}

func (s *Server) parseBearer(r *http.Request) (*auth.Claims, error) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil, errMissingToken
	}
	return auth.ParseToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, token)
}

var errMissingToken = errors.New("missing token")

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.parseBearer(r)
		if errors.Is(err, errMissingToken) {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// gateMiddleware runs the protected-view gate on the device session and
// hands the validated session to the handler.
func (s *Server) gateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		sess, err := s.portal.Gate(claims.DeviceID).Protected(r.Context())
		switch {
		case err == nil:
		case errors.Is(err, session.ErrRoleDenied):
			writeError(w, http.StatusForbidden, "role_denied")
			return
		case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrNotLoggedIn), errors.Is(err, session.ErrSessionCorrupt):
			writeError(w, http.StatusUnauthorized, "session_required")
			return
		default:
			writeError(w, http.StatusServiceUnavailable, "session_unavailable")
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type claimsKey struct{}

type sessionKey struct{}

func claimsFromContext(ctx context.Context) *auth.Claims {
	value := ctx.Value(claimsKey{})
	claims, _ := value.(*auth.Claims)
	return claims
}

func sessionFromContext(ctx context.Context) session.Session {
	sess, _ := ctx.Value(sessionKey{}).(session.Session)
	return sess
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
