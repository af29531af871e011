package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"semaphore/my-espace/internal/kv"
	"semaphore/my-espace/internal/logging"
	"semaphore/my-espace/internal/metrics"
)

const (
	DetailKey = "studentDetail"
	TokenKey  = "token"
)

// Store reads and writes the single session record of one namespace
// (one device) in a key-value backend.
type Store struct {
	kv        kv.Store
	namespace string
	ttl       time.Duration
}

func NewStore(backend kv.Store, namespace string, ttl time.Duration) *Store {
	return &Store{kv: backend, namespace: namespace, ttl: ttl}
}

func (s *Store) key(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + ":" + name
}

// Read returns the stored session. A record that cannot be decoded is
// cleared and reported as absent; only backend failures surface as errors.
func (s *Store) Read(ctx context.Context) (Session, bool, error) {
	raw, err := s.kv.Get(ctx, s.key(DetailKey))
	if errors.Is(err, kv.ErrNotFound) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("read session: %w", err)
	}
	sess, err := decodeSession(raw)
	if err != nil {
		logging.FromContext(ctx).Warn("discarding stored session", "namespace", s.namespace, "error", fmt.Errorf("%w: %v", ErrSessionCorrupt, err))
		metrics.SessionCorruptions.Inc()
		if clearErr := s.Clear(ctx); clearErr != nil {
			return Session{}, false, clearErr
		}
		return Session{}, false, nil
	}
	return sess, true, nil
}

// decodeSession accepts only a JSON object; null and other values are corrupt.
func decodeSession(raw string) (Session, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return Session{}, errors.New("session record is not an object")
	}
	var sess Session
	if err := json.Unmarshal([]byte(trimmed), &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Store) Write(ctx context.Context, sess Session) error {
	if sess.LoggedIn && strings.TrimSpace(sess.Token) == "" {
		return ErrMissingToken
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, s.key(DetailKey), string(data), s.ttl); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session record and the legacy bare token.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key(DetailKey)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := s.kv.Delete(ctx, s.key(TokenKey)); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Token prefers the dedicated token key and falls back to the token embedded
// in the session record.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, err := s.kv.Get(ctx, s.key(TokenKey))
	if err == nil && token != "" {
		return token, nil
	}
	if err != nil && !errors.Is(err, kv.ErrNotFound) {
		return "", fmt.Errorf("read token: %w", err)
	}
	sess, ok, err := s.Read(ctx)
	if err != nil || !ok {
		return "", err
	}
	return sess.Token, nil
}
