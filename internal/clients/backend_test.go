package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"semaphore/my-espace/internal/dto"
)

func TestBackendForwardsBearerToken(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]dto.Alerte{{LocalID: "a1", Title: "Partiel"}})
	}))
	defer srv.Close()

	backend := NewBackend(srv.URL+"/api/", time.Second)
	alerts, err := backend.Alertes(context.Background(), "tok", "s1")
	if err != nil {
		t.Fatalf("alertes: %v", err)
	}
	if gotAuth != "Bearer tok" || gotPath != "/api/student/s1/alertes" {
		t.Fatalf("unexpected request auth=%q path=%q", gotAuth, gotPath)
	}
	if len(alerts) != 1 || alerts[0].Title != "Partiel" {
		t.Fatalf("unexpected alerts %+v", alerts)
	}
}

func TestBackendPaths(t *testing.T) {
	paths := make(chan string, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.Method + " " + r.URL.Path
		if r.URL.Path == "/student/s1" || r.URL.Path == "/student/s1/dashboard" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx := context.Background()
	b := NewBackend(srv.URL, time.Second)
	calls := []struct {
		name string
		call func() error
		want string
	}{
		{"dashboard", func() error { _, err := b.Dashboard(ctx, "t", "s1"); return err }, "GET /student/s1/dashboard"},
		{"recent", func() error { _, err := b.RecentNotes(ctx, "t", "s1"); return err }, "GET /student/s1/notes/recent"},
		{"groups", func() error { _, err := b.NoteGroups(ctx, "t", "s1"); return err }, "GET /student/s1/notes/groupes"},
		{"releves", func() error { _, err := b.Releves(ctx, "t", "s1"); return err }, "GET /student/s1/relevers"},
		{"programmes", func() error { _, err := b.Programmes(ctx, "t", "s1"); return err }, "GET /student/s1/programmes"},
		{"documents", func() error { _, err := b.ProgrammeDocuments(ctx, "t", "s1"); return err }, "GET /student/s1/programmes/documents"},
		{"profile", func() error { _, err := b.Profile(ctx, "t", "s1"); return err }, "GET /student/s1"},
	}
	for _, c := range calls {
		if err := c.call(); err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got := <-paths; got != c.want {
			t.Fatalf("%s: expected %q got %q", c.name, c.want, got)
		}
	}
}

func TestLoginPostsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req dto.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email != "emma@school.fr" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{LocalID: "s1", Token: "backend-token", Roles: []string{"STUDENT"}})
	}))
	defer srv.Close()

	resp, err := NewBackend(srv.URL, time.Second).Login(context.Background(), dto.LoginRequest{Email: "emma@school.fr", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token != "backend-token" || resp.LocalID != "s1" {
		t.Fatalf("unexpected login response %+v", resp)
	}
}

func TestBackendErrorCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"bad_credentials"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	b := NewBackend(srv.URL, time.Second)
	_, err := b.Login(context.Background(), dto.LoginRequest{})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Code != "bad_credentials" {
		t.Fatalf("expected backend code, got %v", err)
	}
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	_, err = b.Programmes(context.Background(), "t", "s1")
	if !errors.As(err, &reqErr) || reqErr.Status != http.StatusInternalServerError || reqErr.Code != "backend_error" {
		t.Fatalf("expected generic backend error, got %v", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("server error must not read as unauthorized")
	}
}

func TestBackendTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewBackend(srv.URL, 20*time.Millisecond).Profile(context.Background(), "t", "s1")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
}
