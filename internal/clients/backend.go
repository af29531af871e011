// Package clients talks to the school REST backend on behalf of a student.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"semaphore/my-espace/internal/dto"
)

var ErrUnauthorized = errors.New("backend rejected credentials")

// RequestError is a non-success backend response. Code is the backend's
// error code when it sent one.
type RequestError struct {
	Status int
	Code   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Code)
}

func (e *RequestError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Backend is the typed HTTP collaborator. Calls are not retried; the
// client timeout bounds each one.
type Backend struct {
	baseURL    string
	httpClient *http.Client
}

func NewBackend(baseURL string, timeout time.Duration) *Backend {
	return &Backend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (b *Backend) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	var resp dto.LoginResponse
	err := b.do(ctx, http.MethodPost, "/auth/login", "", req, &resp)
	return resp, err
}

func (b *Backend) Logout(ctx context.Context, token string) error {
	return b.do(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}

func (b *Backend) Dashboard(ctx context.Context, token, studentID string) (dto.Dashboard, error) {
	var resp dto.Dashboard
	err := b.do(ctx, http.MethodGet, studentPath(studentID, "dashboard"), token, nil, &resp)
	return resp, err
}

func (b *Backend) Alertes(ctx context.Context, token, studentID string) ([]dto.Alerte, error) {
	var resp []dto.Alerte
	err := b.do(ctx, http.MethodGet, studentPath(studentID, "alertes"), token, nil, &resp)
	return resp, err
}

func (b *Backend) RecentNotes(ctx context.Context, token, studentID string) ([]dto.Note, error) {
	var resp []dto.Note
	err := b.do(ctx, http.MethodGet, studentPath(studentID, "notes/recent"), token, nil, &resp)
	return resp, err
}

func (b *Backend) NoteGroups(ctx context.Context, token, studentID string) ([]dto.NoteGroup, error) {
	var resp []dto.NoteGroup
	err := b.do(ctx, http.MethodGet, studentPath(studentID, "notes/groupes"), token, nil, &resp)
	return resp, err
}

func (b *Backend) Releves(ctx context.Context, token, studentID string) ([]dto.Releve, error) {
	var resp []dto.Releve
	err := b.do(ctx, http.MethodGet, studentPath(studentID, "relevers"), token, nil, &resp)
	return resp, err
}

func (b *Backend) Programmes(ctx context.Context, token, studentID string) ([]dto.Programme, error) {
	var resp []dto.Programme
	err := b.do(ctx, http.MethodGet, studentPath(studentID, "programmes"), token, nil, &resp)
	return resp, err
}

func (b *Backend) ProgrammeDocuments(ctx context.Context, token, studentID string) ([]dto.CourseDocuments, error) {
	var resp []dto.CourseDocuments
	err := b.do(ctx, http.MethodGet, studentPath(studentID, "programmes/documents"), token, nil, &resp)
	return resp, err
}

func (b *Backend) Profile(ctx context.Context, token, studentID string) (dto.Profile, error) {
	var resp dto.Profile
	err := b.do(ctx, http.MethodGet, studentPath(studentID, ""), token, nil, &resp)
	return resp, err
}

func studentPath(studentID, resource string) string {
	p := "/student/" + url.PathEscape(studentID)
	if resource != "" {
		p += "/" + resource
	}
	return p
}

func (b *Backend) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	code := "backend_error"
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		switch {
		case payload.Error != "":
			code = payload.Error
		case payload.Message != "":
			code = payload.Message
		}
	}
	return &RequestError{Status: resp.StatusCode, Code: code}
}
