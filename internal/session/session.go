// Package session persists the student's session record and gates access to
// the portal from it.
package session

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrNotLoggedIn    = errors.New("session not logged in")
	ErrRoleDenied     = errors.New("role denied")
	ErrSessionCorrupt = errors.New("session corrupt")
	ErrMissingToken   = fmt.Errorf("logged in without token: %w", ErrSessionCorrupt)
)

// Session mirrors the record the mobile shell historically kept under the
// studentDetail key, so field names stay compatible with existing devices.
type Session struct {
	LoggedIn bool     `json:"isLoggedIn"`
	LocalID  string   `json:"localId"`
	Nom      string   `json:"nom,omitempty"`
	Prenom   string   `json:"prenom,omitempty"`
	Email    string   `json:"email,omitempty"`
	Username string   `json:"username,omitempty"`
	Type     string   `json:"type,omitempty"`
	Roles    []string `json:"roles"`
	Token    string   `json:"token,omitempty"`
}

func (s Session) DisplayName() string {
	return strings.TrimSpace(s.Prenom + " " + s.Nom)
}

// Validate checks the logged-in invariant: a token and the student role.
func (s Session) Validate() error {
	if !s.LoggedIn {
		return ErrNotLoggedIn
	}
	if strings.TrimSpace(s.Token) == "" {
		return ErrMissingToken
	}
	if !HasStudentRole(s.Roles) {
		return ErrRoleDenied
	}
	return nil
}

type Role int

const (
	RoleUnknown Role = iota
	RoleStudent
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	default:
		return "unknown"
	}
}

// studentSpellings are matched case-sensitively; the backend localizes the
// role name depending on the school setup.
var studentSpellings = map[string]struct{}{
	"STUDENT":  {},
	"ÉTUDIANT": {},
	"ETUDIANT": {},
}

func ParseRole(raw string) Role {
	if _, ok := studentSpellings[raw]; ok {
		return RoleStudent
	}
	return RoleUnknown
}

func HasStudentRole(roles []string) bool {
	for _, role := range roles {
		if ParseRole(role) == RoleStudent {
			return true
		}
	}
	return false
}
