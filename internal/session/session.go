// Package session holds the signed-in state of one browser: who is logged
// in, with which role, and the upstream credentials to act on their behalf.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

var (
	ErrInvalidTransition = errors.New("session: invalid transition")
	ErrNotFound          = errors.New("session: not found")
	ErrExpired           = errors.New("session: expired")
)

// Session is the explicit replacement for process-wide "current user" state.
// A zero Session is Anonymous.
type Session struct {
	ID          string
	Account     string
	Role        domain.Role
	Credentials apiclient.Credentials
	ExpiresAt   time.Time

	state State
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Authenticated() bool {
	return s != nil && s.state == Authenticated
}

// Login moves Anonymous -> Authenticated. The session id is minted here so
// that an id never outlives the login it belongs to.
func (s *Session) Login(staff models.Staff, creds apiclient.Credentials, expires time.Time) error {
	if s.state != Anonymous {
		return ErrInvalidTransition
	}
	id, err := newID()
	if err != nil {
		return err
	}
	s.ID = id
	s.Account = strings.TrimSpace(staff.Account)
	s.Role = staff.Role
	s.Credentials = creds
	s.ExpiresAt = expires
	s.state = Authenticated
	return nil
}

// Logout moves Authenticated -> Anonymous and forgets everything.
func (s *Session) Logout() error {
	if s.state != Authenticated {
		return ErrInvalidTransition
	}
	*s = Session{}
	return nil
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// restored rebuilds an authenticated session from storage.
func restored(id, account string, role domain.Role, creds apiclient.Credentials, expires time.Time) *Session {
	return &Session{
		ID:          id,
		Account:     account,
		Role:        role,
		Credentials: creds,
		ExpiresAt:   expires,
		state:       Authenticated,
	}
}

func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
