package session

import (
	"context"
	"errors"
	"time"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/utils"
)

// Manager ties the browser token to the stored session.
type Manager struct {
	Store  Store
	Tokens *Tokens
	TTL    time.Duration
	now    func() time.Time
}

func NewManager(store Store, tokens *Tokens, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Manager{Store: store, Tokens: tokens, TTL: ttl, now: time.Now}
}

// Start logs a fresh session in and returns it with its browser token.
func (m *Manager) Start(ctx context.Context, staff models.Staff, creds apiclient.Credentials) (*Session, string, error) {
	sess := &Session{}
	if err := sess.Login(staff, creds, m.now().Add(m.TTL)); err != nil {
		return nil, "", err
	}
	if err := m.Store.Save(ctx, sess); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to save session", Err: err}
	}
	token, err := m.Tokens.Issue(sess)
	if err != nil {
		_ = m.Store.Delete(ctx, sess.ID)
		return nil, "", domain.InternalError{Msg: "failed to sign session token", Err: err}
	}
	return sess, token, nil
}

// Resolve returns the live session behind a browser token. Any failure is
// reported as UnauthorizedError so the caller can send the user to login.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := m.Tokens.Parse(token)
	if err != nil {
		return nil, domain.UnauthorizedError{Msg: "session expired or invalid", Err: err}
	}
	sess, err := m.Store.Load(ctx, claims.SessionID)
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrExpired):
		return nil, domain.UnauthorizedError{Msg: "session expired or invalid", Err: err}
	case err != nil:
		return nil, domain.InternalError{Msg: "failed to load session", Err: err}
	}
	if sess.Role != claims.Role {
		return nil, domain.UnauthorizedError{Msg: "session expired or invalid"}
	}
	return sess, nil
}

// End logs the session out and removes it from the store.
func (m *Manager) End(ctx context.Context, sess *Session) error {
	id := sess.ID
	if err := sess.Logout(); err != nil {
		return err
	}
	if err := m.Store.Delete(ctx, id); err != nil {
		return domain.InternalError{Msg: "failed to delete session", Err: err}
	}
	return nil
}

// Janitor purges expired sessions every interval until ctx is done.
func (m *Manager) Janitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := m.Store.Purge(ctx, m.now())
			if err != nil {
				utils.LogEvent("", "session", "purge", "error="+err.Error())
				continue
			}
			if n > 0 {
				utils.LogEvent("", "session", "purge", "removed expired sessions")
			}
		}
	}
}
