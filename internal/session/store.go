package session

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain"

	"golang.org/x/crypto/blake2b"
)

// Store persists authenticated sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	Purge(ctx context.Context, now time.Time) (int64, error)
}

type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]Session
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: map[string]Session{}, now: time.Now}
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	if !s.Authenticated() {
		return ErrInvalidTransition
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[s.ID] = *s
	return nil
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.byID[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.Expired(m.now()) {
		return nil, ErrExpired
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

func (m *MemoryStore) Purge(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.byID {
		if s.Expired(now) {
			delete(m.byID, id)
			n++
		}
	}
	return n, nil
}

const sessionsDDL = `CREATE TABLE IF NOT EXISTS sessions (
	id_digest CHAR(64) NOT NULL PRIMARY KEY,
	account VARCHAR(100) NOT NULL,
	role TINYINT NOT NULL,
	upstream_cookie TEXT NOT NULL,
	upstream_token TEXT NOT NULL,
	expires_at DATETIME NOT NULL,
	INDEX idx_sessions_expires (expires_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// SQLStore keeps sessions in MySQL. Only a keyed digest of the id is stored,
// so a leaked table cannot be replayed as browser tokens.
type SQLStore struct {
	DB  *sql.DB
	key [32]byte
	now func() time.Time
}

func NewSQLStore(db *sql.DB, secret string) *SQLStore {
	return &SQLStore{DB: db, key: blake2b.Sum256([]byte(secret)), now: time.Now}
}

func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, sessionsDDL)
	return err
}

func (s *SQLStore) digest(id string) (string, error) {
	h, err := blake2b.New256(s.key[:])
	if err != nil {
		return "", err
	}
	h.Write([]byte(id))
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (s *SQLStore) Save(ctx context.Context, sess *Session) error {
	if !sess.Authenticated() {
		return ErrInvalidTransition
	}
	d, err := s.digest(sess.ID)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO sessions (id_digest, account, role, upstream_cookie, upstream_token, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			account = VALUES(account),
			role = VALUES(role),
			upstream_cookie = VALUES(upstream_cookie),
			upstream_token = VALUES(upstream_token),
			expires_at = VALUES(expires_at)
	`, d, sess.Account, sess.Role.Code(), sess.Credentials.Cookie, sess.Credentials.Token, sess.ExpiresAt.UTC())
	return err
}

func (s *SQLStore) Load(ctx context.Context, id string) (*Session, error) {
	d, err := s.digest(id)
	if err != nil {
		return nil, err
	}
	var (
		account string
		role    int
		creds   apiclient.Credentials
		expires time.Time
	)
	err = s.DB.QueryRowContext(ctx, `
		SELECT account, role, upstream_cookie, upstream_token, expires_at
		FROM sessions
		WHERE id_digest = ?
	`, d).Scan(&account, &role, &creds.Cookie, &creds.Token, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sess := restored(id, account, domain.RoleFromCode(role), creds, expires)
	if sess.Expired(s.now()) {
		return nil, ErrExpired
	}
	return sess, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	d, err := s.digest(id)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id_digest = ?`, d)
	return err
}

func (s *SQLStore) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
