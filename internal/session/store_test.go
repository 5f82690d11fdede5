package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"backoffice/internal/apiclient"
	"backoffice/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestSQLStoreDigestIsKeyed(t *testing.T) {
	a := NewSQLStore(nil, "secret-one")
	b := NewSQLStore(nil, "secret-two")
	da, _ := a.digest("session-id")
	again, _ := a.digest("session-id")
	db, _ := b.digest("session-id")
	if da != again {
		t.Fatalf("digest not deterministic")
	}
	if len(da) != 64 || da == "session-id" {
		t.Fatalf("unexpected digest %q", da)
	}
	if da == db {
		t.Fatalf("digest should depend on the key")
	}
}

func TestSQLStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	store := NewSQLStore(db, "secret")
	var s Session
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = s.Login(admin(), apiclient.Credentials{Cookie: "c=1", Token: "tok"}, exp)
	digest, _ := store.digest(s.ID)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(digest, "admin", 0, "c=1", "tok", exp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Save(context.Background(), &s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreSaveRejectsAnonymous(t *testing.T) {
	store := NewSQLStore(nil, "secret")
	if err := store.Save(context.Background(), &Session{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("anonymous save: got %v", err)
	}
}

func TestSQLStoreLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	store := NewSQLStore(db, "secret")
	store.now = func() time.Time { return time.Date(2029, 6, 1, 0, 0, 0, 0, time.UTC) }
	digest, _ := store.digest("abc")
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT account, role, upstream_cookie, upstream_token, expires_at").
		WithArgs(digest).
		WillReturnRows(sqlmock.NewRows([]string{"account", "role", "upstream_cookie", "upstream_token", "expires_at"}).
			AddRow("nv01", int64(1), "c=1", "tok", exp))

	s, err := store.Load(context.Background(), "abc")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !s.Authenticated() || s.ID != "abc" || s.Role != domain.RoleStaff || s.Credentials.Token != "tok" {
		t.Fatalf("unexpected session %+v", s)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreLoadMissingAndExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	store := NewSQLStore(db, "secret")
	store.now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }
	cols := []string{"account", "role", "upstream_cookie", "upstream_token", "expires_at"}

	mock.ExpectQuery("FROM sessions").WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectQuery("FROM sessions").WillReturnRows(sqlmock.NewRows(cols).
		AddRow("nv01", int64(1), "", "", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))

	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: got %v", err)
	}
	if _, err := store.Load(context.Background(), "old"); !errors.Is(err, ErrExpired) {
		t.Fatalf("expired: got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreDeleteAndPurge(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	store := NewSQLStore(db, "secret")
	digest, _ := store.digest("abc")
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("DELETE FROM sessions WHERE id_digest").
		WithArgs(digest).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM sessions WHERE expires_at").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := store.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	n, err := store.Purge(context.Background(), now)
	if err != nil || n != 3 {
		t.Fatalf("purge: n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
