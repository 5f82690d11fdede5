package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("API_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv error: %v", err)
	}
	if env.AppAddr == "" || env.SessionStore != "memory" || env.APITimeout != 15*time.Second {
		t.Fatalf("unexpected defaults %+v", env)
	}
	if len(env.CORSOrigins) != 2 || env.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", env.CORSOrigins)
	}
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadEnv(); err == nil {
		t.Fatalf("missing secret should fail")
	}

	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("SESSION_STORE", "redis")
	if _, err := LoadEnv(); err == nil {
		t.Fatalf("unknown store should fail")
	}

	t.Setenv("SESSION_STORE", "mysql")
	t.Setenv("SESSION_TTL", "eight hours")
	if _, err := LoadEnv(); err == nil || !strings.Contains(err.Error(), "SESSION_TTL") {
		t.Fatalf("bad duration should name the key, got %v", err)
	}
}

func TestDSN(t *testing.T) {
	env := Env{DBUser: "bo", DBPass: "pw", DBAddr: "db:3306", DBName: "backoffice"}
	dsn := env.DSN()
	for _, want := range []string{"bo:pw@tcp(db:3306)/backoffice", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %q", dsn, want)
		}
	}
}
