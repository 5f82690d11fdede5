package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	APIBaseURL string
	APITimeout time.Duration

	JWTSecret    string
	SessionTTL   time.Duration
	SessionStore string
	SecureCookie bool

	DBUser string
	DBPass string
	DBAddr string
	DBName string

	CacheTTL    time.Duration
	CORSOrigins []string
}

// LoadEnv reads .env (when present) and then the process environment,
// which wins over the file.
func LoadEnv() (Env, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	env := Env{
		AppAddr:      getString("APP_ADDR", ":8080"),
		GinMode:      getString("GIN_MODE", ""),
		APIBaseURL:   getString("API_BASE_URL", "http://localhost:3000/api"),
		JWTSecret:    getString("JWT_SECRET", ""),
		SessionStore: strings.ToLower(getString("SESSION_STORE", "memory")),
		SecureCookie: getString("COOKIE_SECURE", "") == "true",
		DBUser:       getString("DB_USER", "root"),
		DBPass:       os.Getenv("DB_PASS"),
		DBAddr:       getString("DB_ADDR", "127.0.0.1:3306"),
		DBName:       getString("DB_NAME", "backoffice"),
		CORSOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	var err error
	if env.APITimeout, err = getDuration("API_TIMEOUT", 15*time.Second); err != nil {
		return env, err
	}
	if env.SessionTTL, err = getDuration("SESSION_TTL", 8*time.Hour); err != nil {
		return env, err
	}
	if env.CacheTTL, err = getDuration("CACHE_TTL", 30*time.Second); err != nil {
		return env, err
	}

	if env.JWTSecret == "" {
		return env, fmt.Errorf("JWT_SECRET is required")
	}
	if env.SessionStore != "memory" && env.SessionStore != "mysql" {
		return env, fmt.Errorf("SESSION_STORE must be memory or mysql, got %q", env.SessionStore)
	}
	return env, nil
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
