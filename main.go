package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/apiclient"
	intconfig "backoffice/internal/config"
	router "backoffice/internal/http"
	"backoffice/internal/http/handlers"
	"backoffice/internal/services"
	"backoffice/internal/session"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := apiclient.New(env.APIBaseURL, apiclient.WithTimeout(env.APITimeout))
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	api := &handlers.API{
		Client:       client,
		Registry:     services.NewRegistry(client, env.CacheTTL, 0),
		SecureCookie: env.SecureCookie,
	}

	var store session.Store = session.NewMemoryStore()
	if env.SessionStore == "mysql" {
		db, err := intconfig.ConnectDB(ctx, env)
		if err != nil {
			log.Fatalf("session store: %v", err)
		}
		defer db.Close()

		sqlStore := session.NewSQLStore(db, env.JWTSecret)
		if err := sqlStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("session schema: %v", err)
		}
		store = sqlStore
		api.StorePing = pingWith(db)
	}

	tokens, err := session.NewTokens(env.JWTSecret)
	if err != nil {
		log.Fatalf("tokens: %v", err)
	}
	api.Sessions = session.NewManager(store, tokens, env.SessionTTL)

	go api.Sessions.Janitor(ctx, 10*time.Minute)
	go sweepWorkspaces(ctx, api.Registry, 5*time.Minute)

	r := router.NewRouter(env, api)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		// PDF rendering waits on upstream reads
		WriteTimeout: env.APITimeout*2 + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("back office listening on %s (upstream %s, sessions %s)", env.AppAddr, env.APIBaseURL, env.SessionStore)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

func pingWith(db *sql.DB) func(c *gin.Context) error {
	return func(c *gin.Context) error {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		return db.PingContext(ctx)
	}
}

func sweepWorkspaces(ctx context.Context, reg *services.Registry, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := reg.Sweep(); n > 0 {
				utils.LogEvent("", "workspace", "sweep", fmt.Sprintf("dropped=%d live=%d", n, reg.Len()))
			}
		}
	}
}
