package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"lg/fittrack-go-api/internal/config"
)

// corsHandler wraps the engine with the configured origin allow-list.
// Credentials are only allowed for explicit origins; browsers reject them
// with "*".
func corsHandler(origins string, next http.Handler) http.Handler {
	allowed := strings.Split(origins, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}
	wildcard := len(allowed) == 1 && allowed[0] == "*"

	return cors.New(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: !wildcard,
	}).Handler(next)
}

func main() {
	log.SetPrefix("fittrack-go-api: ")

	cfg := config.Load()
	if cfg.DBURL == "" {
		log.Fatal("DB_URL is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	defaults, err := config.LoadProfile(cfg.ProfileFile)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := getDBPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	h := newHandler(pool, cfg, defaults)
	if h.ai == nil {
		log.Printf("[main] no %s API key, food analysis disabled", cfg.AIProvider)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler(cfg.AllowedOrigins, router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}
