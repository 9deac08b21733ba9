package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/pokedex-web/internal/api"
	"github.com/dom/pokedex-web/internal/config"
	"github.com/dom/pokedex-web/internal/pokeapi"
	"github.com/dom/pokedex-web/internal/render"
	"github.com/dom/pokedex-web/internal/repository"
	"github.com/dom/pokedex-web/internal/repository/memory"
	"github.com/dom/pokedex-web/internal/repository/postgres"
	"github.com/dom/pokedex-web/internal/service"
)

func main() {
	cfg, err := config.Load(os.Getenv("POKEDEX_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.RequireSessionSecret(); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize hand-off storage
	var repos *repository.Repositories
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		repos = postgres.NewRepositories(db)
	} else {
		log.Printf("POKEDEX_DATABASE_URL not set, keeping hand-off slots in memory")
		repos = memory.NewRepositories()
	}

	// Initialize services
	client := pokeapi.NewClient(cfg.PokeAPIBaseURL, cfg.HTTPTimeout())
	services := service.NewServices(repos, client, cfg)

	renderer, err := render.NewRenderer()
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	// Initialize router
	router := api.NewRouter(services, renderer, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // generation pages stream for a while
		IdleTimeout:  60 * time.Second,
	}

	ctx, stopSweeper := context.WithCancel(context.Background())
	go sweepHandoffs(ctx, services.Handoff, cfg.HandoffTTL())

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopSweeper()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// sweepHandoffs drops hand-offs that were published but never rendered.
func sweepHandoffs(ctx context.Context, handoff *service.HandoffService, ttl time.Duration) {
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := handoff.Sweep(ctx, ttl)
			if err != nil {
				log.Printf("ERROR [main.sweepHandoffs]: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("swept %d stale hand-off slots", n)
			}
		}
	}
}
