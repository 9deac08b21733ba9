package api

import (
	"net/http"

	"github.com/dom/pokedex-web/internal/api/handlers"
	"github.com/dom/pokedex-web/internal/api/middleware"
	"github.com/dom/pokedex-web/internal/config"
	"github.com/dom/pokedex-web/internal/render"
	"github.com/dom/pokedex-web/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(services *service.Services, renderer *render.Renderer, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/static/style.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Write([]byte(render.Stylesheet))
	})

	// Initialize handlers
	sessions := middleware.NewSessionManager(cfg.SessionSecret, cfg.Environment == "production")
	pageHandler := handlers.NewPageHandler(services.Navigation, services.Listing, renderer)
	pokemonHandler := handlers.NewPokemonHandler(services.Navigation, services.Evolution)
	listingStreamHandler := handlers.NewListingStreamHandler(services.Listing)

	// Pages
	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(sessions))

		r.Get("/", pageHandler.Index)
		r.Post("/search", pageHandler.Search)
		r.Get("/results", pageHandler.Results)
		r.Post("/results/step", pageHandler.Step)
		r.Get("/generations/{ordinal}", pageHandler.Generation)
		r.Get("/not-found", pageHandler.NotFound)
		r.Post("/not-found/popular", pageHandler.Popular)
	})

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pokemon", func(r chi.Router) {
			r.Get("/{query}", pokemonHandler.Get)
			r.Get("/{query}/evolution", pokemonHandler.Evolution)
		})

		r.Route("/generations", func(r chi.Router) {
			r.Get("/", pokemonHandler.Generations)
			r.Get("/{ordinal}/stream", listingStreamHandler.Handle)
		})
	})

	r.NotFound(pageHandler.NotFound)

	return r
}
