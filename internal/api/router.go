package api

import (
	"slapshot/internal/sim"
	"slapshot/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// EngineInterface defines the simulation engine methods used by the API.
// This interface enables mocking for tests without spinning up the full
// tick loop. Keep this minimal - only include methods the API layer
// actually calls.
type EngineInterface interface {
	// Snapshot returns the latest lock-free immutable snapshot
	Snapshot() *sim.RinkSnapshot
	// StartMatch moves the match out of pre-game
	StartMatch() error
	// Pause freezes the simulation clock
	Pause()
	// Resume releases a pause
	Resume()
	// Paused reports whether the simulation is paused
	Paused() bool
	// SetDifficulty retunes the AI controllers (0..1)
	SetDifficulty(d float64)
	// Difficulty returns the current AI difficulty
	Difficulty() float64
	// CallPenalty sends a player to the box; false if the ID is unknown
	CallPenalty(playerID, infraction string, severity sim.PenaltySeverity) bool
	// Rosters returns detached copies of both team rosters
	Rosters() (home, away *sim.Roster)
	// EventLogStats returns event log counters
	EventLogStats() map[string]interface{}
}

// MatchStore defines the persistence methods used by the API.
// Satisfied by *store.DB.
type MatchStore interface {
	RecentMatches(limit int) ([]store.MatchRow, error)
	PlayerLines(matchID int64) ([]store.PlayerLineRow, error)
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
// This struct is designed for dependency injection and testability.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Engine: mockEngine,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Engine is the simulation engine (required)
	Engine EngineInterface

	// Store provides match history endpoints. If nil, those endpoints
	// return 503.
	Store MatchStore

	// Settings persists tunables across restarts (difficulty). Optional.
	Settings SettingsStore

	// Auth protects the match-control endpoints. If nil, control
	// endpoints are open (local development).
	Auth *AuthService

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, uses the default origins.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	engine   EngineInterface
	store    MatchStore
	settings SettingsStore
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function is PURE - it has no side effects:
//   - No goroutines are started
//   - No network listeners are opened
//   - No background workers are launched
//
// This makes it safe to use in tests with httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	// CORS configuration
	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{
		engine:   cfg.Engine,
		store:    cfg.Store,
		settings: cfg.Settings,
	}

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Read-only game state
		r.Get("/state", h.handleGetState)
		r.Get("/stats", h.handleGetStats)
		r.Get("/rosters", h.handleGetRosters)

		// Match history
		r.Get("/matches", h.handleGetMatches)
		r.Get("/matches/{id}/players", h.handleGetMatchPlayers)

		// Auth
		if cfg.Auth != nil {
			r.Post("/auth/login", cfg.Auth.HandleLogin)
		}

		// Match control - authenticated when an auth service is configured
		r.Group(func(r chi.Router) {
			if cfg.Auth != nil {
				r.Use(cfg.Auth.Middleware)
			}
			r.Post("/match/start", h.handleMatchStart)
			r.Post("/match/pause", h.handleMatchPause)
			r.Post("/match/resume", h.handleMatchResume)
			r.Post("/difficulty", h.handleSetDifficulty)
			r.Post("/penalty", h.handleCallPenalty)
		})
	})

	return r
}
