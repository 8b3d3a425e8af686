// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all simulation and server settings.
//
// IMPORTANT: When changing values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimConfig holds the simulation loop and match settings.
type SimConfig struct {
	TickRate   int     // Simulation ticks per second
	Difficulty float64 // AI difficulty, 0 (easy) to 1 (hard)
	HomeName   string
	AwayName   string

	Periods            int     // Regulation periods per match
	PeriodLength       float64 // Seconds of game time per period
	WarmupLength       float64 // Seconds before the opening faceoff
	IntermissionLength float64 // Seconds between periods
	CelebrationLength  float64 // Seconds of goal celebration (game time)

	EventLogPath string // JSONL event log, empty disables it
}

// DefaultSim returns the default simulation configuration.
func DefaultSim() SimConfig {
	return SimConfig{
		TickRate:           60,
		Difficulty:         0.5,
		HomeName:           "Home",
		AwayName:           "Away",
		Periods:            3,
		PeriodLength:       180, // 3 minute arcade periods
		WarmupLength:       10,
		IntermissionLength: 15,
		CelebrationLength:  4,
		EventLogPath:       "events.jsonl",
	}
}

// SimFromEnv returns simulation configuration with environment variable overrides.
// Environment variables take precedence over defaults.
func SimFromEnv() SimConfig {
	cfg := DefaultSim()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if d := getEnvFloat("AI_DIFFICULTY", -1); d >= 0 && d <= 1 {
		cfg.Difficulty = d
	}
	if n := os.Getenv("HOME_TEAM"); n != "" {
		cfg.HomeName = n
	}
	if n := os.Getenv("AWAY_TEAM"); n != "" {
		cfg.AwayName = n
	}
	if p := getEnvInt("PERIODS", 0); p > 0 {
		cfg.Periods = p
	}
	if l := getEnvFloat("PERIOD_LENGTH", 0); l > 0 {
		cfg.PeriodLength = l
	}
	if p := os.Getenv("EVENT_LOG_PATH"); p != "" {
		cfg.EventLogPath = p
	}
	if os.Getenv("EVENT_LOG_DISABLED") == "true" {
		cfg.EventLogPath = ""
	}

	return cfg
}

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port          int
	AdminPassword string // Enables JWT auth on control endpoints when set
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3000,
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	return cfg
}

// =============================================================================
// STORAGE CONFIGURATION
// =============================================================================

// StoreConfig holds SQLite persistence settings.
type StoreConfig struct {
	Path string // Database file path
}

// DefaultStore returns the default storage configuration.
func DefaultStore() StoreConfig {
	return StoreConfig{
		Path: "slapshot.db",
	}
}

// StoreFromEnv returns storage configuration with environment variable overrides.
func StoreFromEnv() StoreConfig {
	cfg := DefaultStore()

	if p := os.Getenv("DB_PATH"); p != "" {
		cfg.Path = p
	}

	return cfg
}

// =============================================================================
// OBSERVABILITY CONFIGURATION
// =============================================================================

// ObservabilityConfig holds debug server settings.
type ObservabilityConfig struct {
	Enabled       bool
	ListenAddr    string
	BasicAuthUser string
	BasicAuthPass string
}

// DefaultObservability returns the default observability configuration.
func DefaultObservability() ObservabilityConfig {
	return ObservabilityConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
}

// ObservabilityFromEnv returns observability configuration with environment overrides.
func ObservabilityFromEnv() ObservabilityConfig {
	cfg := DefaultObservability()

	if os.Getenv("DEBUG_SERVER_DISABLED") == "true" {
		cfg.Enabled = false
	}
	if addr := os.Getenv("DEBUG_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	cfg.BasicAuthUser = os.Getenv("DEBUG_AUTH_USER")
	cfg.BasicAuthPass = os.Getenv("DEBUG_AUTH_PASS")

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim           SimConfig
	Server        ServerConfig
	Store         StoreConfig
	Observability ObservabilityConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Sim:           SimFromEnv(),
		Server:        ServerFromEnv(),
		Store:         StoreFromEnv(),
		Observability: ObservabilityFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
