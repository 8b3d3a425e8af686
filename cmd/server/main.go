package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"slapshot/internal/api"
	"slapshot/internal/config"
	"slapshot/internal/sim"
	"slapshot/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	}

	log.Println("🏒 ================================")
	log.Println("🏒  SLAPSHOT - SIMULATION SERVER")
	log.Println("🏒 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	simCfg := appConfig.Sim
	serverCfg := appConfig.Server

	log.Printf("🎮 Config: %d TPS, difficulty %.2f, %d x %.0fs periods",
		simCfg.TickRate, simCfg.Difficulty, simCfg.Periods, simCfg.PeriodLength)

	// Open match database
	db, err := store.Open(appConfig.Store.Path)
	if err != nil {
		log.Fatalf("❌ Failed to open database %s: %v", appConfig.Store.Path, err)
	}
	defer db.Close()
	log.Printf("💾 Database: %s", appConfig.Store.Path)

	// Stored difficulty overrides the default, but an explicit env wins
	if v := db.GetSetting("difficulty"); v != "" && os.Getenv("AI_DIFFICULTY") == "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil && d >= 0 && d <= 1 {
			simCfg.Difficulty = d
		}
	}

	// Admin authentication for match-control endpoints
	var auth *api.AuthService
	if serverCfg.AdminPassword != "" {
		auth, err = api.NewAuthService(db, serverCfg.AdminPassword)
		if err != nil {
			log.Fatalf("❌ Auth setup failed: %v", err)
		}
		log.Println("🔐 Admin authentication ENABLED")
	} else if stored, authErr := api.NewAuthService(db, ""); authErr == nil {
		auth = stored
		log.Println("🔐 Admin authentication ENABLED (stored password)")
	} else {
		log.Println("⚠️ Admin authentication DISABLED (set ADMIN_PASSWORD to enable)")
	}

	// Create the simulation engine
	engine := sim.NewEngine(sim.EngineConfig{
		TickRate:     simCfg.TickRate,
		Difficulty:   simCfg.Difficulty,
		HomeName:     simCfg.HomeName,
		AwayName:     simCfg.AwayName,
		EventLogPath: simCfg.EventLogPath,
		Match: sim.MatchConfig{
			Periods:            simCfg.Periods,
			PeriodLength:       simCfg.PeriodLength,
			WarmupLength:       simCfg.WarmupLength,
			IntermissionLength: simCfg.IntermissionLength,
			CelebrationLength:  simCfg.CelebrationLength,
		},
	})
	if simCfg.EventLogPath != "" {
		log.Printf("📝 Event log: %s", simCfg.EventLogPath)
	}

	// Metrics hooks
	engine.OnTick(api.RecordTick)
	engine.OnGoal(func(scorer *sim.Player, team sim.Team, home, away int) {
		api.RecordGoal(team.String())
		name := "unknown"
		if scorer != nil {
			name = scorer.Name
		}
		log.Printf("🚨 GOAL! %s by %s (%d - %d)", team, name, home, away)
	})

	// Persist finished matches with per-player stat lines
	engine.OnMatchEnd(func(homeScore, awayScore int) {
		snap := engine.Snapshot()
		home, away := engine.Rosters()

		id, err := db.SaveMatch(store.MatchRow{
			HomeName:  home.Name,
			AwayName:  away.Name,
			HomeScore: homeScore,
			AwayScore: awayScore,
			Overtime:  snap.Overtime,
			Duration:  float64(simCfg.Periods) * simCfg.PeriodLength,
		})
		if err != nil {
			log.Printf("⚠️ Failed to save match: %v", err)
			return
		}

		for _, roster := range []*sim.Roster{home, away} {
			for _, p := range roster.Players {
				line := store.PlayerLineRow{
					MatchID:     id,
					PlayerID:    p.ID,
					Name:        p.Name,
					Team:        p.Team.String(),
					Goals:       p.Goals,
					Assists:     p.Assists,
					Shots:       p.Shots,
					FaceoffWins: p.FaceoffWins,
					PenaltyMin:  p.PenaltyMin,
				}
				if err := db.SavePlayerLine(line); err != nil {
					log.Printf("⚠️ Failed to save stat line for %s: %v", p.ID, err)
				}
			}
		}
		log.Printf("💾 Match %d saved: %s %d - %d %s", id, home.Name, homeScore, awayScore, away.Name)
	})

	// Start debug server (pprof + Prometheus, localhost only)
	if err := api.StartDebugServer(api.ObservabilityConfig{
		Enabled:       appConfig.Observability.Enabled,
		ListenAddr:    appConfig.Observability.ListenAddr,
		BasicAuthUser: appConfig.Observability.BasicAuthUser,
		BasicAuthPass: appConfig.Observability.BasicAuthPass,
	}); err != nil {
		log.Printf("⚠️ Debug server disabled: %v", err)
	}

	// Create API server
	server := api.NewServer(engine, db, db, auth)

	// Start the simulation
	engine.Start()
	if os.Getenv("AUTO_START") != "false" {
		if err := engine.StartMatch(); err != nil {
			log.Printf("⚠️ Auto-start failed: %v", err)
		} else {
			log.Println("✅ Match started")
		}
	}

	// Start API server in goroutine
	go func() {
		addr := ":" + strconv.Itoa(serverCfg.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	server.Stop()
	engine.Stop()
	log.Println("👋 Goodbye!")
}
