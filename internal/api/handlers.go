package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"slapshot/internal/sim"

	"github.com/go-chi/chi/v5"
	"github.com/vmihailenco/msgpack/v5"
)

// Handler methods for routerHandlers
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	snapshot := h.engine.Snapshot()

	// Binary clients (the renderer) negotiate msgpack via Accept
	if strings.Contains(r.Header.Get("Accept"), "application/msgpack") {
		data, err := msgpack.Marshal(snapshot)
		if err != nil {
			writeError(w, "Encoding failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/msgpack")
		w.Write(data)
		return
	}

	writeJSON(w, snapshot)
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	// Lock-free snapshot avoids contention with the tick loop on every poll
	snapshot := h.engine.Snapshot()
	stats := map[string]interface{}{
		"phase":      snapshot.Phase,
		"period":     snapshot.Period,
		"clock":      snapshot.Clock,
		"overtime":   snapshot.Overtime,
		"homeScore":  snapshot.HomeScore,
		"awayScore":  snapshot.AwayScore,
		"homeShots":  snapshot.HomeShots,
		"awayShots":  snapshot.AwayShots,
		"tickNumber": snapshot.TickNumber,
		"difficulty": h.engine.Difficulty(),
		"paused":     h.engine.Paused(),
		"eventLog":   h.engine.EventLogStats(),
	}
	writeJSON(w, stats)
}

func (h *routerHandlers) handleGetRosters(w http.ResponseWriter, r *http.Request) {
	home, away := h.engine.Rosters()
	writeJSON(w, map[string]interface{}{
		"home": home,
		"away": away,
	})
}

func (h *routerHandlers) handleGetMatches(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, "Match history not available", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	matches, err := h.store.RecentMatches(limit)
	if err != nil {
		writeError(w, "Query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, matches)
}

func (h *routerHandlers) handleGetMatchPlayers(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, "Match history not available", http.StatusServiceUnavailable)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, "Invalid match id", http.StatusBadRequest)
		return
	}

	lines, err := h.store.PlayerLines(id)
	if err != nil {
		writeError(w, "Query failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, lines)
}

func (h *routerHandlers) handleMatchStart(w http.ResponseWriter, r *http.Request) {
	log.Println("🏒 Match start requested via API")
	if err := h.engine.StartMatch(); err != nil {
		writeError(w, err.Error(), http.StatusConflict)
		return
	}
	writeJSON(w, map[string]bool{"success": true})
}

func (h *routerHandlers) handleMatchPause(w http.ResponseWriter, r *http.Request) {
	h.engine.Pause()
	writeJSON(w, map[string]bool{"success": true, "paused": true})
}

func (h *routerHandlers) handleMatchResume(w http.ResponseWriter, r *http.Request) {
	h.engine.Resume()
	writeJSON(w, map[string]bool{"success": true, "paused": false})
}

func (h *routerHandlers) handleSetDifficulty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Difficulty float64 `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Difficulty < 0 || req.Difficulty > 1 {
		writeError(w, "Difficulty must be between 0 and 1", http.StatusBadRequest)
		return
	}

	h.engine.SetDifficulty(req.Difficulty)
	if h.settings != nil {
		if err := h.settings.SetSetting("difficulty", strconv.FormatFloat(req.Difficulty, 'f', -1, 64)); err != nil {
			log.Printf("⚠️ Failed to persist difficulty: %v", err)
		}
	}
	writeJSON(w, map[string]interface{}{
		"success":    true,
		"difficulty": req.Difficulty,
	})
}

func (h *routerHandlers) handleCallPenalty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayerID   string `json:"playerId"`
		Infraction string `json:"infraction"`
		Severity   string `json:"severity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.PlayerID == "" {
		writeError(w, "playerId is required", http.StatusBadRequest)
		return
	}
	if req.Infraction == "" {
		req.Infraction = "unsportsmanlike conduct"
	}

	severity := sim.PenaltyMinor
	switch req.Severity {
	case "", "minor":
	case "major":
		severity = sim.PenaltyMajor
	default:
		writeError(w, "severity must be minor or major", http.StatusBadRequest)
		return
	}

	if !h.engine.CallPenalty(req.PlayerID, req.Infraction, severity) {
		writeError(w, "Player not found", http.StatusNotFound)
		return
	}
	RecordViolation("penalty")
	writeJSON(w, map[string]bool{"success": true})
}

// Helper functions (package-level for reuse)

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
