package sim

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick              // Tick boundary with RNG seed
	EventTypePossession
	EventTypeShot
	EventTypePass
	EventTypeGoal
	EventTypeFaceoffStart
	EventTypeFaceoffWon
	EventTypeIcing
	EventTypeOffsides
	EventTypePenalty
	EventTypePenaltyOver
	EventTypePeriodEnd
	EventTypeMatchEnd
	EventTypePhaseChange
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8     `json:"version"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`   // Simulation tick this occurred in
	PlayerID  string    `json:"playerId"`  // Source player (for rate limiting)
	Payload   []byte    `json:"payload"`   // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypePossession:
		return "possession"
	case EventTypeShot:
		return "shot"
	case EventTypePass:
		return "pass"
	case EventTypeGoal:
		return "goal"
	case EventTypeFaceoffStart:
		return "faceoff_start"
	case EventTypeFaceoffWon:
		return "faceoff_won"
	case EventTypeIcing:
		return "icing"
	case EventTypeOffsides:
		return "offsides"
	case EventTypePenalty:
		return "penalty"
	case EventTypePenaltyOver:
		return "penalty_over"
	case EventTypePeriodEnd:
		return "period_end"
	case EventTypeMatchEnd:
		return "match_end"
	case EventTypePhaseChange:
		return "phase_change"
	default:
		return "unknown"
	}
}

// Typed payloads for different event types

// TickPayload contains tick boundary information for replay
type TickPayload struct {
	RNGSeed     int64 `json:"rngSeed"`
	PlayerCount int   `json:"playerCount"`
	DeltaTimeNs int64 `json:"deltaTimeNs"`
}

// PossessionPayload records a possession change. PlayerID is empty when
// the puck goes loose.
type PossessionPayload struct {
	PlayerID string `json:"playerId"`
	Team     string `json:"team,omitempty"`
}

// ShotPayload contains shot release details
type ShotPayload struct {
	ShooterID string  `json:"shooterId"`
	Team      string  `json:"team"`
	Speed     float64 `json:"speed"`
	X         float64 `json:"x"`
	Z         float64 `json:"z"`
	OnGoal    bool    `json:"onGoal"`
}

// PassPayload contains pass release details
type PassPayload struct {
	PasserID string  `json:"passerId"`
	TargetID string  `json:"targetId"`
	Team     string  `json:"team"`
	Accuracy float64 `json:"accuracy"`
}

// GoalPayload contains goal details including assist credit
type GoalPayload struct {
	ScorerID  string   `json:"scorerId"`
	AssistIDs []string `json:"assistIds,omitempty"`
	Team      string   `json:"team"`
	Period    int      `json:"period"`
	Clock     float64  `json:"clock"`
	HomeScore int      `json:"homeScore"`
	AwayScore int      `json:"awayScore"`
	Overtime  bool     `json:"overtime"`
}

// FaceoffPayload covers faceoff staging and wins
type FaceoffPayload struct {
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	WinnerID string  `json:"winnerId,omitempty"`
	Team     string  `json:"team,omitempty"`
}

// ViolationPayload covers icing and offsides calls
type ViolationPayload struct {
	Team  string  `json:"team"`
	SpotX float64 `json:"spotX"`
	SpotZ float64 `json:"spotZ"`
}

// PenaltyPayload contains penalty details
type PenaltyPayload struct {
	PlayerID   string  `json:"playerId"`
	Team       string  `json:"team"`
	Infraction string  `json:"infraction"`
	Duration   float64 `json:"duration"`
}

// PeriodEndPayload contains end-of-period details
type PeriodEndPayload struct {
	Period    int `json:"period"`
	HomeScore int `json:"homeScore"`
	AwayScore int `json:"awayScore"`
}

// MatchEndPayload contains the final score
type MatchEndPayload struct {
	HomeScore int  `json:"homeScore"`
	AwayScore int  `json:"awayScore"`
	Overtime  bool `json:"overtime"`
}

// PhaseChangePayload records match phase machine transitions
type PhaseChangePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, playerID string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		PlayerID:  playerID,
		Payload:   EncodePayload(payload),
	}
}
