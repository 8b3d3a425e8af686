package sim

import (
	"sync/atomic"
	"time"
)

// ResourceLimits caps snapshot sizes so a snapshot never allocates after
// startup.
type ResourceLimits struct {
	MaxPlayers int // Hard cap on players per snapshot
	MaxEvents  int // Recent-event tail length per snapshot
}

// DefaultLimits provides production-safe default limits
var DefaultLimits = ResourceLimits{
	MaxPlayers: 40,
	MaxEvents:  16,
}

// PlayerSnapshot is an immutable copy of player state for consumers.
// Uses value types (not pointers) to ensure immutability.
type PlayerSnapshot struct {
	ID     string  `json:"id" msgpack:"id"`
	Name   string  `json:"name" msgpack:"name"`
	Team   string  `json:"team" msgpack:"team"`
	Role   string  `json:"role" msgpack:"role"`
	Number int     `json:"number" msgpack:"number"`
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Z      float64 `json:"z" msgpack:"z"`
	VX     float64 `json:"vx" msgpack:"vx"`
	VZ     float64 `json:"vz" msgpack:"vz"`
	FaceX  float64 `json:"faceX" msgpack:"faceX"`
	FaceZ  float64 `json:"faceZ" msgpack:"faceZ"`

	OnIce   bool    `json:"onIce" msgpack:"onIce"`
	HasPuck bool    `json:"hasPuck" msgpack:"hasPuck"`
	Frozen  bool    `json:"frozen" msgpack:"frozen"`
	Stamina float64 `json:"stamina" msgpack:"stamina"`
	AIState string  `json:"aiState" msgpack:"aiState"`
	InBox   bool    `json:"inBox" msgpack:"inBox"`

	Goals       int `json:"goals" msgpack:"goals"`
	Assists     int `json:"assists" msgpack:"assists"`
	Shots       int `json:"shots" msgpack:"shots"`
	FaceoffWins int `json:"faceoffWins" msgpack:"faceoffWins"`
	PenaltyMin  int `json:"penaltyMin" msgpack:"penaltyMin"`
}

// PuckSnapshot is an immutable copy of puck state.
type PuckSnapshot struct {
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	Z       float64 `json:"z" msgpack:"z"`
	VX      float64 `json:"vx" msgpack:"vx"`
	VY      float64 `json:"vy" msgpack:"vy"`
	VZ      float64 `json:"vz" msgpack:"vz"`
	Spin    float64 `json:"spin" msgpack:"spin"`
	OwnerID string  `json:"ownerId,omitempty" msgpack:"ownerId,omitempty"`
	Zone    string  `json:"zone" msgpack:"zone"`
}

// EventSnapshot is a compact recent-event entry for feed consumers.
type EventSnapshot struct {
	Type     string `json:"type" msgpack:"type"`
	PlayerID string `json:"playerId,omitempty" msgpack:"playerId,omitempty"`
	Tick     uint64 `json:"tick" msgpack:"tick"`
}

// RinkSnapshot is a complete immutable simulation state for consumers.
// All slices are pre-allocated and capped.
type RinkSnapshot struct {
	Sequence   uint64    `json:"sequence" msgpack:"sequence"`
	Timestamp  time.Time `json:"timestamp" msgpack:"timestamp"`
	TickNumber uint64    `json:"tickNumber" msgpack:"tickNumber"`
	RNGSeed    int64     `json:"rngSeed" msgpack:"rngSeed"`

	Phase        string  `json:"phase" msgpack:"phase"`
	FaceoffPhase string  `json:"faceoffPhase" msgpack:"faceoffPhase"`
	Period       int     `json:"period" msgpack:"period"`
	Clock        float64 `json:"clock" msgpack:"clock"`
	Overtime     bool    `json:"overtime" msgpack:"overtime"`
	TimeScale    float64 `json:"timeScale" msgpack:"timeScale"`

	HomeScore int `json:"homeScore" msgpack:"homeScore"`
	AwayScore int `json:"awayScore" msgpack:"awayScore"`
	HomeShots int `json:"homeShots" msgpack:"homeShots"`
	AwayShots int `json:"awayShots" msgpack:"awayShots"`

	Puck    PuckSnapshot     `json:"puck" msgpack:"puck"`
	Players []PlayerSnapshot `json:"players" msgpack:"players"`
	Events  []EventSnapshot  `json:"events" msgpack:"events"`
}

// SnapshotPool pre-allocates snapshots to avoid GC pressure.
// Uses triple buffering for lock-free producer/consumer.
type SnapshotPool struct {
	snapshots [3]RinkSnapshot // Triple buffer
	limits    ResourceLimits
	writeIdx  uint32 // atomic - producer index
	readIdx   uint32 // atomic - consumer index
	sequence  uint64 // atomic - monotonic sequence
}

// NewSnapshotPool creates a pool with pre-allocated slices
func NewSnapshotPool(limits ResourceLimits) *SnapshotPool {
	pool := &SnapshotPool{limits: limits}

	for i := 0; i < 3; i++ {
		pool.snapshots[i] = RinkSnapshot{
			Players: make([]PlayerSnapshot, 0, limits.MaxPlayers),
			Events:  make([]EventSnapshot, 0, limits.MaxEvents),
		}
	}

	return pool
}

// AcquireWrite gets the next write slot (producer only, called from the
// tick loop). Returns a snapshot with reset slices but preserved capacity.
func (p *SnapshotPool) AcquireWrite() *RinkSnapshot {
	idx := atomic.AddUint32(&p.writeIdx, 1) % 3
	snap := &p.snapshots[idx]

	// Reset slices but keep capacity (zero allocation)
	snap.Players = snap.Players[:0]
	snap.Events = snap.Events[:0]

	snap.Sequence = atomic.AddUint64(&p.sequence, 1)
	snap.Timestamp = time.Now()

	return snap
}

// PublishWrite marks write complete and advances the read pointer.
// Called after the snapshot is fully populated.
func (p *SnapshotPool) PublishWrite() {
	atomic.StoreUint32(&p.readIdx, atomic.LoadUint32(&p.writeIdx))
}

// AcquireRead gets the latest complete snapshot (consumer only).
func (p *SnapshotPool) AcquireRead() *RinkSnapshot {
	idx := atomic.LoadUint32(&p.readIdx) % 3
	return &p.snapshots[idx]
}

// GetLimits returns the resource limits
func (p *SnapshotPool) GetLimits() ResourceLimits {
	return p.limits
}
