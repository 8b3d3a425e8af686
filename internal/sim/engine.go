package sim

import (
	"log"
	"math"
	"math/rand"
	"sync"
	"time"
)

// EngineConfig collects the knobs the server wires in at startup.
type EngineConfig struct {
	TickRate     int
	Difficulty   float64 // 0 easy .. 1 hard, applied to both benches
	HomeName     string
	AwayName     string
	EventLogPath string
	Match        MatchConfig
}

// DefaultEngineConfig is a 60 TPS exhibition game at medium difficulty.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		TickRate:   60,
		Difficulty: 0.5,
		HomeName:   "Home",
		AwayName:   "Away",
		Match:      DefaultMatchConfig(),
	}
}

// Engine is the authoritative simulation: it owns the tick loop and every
// subsystem, and publishes lock-free snapshots for readers.
type Engine struct {
	mu sync.RWMutex

	puck  *Puck
	teams *TeamManager
	zones ZoneTracker

	possession *PossessionModel
	shots      *ShotPassModel
	rules      *RulesEngine
	faceoffs   *FaceoffSystem
	match      *MatchState
	penalties  *PenaltyBox

	timers   *TimerQueue
	timeAuth *TimeAuthority

	controllers map[string]*AIController
	difficulty  float64

	goalLineX       float64
	nextFaceoffSpot Vec3

	tickRate int
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}
	stopOnce sync.Once

	tickCount uint64

	// Snapshot system for lock-free read separation
	snapshotPool *SnapshotPool
	limits       ResourceLimits

	// Event sourcing for replay and debugging
	eventLog *EventLog
	recent   []EventSnapshot

	// Deterministic RNG for replay consistency
	rng     *rand.Rand
	rngSeed int64

	pauseHandle ScaleHandle

	onGoal     func(scorer *Player, team Team, home, away int)
	onMatchEnd func(home, away int)
	onTick     func(elapsed time.Duration)

	// pending queues external callbacks raised during a tick. They fire
	// once the tick releases the lock, so they may call back into the
	// engine without deadlocking.
	pending []func()
}

// NewEngine builds an engine with both rosters staged for warmup.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	seed := time.Now().UnixNano()
	limits := DefaultLimits

	e := &Engine{
		puck:         NewPuck(Vec3{Y: PuckRadius}),
		teams:        NewTeamManager(cfg.HomeName, cfg.AwayName),
		zones:        NewZoneTracker(RinkLength, BlueLineFraction),
		possession:   NewPossessionModel(),
		timers:       NewTimerQueue(),
		timeAuth:     NewTimeAuthority(),
		penalties:    NewPenaltyBox(),
		controllers:  make(map[string]*AIController),
		difficulty:   clamp01(cfg.Difficulty),
		goalLineX:    RinkLength/2 - GoalLineInset,
		tickRate:     cfg.TickRate,
		stopChan:     make(chan struct{}),
		snapshotPool: NewSnapshotPool(limits),
		limits:       limits,
		eventLog:     NewEventLog(),
		recent:       make([]EventSnapshot, 0, limits.MaxEvents),
		rng:          rand.New(rand.NewSource(seed)),
		rngSeed:      seed,
	}

	e.shots = NewShotPassModel(e.possession, e.rng)
	e.rules = NewRulesEngine(e.zones, e.goalLineX)
	e.faceoffs = NewFaceoffSystem(e.rng)
	e.match = NewMatchState(cfg.Match, e.timers, e.timeAuth, e.teams.Scores)

	profile := ProfileFor(e.difficulty)
	for _, p := range e.teams.AllPlayers() {
		e.controllers[p.ID] = NewAIController(p, profile, e.rng)
	}

	e.wire()

	if cfg.EventLogPath != "" {
		if err := e.eventLog.Start(cfg.EventLogPath); err != nil {
			log.Printf("⚠️ Event log disabled: %v", err)
		}
	}

	return e
}

// wire connects subsystem callbacks. Everything here runs inside the tick
// under the engine lock; externally registered callbacks are queued on
// e.pending instead of firing inline.
func (e *Engine) wire() {
	e.possession.OnChange(func(p *Player) {
		if p == nil {
			e.emit(EventTypePossession, "", PossessionPayload{})
			return
		}
		e.rules.RegisterTouch(p, e.puck.Pos)
		e.faceoffs.RegisterTouch(p)
		e.emit(EventTypePossession, p.ID, PossessionPayload{PlayerID: p.ID, Team: p.Team.String()})
	})

	e.rules.SetShorthandedCheck(e.penalties.Shorthanded)
	e.rules.OnViolation(func(v Violation) {
		var typ EventType
		if v.Type == ViolationIcing {
			typ = EventTypeIcing
		} else {
			typ = EventTypeOffsides
		}
		e.emit(typ, "", ViolationPayload{Team: v.Team.String(), SpotX: v.Spot.X, SpotZ: v.Spot.Z})
		e.stopPlay(v.Spot)
	})

	e.faceoffs.OnWon(func(t Team, p *Player) {
		e.teams.Roster(t).FaceoffWins++
		e.emit(EventTypeFaceoffWon, p.ID, FaceoffPayload{
			X: e.faceoffs.Spot().X, Z: e.faceoffs.Spot().Z,
			WinnerID: p.ID, Team: t.String(),
		})
	})
	e.faceoffs.OnInPlay(func() {
		_ = e.match.FaceoffComplete()
	})

	e.penalties.OnExpire(func(rec *PenaltyRecord) {
		e.emit(EventTypePenaltyOver, rec.Player.ID, PenaltyPayload{
			PlayerID:   rec.Player.ID,
			Team:       rec.Team.String(),
			Infraction: rec.Infraction,
			Duration:   rec.Duration,
		})
	})

	e.match.OnPhaseChange(func(from, to MatchPhase) {
		e.emit(EventTypePhaseChange, "", PhaseChangePayload{From: from.String(), To: to.String()})
		switch {
		case to == PhaseFaceoff:
			e.stageFaceoff()
		case to == PhaseOvertime && from == PhasePeriodEnd:
			// Sudden death opens with a center-ice draw.
			e.nextFaceoffSpot = Vec3{}
			e.stageFaceoff()
		}
	})
	e.match.OnPeriodEnd(func(period int) {
		home, away := e.teams.Scores()
		e.emit(EventTypePeriodEnd, "", PeriodEndPayload{Period: period, HomeScore: home, AwayScore: away})
	})
	e.match.OnMatchEnd(func(home, away int) {
		e.emit(EventTypeMatchEnd, "", MatchEndPayload{HomeScore: home, AwayScore: away, Overtime: e.match.Overtime()})
		if fn := e.onMatchEnd; fn != nil {
			e.pending = append(e.pending, func() { fn(home, away) })
		}
	})
}

// OnGoal registers the goal callback, fired with the updated score.
func (e *Engine) OnGoal(fn func(scorer *Player, team Team, home, away int)) {
	e.mu.Lock()
	e.onGoal = fn
	e.mu.Unlock()
}

// OnMatchEnd registers the final-score callback.
func (e *Engine) OnMatchEnd(fn func(home, away int)) {
	e.mu.Lock()
	e.onMatchEnd = fn
	e.mu.Unlock()
}

// OnTick registers a callback fired with the wall time each tick took.
func (e *Engine) OnTick(fn func(elapsed time.Duration)) {
	e.mu.Lock()
	e.onTick = fn
	e.mu.Unlock()
}

// Start begins the tick loop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.ticker = time.NewTicker(time.Second / time.Duration(e.tickRate))

	go func() {
		for {
			select {
			case <-e.ticker.C:
				e.tick()
			case <-e.stopChan:
				return
			}
		}
	}()

	log.Printf("🏒 Simulation engine started at %d TPS", e.tickRate)
}

// Stop halts the tick loop and flushes the event log.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		if e.ticker != nil {
			e.ticker.Stop()
		}
		e.mu.Unlock()

		close(e.stopChan)
		e.eventLog.Stop()
		log.Println("🛑 Simulation engine stopped")
	})
}

// StartMatch leaves PreGame.
func (e *Engine) StartMatch() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.Start()
}

// Pause freezes simulation time. Idempotent.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pauseHandle == 0 {
		e.pauseHandle = e.timeAuth.Request("pause", 0, PriorityPause)
	}
}

// Resume releases a pause. Idempotent.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pauseHandle != 0 {
		e.timeAuth.Release(e.pauseHandle)
		e.pauseHandle = 0
	}
}

// Paused reports whether a pause request is held.
func (e *Engine) Paused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pauseHandle != 0
}

// SetDifficulty rescales every controller.
func (e *Engine) SetDifficulty(d float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.difficulty = clamp01(d)
	profile := ProfileFor(e.difficulty)
	for _, c := range e.controllers {
		c.SetProfile(profile)
	}
}

// Difficulty returns the current difficulty setting.
func (e *Engine) Difficulty() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.difficulty
}

// CallPenalty sends a player to the box by ID. Play stops for a faceoff in
// the offending team's zone.
func (e *Engine) CallPenalty(playerID, infraction string, severity PenaltySeverity) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range e.teams.AllPlayers() {
		if p.ID != playerID || !p.OnIce {
			continue
		}
		e.assessPenalty(p, infraction, severity)
		return true
	}
	return false
}

// Snapshot returns the latest published state. Safe to call from any
// goroutine without blocking the tick.
func (e *Engine) Snapshot() *RinkSnapshot {
	return e.snapshotPool.AcquireRead()
}

// EventLogStats exposes the event log counters for observability.
func (e *Engine) EventLogStats() map[string]interface{} {
	return e.eventLog.GetStats()
}

// Rosters returns deep copies of both rosters for stat readers. The copies
// are detached from the simulation and stay coherent after the call.
func (e *Engine) Rosters() (home, away *Roster) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.teams.Roster(TeamHome).Clone(), e.teams.Roster(TeamAway).Clone()
}

// Phase returns the current match phase.
func (e *Engine) Phase() MatchPhase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.match.Phase()
}

// tick runs one fixed step. Callbacks queued on e.pending during the step
// fire after the lock is released.
func (e *Engine) tick() {
	start := time.Now()

	e.mu.Lock()
	e.tickCount++
	baseDt := 1.0 / float64(e.tickRate)

	// Log tick boundary with RNG seed for deterministic replay, then
	// advance the seed.
	e.eventLog.EmitSimple(EventTypeTick, e.tickCount, "", TickPayload{
		RNGSeed:     e.rngSeed,
		PlayerCount: len(e.teams.OnIce()),
		DeltaTimeNs: int64(baseDt * 1e9),
	})
	e.rngSeed = e.rng.Int63()
	e.rng.Seed(e.rngSeed)

	dt := baseDt * e.timeAuth.Scale()

	e.timers.Advance(dt)
	e.match.Update(dt)

	onIce := e.teams.OnIce()
	e.faceoffs.Update(dt, e.puck, onIce)

	if dt > 0 {
		e.updateAI(dt, onIce)
		e.integratePlayers(dt, onIce)

		if e.playLive() {
			e.attemptChecks(dt, onIce)
			e.possession.Update(dt, e.puck, onIce)
		}

		e.integratePuck(dt)

		if e.playLive() {
			e.rules.Update(e.puck, onIce)
			e.checkGoal()
		}

		e.penalties.Tick(dt)
		e.teams.UpdateStamina(dt)
	}

	e.publishSnapshot()

	calls := e.pending
	e.pending = nil
	onTick := e.onTick
	e.mu.Unlock()

	for _, fn := range calls {
		fn()
	}
	if onTick != nil {
		onTick(time.Since(start))
	}
}

// playLive reports whether the puck is contested: the match is live and
// the faceoff sequence has completed.
func (e *Engine) playLive() bool {
	return e.match.Live() && e.faceoffs.InPlay()
}

// updateAI runs every controller and services shot/pass requests.
func (e *Engine) updateAI(dt float64, onIce []*Player) {
	for _, p := range onIce {
		ctrl, ok := e.controllers[p.ID]
		if !ok {
			continue
		}
		sign := p.Team.AttackSign()
		sit := situation{
			puck:    e.puck,
			zones:   e.zones,
			onIce:   onIce,
			ownGoal: Vec3{X: -sign * e.goalLineX},
			oppGoal: Vec3{X: sign * e.goalLineX},
		}
		shoot, passTo := ctrl.Update(dt, sit)
		if !e.playLive() || e.puck.Owner != p {
			continue
		}
		if shoot {
			e.performShot(p, ctrl.profile)
		} else if passTo != nil {
			e.performPass(p, passTo, ctrl.profile)
		}
	}
}

// performShot aims at the net with accuracy-scattered Z and releases.
func (e *Engine) performShot(p *Player, profile AIProfile) {
	sign := p.Team.AttackSign()
	miss := (e.rng.Float64()*2 - 1) * (1 - profile.ShootAccuracy) * GoalHalfWidth * 3
	target := Vec3{X: sign * e.goalLineX, Z: miss}
	dir := target.Sub(e.puck.Pos)

	speed := e.shots.Shoot(e.puck, dir, 1.0)
	p.Shots++

	onGoal := math.Abs(miss) <= GoalHalfWidth
	if onGoal {
		e.teams.Roster(p.Team).ShotsOnGoal++
	}
	e.emit(EventTypeShot, p.ID, ShotPayload{
		ShooterID: p.ID,
		Team:      p.Team.String(),
		Speed:     speed,
		X:         e.puck.Pos.X,
		Z:         e.puck.Pos.Z,
		OnGoal:    onGoal,
	})
}

// performPass leads the receiver slightly and releases.
func (e *Engine) performPass(p, target *Player, profile AIProfile) {
	lead := target.Pos.Add(target.Vel.Scale(0.25))
	e.shots.Pass(e.puck, lead, 1.0, profile.ShootAccuracy)
	e.emit(EventTypePass, p.ID, PassPayload{
		PasserID: p.ID,
		TargetID: target.ID,
		Team:     p.Team.String(),
		Accuracy: profile.ShootAccuracy,
	})
}

// attemptChecks lets defenders near the carrier strip the puck. A failed
// lunge occasionally draws a tripping minor.
func (e *Engine) attemptChecks(dt float64, onIce []*Player) {
	carrier := e.puck.Owner
	if carrier == nil {
		return
	}
	for _, opp := range onIce {
		if opp.Team == carrier.Team || opp.Frozen || opp.Role == RoleGoalie {
			continue
		}
		if opp.Pos.DistanceTo(carrier.Pos) > CheckRange {
			continue
		}
		if e.rng.Float64() >= StealRatePerSec*dt {
			continue
		}
		if e.rng.Float64() < TripShare {
			e.assessPenalty(opp, "tripping", PenaltyMinor)
			return
		}
		e.possession.Steal(e.puck, opp)
		return
	}
}

// assessPenalty boxes the offender and stops play with a faceoff in their
// defensive zone.
func (e *Engine) assessPenalty(p *Player, infraction string, severity PenaltySeverity) {
	rec := e.penalties.Add(p, infraction, severity)
	if e.puck.Owner == p {
		e.possession.ForceLoss(e.puck)
	}
	e.emit(EventTypePenalty, p.ID, PenaltyPayload{
		PlayerID:   p.ID,
		Team:       p.Team.String(),
		Infraction: infraction,
		Duration:   rec.Duration,
	})

	sign := p.Team.AttackSign()
	spot := Vec3{X: -sign * (e.goalLineX - FaceoffDotZoneInset), Z: dotSide(e.puck.Pos.Z)}
	e.stopPlay(spot)
}

// stopPlay stages the next faceoff at spot. In overtime the phase machine
// holds and the faceoff restages directly.
func (e *Engine) stopPlay(spot Vec3) {
	e.nextFaceoffSpot = spot
	if e.match.Phase() == PhaseOvertime {
		e.stageFaceoff()
		return
	}
	_ = e.match.Stoppage()
}

// stageFaceoff performs line changes, clears latched rules state and
// begins the draw at the pending spot.
func (e *Engine) stageFaceoff() {
	spot := e.nextFaceoffSpot
	e.nextFaceoffSpot = Vec3{}

	e.teams.LineChanges()
	e.rules.Reset()
	e.faceoffs.Begin(spot, e.puck, e.teams.OnIce())
	e.emit(EventTypeFaceoffStart, "", FaceoffPayload{X: spot.X, Z: spot.Z})
}

// integratePlayers advances skater kinematics toward the AI steering
// target and keeps everyone on the rink.
func (e *Engine) integratePlayers(dt float64, onIce []*Player) {
	boundX := RinkLength/2 - PlayerRadius
	boundZ := RinkWidth/2 - PlayerRadius

	for _, p := range onIce {
		if p.Frozen {
			continue
		}

		diff := p.Steering.Sub(p.Vel).Flat()
		step := SkateAccel * dt
		if d := diff.Length(); d > step {
			diff = diff.Scale(step / d)
		}
		p.Vel = p.Vel.Add(diff)

		if max := p.MaxSpeed(); p.Vel.Length() > max {
			p.Vel = p.Vel.Normalized().Scale(max)
		}

		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Pos.X = math.Max(-boundX, math.Min(boundX, p.Pos.X))
		p.Pos.Z = math.Max(-boundZ, math.Min(boundZ, p.Pos.Z))

		if p.Vel.Length() > 0.5 {
			p.Facing = p.Vel.Flat().Normalized()
		}
	}
}

// integratePuck advances puck kinematics: gravity, ice contact, friction
// and board rebounds. Goal mouths are detected separately in checkGoal.
func (e *Engine) integratePuck(dt float64) {
	pk := e.puck

	if pk.Pos.Y > 0 {
		pk.Vel.Y -= Gravity * dt
	}

	pk.Pos = pk.Pos.Add(pk.Vel.Scale(dt))

	if pk.Pos.Y <= 0 {
		pk.Pos.Y = 0
		if pk.Vel.Y < 0 {
			pk.Vel.Y = -pk.Vel.Y * IceRestitution
			if pk.Vel.Y < 0.2 {
				pk.Vel.Y = 0
			}
		}
		pk.Vel.X *= IceFriction
		pk.Vel.Z *= IceFriction
	}

	pk.AngVel = pk.AngVel.Scale(SpinDamping)

	halfL := RinkLength/2 - PuckRadius
	halfW := RinkWidth/2 - PuckRadius

	if pk.Pos.X > halfL {
		pk.Pos.X = halfL
		pk.Vel.X = -pk.Vel.X * BoardRestitution
	} else if pk.Pos.X < -halfL {
		pk.Pos.X = -halfL
		pk.Vel.X = -pk.Vel.X * BoardRestitution
	}
	if pk.Pos.Z > halfW {
		pk.Pos.Z = halfW
		pk.Vel.Z = -pk.Vel.Z * BoardRestitution
	} else if pk.Pos.Z < -halfW {
		pk.Pos.Z = -halfW
		pk.Vel.Z = -pk.Vel.Z * BoardRestitution
	}
}

// checkGoal fires when the puck fully crosses a goal line inside the goal
// mouth. The phase machine leaving InPlay prevents double counting.
func (e *Engine) checkGoal() {
	pk := e.puck
	if math.Abs(pk.Pos.Z) > GoalHalfWidth || pk.Pos.Y > GoalHeight {
		return
	}
	if pk.Pos.X >= e.goalLineX {
		e.handleGoal(TeamHome)
	} else if pk.Pos.X <= -e.goalLineX {
		e.handleGoal(TeamAway)
	}
}

// handleGoal credits the scorer and assists from the touch history,
// updates the score and hands the celebration to the match machine.
func (e *Engine) handleGoal(scoring Team) {
	if err := e.match.GoalScored(); err != nil {
		return
	}

	var scorer *Player
	assists := make([]*Player, 0, 2)
	for _, t := range e.puck.Touches() {
		if t.Team != scoring {
			continue
		}
		if scorer == nil {
			scorer = t
			continue
		}
		if len(assists) < 2 {
			assists = append(assists, t)
		}
	}

	e.teams.AddScore(scoring)
	homeScore, awayScore := e.teams.Scores()

	scorerID := ""
	if scorer != nil {
		scorer.Goals++
		scorerID = scorer.ID
	}
	assistIDs := make([]string, 0, 2)
	for _, a := range assists {
		a.Assists++
		assistIDs = append(assistIDs, a.ID)
	}

	e.penalties.OnGoal(scoring)
	e.nextFaceoffSpot = Vec3{}

	e.emit(EventTypeGoal, scorerID, GoalPayload{
		ScorerID:  scorerID,
		AssistIDs: assistIDs,
		Team:      scoring.String(),
		Period:    e.match.Period(),
		Clock:     e.match.Clock(),
		HomeScore: homeScore,
		AwayScore: awayScore,
		Overtime:  e.match.Overtime(),
	})

	if fn := e.onGoal; fn != nil {
		e.pending = append(e.pending, func() { fn(scorer, scoring, homeScore, awayScore) })
	}
}

// emit writes to the event log and the bounded recent-event feed.
func (e *Engine) emit(typ EventType, playerID string, payload interface{}) {
	e.eventLog.EmitSimple(typ, e.tickCount, playerID, payload)

	if len(e.recent) >= e.limits.MaxEvents {
		copy(e.recent, e.recent[1:])
		e.recent = e.recent[:len(e.recent)-1]
	}
	e.recent = append(e.recent, EventSnapshot{
		Type:     typ.String(),
		PlayerID: playerID,
		Tick:     e.tickCount,
	})
}

// publishSnapshot copies the world into the triple buffer.
func (e *Engine) publishSnapshot() {
	snap := e.snapshotPool.AcquireWrite()

	snap.TickNumber = e.tickCount
	snap.RNGSeed = e.rngSeed
	snap.Phase = e.match.Phase().String()
	snap.FaceoffPhase = e.faceoffs.Phase().String()
	snap.Period = e.match.Period()
	snap.Clock = e.match.Clock()
	snap.Overtime = e.match.Overtime()
	snap.TimeScale = e.timeAuth.Scale()

	snap.HomeScore, snap.AwayScore = e.teams.Scores()
	snap.HomeShots = e.teams.Roster(TeamHome).ShotsOnGoal
	snap.AwayShots = e.teams.Roster(TeamAway).ShotsOnGoal

	pk := e.puck
	ownerID := ""
	if pk.Owner != nil {
		ownerID = pk.Owner.ID
	}
	snap.Puck = PuckSnapshot{
		X: pk.Pos.X, Y: pk.Pos.Y, Z: pk.Pos.Z,
		VX: pk.Vel.X, VY: pk.Vel.Y, VZ: pk.Vel.Z,
		Spin:    pk.AngVel.Y,
		OwnerID: ownerID,
		Zone:    e.zones.ZoneAt(pk.Pos.X).String(),
	}

	for _, p := range e.teams.AllPlayers() {
		if len(snap.Players) >= e.limits.MaxPlayers {
			break
		}
		state := ""
		if c, ok := e.controllers[p.ID]; ok {
			state = c.State().String()
		}
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:     p.ID,
			Name:   p.Name,
			Team:   p.Team.String(),
			Role:   p.Role.String(),
			Number: p.Num,
			X:      p.Pos.X, Y: p.Pos.Y, Z: p.Pos.Z,
			VX: p.Vel.X, VZ: p.Vel.Z,
			FaceX: p.Facing.X, FaceZ: p.Facing.Z,

			OnIce:   p.OnIce,
			HasPuck: pk.Owner == p,
			Frozen:  p.Frozen,
			Stamina: p.Stamina,
			AIState: state,
			InBox:   p.InBox,

			Goals:       p.Goals,
			Assists:     p.Assists,
			Shots:       p.Shots,
			FaceoffWins: p.FaceoffWins,
			PenaltyMin:  p.PenaltyMin,
		})
	}

	snap.Events = append(snap.Events, e.recent...)

	e.snapshotPool.PublishWrite()
}
