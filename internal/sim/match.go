package sim

import "fmt"

// MatchPhase enumerates match lifecycle states.
type MatchPhase int

const (
	PhasePreGame MatchPhase = iota
	PhaseWarmup
	PhaseFaceoff
	PhaseInPlay
	PhaseGoalScored
	PhasePeriodEnd
	PhaseIntermission
	PhaseOvertime
	PhasePostGame
)

func (p MatchPhase) String() string {
	switch p {
	case PhasePreGame:
		return "pregame"
	case PhaseWarmup:
		return "warmup"
	case PhaseFaceoff:
		return "faceoff"
	case PhaseInPlay:
		return "in_play"
	case PhaseGoalScored:
		return "goal_scored"
	case PhasePeriodEnd:
		return "period_end"
	case PhaseIntermission:
		return "intermission"
	case PhaseOvertime:
		return "overtime"
	case PhasePostGame:
		return "postgame"
	default:
		return "unknown"
	}
}

// validTransitions is the full transition table. Anything not listed is an
// error, which replaces the ad hoc boolean guards the rules otherwise need.
var validTransitions = map[MatchPhase][]MatchPhase{
	PhasePreGame:      {PhaseWarmup, PhaseFaceoff},
	PhaseWarmup:       {PhaseFaceoff},
	PhaseFaceoff:      {PhaseInPlay, PhaseOvertime},
	PhaseInPlay:       {PhaseGoalScored, PhasePeriodEnd, PhaseFaceoff},
	PhaseGoalScored:   {PhaseFaceoff, PhasePeriodEnd, PhasePostGame},
	PhasePeriodEnd:    {PhaseIntermission, PhaseOvertime, PhasePostGame},
	PhaseIntermission: {PhaseFaceoff},
	PhaseOvertime:     {PhaseGoalScored, PhasePostGame},
	PhasePostGame:     {PhasePreGame},
}

// MatchConfig sets period structure and presentation timing.
type MatchConfig struct {
	Periods            int
	PeriodLength       float64 // seconds of game time
	WarmupLength       float64
	IntermissionLength float64
	CelebrationLength  float64
}

// DefaultMatchConfig is a three-period arcade game.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Periods:            3,
		PeriodLength:       180,
		WarmupLength:       5,
		IntermissionLength: 8,
		CelebrationLength:  CelebrationLength,
	}
}

// MatchState drives the period/overtime lifecycle. All timing flows
// through the shared TimerQueue and TimeAuthority, so pausing freezes the
// match exactly and leaving a state cancels the callbacks it scheduled.
type MatchState struct {
	config MatchConfig

	phase    MatchPhase
	period   int
	clock    float64 // remaining in the current period
	overtime bool

	timers   *TimerQueue
	timeAuth *TimeAuthority

	// GoalScored bookkeeping: both are revoked when the phase exits, so an
	// interrupted celebration cannot leak a stale slow-motion scale or a
	// double faceoff.
	celebrationTimer TimerHandle
	slowMotion       ScaleHandle

	onPhaseChange func(from, to MatchPhase)
	onPeriodEnd   func(period int)
	onMatchEnd    func(home, away int)

	scores func() (int, int)
}

// NewMatchState builds a match in PreGame.
func NewMatchState(cfg MatchConfig, timers *TimerQueue, timeAuth *TimeAuthority, scores func() (int, int)) *MatchState {
	if cfg.Periods <= 0 || cfg.PeriodLength <= 0 {
		cfg = DefaultMatchConfig()
	}
	return &MatchState{
		config:   cfg,
		phase:    PhasePreGame,
		period:   1,
		clock:    cfg.PeriodLength,
		timers:   timers,
		timeAuth: timeAuth,
		scores:   scores,
	}
}

// Callbacks.
func (m *MatchState) OnPhaseChange(fn func(from, to MatchPhase)) { m.onPhaseChange = fn }
func (m *MatchState) OnPeriodEnd(fn func(period int))            { m.onPeriodEnd = fn }
func (m *MatchState) OnMatchEnd(fn func(home, away int))         { m.onMatchEnd = fn }

// Accessors.
func (m *MatchState) Phase() MatchPhase { return m.phase }
func (m *MatchState) Period() int       { return m.period }
func (m *MatchState) Clock() float64    { return m.clock }
func (m *MatchState) Overtime() bool    { return m.overtime }

// transition moves to a new phase, enforcing the table and running exit
// actions for the phase being left.
func (m *MatchState) transition(to MatchPhase) error {
	allowed := false
	for _, t := range validTransitions[m.phase] {
		if t == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("illegal match transition %s -> %s", m.phase, to)
	}

	if m.phase == PhaseGoalScored {
		// Leaving the celebration cancels its pending work.
		m.timers.Cancel(m.celebrationTimer)
		m.timeAuth.Release(m.slowMotion)
	}

	from := m.phase
	m.phase = to
	if m.onPhaseChange != nil {
		m.onPhaseChange(from, to)
	}
	return nil
}

// Start leaves PreGame. With a warmup configured the match passes through
// Warmup first; the warmup end is scheduled on the timer queue.
func (m *MatchState) Start() error {
	if m.phase != PhasePreGame {
		return fmt.Errorf("match already started (phase %s)", m.phase)
	}
	if m.config.WarmupLength > 0 {
		if err := m.transition(PhaseWarmup); err != nil {
			return err
		}
		m.timers.After(m.config.WarmupLength, func() {
			_ = m.transition(PhaseFaceoff)
		})
		return nil
	}
	return m.transition(PhaseFaceoff)
}

// FaceoffComplete resumes play after the puck drops. Overtime faceoffs
// staged while the phase already sits in Overtime resume in place.
func (m *MatchState) FaceoffComplete() error {
	if m.phase == PhaseOvertime {
		return nil
	}
	if m.overtime {
		return m.transition(PhaseOvertime)
	}
	return m.transition(PhaseInPlay)
}

// Stoppage returns play to a faceoff without a goal (icing, offsides).
func (m *MatchState) Stoppage() error {
	if m.phase == PhaseOvertime {
		// Overtime stoppages stay in overtime; the faceoff system restages
		// while the phase machine holds.
		return nil
	}
	return m.transition(PhaseFaceoff)
}

// GoalScored handles a goal during live play. In sudden-death overtime the
// match ends immediately; otherwise a celebration runs in slow motion and
// the next faceoff is scheduled. The transition table rejects double
// scoring of the same play.
func (m *MatchState) GoalScored() error {
	if err := m.transition(PhaseGoalScored); err != nil {
		return err
	}
	if m.overtime {
		return m.endMatch()
	}

	m.slowMotion = m.timeAuth.Request("goal_celebration", GoalSlowMotionScale, PrioritySlowMotion)
	m.celebrationTimer = m.timers.After(m.config.CelebrationLength, func() {
		_ = m.transition(PhaseFaceoff)
	})
	return nil
}

// Update advances the period clock with scaled delta time.
func (m *MatchState) Update(dt float64) {
	if m.phase != PhaseInPlay {
		return
	}
	m.clock -= dt
	if m.clock > 0 {
		return
	}
	m.clock = 0
	m.endPeriod()
}

func (m *MatchState) endPeriod() {
	if err := m.transition(PhasePeriodEnd); err != nil {
		return
	}
	if m.onPeriodEnd != nil {
		m.onPeriodEnd(m.period)
	}

	home, away := m.scores()
	if m.period >= m.config.Periods {
		if home == away {
			m.overtime = true
			_ = m.transition(PhaseOvertime)
			return
		}
		_ = m.endMatch()
		return
	}

	m.period++
	m.clock = m.config.PeriodLength
	_ = m.transition(PhaseIntermission)
	m.timers.After(m.config.IntermissionLength, func() {
		_ = m.transition(PhaseFaceoff)
	})
}

func (m *MatchState) endMatch() error {
	if err := m.transition(PhasePostGame); err != nil {
		return err
	}
	if m.onMatchEnd != nil {
		home, away := m.scores()
		m.onMatchEnd(home, away)
	}
	return nil
}

// Live reports whether goals can be scored right now.
func (m *MatchState) Live() bool {
	return m.phase == PhaseInPlay || m.phase == PhaseOvertime
}
