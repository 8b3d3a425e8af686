package sim

// PenaltySeverity distinguishes minors from majors. Only minors end early
// on a power-play goal.
type PenaltySeverity int

const (
	PenaltyMinor PenaltySeverity = iota
	PenaltyMajor
)

func (s PenaltySeverity) String() string {
	if s == PenaltyMajor {
		return "major"
	}
	return "minor"
}

// Durations in seconds of game time.
const (
	MinorPenaltyDuration = 120.0
	MajorPenaltyDuration = 300.0
)

// PenaltyRecord tracks one player serving time.
type PenaltyRecord struct {
	Player       *Player
	Infraction   string
	Severity     PenaltySeverity
	Duration     float64
	Remaining    float64
	Team         Team
	CanEndOnGoal bool
}

// PenaltyBox holds active penalties, decrements them with scaled game time
// and releases players on expiry or on a power-play goal against them.
type PenaltyBox struct {
	records  []*PenaltyRecord
	onExpire func(*PenaltyRecord)
}

// NewPenaltyBox returns an empty box.
func NewPenaltyBox() *PenaltyBox {
	return &PenaltyBox{}
}

// OnExpire registers a callback fired whenever a record leaves the box,
// whether by expiry or goal cancellation.
func (b *PenaltyBox) OnExpire(fn func(*PenaltyRecord)) {
	b.onExpire = fn
}

// Add sends a player to the box. The player leaves the ice for the
// duration and is flagged as boxed so line changes cannot bring them back
// early.
func (b *PenaltyBox) Add(p *Player, infraction string, severity PenaltySeverity) *PenaltyRecord {
	duration := MinorPenaltyDuration
	if severity == PenaltyMajor {
		duration = MajorPenaltyDuration
	}
	rec := &PenaltyRecord{
		Player:       p,
		Infraction:   infraction,
		Severity:     severity,
		Duration:     duration,
		Remaining:    duration,
		Team:         p.Team,
		CanEndOnGoal: severity == PenaltyMinor,
	}
	p.OnIce = false
	p.InBox = true
	p.PenaltyMin += int(duration / 60)
	b.records = append(b.records, rec)
	return rec
}

// Tick decrements remaining time and releases expired records. dt must be
// scaled delta time so a pause freezes penalty clocks.
func (b *PenaltyBox) Tick(dt float64) {
	n := 0
	for _, rec := range b.records {
		rec.Remaining -= dt
		if rec.Remaining <= 0 {
			b.release(rec)
			continue
		}
		b.records[n] = rec
		n++
	}
	b.records = b.records[:n]
}

// OnGoal cancels the earliest-expiring cancelable minor of the team scored
// against. Majors are served in full. Returns the released record, if any.
func (b *PenaltyBox) OnGoal(scoringTeam Team) *PenaltyRecord {
	shorthanded := scoringTeam.Opponent()
	var pick *PenaltyRecord
	idx := -1
	for i, rec := range b.records {
		if rec.Team != shorthanded || !rec.CanEndOnGoal {
			continue
		}
		if pick == nil || rec.Remaining < pick.Remaining {
			pick = rec
			idx = i
		}
	}
	if pick == nil {
		return nil
	}
	b.records = append(b.records[:idx], b.records[idx+1:]...)
	b.release(pick)
	return pick
}

func (b *PenaltyBox) release(rec *PenaltyRecord) {
	rec.Remaining = 0
	rec.Player.InBox = false
	rec.Player.OnIce = true
	if b.onExpire != nil {
		b.onExpire(rec)
	}
}

// Shorthanded reports whether a team is serving at least one penalty.
func (b *PenaltyBox) Shorthanded(t Team) bool {
	for _, rec := range b.records {
		if rec.Team == t {
			return true
		}
	}
	return false
}

// Active returns the records currently being served.
func (b *PenaltyBox) Active() []*PenaltyRecord {
	out := make([]*PenaltyRecord, len(b.records))
	copy(out, b.records)
	return out
}
