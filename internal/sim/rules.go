package sim

import "math"

// ViolationType enumerates rule infractions that stop play.
type ViolationType int

const (
	ViolationIcing ViolationType = iota
	ViolationOffsides
)

func (v ViolationType) String() string {
	if v == ViolationIcing {
		return "icing"
	}
	return "offsides"
}

// Violation reports an infraction and where the resulting faceoff is held.
type Violation struct {
	Type ViolationType
	Team Team // offending team
	Spot Vec3
}

// RulesEngine tracks icing and offsides from puck touches and zone
// crossings. Both detections latch until Reset is called at the next
// faceoff.
type RulesEngine struct {
	zones          ZoneTracker
	goalLineX      float64 // positive X of the away goal line
	icingThreshold float64

	// shorthanded, when set, waives icing for a team serving a penalty.
	shorthanded func(Team) bool

	icingPending bool
	icingTeam    Team
	lastTouchZ   float64 // picks the faceoff dot side

	offsidesCalled [2]bool
	inOffZone      map[string]bool // player ID -> currently in their offensive zone

	onViolation func(Violation)
}

// NewRulesEngine builds a rules engine for the standard rink geometry.
func NewRulesEngine(zones ZoneTracker, goalLineX float64) *RulesEngine {
	return &RulesEngine{
		zones:          zones,
		goalLineX:      goalLineX,
		icingThreshold: IcingThreshold,
		inOffZone:      make(map[string]bool),
	}
}

// OnViolation registers the callback fired when icing or offsides is
// called.
func (r *RulesEngine) OnViolation(fn func(Violation)) {
	r.onViolation = fn
}

// SetShorthandedCheck wires the penalty box in. Icing is waived while the
// offending team is killing a penalty.
func (r *RulesEngine) SetShorthandedCheck(fn func(Team) bool) {
	r.shorthanded = fn
}

// RegisterTouch records a puck touch. Any touch negates a pending icing,
// regardless of which team touches; a touch inside the toucher's own
// defensive zone arms a new one.
func (r *RulesEngine) RegisterTouch(p *Player, puckPos Vec3) {
	r.icingPending = false
	r.lastTouchZ = puckPos.Z
	if r.zones.ZoneAt(puckPos.X) == r.zones.DefensiveZone(p.Team) {
		r.icingPending = true
		r.icingTeam = p.Team
	}
}

// Update evaluates icing completion and offsides entries for the current
// tick. players must be the on-ice set.
func (r *RulesEngine) Update(puck *Puck, players []*Player) {
	r.checkIcing(puck)
	r.checkOffsides(puck, players)
}

func (r *RulesEngine) checkIcing(puck *Puck) {
	if !r.icingPending {
		return
	}
	// Penalty-kill exception: a shorthanded team may ice the puck freely.
	if r.shorthanded != nil && r.shorthanded(r.icingTeam) {
		return
	}
	// The far goal line is at the opponent's end of the rink.
	farLine := r.goalLineX
	if r.icingTeam == TeamAway {
		farLine = -r.goalLineX
	}
	crossed := false
	if r.icingTeam == TeamHome {
		crossed = puck.Pos.X >= farLine-r.icingThreshold
	} else {
		crossed = puck.Pos.X <= farLine+r.icingThreshold
	}
	if !crossed {
		return
	}
	r.icingPending = false
	if r.onViolation != nil {
		r.onViolation(Violation{
			Type: ViolationIcing,
			Team: r.icingTeam,
			Spot: r.defensiveSpot(r.icingTeam),
		})
	}
}

func (r *RulesEngine) checkOffsides(puck *Puck, players []*Player) {
	puckZone := r.zones.ZoneAt(puck.Pos.X)
	for _, p := range players {
		if p.Role == RoleGoalie {
			continue
		}
		off := r.zones.OffensiveZone(p.Team)
		inZone := r.zones.ZoneAt(p.Pos.X) == off
		if !inZone {
			delete(r.inOffZone, p.ID)
			continue
		}
		if r.inOffZone[p.ID] {
			continue // same continuous occupancy, never re-fires
		}
		r.inOffZone[p.ID] = true
		if puckZone == off || r.offsidesCalled[p.Team] {
			continue
		}
		r.offsidesCalled[p.Team] = true
		if r.onViolation != nil {
			r.onViolation(Violation{
				Type: ViolationOffsides,
				Team: p.Team,
				Spot: r.neutralSpot(p.Team),
			})
		}
	}
}

// Reset clears latched violations and pending icing. Called when the next
// faceoff begins.
func (r *RulesEngine) Reset() {
	r.icingPending = false
	r.offsidesCalled = [2]bool{}
	for id := range r.inOffZone {
		delete(r.inOffZone, id)
	}
}

// IcingPending is exposed for the engine's stoppage bookkeeping and tests.
func (r *RulesEngine) IcingPending() bool {
	return r.icingPending
}

// OffsidesCalled reports whether offsides has latched for a team since the
// last reset.
func (r *RulesEngine) OffsidesCalled(t Team) bool {
	return r.offsidesCalled[t]
}

// neutralSpot returns the neutral-zone dot just outside the zone the
// offending team entered early.
func (r *RulesEngine) neutralSpot(offender Team) Vec3 {
	x := r.zones.AwayBlueLine() - FaceoffDotNeutralX
	if offender == TeamAway {
		x = r.zones.HomeBlueLine() + FaceoffDotNeutralX
	}
	return Vec3{X: x, Z: dotSide(r.lastTouchZ)}
}

// defensiveSpot returns the offending team's own-zone dot for an icing
// faceoff.
func (r *RulesEngine) defensiveSpot(offender Team) Vec3 {
	x := -(r.goalLineX - FaceoffDotZoneInset)
	if offender == TeamAway {
		x = r.goalLineX - FaceoffDotZoneInset
	}
	return Vec3{X: x, Z: dotSide(r.lastTouchZ)}
}

// dotSide picks the faceoff dot on the side of the rink where play was.
func dotSide(z float64) float64 {
	return math.Copysign(FaceoffDotHalfSpacing, z)
}
