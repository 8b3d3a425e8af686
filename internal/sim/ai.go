package sim

import (
	"math"
	"math/rand"
)

// AIState is a player's current behavior.
type AIState int

const (
	AIIdle AIState = iota
	AIChasePuck
	AIAttack
	AICarry
	AIPass
	AISupport
	AIPositionForPass
	AIDefend
	AIClearZone
	AIGoalieHold
)

func (s AIState) String() string {
	switch s {
	case AIChasePuck:
		return "chase_puck"
	case AIAttack:
		return "attack"
	case AICarry:
		return "carry"
	case AIPass:
		return "pass"
	case AISupport:
		return "support"
	case AIPositionForPass:
		return "position_for_pass"
	case AIDefend:
		return "defend"
	case AIClearZone:
		return "clear_zone"
	case AIGoalieHold:
		return "goalie_hold"
	default:
		return "idle"
	}
}

// AIProfile holds the difficulty-scaled behavior parameters.
type AIProfile struct {
	ReactionTime            float64
	ChaseSpeed              float64
	ShootAccuracy           float64
	PassConsiderationChance float64
}

// ProfileFor maps difficulty in [0,1] linearly between the easy and hard
// bounds. Harder opponents react faster, skate harder, shoot straighter
// and look for passes more often.
func ProfileFor(difficulty float64) AIProfile {
	d := clamp01(difficulty)
	return AIProfile{
		ReactionTime:            lerp(ReactionTimeEasy, ReactionTimeHard, d),
		ChaseSpeed:              lerp(ChaseSpeedEasy, ChaseSpeedHard, d),
		ShootAccuracy:           lerp(ShootAccuracyEasy, ShootAccuracyHard, d),
		PassConsiderationChance: lerp(PassChanceEasy, PassChanceHard, d),
	}
}

// situation is the world view handed to each controller for one decision.
type situation struct {
	puck    *Puck
	zones   ZoneTracker
	onIce   []*Player
	ownGoal Vec3 // the goal this player's team defends
	oppGoal Vec3
}

// AIController recomputes one player's state every ReactionTime seconds
// and produces a continuous steering output every tick. Decision order is
// fixed: goalie override, then self-possession, teammate possession, then
// loose or opponent puck.
type AIController struct {
	player  *Player
	profile AIProfile
	rng     *rand.Rand

	state         AIState
	reactionTimer float64
	passTarget    *Player

	// requests surfaced to the engine, consumed once per decision
	wantShoot bool
	wantPass  bool
}

// NewAIController creates a controller for a player at the given profile.
func NewAIController(p *Player, profile AIProfile, rng *rand.Rand) *AIController {
	return &AIController{player: p, profile: profile, rng: rng}
}

// State returns the current behavior state.
func (c *AIController) State() AIState { return c.state }

// SetProfile rescales the controller mid-game (difficulty change).
func (c *AIController) SetProfile(profile AIProfile) { c.profile = profile }

// Update runs the decision timer and refreshes steering. dt is scaled
// delta time. The returned flags request a shot or a pass to passTarget;
// the engine performs the actual release.
func (c *AIController) Update(dt float64, sit situation) (shoot bool, pass *Player) {
	c.reactionTimer -= dt
	if c.reactionTimer <= 0 {
		c.reactionTimer = c.profile.ReactionTime
		c.decide(sit)
	}
	c.steer(sit)

	shoot = c.wantShoot
	c.wantShoot = false
	if c.wantPass {
		c.wantPass = false
		return shoot, c.passTarget
	}
	return shoot, nil
}

// decide recomputes the state in priority order.
func (c *AIController) decide(sit situation) {
	p := c.player

	if p.Role == RoleGoalie {
		c.state = AIGoalieHold
		return
	}

	if sit.puck.Owner == p {
		c.decideWithPuck(sit)
		return
	}

	if owner := sit.puck.Owner; owner != nil && owner.Team == p.Team {
		c.decideSupport(sit, owner)
		return
	}

	c.decideLoose(sit)
}

// decideWithPuck picks attack, pass or carry for the puck carrier.
func (c *AIController) decideWithPuck(sit situation) {
	p := c.player

	if p.Pos.DistanceTo(sit.oppGoal) <= ShootingRange {
		c.state = AIAttack
		return
	}

	if c.rng.Float64() < c.profile.PassConsiderationChance {
		if mate := c.bestPassTarget(sit); mate != nil {
			c.state = AIPass
			c.passTarget = mate
			c.wantPass = true
			return
		}
	}
	c.state = AICarry
}

// bestPassTarget scores teammates by a forward-biased dot product and
// requires a clear lane within pass range.
func (c *AIController) bestPassTarget(sit situation) *Player {
	p := c.player
	forward := Vec3{X: p.Team.AttackSign()}

	var best *Player
	bestScore := 0.0
	for _, mate := range sit.onIce {
		if mate == p || mate.Team != p.Team || mate.Role == RoleGoalie {
			continue
		}
		offset := mate.Pos.Sub(p.Pos).Flat()
		dist := offset.Length()
		if dist < 1 || dist > PassRange {
			continue
		}
		dir := offset.Normalized()
		score := dir.Dot(forward) // forward-biased: behind-the-play mates score negative
		if score <= bestScore {
			continue
		}
		if !laneClear(p.Pos, mate.Pos, sit.onIce, p.Team) {
			continue
		}
		best = mate
		bestScore = score
	}
	return best
}

// laneClear checks no opponent stands within PassLaneWidth of the segment
// between from and to.
func laneClear(from, to Vec3, onIce []*Player, team Team) bool {
	seg := to.Sub(from).Flat()
	length := seg.Length()
	if length == 0 {
		return false
	}
	dir := seg.Scale(1 / length)
	for _, opp := range onIce {
		if opp.Team == team {
			continue
		}
		rel := opp.Pos.Sub(from).Flat()
		along := rel.Dot(dir)
		if along < 0 || along > length {
			continue
		}
		perp := rel.Sub(dir.Scale(along)).Length()
		if perp < PassLaneWidth {
			return false
		}
	}
	return true
}

// decideSupport positions off-puck teammates. Forwards join the attack;
// defensemen hold unless the play is within their allowed excursion.
func (c *AIController) decideSupport(sit situation, carrier *Player) {
	p := c.player
	sign := p.Team.AttackSign()

	if p.Role.IsForward() {
		// Ahead of the carrier: present a passing option. Behind: drive in
		// support.
		if (p.Pos.X-carrier.Pos.X)*sign > 0 {
			c.state = AIPositionForPass
		} else {
			c.state = AISupport
		}
		return
	}

	// Defensemen pinch only as far as the excursion limit.
	if carrier.Pos.X*sign > 0 && p.Pos.X*sign < DefenseExcursion {
		c.state = AISupport
	} else {
		c.state = AIDefend
	}
}

// decideLoose handles a loose or opponent-held puck by role and zone.
func (c *AIController) decideLoose(sit situation) {
	p := c.player
	puckZone := sit.zones.ZoneAt(sit.puck.Pos.X)
	ownZone := sit.zones.DefensiveZone(p.Team)

	if puckZone == ownZone {
		// Danger at home: defensemen and the center pressure the puck,
		// wings cover the exit.
		if p.Role == RoleDefense || p.Role == RoleCenter {
			if sit.puck.Owner != nil {
				c.state = AIClearZone
			} else {
				c.state = AIChasePuck
			}
		} else {
			c.state = AIDefend
		}
		return
	}

	// Puck outside our zone: forwards hunt, defense holds the line.
	if p.Role.IsForward() {
		c.state = AIChasePuck
	} else {
		c.state = AIDefend
	}
}

// steer converts the current state into a target velocity written to the
// player's Steering field, consumed by the movement integration each tick.
func (c *AIController) steer(sit situation) {
	p := c.player
	if p.Frozen {
		p.Steering = Vec3{}
		return
	}

	speed := math.Min(c.profile.ChaseSpeed, p.MaxSpeed())
	var target Vec3

	switch c.state {
	case AIGoalieHold:
		// Hold the crease, sliding across to track the puck.
		crease := sit.ownGoal
		crease.X += p.Team.AttackSign() * 0.8
		trackZ := math.Max(-GoalHalfWidth, math.Min(GoalHalfWidth, sit.puck.Pos.Z))
		crease.Z = trackZ
		target = crease

	case AIAttack:
		c.steerAttack(sit)
		return

	case AICarry:
		// Skate the puck up ice, drifting toward open middle.
		target = Vec3{X: sit.oppGoal.X, Z: p.Pos.Z * 0.5}

	case AIPass:
		if c.passTarget != nil {
			target = c.passTarget.Pos
		} else {
			target = p.Pos
		}

	case AIChasePuck:
		target = sit.puck.Pos

	case AISupport:
		// Trail the puck toward the attack at a lateral offset.
		target = sit.puck.Pos.Add(Vec3{X: -p.Team.AttackSign() * 3, Z: p.HomePos.Z * 0.5})

	case AIPositionForPass:
		// Find open ice ahead of the puck.
		target = Vec3{
			X: sit.puck.Pos.X + p.Team.AttackSign()*6,
			Z: p.HomePos.Z,
		}

	case AIDefend:
		// Stand between the puck and our goal.
		mid := sit.puck.Pos.Add(sit.ownGoal).Scale(0.5)
		target = mid

	case AIClearZone:
		// Pressure the carrier directly.
		if sit.puck.Owner != nil {
			target = sit.puck.Owner.Pos
		} else {
			target = sit.puck.Pos
		}

	default:
		target = p.HomePos
	}

	offset := target.Sub(p.Pos).Flat()
	if offset.Length() < 0.3 {
		p.Steering = Vec3{}
		return
	}
	p.Steering = offset.Normalized().Scale(speed)
}

// steerAttack drives at the goal and requests a shot once aligned.
func (c *AIController) steerAttack(sit situation) {
	p := c.player
	toGoal := sit.oppGoal.Sub(p.Pos).Flat()
	dist := toGoal.Length()

	speed := math.Min(c.profile.ChaseSpeed, p.MaxSpeed())
	p.Steering = toGoal.Normalized().Scale(speed)

	// Shoot when close enough; accuracy decides the release point spread.
	if sit.puck.Owner == p && dist <= ShootingRange*0.8 {
		c.wantShoot = true
	}
}
