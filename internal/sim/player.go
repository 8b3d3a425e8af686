package sim

import "fmt"

// Team identifies one of the two benches.
type Team int

const (
	TeamHome Team = iota
	TeamAway
)

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamHome {
		return TeamAway
	}
	return TeamHome
}

// AttackSign is +1 for the home team (attacking positive X) and -1 for the
// away team.
func (t Team) AttackSign() float64 {
	if t == TeamHome {
		return 1
	}
	return -1
}

func (t Team) String() string {
	if t == TeamHome {
		return "home"
	}
	return "away"
}

// Role is a player's position on the ice.
type Role int

const (
	RoleCenter Role = iota
	RoleWing
	RoleDefense
	RoleGoalie
)

func (r Role) String() string {
	switch r {
	case RoleCenter:
		return "center"
	case RoleWing:
		return "wing"
	case RoleDefense:
		return "defense"
	default:
		return "goalie"
	}
}

// IsForward reports whether the role joins the attack.
func (r Role) IsForward() bool {
	return r == RoleCenter || r == RoleWing
}

// Player is a skater or goalie on a roster. Position and velocity are
// authoritative here; the engine integrates them each tick from the AI
// steering output.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team Team   `json:"team"`
	Role Role   `json:"role"`
	Num  int    `json:"num"`

	Pos    Vec3 `json:"pos"`
	Vel    Vec3 `json:"vel"`
	Facing Vec3 `json:"-"` // unit vector on the ice plane

	HomePos Vec3    `json:"-"`       // formation anchor for this role
	OnIce   bool    `json:"onIce"`
	InBox   bool    `json:"inBox"`   // serving a penalty; ineligible for line changes
	Stamina float64 `json:"stamina"` // 0..100, drains on ice

	// Frozen holds the player in place during faceoff positioning.
	Frozen bool `json:"-"`

	// Steering is the target velocity requested by the AI layer, consumed
	// by the movement integration.
	Steering Vec3 `json:"-"`

	// Match stats, reset per game.
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	Shots       int `json:"shots"`
	FaceoffWins int `json:"faceoffWins"`
	PenaltyMin  int `json:"penaltyMin"`
}

// NewPlayer creates a rested player anchored at home.
func NewPlayer(team Team, role Role, num int, name string, home Vec3) *Player {
	return &Player{
		ID:      fmt.Sprintf("%s-%d", team, num),
		Name:    name,
		Team:    team,
		Role:    role,
		Num:     num,
		Pos:     home,
		HomePos: home,
		Facing:  Vec3{X: team.AttackSign()},
		Stamina: StaminaMax,
	}
}

// StickTip returns the point the puck is pulled toward while this player
// has possession.
func (p *Player) StickTip() Vec3 {
	return p.Pos.Add(p.Facing.Flat().Normalized().Scale(StickLength))
}

// MaxSpeed returns the player's speed cap, degraded by fatigue.
func (p *Player) MaxSpeed() float64 {
	base := BaseSkateSpeed
	if p.Role == RoleGoalie {
		base = GoalieSpeed
	}
	return base * lerp(TiredSpeedScale, 1.0, clamp01(p.Stamina/StaminaMax))
}

// ResetStats clears per-match counters.
func (p *Player) ResetStats() {
	p.Goals = 0
	p.Assists = 0
	p.Shots = 0
	p.FaceoffWins = 0
	p.PenaltyMin = 0
}
