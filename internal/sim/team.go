package sim

import "fmt"

// Roster is one team's bench: its players, score and match counters.
type Roster struct {
	Team  Team   `json:"team"`
	Name  string `json:"name"`
	Color string `json:"color"`

	Players []*Player `json:"players"`

	Score       int `json:"score"`
	FaceoffWins int `json:"faceoffWins"`
	ShotsOnGoal int `json:"shotsOnGoal"`
}

// Clone returns a deep copy of the roster. Nothing in the copy aliases
// live simulation state, so callers may read it without the engine lock.
func (r *Roster) Clone() *Roster {
	out := *r
	out.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		cp := *p
		out.Players[i] = &cp
	}
	return &out
}

// lineSlot describes one spot in the default lineup.
type lineSlot struct {
	role  Role
	onIce bool
	// anchor in home-team orientation; mirrored for the away team
	x, z float64
}

// defaultLineup is a six-man ice unit plus three bench skaters.
var defaultLineup = []lineSlot{
	{RoleGoalie, true, -(RinkLength/2 - GoalLineInset - 1), 0},
	{RoleDefense, true, -12, -6},
	{RoleDefense, true, -12, 6},
	{RoleCenter, true, -3, 0},
	{RoleWing, true, -4, -8},
	{RoleWing, true, -4, 8},
	{RoleCenter, false, 0, 0},
	{RoleWing, false, 0, 0},
	{RoleDefense, false, 0, 0},
}

// TeamManager owns both rosters, stamina bookkeeping and line changes.
// Adapted team bookkeeping: fixed two-team rosters instead of ad hoc
// player-created squads.
type TeamManager struct {
	rosters [2]*Roster
}

// NewTeamManager builds both rosters with the default lineup.
func NewTeamManager(homeName, awayName string) *TeamManager {
	tm := &TeamManager{}
	tm.rosters[TeamHome] = buildRoster(TeamHome, homeName, "#d32f2f")
	tm.rosters[TeamAway] = buildRoster(TeamAway, awayName, "#1976d2")
	return tm
}

func buildRoster(t Team, name, color string) *Roster {
	r := &Roster{Team: t, Name: name, Color: color}
	for i, slot := range defaultLineup {
		// Anchors are authored for the home side; mirror along X for away.
		home := Vec3{X: slot.x, Z: slot.z}
		if t == TeamAway {
			home.X = -slot.x
		}
		num := i + 1
		p := NewPlayer(t, slot.role, num, fmt.Sprintf("%s %s %d", name, slot.role, num), home)
		p.OnIce = slot.onIce
		if !slot.onIce {
			p.Pos = benchPos(t, i)
			p.HomePos = p.Pos
		}
		r.Players = append(r.Players, p)
	}
	return r
}

// benchPos places resting players off the playing surface.
func benchPos(t Team, i int) Vec3 {
	side := RinkWidth/2 + 2
	if t == TeamAway {
		side = -side
	}
	return Vec3{X: float64(i-4) * 2, Z: side}
}

// Roster returns the roster for a team.
func (tm *TeamManager) Roster(t Team) *Roster {
	return tm.rosters[t]
}

// OnIce returns every player currently on the ice, both teams.
func (tm *TeamManager) OnIce() []*Player {
	out := make([]*Player, 0, 12)
	for _, r := range tm.rosters {
		for _, p := range r.Players {
			if p.OnIce {
				out = append(out, p)
			}
		}
	}
	return out
}

// AllPlayers returns every rostered player.
func (tm *TeamManager) AllPlayers() []*Player {
	out := make([]*Player, 0, len(defaultLineup)*2)
	for _, r := range tm.rosters {
		out = append(out, r.Players...)
	}
	return out
}

// Center returns the on-ice center for a team.
func (tm *TeamManager) Center(t Team) *Player {
	for _, p := range tm.rosters[t].Players {
		if p.OnIce && p.Role == RoleCenter {
			return p
		}
	}
	return nil
}

// Goalie returns the on-ice goalie for a team.
func (tm *TeamManager) Goalie(t Team) *Player {
	for _, p := range tm.rosters[t].Players {
		if p.OnIce && p.Role == RoleGoalie {
			return p
		}
	}
	return nil
}

// UpdateStamina drains on-ice skaters and regenerates the bench. Goalies
// play the full game and are exempt.
func (tm *TeamManager) UpdateStamina(dt float64) {
	for _, r := range tm.rosters {
		for _, p := range r.Players {
			if p.Role == RoleGoalie {
				continue
			}
			if p.OnIce {
				p.Stamina -= StaminaDrain * dt
				if p.Stamina < 0 {
					p.Stamina = 0
				}
			} else {
				p.Stamina += StaminaRegen * dt
				if p.Stamina > StaminaMax {
					p.Stamina = StaminaMax
				}
			}
		}
	}
}

// LineChanges swaps tired on-ice skaters with rested bench players of the
// same role. Called at stoppages so swaps never happen mid-play. Players
// serving a penalty are not bench players; the box releases them.
func (tm *TeamManager) LineChanges() int {
	swaps := 0
	for _, r := range tm.rosters {
		for _, tired := range r.Players {
			if !tired.OnIce || tired.Role == RoleGoalie || tired.Stamina > StaminaTired {
				continue
			}
			for _, fresh := range r.Players {
				if fresh.OnIce || fresh.InBox || fresh.Role != tired.Role || fresh.Stamina < StaminaRested {
					continue
				}
				tired.OnIce = false
				fresh.OnIce = true
				fresh.Pos = tired.Pos
				fresh.Vel = Vec3{}
				fresh.HomePos = tired.HomePos
				tired.Pos = benchPos(r.Team, tired.Num-1)
				tired.Vel = Vec3{}
				swaps++
				break
			}
		}
	}
	return swaps
}

// AddScore increments a team's goal count and returns the new score.
func (tm *TeamManager) AddScore(t Team) int {
	tm.rosters[t].Score++
	return tm.rosters[t].Score
}

// Scores returns (home, away) goals.
func (tm *TeamManager) Scores() (int, int) {
	return tm.rosters[TeamHome].Score, tm.rosters[TeamAway].Score
}

// ResetMatch clears scores, counters and per-player stats, and returns
// everyone to their formation anchors.
func (tm *TeamManager) ResetMatch() {
	for _, r := range tm.rosters {
		r.Score = 0
		r.FaceoffWins = 0
		r.ShotsOnGoal = 0
		for _, p := range r.Players {
			p.ResetStats()
			p.Stamina = StaminaMax
			p.Pos = p.HomePos
			p.Vel = Vec3{}
		}
	}
}
