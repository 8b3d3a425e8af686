package sim

// PossessionModel implements the magnetic stick-handling physics: while a
// player owns the puck it is pulled toward their stick tip and matched to
// their velocity; when loose, the nearest eligible player inside magnet
// range picks it up after a cooldown.
type PossessionModel struct {
	MagnetRange           float64
	MaxPossessionDistance float64
	PullStrength          float64
	MatchStrength         float64
	PickupCooldown        float64

	cooldown    float64 // time until a loose puck may be picked up
	excluded    *Player // player who just lost the puck
	excludedFor float64

	// onChange fires exactly once per ownership transfer, with the new
	// owner or nil when the puck comes loose.
	onChange func(*Player)
}

// NewPossessionModel returns a model with the standard tuning.
func NewPossessionModel() *PossessionModel {
	return &PossessionModel{
		MagnetRange:           MagnetRange,
		MaxPossessionDistance: MaxPossessionDistance,
		PullStrength:          PullStrength,
		MatchStrength:         MatchStrength,
		PickupCooldown:        PickupCooldown,
	}
}

// OnChange registers the possession-changed callback.
func (m *PossessionModel) OnChange(fn func(*Player)) {
	m.onChange = fn
}

// Update advances the possession state one tick. players must be the
// on-ice set.
func (m *PossessionModel) Update(dt float64, puck *Puck, players []*Player) {
	if m.excludedFor > 0 {
		m.excludedFor -= dt
		if m.excludedFor <= 0 {
			m.excluded = nil
		}
	}

	if puck.Owner != nil {
		m.updateOwned(dt, puck)
		return
	}

	if m.cooldown > 0 {
		m.cooldown -= dt
		return
	}
	m.searchPickup(puck, players)
}

// updateOwned applies the pull force and velocity matching, and drops
// possession when the puck escapes.
func (m *PossessionModel) updateOwned(dt float64, puck *Puck) {
	owner := puck.Owner
	tip := owner.StickTip()
	offset := tip.Sub(puck.Pos)
	dist := offset.Length()

	if dist > m.MaxPossessionDistance {
		m.ForceLoss(puck)
		return
	}

	// Pull toward the stick tip, stronger the further the puck strays.
	pull := clamp01(dist / m.MagnetRange)
	puck.Vel = puck.Vel.Add(offset.Normalized().Scale(m.PullStrength * pull * dt))

	// Velocity matching keeps the puck responsive instead of trailing.
	diff := owner.Vel.Sub(puck.Vel)
	puck.Vel = puck.Vel.Add(diff.Scale(m.MatchStrength))
}

// searchPickup grants possession to the nearest player inside magnet range,
// excluding the player who just lost it.
func (m *PossessionModel) searchPickup(puck *Puck, players []*Player) {
	var nearest *Player
	best := m.MagnetRange
	for _, p := range players {
		if p == m.excluded || p.Frozen {
			continue
		}
		if d := p.StickTip().DistanceTo(puck.Pos); d <= best {
			best = d
			nearest = p
		}
	}
	if nearest != nil {
		m.grant(puck, nearest)
	}
}

func (m *PossessionModel) grant(puck *Puck, p *Player) {
	puck.Owner = p
	puck.LastOwner = p
	puck.RecordTouch(p)
	if m.onChange != nil {
		m.onChange(p)
	}
}

// Release drops possession deliberately (shot or pass) with the given
// re-pickup cooldown. The shooter is not excluded from re-pickup; only an
// involuntary loss excludes the loser.
func (m *PossessionModel) Release(puck *Puck, cooldown float64) {
	if puck.Owner == nil {
		return
	}
	puck.LastOwner = puck.Owner
	puck.Owner = nil
	m.cooldown = cooldown
	if m.onChange != nil {
		m.onChange(nil)
	}
}

// ForceLoss strips possession after the puck escapes the stick. The loser
// is excluded from re-grabbing for 1.5x the pickup cooldown so a bobbled
// puck is genuinely contested.
func (m *PossessionModel) ForceLoss(puck *Puck) {
	if puck.Owner == nil {
		return
	}
	loser := puck.Owner
	puck.LastOwner = loser
	puck.Owner = nil
	m.cooldown = m.PickupCooldown
	m.excluded = loser
	m.excludedFor = m.PickupCooldown * LoserCooldownFactor
	if m.onChange != nil {
		m.onChange(nil)
	}
}

// Owner-to-owner steals are legal: grant directly without a loose interval.
// Exactly one change notification still fires.
func (m *PossessionModel) Steal(puck *Puck, thief *Player) {
	if puck.Owner == thief {
		return
	}
	puck.Owner = thief
	puck.LastOwner = thief
	puck.RecordTouch(thief)
	if m.onChange != nil {
		m.onChange(thief)
	}
}
