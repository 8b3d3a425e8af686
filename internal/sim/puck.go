package sim

// Puck holds the authoritative puck state: kinematics, the current and
// previous possessor, and a bounded touch history used for assist credit
// and icing bookkeeping.
type Puck struct {
	Pos    Vec3
	Vel    Vec3
	AngVel Vec3

	Owner     *Player // nil while loose
	LastOwner *Player

	// touches is most-recent-first, bounded at MaxTouchHistory. A player
	// already in the list moves to the front rather than appearing twice.
	touches []*Player
}

// NewPuck creates a puck resting at pos.
func NewPuck(pos Vec3) *Puck {
	return &Puck{
		Pos:     pos,
		touches: make([]*Player, 0, MaxTouchHistory),
	}
}

// RecordTouch pushes p to the front of the touch history. Duplicates move
// to the front; the history never exceeds MaxTouchHistory entries.
func (pk *Puck) RecordTouch(p *Player) {
	if p == nil {
		return
	}
	for i, t := range pk.touches {
		if t == p {
			copy(pk.touches[1:i+1], pk.touches[:i])
			pk.touches[0] = p
			return
		}
	}
	if len(pk.touches) < MaxTouchHistory {
		pk.touches = append(pk.touches, nil)
	}
	copy(pk.touches[1:], pk.touches)
	pk.touches[0] = p
}

// Touches returns the touch history, most recent first. The returned slice
// is a copy; callers may not mutate puck state through it.
func (pk *Puck) Touches() []*Player {
	out := make([]*Player, len(pk.touches))
	copy(out, pk.touches)
	return out
}

// Reset places the puck at pos with no motion, no owner and a cleared
// touch history. Used at faceoffs and period starts.
func (pk *Puck) Reset(pos Vec3) {
	pk.Pos = pos
	pk.Vel = Vec3{}
	pk.AngVel = Vec3{}
	pk.Owner = nil
	pk.LastOwner = nil
	pk.touches = pk.touches[:0]
}

// Speed returns the puck's current speed.
func (pk *Puck) Speed() float64 {
	return pk.Vel.Length()
}
