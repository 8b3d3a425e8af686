package sim

// Zone classifies a position along the rink length.
type Zone int

const (
	ZoneNeutral Zone = iota
	ZoneHomeDefensive
	ZoneAwayDefensive
)

// String returns a human-readable zone name.
func (z Zone) String() string {
	switch z {
	case ZoneHomeDefensive:
		return "home_defensive"
	case ZoneAwayDefensive:
		return "away_defensive"
	default:
		return "neutral"
	}
}

// ZoneTracker classifies X coordinates into the three rink zones. The blue
// lines sit at ±(halfLength - length*blueLineFraction). Positions exactly on
// a blue line belong to the neutral zone, on both sides, so the three zones
// partition the rink with no gap or overlap.
type ZoneTracker struct {
	homeBlueLine float64 // negative X
	awayBlueLine float64 // positive X
}

// NewZoneTracker derives blue line positions from the rink length and the
// zone-depth fraction.
func NewZoneTracker(rinkLength, blueLineFraction float64) ZoneTracker {
	half := rinkLength / 2
	line := half - rinkLength*blueLineFraction
	return ZoneTracker{homeBlueLine: -line, awayBlueLine: line}
}

// ZoneAt is a pure, total function of x.
func (zt ZoneTracker) ZoneAt(x float64) Zone {
	switch {
	case x < zt.homeBlueLine:
		return ZoneHomeDefensive
	case x > zt.awayBlueLine:
		return ZoneAwayDefensive
	default:
		return ZoneNeutral
	}
}

// HomeBlueLine returns the X coordinate of the home blue line.
func (zt ZoneTracker) HomeBlueLine() float64 { return zt.homeBlueLine }

// AwayBlueLine returns the X coordinate of the away blue line.
func (zt ZoneTracker) AwayBlueLine() float64 { return zt.awayBlueLine }

// DefensiveZone returns the zone a team defends.
func (zt ZoneTracker) DefensiveZone(t Team) Zone {
	if t == TeamHome {
		return ZoneHomeDefensive
	}
	return ZoneAwayDefensive
}

// OffensiveZone returns the zone a team attacks into.
func (zt ZoneTracker) OffensiveZone(t Team) Zone {
	if t == TeamHome {
		return ZoneAwayDefensive
	}
	return ZoneHomeDefensive
}
