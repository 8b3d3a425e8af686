package sim

import (
	"math"
	"math/rand"
)

// FaceoffPhase enumerates the faceoff sequence.
type FaceoffPhase int

const (
	FaceoffIdle FaceoffPhase = iota
	FaceoffWaiting
	FaceoffReady
	FaceoffCountdown
	FaceoffDrop
	FaceoffInPlay
)

func (p FaceoffPhase) String() string {
	switch p {
	case FaceoffWaiting:
		return "waiting"
	case FaceoffReady:
		return "ready"
	case FaceoffCountdown:
		return "countdown"
	case FaceoffDrop:
		return "drop"
	case FaceoffInPlay:
		return "in_play"
	default:
		return "idle"
	}
}

// FaceoffSystem runs the puck-drop sequence: position the skaters around
// the dot, count down, drop the puck with a small random kick, then credit
// the first team to touch it within the win window.
type FaceoffSystem struct {
	phase FaceoffPhase
	spot  Vec3
	timer float64

	lastDigit   int
	winWindow   float64
	winCredited bool

	rng *rand.Rand

	onDigit  func(int)
	onDrop   func(Vec3)
	onWon    func(Team, *Player)
	onInPlay func()
}

// NewFaceoffSystem returns an idle faceoff system.
func NewFaceoffSystem(rng *rand.Rand) *FaceoffSystem {
	return &FaceoffSystem{rng: rng}
}

// Callbacks. Digit fires once per countdown second, Drop when the puck is
// released, Won when a team earns the faceoff, InPlay when play resumes.
func (f *FaceoffSystem) OnDigit(fn func(int))         { f.onDigit = fn }
func (f *FaceoffSystem) OnDrop(fn func(Vec3))         { f.onDrop = fn }
func (f *FaceoffSystem) OnWon(fn func(Team, *Player)) { f.onWon = fn }
func (f *FaceoffSystem) OnInPlay(fn func())           { f.onInPlay = fn }

// Phase returns the current phase.
func (f *FaceoffSystem) Phase() FaceoffPhase { return f.phase }

// Spot returns the active faceoff dot.
func (f *FaceoffSystem) Spot() Vec3 { return f.spot }

// Begin stages a faceoff at spot: the puck is held above the dot, every
// on-ice player is frozen at a fixed offset, centers square up and the
// rest fan out around the circle.
func (f *FaceoffSystem) Begin(spot Vec3, puck *Puck, players []*Player) {
	f.phase = FaceoffWaiting
	f.spot = spot
	f.timer = 0
	f.lastDigit = 0
	f.winCredited = false

	puck.Reset(spot.Add(Vec3{Y: FaceoffDropHeight}))
	f.positionPlayers(players)
}

// positionPlayers freezes everyone at deterministic offsets from the dot.
// Centers face each other across it; other skaters alternate around the
// circle by team so lineups mirror.
func (f *FaceoffSystem) positionPlayers(players []*Player) {
	idx := [2]int{}
	for _, p := range players {
		p.Vel = Vec3{}
		p.Steering = Vec3{}
		p.Frozen = true

		sign := p.Team.AttackSign()
		switch p.Role {
		case RoleCenter:
			p.Pos = f.spot.Add(Vec3{X: -sign * FaceoffCenterOffset})
			p.Facing = Vec3{X: sign}
		case RoleGoalie:
			// Goalies stay home.
			p.Pos = p.HomePos
			p.Facing = Vec3{X: sign}
		default:
			i := idx[p.Team]
			idx[p.Team]++
			// Fan out behind the center, mirrored across the dot by team.
			angle := math.Pi/2 + float64(i+1)*math.Pi/4
			if p.Team == TeamAway {
				angle = -angle
			}
			offset := Vec3{
				X: -sign * FaceoffCircleRadius * math.Sin(angle),
				Z: FaceoffCircleRadius * math.Cos(angle),
			}
			p.Pos = f.spot.Add(offset)
			p.Facing = f.spot.Sub(p.Pos).Flat().Normalized()
		}
	}
}

// Update advances the sequence with scaled delta time.
func (f *FaceoffSystem) Update(dt float64, puck *Puck, players []*Player) {
	switch f.phase {
	case FaceoffWaiting:
		// Players are already placed; once time flows, give the
		// presentation a beat. A pause holds the staging here.
		if dt > 0 {
			f.phase = FaceoffReady
			f.timer = FaceoffReadyDelay
		}

	case FaceoffReady:
		f.timer -= dt
		if f.timer <= 0 {
			f.phase = FaceoffCountdown
			f.timer = FaceoffCountdownSecs
			f.lastDigit = 0
		}

	case FaceoffCountdown:
		f.timer -= dt
		digit := int(math.Ceil(f.timer))
		if digit != f.lastDigit && digit > 0 && f.onDigit != nil {
			f.onDigit(digit)
		}
		f.lastDigit = digit
		if f.timer <= 0 {
			f.drop(puck, players)
		}

	case FaceoffDrop:
		f.timer -= dt
		if f.timer <= 0 {
			f.phase = FaceoffInPlay
			f.winWindow = FaceoffWinWindow
			if f.onInPlay != nil {
				f.onInPlay()
			}
		}

	case FaceoffInPlay:
		if f.winWindow > 0 {
			f.winWindow -= dt
		}
	}
}

// drop releases the puck with a small random horizontal kick and unfreezes
// the skaters.
func (f *FaceoffSystem) drop(puck *Puck, players []*Player) {
	f.phase = FaceoffDrop
	f.timer = FaceoffSettleDelay

	puck.Owner = nil
	puck.Vel = Vec3{
		X: (f.rng.Float64() - 0.5) * 2 * FaceoffDropJitter,
		Z: (f.rng.Float64() - 0.5) * 2 * FaceoffDropJitter,
	}
	for _, p := range players {
		p.Frozen = false
	}
	if f.onDrop != nil {
		f.onDrop(f.spot)
	}
}

// RegisterTouch credits a faceoff win to the first team touching the puck
// inside the win window. Later touches are ordinary play.
func (f *FaceoffSystem) RegisterTouch(p *Player) {
	if f.phase != FaceoffInPlay || f.winCredited || f.winWindow <= 0 {
		return
	}
	f.winCredited = true
	p.FaceoffWins++
	if f.onWon != nil {
		f.onWon(p.Team, p)
	}
}

// InPlay reports whether the puck is live.
func (f *FaceoffSystem) InPlay() bool {
	return f.phase == FaceoffInPlay
}
