package sim

import (
	"math"
	"math/rand"
)

// ShotPassModel computes release impulses for shots and passes and hands
// the puck back to the possession model with the appropriate re-pickup
// cooldown.
type ShotPassModel struct {
	ShotMultiplier  float64
	MaxShotSpeed    float64
	ShotLift        float64
	SpinFactor      float64
	PassMultiplier  float64
	PassLift        float64
	PassVarianceDeg float64
	ShotCooldown    float64
	PassCooldown    float64

	possession *PossessionModel
	rng        *rand.Rand
}

// NewShotPassModel wires the model to the possession layer and a
// deterministic RNG.
func NewShotPassModel(possession *PossessionModel, rng *rand.Rand) *ShotPassModel {
	return &ShotPassModel{
		ShotMultiplier:  ShotMultiplier,
		MaxShotSpeed:    MaxShotSpeed,
		ShotLift:        ShotLift,
		SpinFactor:      SpinFactor,
		PassMultiplier:  PassMultiplier,
		PassLift:        PassLift,
		PassVarianceDeg: PassVarianceDeg,
		ShotCooldown:    ShotCooldown,
		PassCooldown:    PassCooldown,
		possession:      possession,
		rng:             rng,
	}
}

// Shoot fires the puck along dir with the given charge power. Current
// velocity and spin are wiped first so a shot always leaves at exactly the
// computed speed, clamped (not scaled) at MaxShotSpeed. Returns the release
// speed.
func (m *ShotPassModel) Shoot(puck *Puck, dir Vec3, power float64) float64 {
	speed := math.Min(power*m.ShotMultiplier, m.MaxShotSpeed)
	flat := dir.Flat().Normalized()

	puck.Vel = flat.Scale(speed)
	puck.Vel.Y = m.ShotLift
	puck.AngVel = Vec3{Y: speed * m.SpinFactor}

	m.possession.Release(puck, m.ShotCooldown)
	return speed
}

// Pass sends the puck toward target. Imperfect passers miss by a uniform
// random angle within ±(1-accuracy)*variance degrees; accuracy 1 passes
// are dead straight regardless of the RNG draw. The re-pickup cooldown is
// shorter than a shot's so the receiver can take it cleanly.
func (m *ShotPassModel) Pass(puck *Puck, target Vec3, power, accuracy float64) {
	dir := target.Sub(puck.Pos).Flat().Normalized()

	variance := (1 - clamp01(accuracy)) * m.PassVarianceDeg * math.Pi / 180
	angle := (m.rng.Float64()*2 - 1) * variance
	dir = dir.RotatedY(angle)

	puck.Vel = dir.Scale(power * m.PassMultiplier)
	puck.Vel.Y = m.PassLift
	puck.AngVel = Vec3{}

	m.possession.Release(puck, m.PassCooldown)
}
