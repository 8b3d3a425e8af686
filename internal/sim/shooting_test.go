package sim

import (
	"math"
	"math/rand"
	"testing"
)

func newShotModel() (*ShotPassModel, *PossessionModel) {
	pm := NewPossessionModel()
	return NewShotPassModel(pm, rand.New(rand.NewSource(42))), pm
}

func TestShotSpeedClampedNotScaled(t *testing.T) {
	m, _ := newShotModel()

	cases := []struct {
		power float64
		want  float64
	}{
		{0.5, 12},           // below the cap: power * multiplier exactly
		{1.0, 24},           //
		{2.0, MaxShotSpeed}, // above the cap: clamped, not rescaled
		{10, MaxShotSpeed},
	}
	for _, c := range cases {
		pk := NewPuck(Vec3{})
		pk.Owner = testPlayer(TeamHome, RoleCenter, 1)
		speed := m.Shoot(pk, Vec3{X: 1}, c.power)
		if speed != c.want {
			t.Errorf("Shoot(power=%v) speed = %v, want %v", c.power, speed, c.want)
		}
		flat := math.Hypot(pk.Vel.X, pk.Vel.Z)
		if math.Abs(flat-c.want) > 1e-9 {
			t.Errorf("Shoot(power=%v) horizontal speed = %v, want %v", c.power, flat, c.want)
		}
	}
}

func TestShotWipesExistingMotion(t *testing.T) {
	m, _ := newShotModel()
	pk := NewPuck(Vec3{})
	pk.Owner = testPlayer(TeamHome, RoleCenter, 1)
	pk.Vel = Vec3{X: -10, Z: 4}
	pk.AngVel = Vec3{Y: 99}

	m.Shoot(pk, Vec3{X: 1}, 1.0)

	// The release velocity is exactly the shot direction at the shot speed;
	// none of the prior motion carries over.
	if pk.Vel.X != 24 || pk.Vel.Z != 0 {
		t.Fatalf("Vel = %+v, prior motion leaked into the shot", pk.Vel)
	}
	if pk.AngVel.Y != 24*SpinFactor {
		t.Fatalf("AngVel.Y = %v, want %v", pk.AngVel.Y, 24*SpinFactor)
	}
}

func TestShotReleasesPossession(t *testing.T) {
	m, _ := newShotModel()
	pk := NewPuck(Vec3{})
	p := testPlayer(TeamHome, RoleCenter, 1)
	pk.Owner = p

	m.Shoot(pk, Vec3{X: 1}, 1.0)
	if pk.Owner != nil {
		t.Fatal("shot did not release possession")
	}
	if pk.LastOwner != p {
		t.Fatal("LastOwner not recorded")
	}
}

func TestPerfectPassHasZeroDeviation(t *testing.T) {
	// Accuracy 1.0 must be exact for every RNG draw.
	for seed := int64(0); seed < 20; seed++ {
		pm := NewPossessionModel()
		m := NewShotPassModel(pm, rand.New(rand.NewSource(seed)))
		pk := NewPuck(Vec3{})
		pk.Owner = testPlayer(TeamHome, RoleCenter, 1)

		m.Pass(pk, Vec3{X: 10, Z: 0}, 1.0, 1.0)
		if math.Abs(pk.Vel.Z) > 1e-9 {
			t.Fatalf("seed %d: perfect pass deviated, Vel.Z = %v", seed, pk.Vel.Z)
		}
		if pk.Vel.X <= 0 {
			t.Fatalf("seed %d: pass went backwards", seed)
		}
	}
}

func TestInaccuratePassStaysWithinVariance(t *testing.T) {
	pm := NewPossessionModel()
	m := NewShotPassModel(pm, rand.New(rand.NewSource(7)))
	maxAngle := PassVarianceDeg * math.Pi / 180

	for i := 0; i < 100; i++ {
		pk := NewPuck(Vec3{})
		pk.Owner = testPlayer(TeamHome, RoleCenter, 1)
		m.Pass(pk, Vec3{X: 10}, 1.0, 0) // worst accuracy

		angle := math.Atan2(pk.Vel.Z, pk.Vel.X)
		if math.Abs(angle) > maxAngle+1e-9 {
			t.Fatalf("pass deviation %v rad exceeds variance %v", angle, maxAngle)
		}
	}
}
