package sim

import (
	"math"
	"testing"
)

func TestLoosePuckPickupByNearest(t *testing.T) {
	m := NewPossessionModel()
	pk := NewPuck(Vec3{})

	near := testPlayer(TeamHome, RoleCenter, 1)
	near.Pos = Vec3{X: -1.8} // stick tip at -0.4, inside magnet range
	far := testPlayer(TeamAway, RoleCenter, 2)
	far.Pos = Vec3{X: 5}

	m.Update(0.016, pk, []*Player{far, near})

	if pk.Owner != near {
		t.Fatalf("owner = %v, want the nearest player", pk.Owner)
	}
	if len(pk.Touches()) != 1 || pk.Touches()[0] != near {
		t.Fatal("pickup did not record a touch")
	}
}

func TestFrozenPlayersCannotPickUp(t *testing.T) {
	m := NewPossessionModel()
	pk := NewPuck(Vec3{})

	p := testPlayer(TeamHome, RoleCenter, 1)
	p.Pos = Vec3{X: -1.5}
	p.Frozen = true

	m.Update(0.016, pk, []*Player{p})
	if pk.Owner != nil {
		t.Fatal("frozen player picked up the puck")
	}
}

func TestOwnedPuckPulledTowardStickTip(t *testing.T) {
	m := NewPossessionModel()
	pk := NewPuck(Vec3{})

	p := testPlayer(TeamHome, RoleCenter, 1)
	p.Pos = Vec3{X: -1.0} // stick tip at 0.4
	pk.Owner = p
	pk.Pos = Vec3{X: 0} // 0.4 short of the tip

	m.Update(0.016, pk, []*Player{p})

	if pk.Vel.X <= 0 {
		t.Fatalf("puck should accelerate toward the stick tip, Vel.X = %v", pk.Vel.X)
	}
	if pk.Owner != p {
		t.Fatal("possession lost within range")
	}
}

func TestForcedLossExcludesLoser(t *testing.T) {
	m := NewPossessionModel()
	pk := NewPuck(Vec3{})

	p := testPlayer(TeamHome, RoleCenter, 1)
	p.Pos = Vec3{X: -10} // stick tip far beyond MaxPossessionDistance
	pk.Owner = p
	pk.Pos = Vec3{}

	m.Update(0.016, pk, []*Player{p})
	if pk.Owner != nil {
		t.Fatal("possession survived beyond the max distance")
	}

	// Move the loser right back onto the puck: the exclusion window must
	// keep them off it for 1.5x the pickup cooldown.
	p.Pos = Vec3{X: -1.5}
	elapsed := 0.0
	dt := 0.05
	exclusion := PickupCooldown * LoserCooldownFactor
	for elapsed+dt < exclusion {
		m.Update(dt, pk, []*Player{p})
		elapsed += dt
		if pk.Owner != nil {
			t.Fatalf("loser regained the puck after %.2fs, exclusion is %.2fs", elapsed, exclusion)
		}
	}
	// Past the window the pickup goes through.
	for i := 0; i < 10 && pk.Owner == nil; i++ {
		m.Update(dt, pk, []*Player{p})
	}
	if pk.Owner != p {
		t.Fatal("loser never regained the puck after the exclusion expired")
	}
}

func TestReleaseDoesNotExcludeShooter(t *testing.T) {
	m := NewPossessionModel()
	pk := NewPuck(Vec3{})

	p := testPlayer(TeamHome, RoleCenter, 1)
	p.Pos = Vec3{X: -1.5}
	pk.Owner = p

	m.Release(pk, 0.1)
	if pk.Owner != nil {
		t.Fatal("release kept ownership")
	}

	// After the cooldown the shooter may retake their own rebound.
	m.Update(0.2, pk, []*Player{p})
	m.Update(0.016, pk, []*Player{p})
	if pk.Owner != p {
		t.Fatal("shooter could not retake the puck after release cooldown")
	}
}

func TestPossessionChangeFiresOncePerTransfer(t *testing.T) {
	m := NewPossessionModel()
	pk := NewPuck(Vec3{})

	var changes []*Player
	m.OnChange(func(p *Player) { changes = append(changes, p) })

	p := testPlayer(TeamHome, RoleCenter, 1)
	p.Pos = Vec3{X: -1.5}

	m.Update(0.016, pk, []*Player{p}) // pickup
	m.Update(0.016, pk, []*Player{p}) // held, no new notification
	m.Release(pk, 0.1)

	if len(changes) != 2 {
		t.Fatalf("changes = %d, want 2 (grant, loose)", len(changes))
	}
	if changes[0] != p || changes[1] != nil {
		t.Fatal("change sequence wrong")
	}
}

func TestStealTransfersDirectly(t *testing.T) {
	m := NewPossessionModel()
	pk := NewPuck(Vec3{})

	owner := testPlayer(TeamHome, RoleCenter, 1)
	thief := testPlayer(TeamAway, RoleCenter, 2)
	pk.Owner = owner

	count := 0
	m.OnChange(func(*Player) { count++ })

	m.Steal(pk, thief)
	if pk.Owner != thief {
		t.Fatal("steal did not transfer ownership")
	}
	if count != 1 {
		t.Fatalf("steal fired %d notifications, want 1", count)
	}
	if math.Abs(pk.Speed()) > 0 {
		t.Fatal("steal should not impart velocity")
	}
}
