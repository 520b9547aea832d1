package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func solidBelow(level int32) func(x, y, z int32) bool {
	return func(x, y, z int32) bool { return y < level }
}

func solidEverywhere(x, y, z int32) bool { return true }

func solidNowhere(x, y, z int32) bool { return false }

func TestWorldColliderNoOverlap(t *testing.T) {
	collider := NewWorldCollider(PlayerBoundingBox(), solidBelow(9))

	result := collider.TestCollision(mgl32.Vec3{0, 9, 0}, mgl32.Vec3{})

	if len(result) != 0 {
		t.Errorf("resting exactly on the surface reported corrections %v, want none", result)
	}
}

func TestWorldColliderFloorPenetration(t *testing.T) {
	collider := NewWorldCollider(PlayerBoundingBox(), solidBelow(9))

	result := collider.TestCollision(mgl32.Vec3{0.2, 8.75, 0.2}, mgl32.Vec3{})

	if len(result) == 0 {
		t.Fatal("expected corrections for a box 0.25 into the floor")
	}
	var up *mgl32.Vec3
	for i := range result {
		if result[i].Y() > 0 {
			up = &result[i]
		}
	}
	if up == nil {
		t.Fatalf("no upward correction in %v", result)
	}
	if got := up.Y(); got < 0.25 || got > 0.26 {
		t.Errorf("upward correction = %f, want just above the 0.25 penetration depth", got)
	}
}

func TestWorldColliderCorrectionResolves(t *testing.T) {
	collider := NewWorldCollider(PlayerBoundingBox(), solidBelow(9))
	pos := mgl32.Vec3{0.2, 8.75, 0.2}

	result := collider.TestCollision(pos, mgl32.Vec3{})
	for _, correction := range result {
		if correction.Y() <= 0 {
			continue
		}
		if rest := collider.TestCollision(pos, correction); len(rest) != 0 {
			t.Errorf("applying correction %v still reports %v", correction, rest)
		}
	}
}

func TestWorldColliderWallFromPositiveSide(t *testing.T) {
	// wall occupying x < 1, box approaching from the positive side
	wall := func(x, y, z int32) bool { return x < 1 }
	collider := NewWorldCollider(PlayerBoundingBox(), wall)

	result := collider.TestCollision(mgl32.Vec3{0.9, 0, 0}, mgl32.Vec3{})

	foundPositiveX := false
	for _, correction := range result {
		if correction.X() > 0 {
			foundPositiveX = true
			if correction.X() < 0.1 || correction.X() > 0.11 {
				t.Errorf("x correction = %f, want just above 0.1", correction.X())
			}
		}
	}
	if !foundPositiveX {
		t.Errorf("no positive x correction in %v", result)
	}
}

func TestWorldColliderBuriedReportsStuck(t *testing.T) {
	collider := NewWorldCollider(PlayerBoundingBox(), solidEverywhere)

	// centered on a block corner, every axis needs more than a block of push
	result := collider.TestCollision(mgl32.Vec3{-0.3, 3, -0.3}, mgl32.Vec3{})

	if len(result) != 1 || result[0] != (mgl32.Vec3{}) {
		t.Errorf("buried box reported %v, want the single zero-vector sentinel", result)
	}
}

func TestWorldColliderEmptyWorld(t *testing.T) {
	collider := NewWorldCollider(PlayerBoundingBox(), solidNowhere)

	if result := collider.TestCollision(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0.5, -0.5, 0}); len(result) != 0 {
		t.Errorf("empty world reported corrections %v", result)
	}
}
