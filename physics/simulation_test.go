package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelbody/engine/voxel"
)

// flatWorld returns a one-chunk map with a solid stone floor at the given
// height and a body standing on top of it.
func flatWorld(t *testing.T, floorLevel int32, feet mgl32.Vec3) (*voxel.Map, *Body) {
	t.Helper()
	m := voxel.NewMap(1, 1, 1)
	m.SetFloorAtHeight(floorLevel, m.BlockLibrary().NewBlockFromName("stone"))
	return m, NewBodyInMap(feet, m, DefaultTuning())
}

func TestBodySettlesOnFloor(t *testing.T) {
	_, body := flatWorld(t, 8, mgl32.Vec3{16, 12, 16})

	for tick := 0; tick < 100; tick++ {
		body.Step()
	}

	if got := body.Position().Y(); mgl32.Abs(got-9) > 0.01 {
		t.Errorf("feet height after falling = %f, want about 9", got)
	}
	if !body.OnGround() {
		t.Error("body should be grounded after settling")
	}
	if got := body.Velocity().Y(); mgl32.Abs(got) > DefaultTuning().GravityAccel {
		t.Errorf("vertical velocity at rest = %f, want within one gravity step of zero", got)
	}
}

func TestRestingBodyStaysPut(t *testing.T) {
	_, body := flatWorld(t, 8, mgl32.Vec3{16, 12, 16})
	for tick := 0; tick < 100; tick++ {
		body.Step()
	}
	settled := body.Position()

	for tick := 0; tick < 100; tick++ {
		body.Step()
	}

	drift := body.Position().Sub(settled)
	if drift.Len() > 0.001 {
		t.Errorf("resting body drifted by %v", drift)
	}
	horizontal := mgl32.Vec3{body.Velocity().X(), 0, body.Velocity().Z()}
	if horizontal.Len() > 1e-5 {
		t.Errorf("resting body has horizontal velocity %v", horizontal)
	}
}

func TestWalkingNeverPenetratesGeometry(t *testing.T) {
	m, body := flatWorld(t, 8, mgl32.Vec3{16, 12, 16})
	// scatter obstacles on the floor around the walking path
	library := m.BlockLibrary()
	for x := int32(10); x < 24; x += 3 {
		for z := int32(10); z < 24; z += 2 {
			m.SetBlock(x, 9, z, library.NewBlockFromName("dirt"))
		}
	}
	collider := NewWorldCollider(body.BoundingBox(), m.IsSolidBlockAt)

	for tick := 0; tick < 300; tick++ {
		body.MoveAngle(float32(tick*7), false)
		body.Step()
		if overlap := collider.TestCollision(body.boxMinAt(body.Position()), mgl32.Vec3{}); len(overlap) != 0 {
			t.Fatalf("tick %d: body at %v overlaps geometry, corrections %v", tick, body.Position(), overlap)
		}
	}
}

func TestWalkingIntoWallStopsBody(t *testing.T) {
	m, body := flatWorld(t, 8, mgl32.Vec3{16, 9, 16})
	library := m.BlockLibrary()
	// a two-block wall across the walking direction
	for y := int32(9); y <= 10; y++ {
		for x := int32(0); x < 32; x++ {
			m.SetBlock(x, y, 18, library.NewBlockFromName("stone"))
		}
	}

	for tick := 0; tick < 200; tick++ {
		body.MoveAngle(0, false) // walk toward +Z
		body.Step()
	}

	if got := body.Position().Z(); got > 18 {
		t.Errorf("body walked through the wall, z = %f", got)
	}
	if got := body.Velocity().Z(); mgl32.Abs(got) > 0.01 {
		t.Errorf("velocity into the wall = %f, want stopped", got)
	}
}

func TestJumpFromGroundGainsHeight(t *testing.T) {
	_, body := flatWorld(t, 8, mgl32.Vec3{16, 9, 16})
	for tick := 0; tick < 20; tick++ {
		body.Step()
	}
	if !body.OnGround() {
		t.Fatal("body should be grounded before jumping")
	}

	body.Jump()
	peak := body.Position().Y()
	for tick := 0; tick < 12; tick++ {
		body.Step()
		if y := body.Position().Y(); y > peak {
			peak = y
		}
	}

	// vanilla jump reaches about 1.25 blocks
	if peak < 10 {
		t.Errorf("jump peak = %f, want a rise above the floor surface", peak)
	}
}

func TestIceIsMoreSlipperyThanStone(t *testing.T) {
	runway := func(blockName string) float32 {
		m := voxel.NewMap(1, 1, 1)
		m.SetFloorAtHeight(8, m.BlockLibrary().NewBlockFromName(blockName))
		body := NewBodyInMap(mgl32.Vec3{4, 9, 4}, m, DefaultTuning())
		for tick := 0; tick < 20; tick++ {
			body.Step() // settle
		}
		// accelerate for a few ticks, then release and watch the glide
		for tick := 0; tick < 10; tick++ {
			body.MoveAngle(0, false)
			body.Step()
		}
		start := body.Position().Z()
		for tick := 0; tick < 30; tick++ {
			body.Step()
		}
		return body.Position().Z() - start
	}

	stoneGlide := runway("stone")
	iceGlide := runway("ice")

	if iceGlide <= stoneGlide {
		t.Errorf("glide on ice = %f, on stone = %f, want ice to carry farther", iceGlide, stoneGlide)
	}
}
