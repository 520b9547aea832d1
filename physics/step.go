package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelbody/engine/util"
	"github.com/memmaker/voxelbody/engine/voxel"
)

// Step advances the body by one fixed tick:
//
//  1. uniform pre-drag on the velocity
//  2. acceleration from the movement intent
//  3. collision resolution of the attempted displacement
//  4. apply displacement, stop on blocked axes, update the ground flag
//  5. gravity
//  6. vertical drag and slipperiness-scaled horizontal drag
//  7. clear the intent
//
// A tick always produces a finite next state. A failed collision search
// freezes the body for this tick instead of letting it tunnel.
func (b *Body) Step() {
	if b.paused {
		return
	}
	b.velocity = b.velocity.Mul(b.tuning.BaseDrag)
	b.applyAcceleration()

	mtv, resolved := FindMTV(b.collider, b.boxMinAt(b.position.Add(b.velocity)), b.velocity)
	if !resolved {
		util.LogPhysicsWarning("[Body] failed to generate an MTV, bailing out")
		b.velocity = mgl32.Vec3{}
		mtv = mgl32.Vec3{}
	}
	b.applyVector(mtv)
	b.onGround = mtv.Y() > 0

	b.velocity[1] -= b.tuning.GravityAccel
	b.applyDrag()
	b.intent = mgl32.Vec3{}
}

// boxMinAt translates a feet position to the min corner of the body box.
func (b *Body) boxMinAt(feet mgl32.Vec3) mgl32.Vec3 {
	feet[0] -= b.box.Width / 2
	feet[2] -= b.box.Depth / 2
	return feet
}

func (b *Body) applyAcceleration() {
	direction := mgl32.Vec3{b.intent.X(), 0, b.intent.Z()}
	if direction.LenSqr() == 0 {
		// no intent, deceleration comes solely from drag
		return
	}
	var accel float32
	if b.onGround {
		blockSlip := b.groundSlip()
		accelMod := cube(b.tuning.GroundSlipBase) / cube(blockSlip)
		accel = b.moveAccel * accelMod
	} else {
		accel = b.tuning.AirAcceleration
	}
	b.velocity = b.velocity.Add(direction.Normalize().Mul(accel))
}

func (b *Body) applyVector(mtv mgl32.Vec3) {
	b.position = b.position.Add(b.velocity).Add(mtv)
	if mtv.X() != 0 {
		b.velocity[0] = 0
	}
	if mtv.Y() != 0 {
		b.velocity[1] = 0
	}
	if mtv.Z() != 0 {
		b.velocity[2] = 0
	}
}

func (b *Body) applyDrag() {
	b.velocity[1] *= b.tuning.BaseDrag
	horizontalDrag := b.groundSlip() * b.tuning.HorizontalDragMul
	b.velocity[0] *= horizontalDrag
	b.velocity[2] *= horizontalDrag
}

// groundSlip reads the slipperiness of the block beneath the feet. Airborne
// bodies report 1, a no-op for both acceleration and drag.
func (b *Body) groundSlip() float32 {
	if !b.onGround {
		return 1
	}
	blockPos := voxel.ToGridInt3(b.position)
	return b.ground.SlipperinessAt(blockPos.X, blockPos.Y-1, blockPos.Z)
}

func cube(x float32) float32 {
	return x * x * x
}
