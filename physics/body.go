package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelbody/engine/util"
	"github.com/memmaker/voxelbody/engine/voxel"
)

const (
	PlayerWidth  float32 = 0.6
	PlayerHeight float32 = 1.8

	SprintMultiplier float32 = 1.3
	WalkingSpeed     float32 = 0.1
)

// GroundMaterialLookup reports the friction coefficient of the block at a
// grid position. Implementations return 1.0 for air and unknown blocks.
type GroundMaterialLookup interface {
	SlipperinessAt(x, y, z int32) float32
}

// CollisionTester is the broad-phase primitive of the resolver. Given the
// min corner of a body box and a tentative offset, it returns suggested
// axis-aligned corrections that would separate the box from solid geometry.
// An empty result means no overlap. A zero vector in the result means the
// box cannot be separated along this path.
type CollisionTester interface {
	TestCollision(pos, offset mgl32.Vec3) []mgl32.Vec3
}

type MovementProfile struct {
	WalkingSpeed     float32
	SprintMultiplier float32
}

func DefaultMovementProfile() MovementProfile {
	return MovementProfile{
		WalkingSpeed:     WalkingSpeed,
		SprintMultiplier: SprintMultiplier,
	}
}

type BoundingBox struct {
	Width  float32
	Depth  float32
	Height float32
}

func PlayerBoundingBox() BoundingBox {
	return BoundingBox{Width: PlayerWidth, Depth: PlayerWidth, Height: PlayerHeight}
}

// Body owns the motion state of one simulated entity: feet position,
// velocity and the movement intent for the current tick. It is stepped by
// exactly one goroutine.
type Body struct {
	position mgl32.Vec3
	velocity mgl32.Vec3
	intent   mgl32.Vec3
	onGround bool

	moveAccel float32
	profile   MovementProfile
	box       BoundingBox

	tuning   Tuning
	ground   GroundMaterialLookup
	collider CollisionTester

	paused bool
}

// NewBody creates a body standing at the given feet position.
func NewBody(position mgl32.Vec3, profile MovementProfile, box BoundingBox, tuning Tuning, ground GroundMaterialLookup, collider CollisionTester) *Body {
	return &Body{
		position:  position,
		profile:   profile,
		box:       box,
		moveAccel: profile.WalkingSpeed,
		tuning:    tuning,
		ground:    ground,
		collider:  collider,
	}
}

// NewBodyInMap wires a body to a voxel map for both ground friction lookups
// and collision tests.
func NewBodyInMap(position mgl32.Vec3, voxelMap *voxel.Map, tuning Tuning) *Body {
	box := PlayerBoundingBox()
	return NewBody(position, DefaultMovementProfile(), box, tuning, voxelMap, NewWorldCollider(box, voxelMap.IsSolidBlockAt))
}

func (b *Body) Position() mgl32.Vec3 {
	return b.position
}

func (b *Body) Velocity() mgl32.Vec3 {
	return b.velocity
}

func (b *Body) OnGround() bool {
	return b.onGround
}

func (b *Body) BoundingBox() BoundingBox {
	return b.box
}

// SetPosition teleports the body and clears its motion, the way a position
// reset from the outside world does.
func (b *Body) SetPosition(pos mgl32.Vec3) {
	b.position = pos
	b.velocity = mgl32.Vec3{}
	b.intent = mgl32.Vec3{}
}

// MoveToward sets the movement intent to point from the body to the target.
// The vertical component is ignored, intent is horizontal only.
func (b *Body) MoveToward(target mgl32.Vec3) {
	target[1] = b.position.Y()
	b.intent = target.Sub(b.position)
}

// MoveVector sets the movement intent directly. Only direction matters, the
// vector is normalized before use.
func (b *Body) MoveVector(direction mgl32.Vec3) {
	direction[1] = 0
	b.intent = direction
}

// MoveAngle sets the movement intent from a yaw angle, 0 facing +Z.
func (b *Body) MoveAngle(angle float32, radians bool) {
	if !radians {
		angle = util.ToRadian(angle)
	}
	b.intent = mgl32.Vec3{util.Sin(angle), 0, util.Cos(angle)}
}

// Jump gives the body its fixed vertical jump speed plus a small boost in
// the direction it is already moving. Does nothing while airborne.
func (b *Body) Jump() {
	if !b.onGround {
		return
	}
	horizontal := mgl32.Vec3{b.velocity.X(), 0, b.velocity.Z()}
	if horizontal.LenSqr() > 0 {
		b.velocity = b.velocity.Add(horizontal.Normalize().Mul(b.tuning.JumpForwardBoost))
	}
	b.velocity[1] = b.tuning.JumpSpeed
}

// Walk selects the base movement acceleration.
func (b *Body) Walk() {
	b.moveAccel = b.profile.WalkingSpeed
}

// Sprint selects the sprinting movement acceleration.
func (b *Body) Sprint() {
	b.moveAccel = b.profile.WalkingSpeed * b.profile.SprintMultiplier
}

// Stop zeroes the velocity and suspends ticking. Idempotent.
func (b *Body) Stop() {
	b.velocity = mgl32.Vec3{}
	b.paused = true
}

// Resume re-enables ticking. Idempotent.
func (b *Body) Resume() {
	b.paused = false
}

func (b *Body) IsPaused() bool {
	return b.paused
}
