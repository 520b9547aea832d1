package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/memmaker/voxelbody/engine/util"
)

// WorldCollider implements the broad-phase collision test of a body box
// against decomposed voxel geometry. Solidity is looked up per block, so any
// backing store works.
type WorldCollider struct {
	isSolid func(x, y, z int32) bool
	box     BoundingBox
}

func NewWorldCollider(box BoundingBox, isSolid func(x, y, z int32) bool) *WorldCollider {
	return &WorldCollider{isSolid: isSolid, box: box}
}

// TestCollision places the body box with its min corner at pos+offset and
// reports, for each axis, the smallest translation along that axis that
// clears every overlapping solid block. An empty result means the box
// overlaps nothing. A single zero vector means the box is buried too deep to
// separate along any axis.
func (w *WorldCollider) TestCollision(pos, offset mgl32.Vec3) []mgl32.Vec3 {
	boxMin := pos.Add(offset)
	boxMax := boxMin.Add(mgl32.Vec3{w.box.Width, w.box.Height, w.box.Depth})

	minX := int32(math.Floor(float64(boxMin.X())))
	maxX := int32(math.Floor(float64(boxMax.X())))
	minY := int32(math.Floor(float64(boxMin.Y())))
	maxY := int32(math.Floor(float64(boxMax.Y())))
	minZ := int32(math.Floor(float64(boxMin.Z())))
	maxZ := int32(math.Floor(float64(boxMax.Z())))

	overlapped := false
	var pushPos, pushNeg [3]float32

	for yi := minY; yi <= maxY; yi++ {
		for zi := minZ; zi <= maxZ; zi++ {
			for xi := minX; xi <= maxX; xi++ {
				if !w.isSolid(xi, yi, zi) {
					continue
				}
				blockMin := mgl32.Vec3{float32(xi), float32(yi), float32(zi)}
				blockMax := blockMin.Add(mgl32.Vec3{1, 1, 1})
				if !strictOverlap(boxMin, boxMax, blockMin, blockMax) {
					continue
				}
				overlapped = true
				for axis := 0; axis < 3; axis++ {
					pushPos[axis] = util.Max(pushPos[axis], blockMax[axis]-boxMin[axis])
					pushNeg[axis] = util.Max(pushNeg[axis], boxMax[axis]-blockMin[axis])
				}
			}
		}
	}

	if !overlapped {
		return nil
	}

	// a push of more than one block means buried geometry, not a
	// resolvable collision
	maxSeparation := float32(1.0) + FPMagic

	var transformVectors []mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		amount := pushPos[axis] + FPMagic
		if pushNeg[axis] < pushPos[axis] {
			amount = -(pushNeg[axis] + FPMagic)
		}
		if util.Abs(amount) > maxSeparation {
			continue
		}
		var suggestion mgl32.Vec3
		suggestion[axis] = amount
		transformVectors = append(transformVectors, suggestion)
	}
	if len(transformVectors) == 0 {
		return []mgl32.Vec3{{}}
	}
	return transformVectors
}

// strictOverlap ignores touching faces, a box resting exactly on a block
// surface does not collide with it.
func strictOverlap(aMin, aMax, bMin, bMax mgl32.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if aMin[axis] >= bMax[axis] || aMax[axis] <= bMin[axis] {
			return false
		}
	}
	return true
}
