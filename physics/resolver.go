package physics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FPMagic absorbs floating point noise when comparing squared speeds.
const FPMagic float32 = 1e-4

// FindMTV searches for the minimum translation vector that turns the
// attempted displacement into a collision-free one. pos is the min corner of
// the body box at the attempted position, vel the velocity that produced it.
//
// The search is breadth-first over candidate corrections: each candidate is
// tested against the collision primitive, and the suggested per-axis
// corrections it returns spawn new candidates. World geometry is made of
// arbitrary axis-aligned boxes, so the true correction may have to walk
// along an edge formed by several adjacent boxes; a single box-vs-box MTV is
// not enough. Candidates that would make the body faster than it was trying
// to move are rejected, which bounds the search.
//
// The second return value is false if the search space was exhausted without
// finding a separating correction. The caller is expected to stop the body
// for this tick.
func FindMTV(collider CollisionTester, pos, vel mgl32.Vec3) (mgl32.Vec3, bool) {
	speedBudget := vel.LenSqr() + FPMagic
	queue := []mgl32.Vec3{{}}
	var resolvedCandidates []mgl32.Vec3

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		transformVectors := collider.TestCollision(pos, current)
		if len(transformVectors) == 0 {
			// current already separates the box; keep draining the queue, a
			// sibling candidate of the same depth may be smaller.
			resolvedCandidates = append(resolvedCandidates, current)
			continue
		}
		if len(resolvedCandidates) > 0 {
			// once a separating candidate exists we only collect ties,
			// deeper candidates cannot beat it
			continue
		}
		if containsZeroVector(transformVectors) {
			// no further separation possible along this path
			continue
		}
		for _, vector := range transformVectors {
			candidate := current.Add(vector)
			if vel.Add(candidate).LenSqr() <= speedBudget {
				queue = append(queue, candidate)
			}
		}
	}

	if len(resolvedCandidates) == 0 {
		return mgl32.Vec3{}, false
	}
	return minByLength(resolvedCandidates), true
}

func containsZeroVector(vectors []mgl32.Vec3) bool {
	for _, v := range vectors {
		if v.X() == 0 && v.Y() == 0 && v.Z() == 0 {
			return true
		}
	}
	return false
}

func minByLength(vectors []mgl32.Vec3) mgl32.Vec3 {
	smallest := vectors[0]
	for _, v := range vectors[1:] {
		if v.LenSqr() < smallest.LenSqr() {
			smallest = v
		}
	}
	return smallest
}
