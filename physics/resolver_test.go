package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type colliderFunc func(pos, offset mgl32.Vec3) []mgl32.Vec3

func (f colliderFunc) TestCollision(pos, offset mgl32.Vec3) []mgl32.Vec3 {
	return f(pos, offset)
}

func TestFindMTVOpenAir(t *testing.T) {
	queries := 0
	collider := colliderFunc(func(pos, offset mgl32.Vec3) []mgl32.Vec3 {
		queries++
		return nil
	})

	mtv, resolved := FindMTV(collider, mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 0})

	if !resolved {
		t.Fatal("expected the zero vector to resolve in open air")
	}
	if mtv != (mgl32.Vec3{}) {
		t.Errorf("mtv = %v, want zero vector", mtv)
	}
	if queries != 1 {
		t.Errorf("collision primitive queried %d times, want 1", queries)
	}
}

func TestFindMTVFlatFloor(t *testing.T) {
	collider := colliderFunc(func(pos, offset mgl32.Vec3) []mgl32.Vec3 {
		if offset == (mgl32.Vec3{}) {
			return []mgl32.Vec3{{0, 1, 0}}
		}
		return nil
	})

	mtv, resolved := FindMTV(collider, mgl32.Vec3{0, 8, 0}, mgl32.Vec3{0, -1, 0})

	if !resolved {
		t.Fatal("expected the suggested upward correction to resolve")
	}
	if mtv != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("mtv = %v, want (0, 1, 0)", mtv)
	}
}

func TestFindMTVBoxedIn(t *testing.T) {
	collider := colliderFunc(func(pos, offset mgl32.Vec3) []mgl32.Vec3 {
		return []mgl32.Vec3{{}}
	})

	mtv, resolved := FindMTV(collider, mgl32.Vec3{}, mgl32.Vec3{0, -1, 0})

	if resolved {
		t.Fatal("expected the search to be exhausted when every path is a dead end")
	}
	if mtv != (mgl32.Vec3{}) {
		t.Errorf("mtv = %v, want zero vector on failure", mtv)
	}
}

func TestFindMTVExhaustsWhenNothingResolves(t *testing.T) {
	collider := colliderFunc(func(pos, offset mgl32.Vec3) []mgl32.Vec3 {
		return []mgl32.Vec3{{0.2, 0, 0}, {0, 0.2, 0}, {0, 0, 0.2}}
	})

	_, resolved := FindMTV(collider, mgl32.Vec3{}, mgl32.Vec3{0, -0.3, 0})

	if resolved {
		t.Fatal("expected exhaustion when no candidate ever separates")
	}
}

func TestFindMTVSpeedBound(t *testing.T) {
	vel := mgl32.Vec3{0, -0.3, 0}
	budget := vel.LenSqr() + FPMagic
	var explored []mgl32.Vec3
	collider := colliderFunc(func(pos, offset mgl32.Vec3) []mgl32.Vec3 {
		explored = append(explored, offset)
		return []mgl32.Vec3{{0.2, 0, 0}, {0, 0.2, 0}, {0, 0, 0.2}}
	})

	FindMTV(collider, mgl32.Vec3{}, vel)

	for _, candidate := range explored {
		if vel.Add(candidate).LenSqr() > budget {
			t.Errorf("candidate %v violates the speed bound", candidate)
		}
	}
	if len(explored) < 2 {
		t.Fatalf("expected the search to explore beyond the zero vector, got %d queries", len(explored))
	}
}

func TestFindMTVPrefersSmallestTie(t *testing.T) {
	collider := colliderFunc(func(pos, offset mgl32.Vec3) []mgl32.Vec3 {
		if offset == (mgl32.Vec3{}) {
			return []mgl32.Vec3{{0, 2, 0}, {1, 0, 0}}
		}
		return nil
	})

	mtv, resolved := FindMTV(collider, mgl32.Vec3{}, mgl32.Vec3{-1, -2, 0})

	if !resolved {
		t.Fatal("expected both branches to resolve")
	}
	if mtv != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("mtv = %v, want the smaller correction (1, 0, 0)", mtv)
	}
}
