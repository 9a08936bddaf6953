package actor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// AABB Utility Function Tests
// =============================================================================

func TestAABBOverlaps(t *testing.T) {
	unit := AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{1, 1, 1}}

	tests := []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"Separated on X axis", AABB{Min: mgl64.Vec3{2, 0, 0}, Max: mgl64.Vec3{3, 1, 1}}, false},
		{"Separated on Y axis", AABB{Min: mgl64.Vec3{0, -2, 0}, Max: mgl64.Vec3{1, -1, 1}}, false},
		{"Separated on Z axis", AABB{Min: mgl64.Vec3{0, 0, 2}, Max: mgl64.Vec3{1, 1, 3}}, false},
		{"Partial overlap", AABB{Min: mgl64.Vec3{0.5, 0.5, 0.5}, Max: mgl64.Vec3{1.5, 1.5, 1.5}}, true},
		{"Touching faces", AABB{Min: mgl64.Vec3{1, 0, 0}, Max: mgl64.Vec3{2, 1, 1}}, true},
		{"Contained", AABB{Min: mgl64.Vec3{0.25, 0.25, 0.25}, Max: mgl64.Vec3{0.75, 0.75, 0.75}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, unit.Overlaps(tt.other))
			// symmetry
			assert.Equal(t, tt.expected, tt.other.Overlaps(unit))
		})
	}
}

func TestAABBContainsPoint(t *testing.T) {
	aabb := AABB{Min: mgl64.Vec3{-1, -1, -1}, Max: mgl64.Vec3{1, 1, 1}}

	assert.True(t, aabb.ContainsPoint(mgl64.Vec3{0, 0, 0}))
	assert.True(t, aabb.ContainsPoint(mgl64.Vec3{1, 1, 1}), "boundary is inside")
	assert.False(t, aabb.ContainsPoint(mgl64.Vec3{1.01, 0, 0}))
	assert.False(t, aabb.ContainsPoint(mgl64.Vec3{0, -2, 0}))
}

func TestComputeAABB(t *testing.T) {
	t.Run("empty set", func(t *testing.T) {
		assert.Equal(t, AABB{}, ComputeAABB(nil))
	})

	t.Run("single point", func(t *testing.T) {
		p := mgl64.Vec3{1, 2, 3}
		assert.Equal(t, AABB{Min: p, Max: p}, ComputeAABB([]mgl64.Vec3{p}))
	})

	t.Run("box corners", func(t *testing.T) {
		aabb := ComputeAABB(NewBoxMesh(mgl64.Vec3{1, 2, 3}).Vertices)
		assert.Equal(t, mgl64.Vec3{-1, -2, -3}, aabb.Min)
		assert.Equal(t, mgl64.Vec3{1, 2, 3}, aabb.Max)
	})
}
