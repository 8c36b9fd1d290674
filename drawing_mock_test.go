package planet

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const float64EqualityThreshold = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vecAlmostEqual(a, b mgl64.Vec3) bool {
	return almostEqual(a.X(), b.X()) && almostEqual(a.Y(), b.Y()) && almostEqual(a.Z(), b.Z())
}

// recordingBatcher is a PolygonBatcher that keeps what it is given.
type recordingBatcher struct {
	triangles [][3]ScreenVertex
	outlines  [][3]ScreenVertex
}

func (b *recordingBatcher) AddTriangle(v [3]ScreenVertex) {
	b.triangles = append(b.triangles, v)
}

func (b *recordingBatcher) AddTriangleOutline(v [3]ScreenVertex, strokeWidth float32) {
	b.outlines = append(b.outlines, v)
}
