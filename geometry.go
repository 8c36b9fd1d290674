package planet

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry holds indexed triangle buffers ready to hand to a renderer.
// Vertices and Normals are flat xyz triples, one normal per vertex.
type Geometry struct {
	Vertices []float64
	Indices  []uint32
	Normals  []float64
}

func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / 3
}

func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

func (g *Geometry) Vertex(i int) mgl64.Vec3 {
	return mgl64.Vec3{g.Vertices[i*3], g.Vertices[i*3+1], g.Vertices[i*3+2]}
}

func (g *Geometry) Normal(i int) mgl64.Vec3 {
	return mgl64.Vec3{g.Normals[i*3], g.Normals[i*3+1], g.Normals[i*3+2]}
}

// Triangle returns the three vertex indices of triangle i.
func (g *Geometry) Triangle(i int) (uint32, uint32, uint32) {
	return g.Indices[i*3], g.Indices[i*3+1], g.Indices[i*3+2]
}

// Validate checks the buffer lengths and that every index addresses a vertex.
func (g *Geometry) Validate() error {
	if len(g.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertex floats is not a multiple of 3", ErrCorruptGeometry, len(g.Vertices))
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrCorruptGeometry, len(g.Indices))
	}
	if len(g.Normals) != len(g.Vertices) {
		return fmt.Errorf("%w: %d normal floats for %d vertex floats", ErrCorruptGeometry, len(g.Normals), len(g.Vertices))
	}

	count := uint32(g.VertexCount())
	for i, index := range g.Indices {
		if index >= count {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrCorruptGeometry, index, i, count)
		}
	}
	return nil
}

func (g *Geometry) append(other *Geometry) {
	g.Vertices = append(g.Vertices, other.Vertices...)
	g.Indices = append(g.Indices, other.Indices...)
	g.Normals = append(g.Normals, other.Normals...)
}

// Weld returns a copy of the geometry where vertices closer than epsilon
// share one index. Cube faces duplicate the vertices along their shared
// edges, so a closed planet of resolution n welds down to 6n²+2 vertices.
// The first occurrence of a vertex keeps its normal.
func (g *Geometry) Weld(epsilon float64) *Geometry {
	if epsilon <= 0 {
		epsilon = 1e-9
	}

	welded := &Geometry{
		Vertices: make([]float64, 0, len(g.Vertices)),
		Indices:  make([]uint32, 0, len(g.Indices)),
		Normals:  make([]float64, 0, len(g.Normals)),
	}

	pointIndex := make(map[[3]int64]uint32, g.VertexCount())
	remap := make([]uint32, g.VertexCount())
	for i := 0; i < g.VertexCount(); i++ {
		key := [3]int64{
			int64(math.Round(g.Vertices[i*3] / epsilon)),
			int64(math.Round(g.Vertices[i*3+1] / epsilon)),
			int64(math.Round(g.Vertices[i*3+2] / epsilon)),
		}

		if index, found := pointIndex[key]; found {
			remap[i] = index
			continue
		}

		index := uint32(welded.VertexCount())
		welded.Vertices = append(welded.Vertices, g.Vertices[i*3:i*3+3]...)
		welded.Normals = append(welded.Normals, g.Normals[i*3:i*3+3]...)
		pointIndex[key] = index
		remap[i] = index
	}

	for _, index := range g.Indices {
		welded.Indices = append(welded.Indices, remap[index])
	}
	return welded
}

// Copy returns a deep copy of the buffers.
func (g *Geometry) Copy() *Geometry {
	return &Geometry{
		Vertices: append([]float64(nil), g.Vertices...),
		Indices:  append([]uint32(nil), g.Indices...),
		Normals:  append([]float64(nil), g.Normals...),
	}
}
