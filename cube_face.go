package planet

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxFaceResolution is the largest resolution whose grid points can all be
// addressed by uint32 indices.
const MaxFaceResolution = 1<<16 - 1

// CubeFace is one side of the cube that gets subdivided into a grid and
// warped onto the unit sphere.
type CubeFace struct {
	resolution int
	localUp    mgl64.Vec3

	// tangent axes spanning the face, derived from localUp
	axisA mgl64.Vec3
	axisB mgl64.Vec3
}

// NewCubeFace creates a face with resolution subdivisions per edge facing
// along localUp, which must be one of the six principal axis directions.
func NewCubeFace(resolution int, localUp mgl64.Vec3) (*CubeFace, error) {
	if resolution < 1 || resolution > MaxFaceResolution {
		return nil, fmt.Errorf("cube face: %w (got %d)", ErrInvalidResolution, resolution)
	}
	if !isPrincipalAxis(localUp) {
		return nil, fmt.Errorf("cube face: %w (got %v)", ErrInvalidDirection, localUp)
	}

	f := &CubeFace{
		resolution: resolution,
		localUp:    localUp,
	}
	f.UpdateLocalAxes()
	return f, nil
}

func isPrincipalAxis(v mgl64.Vec3) bool {
	nonZero := 0
	for _, c := range v {
		switch c {
		case 0:
		case 1, -1:
			nonZero++
		default:
			return false
		}
	}
	return nonZero == 1
}

// UpdateLocalAxes recomputes axisA and axisB from localUp. axisA is localUp
// with its components rotated (x, y, z) -> (y, z, x) and axisB is
// localUp × axisA.
func (f *CubeFace) UpdateLocalAxes() {
	f.axisA = mgl64.Vec3{f.localUp.Y(), f.localUp.Z(), f.localUp.X()}
	f.axisB = f.localUp.Cross(f.axisA)
}

// SetLocalUp points the face in a new direction and recomputes its axes.
func (f *CubeFace) SetLocalUp(localUp mgl64.Vec3) error {
	if !isPrincipalAxis(localUp) {
		return fmt.Errorf("cube face: %w (got %v)", ErrInvalidDirection, localUp)
	}
	f.localUp = localUp
	f.UpdateLocalAxes()
	return nil
}

func (f *CubeFace) Resolution() int { return f.resolution }

func (f *CubeFace) LocalUp() mgl64.Vec3 { return f.localUp }

func (f *CubeFace) AxisA() mgl64.Vec3 { return f.axisA }

func (f *CubeFace) AxisB() mgl64.Vec3 { return f.axisB }

// VertexCount is the number of grid points, (resolution+1)².
func (f *CubeFace) VertexCount() int {
	return f.rowLength() * f.rowLength()
}

func (f *CubeFace) TriangleCount() int {
	return 2 * f.resolution * f.resolution
}

func (f *CubeFace) rowLength() int {
	return f.resolution + 1
}

// gridOffset maps grid step i in [0, resolution] to [-1, 1] along an axis.
func (f *CubeFace) gridOffset(i int) float64 {
	percent := float64(i) / float64(f.resolution)
	return (percent - 0.5) * 2
}

// Generate builds the face's vertices, normals and indices. Indices start
// at indexOffset so the result can be appended to a larger buffer that
// already holds indexOffset vertices.
func (f *CubeFace) Generate(indexOffset int) (*Geometry, error) {
	if indexOffset < 0 {
		return nil, fmt.Errorf("cube face %v: %w (got %d)", f.localUp, ErrInvalidOffset, indexOffset)
	}
	if uint64(indexOffset)+uint64(f.VertexCount())-1 > math.MaxUint32 {
		return nil, fmt.Errorf("cube face %v: %w: %d vertices from %d overflow uint32 indices",
			f.localUp, ErrInvalidOffset, f.VertexCount(), indexOffset)
	}

	g := &Geometry{
		Vertices: make([]float64, 0, f.VertexCount()*3),
		Indices:  make([]uint32, 0, f.TriangleCount()*3),
		Normals:  make([]float64, 0, f.VertexCount()*3),
	}

	// rows outer, columns inner; the index loop below relies on this order
	for y := 0; y <= f.resolution; y++ {
		pointOnAxisB := f.axisB.Mul(f.gridOffset(y))

		for x := 0; x <= f.resolution; x++ {
			pointOnAxisA := f.axisA.Mul(f.gridOffset(x))
			pointOnUnitCube := f.localUp.Add(pointOnAxisA).Add(pointOnAxisB)

			vertex := PointToUnitSphere(pointOnUnitCube)
			normal := vertex.Normalize()

			g.Vertices = append(g.Vertices, vertex.X(), vertex.Y(), vertex.Z())
			g.Normals = append(g.Normals, normal.X(), normal.Y(), normal.Z())
		}
	}

	row := f.rowLength()
	for y := 0; y < f.resolution; y++ {
		for x := 0; x < f.resolution; x++ {
			a := uint32(x + y*row + indexOffset)
			b := a + 1
			c := a + uint32(row)
			d := c + 1

			// two triangles per quad, counter-clockwise seen from outside
			g.Indices = append(g.Indices, a, b, c)
			g.Indices = append(g.Indices, c, b, d)
		}
	}

	return g, nil
}

// PointToUnitSphere maps a point on the surface of the [-1,1]³ cube onto
// the unit sphere. Compared to plain normalization it spreads the vertices
// more evenly across each face.
func PointToUnitSphere(p mgl64.Vec3) mgl64.Vec3 {
	x2 := p.X() * p.X()
	y2 := p.Y() * p.Y()
	z2 := p.Z() * p.Z()

	return mgl64.Vec3{
		p.X() * math.Sqrt(1-y2/2-z2/2+(y2*z2)/3),
		p.Y() * math.Sqrt(1-x2/2-z2/2+(x2*z2)/3),
		p.Z() * math.Sqrt(1-x2/2-y2/2+(x2*y2)/3),
	}
}
