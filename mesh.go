package planet

import (
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// Drawable is anything the renderer can rasterize.
type Drawable interface {
	Geometry() *Geometry
	Material() Material
	ModelMatrix() mgl64.Mat4
}

// Mesh pairs geometry with a material and an object transform. The
// geometry can be swapped while the mesh is being drawn.
type Mesh struct {
	geometry atomic.Pointer[Geometry]

	mu       sync.Mutex
	material Material
	position mgl64.Vec3
	rotation mgl64.Vec3
}

func NewMesh(g *Geometry, m Material) *Mesh {
	mesh := &Mesh{material: m}
	mesh.geometry.Store(g)
	return mesh
}

func (m *Mesh) Geometry() *Geometry {
	if m == nil {
		return nil
	}
	return m.geometry.Load()
}

// SetGeometry publishes fully built geometry; readers see either the old
// buffers or the new ones.
func (m *Mesh) SetGeometry(g *Geometry) {
	m.geometry.Store(g)
}

func (m *Mesh) Material() Material {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.material
}

func (m *Mesh) SetMaterial(mat Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.material = mat
}

func (m *Mesh) SetPosition(x, y, z float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = mgl64.Vec3{x, y, z}
}

func (m *Mesh) Position() mgl64.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// Rotation returns the Euler angles in radians.
func (m *Mesh) Rotation() mgl64.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rotation
}

func (m *Mesh) SetRotation(x, y, z float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation = mgl64.Vec3{x, y, z}
}

// RotateY adds rads to the rotation about the vertical axis.
func (m *Mesh) RotateY(rads float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation[1] += rads
}

// ModelMatrix is translate * rotY * rotX * rotZ.
func (m *Mesh) ModelMatrix() mgl64.Mat4 {
	m.mu.Lock()
	defer m.mu.Unlock()

	rot := mgl64.HomogRotate3DY(m.rotation.Y()).
		Mul4(mgl64.HomogRotate3DX(m.rotation.X())).
		Mul4(mgl64.HomogRotate3DZ(m.rotation.Z()))
	return mgl64.Translate3D(m.position.X(), m.position.Y(), m.position.Z()).Mul4(rot)
}
