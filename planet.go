package planet

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// Directions are the outward normals of the six cube faces in the order
// the faces are generated: UP, DOWN, RIGHT, LEFT, FRONT, BACK.
var Directions = [6]mgl64.Vec3{
	{0, 1, 0},
	{0, -1, 0},
	{1, 0, 0},
	{-1, 0, 0},
	{0, 0, 1},
	{0, 0, -1},
}

const DefaultRotationStep = 0.001

type State int

const (
	StateUninitialized State = iota
	StateGeometryBuilt
	StateRenderableCreated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateGeometryBuilt:
		return "geometry built"
	case StateRenderableCreated:
		return "renderable created"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Planet is a sphere mesh made of six warped cube faces.
type Planet struct {
	mu           sync.Mutex
	resolution   int
	faces        []*CubeFace
	material     Material
	rotationStep float64
	state        State

	geometry atomic.Pointer[Geometry]
	mesh     *Mesh
}

type Option func(*Planet)

func WithMaterial(m Material) Option {
	return func(p *Planet) {
		p.material = m
	}
}

// WithRotationStep sets the rotation about Y applied on every Update.
func WithRotationStep(rads float64) Option {
	return func(p *Planet) {
		p.rotationStep = rads
	}
}

// NewPlanet creates the planet and its faces. Geometry is not generated
// until GenerateGeometry or CreateRenderable is called.
func NewPlanet(resolution int, opts ...Option) (*Planet, error) {
	if err := validateResolution(resolution); err != nil {
		return nil, err
	}

	p := &Planet{
		resolution:   resolution,
		material:     DefaultMaterial(),
		rotationStep: DefaultRotationStep,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.BuildFaces(); err != nil {
		return nil, err
	}
	return p, nil
}

// MaxResolution is the largest resolution whose six combined faces can all
// be addressed by uint32 indices.
const MaxResolution = 26753

func validateResolution(resolution int) error {
	if resolution < 1 || resolution > MaxResolution {
		return fmt.Errorf("planet: %w (got %d, want 1..%d)", ErrInvalidResolution, resolution, MaxResolution)
	}
	return nil
}

// BuildFaces replaces the faces with one face per direction at the
// planet's resolution.
func (p *Planet) BuildFaces() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	faces, err := buildFaces(p.resolution)
	if err != nil {
		return err
	}
	p.faces = faces
	return nil
}

func buildFaces(resolution int) ([]*CubeFace, error) {
	faces := make([]*CubeFace, 0, len(Directions))
	for _, direction := range Directions {
		face, err := NewCubeFace(resolution, direction)
		if err != nil {
			return nil, fmt.Errorf("planet: building faces: %w", err)
		}
		faces = append(faces, face)
	}
	return faces, nil
}

func (p *Planet) Resolution() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resolution
}

// Faces returns copies of the planet's faces in generation order.
// Changing them does not affect the planet.
func (p *Planet) Faces() []*CubeFace {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*CubeFace, 0, len(p.faces))
	for _, f := range p.faces {
		c := *f
		out = append(out, &c)
	}
	return out
}

func (p *Planet) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// GenerateGeometry builds the combined buffers of all faces and publishes
// them. Calling it again produces identical buffers.
func (p *Planet) GenerateGeometry() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generateLocked()
}

func (p *Planet) generateLocked() error {
	g, err := generateGeometry(p.faces)
	if err != nil {
		return err
	}

	p.geometry.Store(g)
	if p.mesh != nil {
		p.mesh.SetGeometry(g)
	}
	if p.state < StateGeometryBuilt {
		p.state = StateGeometryBuilt
	}

	log.Printf("Planet generated: resolution %d, %d vertices, %d triangles, %d unique vertices",
		p.resolution, g.VertexCount(), g.TriangleCount(), g.Weld(weldEpsilon).VertexCount())
	return nil
}

const weldEpsilon = 1e-6

// generateGeometry runs the faces in parallel. Each face gets the offset of
// the vertices emitted by the faces before it, then the results are merged
// in face order.
func generateGeometry(faces []*CubeFace) (*Geometry, error) {
	offsets := make([]int, len(faces))
	total := 0
	for i, face := range faces {
		offsets[i] = total
		total += face.VertexCount()
	}

	parts := make([]*Geometry, len(faces))
	var eg errgroup.Group
	for i, face := range faces {
		eg.Go(func() error {
			part, err := face.Generate(offsets[i])
			if err != nil {
				return err
			}
			parts[i] = part
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("planet: generating geometry: %w", err)
	}

	combined := &Geometry{
		Vertices: make([]float64, 0, total*3),
		Normals:  make([]float64, 0, total*3),
	}
	for i, part := range parts {
		if offsets[i] != combined.VertexCount() {
			return nil, fmt.Errorf("planet: %w: face %d offset %d, have %d vertices",
				ErrCorruptGeometry, i, offsets[i], combined.VertexCount())
		}
		combined.append(part)
	}

	if err := combined.Validate(); err != nil {
		return nil, fmt.Errorf("planet: %w", err)
	}
	return combined, nil
}

// Geometry returns the generated buffers, or ErrNotReady before
// GenerateGeometry has run.
func (p *Planet) Geometry() (*Geometry, error) {
	g := p.geometry.Load()
	if g == nil {
		return nil, fmt.Errorf("planet geometry: %w", ErrNotReady)
	}
	return g, nil
}

// CreateRenderable wraps the geometry and material into a Mesh, generating
// the geometry first if needed.
func (p *Planet) CreateRenderable() (*Mesh, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	g := p.geometry.Load()
	if g == nil {
		if err := p.generateLocked(); err != nil {
			return nil, err
		}
		g = p.geometry.Load()
	}

	p.mesh = NewMesh(g, p.material)
	p.state = StateRenderableCreated
	return p.mesh, nil
}

// Renderable returns the mesh made by CreateRenderable.
func (p *Planet) Renderable() (*Mesh, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mesh == nil {
		return nil, fmt.Errorf("planet renderable: %w", ErrNotReady)
	}
	return p.mesh, nil
}

// SetResolution rebuilds the faces at a new resolution. If geometry had
// been generated it is regenerated and swapped in, including into the
// renderable. On error the planet is left unchanged.
func (p *Planet) SetResolution(resolution int) error {
	if err := validateResolution(resolution); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	faces, err := buildFaces(resolution)
	if err != nil {
		return err
	}

	if p.state == StateUninitialized {
		p.resolution = resolution
		p.faces = faces
		return nil
	}

	g, err := generateGeometry(faces)
	if err != nil {
		return err
	}

	p.resolution = resolution
	p.faces = faces
	p.geometry.Store(g)
	if p.mesh != nil {
		p.mesh.SetGeometry(g)
	}
	log.Printf("Planet regenerated: resolution %d, %d vertices, %d triangles",
		resolution, g.VertexCount(), g.TriangleCount())
	return nil
}

// Update spins the planet by its rotation step. The step is applied per
// tick, not scaled by delta.
func (p *Planet) Update(float64) {
	p.mu.Lock()
	mesh := p.mesh
	step := p.rotationStep
	p.mu.Unlock()

	if mesh != nil {
		mesh.RotateY(step)
	}
}
