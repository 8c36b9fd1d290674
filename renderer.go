package planet

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RendererSize is the viewport in pixels.
type RendererSize struct {
	Width  int
	Height int
}

func (s RendererSize) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: renderer size %dx%d must be positive", ErrInvalidConfig, s.Width, s.Height)
	}
	return nil
}

func (s RendererSize) Aspect() float64 {
	return float64(s.Width) / float64(s.Height)
}

// RenderStats counts what happened to the triangles of the last frame.
type RenderStats struct {
	Drawn   int
	Culled  int
	Clipped int
}

// Renderer rasterizes a scene with the painter's algorithm: triangles are
// transformed, back faces culled, shaded per vertex and emitted far to near.
type Renderer struct {
	size        RendererSize
	strokeWidth float32
	triangles   faceStore
	stats       RenderStats

	// per drawable scratch buffers
	world   []mgl64.Vec3
	clip    []mgl64.Vec4
	colours []color.RGBA
}

func NewRenderer(size RendererSize) (*Renderer, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		size:        size,
		strokeWidth: 1,
	}, nil
}

func (r *Renderer) Size() RendererSize {
	return r.size
}

// Resize ignores non-positive sizes, which ebiten reports while a window
// is minimized.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.size = RendererSize{Width: width, Height: height}
}

func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Render draws every drawable of the scene as seen from camera.
func (r *Renderer) Render(batcher PolygonBatcher, scene *Scene, camera *Camera) RenderStats {
	r.stats = RenderStats{}
	r.triangles.reset()

	lights := newLighting(scene)
	viewProj := camera.Projection().Mul4(camera.View())
	eye := camera.Position()
	settings := camera.Settings()

	for _, d := range scene.Drawables() {
		g := d.Geometry()
		if g == nil {
			continue
		}
		r.collect(g, d.Material(), d.ModelMatrix(), viewProj, eye, settings, lights)
	}

	r.triangles.sortByDepth()
	for _, t := range r.triangles.faces {
		if t.outline {
			batcher.AddTriangleOutline(t.vertices, r.strokeWidth)
		} else {
			batcher.AddTriangle(t.vertices)
		}
	}
	r.stats.Drawn = r.triangles.faceCount()
	return r.stats
}

func (r *Renderer) collect(
	g *Geometry,
	mat Material,
	model mgl64.Mat4,
	viewProj mgl64.Mat4,
	eye mgl64.Vec3,
	settings CameraSettings,
	lights lighting,
) {
	count := g.VertexCount()
	r.world = r.world[:0]
	r.clip = r.clip[:0]
	r.colours = r.colours[:0]

	normalMatrix := model.Mat3()
	for i := 0; i < count; i++ {
		world := model.Mul4x1(g.Vertex(i).Vec4(1)).Vec3()
		r.world = append(r.world, world)
		r.clip = append(r.clip, viewProj.Mul4x1(world.Vec4(1)))

		if mat.Shading == ShadingSmooth {
			normal := normalMatrix.Mul3x1(g.Normal(i)).Normalize()
			r.colours = append(r.colours, lights.shade(mat.Color, normal))
		}
	}

	for t := 0; t < g.TriangleCount(); t++ {
		ia, ib, ic := g.Triangle(t)
		idx := [3]uint32{ia, ib, ic}

		p0, p1, p2 := r.world[ia], r.world[ib], r.world[ic]
		faceNormal := p1.Sub(p0).Cross(p2.Sub(p0))
		if mat.Shading != ShadingWireframe && faceNormal.Dot(p0.Sub(eye)) >= 0 {
			r.stats.Culled++
			continue
		}

		var tri projectedTriangle
		visible := true
		for k, i := range idx {
			c := r.clip[i]
			// w is the distance in front of the camera
			if c.W() < settings.Near || c.W() > settings.Far {
				visible = false
				break
			}
			tri.vertices[k].X, tri.vertices[k].Y = r.toScreen(c)
			tri.depth += c.W() / 3
		}
		if !visible {
			r.stats.Clipped++
			continue
		}

		switch mat.Shading {
		case ShadingSmooth:
			for k, i := range idx {
				tri.vertices[k].Color = r.colours[i]
			}
		case ShadingFlat:
			shaded := lights.shade(mat.Color, faceNormal.Normalize())
			for k := range tri.vertices {
				tri.vertices[k].Color = shaded
			}
		case ShadingWireframe:
			for k := range tri.vertices {
				tri.vertices[k].Color = mat.Color
			}
			tri.outline = true
		}

		r.triangles.addFace(tri)
	}
}

// toScreen maps clip coordinates to pixels with y pointing down.
func (r *Renderer) toScreen(c mgl64.Vec4) (float32, float32) {
	ndcX := c.X() / c.W()
	ndcY := c.Y() / c.W()
	x := (ndcX + 1) / 2 * float64(r.size.Width)
	y := (1 - ndcY) / 2 * float64(r.size.Height)
	return float32(x), float32(y)
}

type lighting struct {
	ambient     mgl64.Vec3
	directional []directionalTerm
	unlit       bool
}

type directionalTerm struct {
	direction mgl64.Vec3
	rgb       mgl64.Vec3
}

func newLighting(scene *Scene) lighting {
	ambient, directional := scene.lights()
	var l lighting
	if ambient == nil && len(directional) == 0 {
		l.unlit = true
		return l
	}

	if ambient != nil {
		l.ambient = lightRGB(ambient.Color, ambient.Intensity)
	}
	for _, d := range directional {
		l.directional = append(l.directional, directionalTerm{
			direction: d.Direction(),
			rgb:       lightRGB(d.Color, d.Intensity),
		})
	}
	return l
}

// shade applies ambient plus Lambert diffuse lighting to base.
func (l lighting) shade(base color.RGBA, normal mgl64.Vec3) color.RGBA {
	if l.unlit {
		return base
	}

	light := l.ambient
	for _, d := range l.directional {
		diffuse := math.Max(0, normal.Dot(d.direction))
		light = light.Add(d.rgb.Mul(diffuse))
	}

	return color.RGBA{
		R: scaleChannel(base.R, light.X()),
		G: scaleChannel(base.G, light.Y()),
		B: scaleChannel(base.B, light.Z()),
		A: base.A,
	}
}

func scaleChannel(c uint8, factor float64) uint8 {
	return uint8(clamp(math.Round(float64(c)*factor), 0, 255))
}
