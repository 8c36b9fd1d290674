package planet

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteImage = ebiten.NewImage(3, 3)
	whiteSub   *ebiten.Image
)

func init() {
	whiteImage.Fill(color.White)
	whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// ScreenVertex is a projected vertex in pixels with its shaded colour.
type ScreenVertex struct {
	X, Y  float32
	Color color.RGBA
}

// PolygonBatcher collects the triangles the renderer emits for a frame.
type PolygonBatcher interface {
	AddTriangle(v [3]ScreenVertex)
	AddTriangleOutline(v [3]ScreenVertex, strokeWidth float32)
}

// DrawTriangles indices are 16 bit, so a batch is flushed before it
// outgrows them.
const maxBatchVertices = math.MaxUint16 - 64

// ImageBatcher draws the batched triangles onto an ebiten image. Call Begin
// at the start of a frame and Flush at the end.
type ImageBatcher struct {
	target   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewImageBatcher() *ImageBatcher {
	return &ImageBatcher{
		vertices: make([]ebiten.Vertex, 0, 4096),
		indices:  make([]uint16, 0, 4096),
	}
}

func (b *ImageBatcher) Begin(target *ebiten.Image) {
	b.target = target
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func (b *ImageBatcher) AddTriangle(v [3]ScreenVertex) {
	if len(b.vertices)+3 > maxBatchVertices {
		b.Flush()
	}

	base := uint16(len(b.vertices))
	for _, sv := range v {
		b.vertices = append(b.vertices, toEbitenVertex(sv))
	}
	b.indices = append(b.indices, base, base+1, base+2)
}

// AddTriangleOutline strokes the triangle edges in the colour of its
// first vertex.
func (b *ImageBatcher) AddTriangleOutline(v [3]ScreenVertex, strokeWidth float32) {
	var path vector.Path
	path.MoveTo(v[0].X, v[0].Y)
	path.LineTo(v[1].X, v[1].Y)
	path.LineTo(v[2].X, v[2].Y)
	path.Close()

	strokeOp := &vector.StrokeOptions{
		Width:    strokeWidth,
		LineJoin: vector.LineJoinRound,
	}

	// a stroked triangle is a few dozen vertices at most
	if len(b.vertices)+256 > maxBatchVertices {
		b.Flush()
	}

	start := len(b.vertices)
	b.vertices, b.indices = path.AppendVerticesAndIndicesForStroke(b.vertices, b.indices, strokeOp)

	cr, cg, cb, ca := colorComponents(v[0].Color)
	for i := start; i < len(b.vertices); i++ {
		b.vertices[i].ColorR = cr
		b.vertices[i].ColorG = cg
		b.vertices[i].ColorB = cb
		b.vertices[i].ColorA = ca
		b.vertices[i].SrcX = 1
		b.vertices[i].SrcY = 1
	}
}

// Flush draws everything batched so far and empties the batch.
func (b *ImageBatcher) Flush() {
	if b.target == nil || len(b.indices) == 0 {
		b.vertices = b.vertices[:0]
		b.indices = b.indices[:0]
		return
	}

	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	}
	b.target.DrawTriangles(b.vertices, b.indices, whiteSub, op)

	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

func toEbitenVertex(sv ScreenVertex) ebiten.Vertex {
	cr, cg, cb, ca := colorComponents(sv.Color)
	return ebiten.Vertex{
		DstX:   sv.X,
		DstY:   sv.Y,
		SrcX:   1,
		SrcY:   1,
		ColorR: cr,
		ColorG: cg,
		ColorB: cb,
		ColorA: ca,
	}
}

func colorComponents(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}
