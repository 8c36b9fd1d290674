package planet

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	orbitRadiansPerPixel = 0.005
	zoomPerWheelStep     = 0.25
)

// OrbitControls turns mouse drags into camera orbits around its target and
// the wheel into zoom.
type OrbitControls struct {
	camera       *Camera
	lastX, lastY int
	dragged      bool
}

func NewOrbitControls(camera *Camera) *OrbitControls {
	return &OrbitControls{camera: camera}
}

// Poll reads the mouse state for this tick.
func (o *OrbitControls) Poll() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		o.dragged = true
		o.lastX, o.lastY = ebiten.CursorPosition()
	}

	if o.dragged {
		x, y := ebiten.CursorPosition()
		o.Drag(x-o.lastX, y-o.lastY)
		o.lastX, o.lastY = x, y
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		o.dragged = false
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		o.Scroll(wheelY)
	}
}

// Drag orbits by a cursor movement in pixels. Dragging right or down
// swings the camera left or up, so the planet follows the cursor.
func (o *OrbitControls) Drag(dx, dy int) {
	o.camera.Orbit(-float64(dx)*orbitRadiansPerPixel, float64(dy)*orbitRadiansPerPixel)
}

// Scroll zooms in for positive wheel steps.
func (o *OrbitControls) Scroll(steps float64) {
	o.camera.Zoom(-steps * zoomPerWheelStep)
}
