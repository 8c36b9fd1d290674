package planet

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

type AmbientLight struct {
	Color     color.RGBA
	Intensity float64
}

func NewAmbientLight(c color.RGBA, intensity float64) *AmbientLight {
	return &AmbientLight{Color: c, Intensity: intensity}
}

// DirectionalLight shines from Position towards the origin.
type DirectionalLight struct {
	Color     color.RGBA
	Intensity float64
	Position  mgl64.Vec3
}

func NewDirectionalLight(c color.RGBA, intensity float64) *DirectionalLight {
	return &DirectionalLight{
		Color:     c,
		Intensity: intensity,
		Position:  mgl64.Vec3{0, 1, 0},
	}
}

func (l *DirectionalLight) SetPosition(x, y, z float64) {
	l.Position = mgl64.Vec3{x, y, z}
}

// Direction is the unit vector pointing from the surface towards the light.
func (l *DirectionalLight) Direction() mgl64.Vec3 {
	if l.Position.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return l.Position.Normalize()
}

// lightRGB returns the colour scaled by intensity, 1.0 per channel for a
// full white light.
func lightRGB(c color.RGBA, intensity float64) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(c.R) / 255 * intensity,
		float64(c.G) / 255 * intensity,
		float64(c.B) / 255 * intensity,
	}
}
