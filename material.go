package planet

import (
	"fmt"
	"image/color"
	"strings"
)

type Shading int

const (
	ShadingSmooth Shading = iota
	ShadingFlat
	ShadingWireframe
)

func (s Shading) String() string {
	switch s {
	case ShadingSmooth:
		return "smooth"
	case ShadingFlat:
		return "flat"
	case ShadingWireframe:
		return "wireframe"
	}
	return fmt.Sprintf("Shading(%d)", int(s))
}

// ParseShading is the inverse of Shading.String.
func ParseShading(name string) (Shading, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "smooth":
		return ShadingSmooth, nil
	case "flat":
		return ShadingFlat, nil
	case "wireframe":
		return ShadingWireframe, nil
	}
	return 0, fmt.Errorf("%w: unknown shading %q", ErrInvalidConfig, name)
}

// Material describes how a mesh is coloured and shaded.
type Material struct {
	Color   color.RGBA
	Shading Shading
}

func DefaultMaterial() Material {
	return Material{
		Color:   color.RGBA{R: 70, G: 130, B: 180, A: 255},
		Shading: ShadingSmooth,
	}
}

// ParseColor reads a "#rrggbb" or "rrggbb" hex colour.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: colour %q must have 6 hex digits", ErrInvalidConfig, s)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("%w: could not parse colour %q: %v", ErrInvalidConfig, s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
