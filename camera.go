package planet

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CameraSettings are the perspective parameters. FOV is the vertical field
// of view in degrees.
type CameraSettings struct {
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64
}

func (s CameraSettings) Validate() error {
	switch {
	case s.FOV <= 0 || s.FOV >= 180:
		return fmt.Errorf("%w: camera fov %v must be in (0, 180)", ErrInvalidConfig, s.FOV)
	case s.Aspect <= 0:
		return fmt.Errorf("%w: camera aspect %v must be positive", ErrInvalidConfig, s.Aspect)
	case s.Near <= 0:
		return fmt.Errorf("%w: camera near %v must be positive", ErrInvalidConfig, s.Near)
	case s.Far <= s.Near:
		return fmt.Errorf("%w: camera far %v must be beyond near %v", ErrInvalidConfig, s.Far, s.Near)
	}
	return nil
}

const (
	defaultCameraDistance = 3
	maxPitch              = math.Pi/2 - 0.01
)

// Camera is a perspective camera orbiting a target point. It starts on the
// +Z axis looking back at the target.
type Camera struct {
	settings CameraSettings
	target   mgl64.Vec3
	distance float64
	yaw      float64
	pitch    float64
}

func NewCamera(settings CameraSettings) (*Camera, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Camera{
		settings: settings,
		distance: defaultCameraDistance,
	}, nil
}

func (c *Camera) Settings() CameraSettings {
	return c.settings
}

func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.settings.Aspect = aspect
	}
}

func (c *Camera) Position() mgl64.Vec3 {
	cosPitch := math.Cos(c.pitch)
	return c.target.Add(mgl64.Vec3{
		c.distance * cosPitch * math.Sin(c.yaw),
		c.distance * math.Sin(c.pitch),
		c.distance * cosPitch * math.Cos(c.yaw),
	})
}

func (c *Camera) SetTarget(target mgl64.Vec3) {
	c.target = target
}

// SetDistance moves the camera along its current direction. It never
// moves inside the near plane.
func (c *Camera) SetDistance(d float64) {
	c.distance = math.Max(d, c.settings.Near*2)
}

func (c *Camera) Distance() float64 {
	return c.distance
}

// Orbit rotates the camera around its target. Pitch stops just short of
// the poles so the view never flips.
func (c *Camera) Orbit(dYaw, dPitch float64) {
	c.yaw = math.Mod(c.yaw+dYaw, 2*math.Pi)
	c.pitch = clamp(c.pitch+dPitch, -maxPitch, maxPitch)
}

func (c *Camera) Zoom(d float64) {
	c.SetDistance(c.distance + d)
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position(), c.target, mgl64.Vec3{0, 1, 0})
}

func (c *Camera) Projection() mgl64.Mat4 {
	s := c.settings
	return mgl64.Perspective(mgl64.DegToRad(s.FOV), s.Aspect, s.Near, s.Far)
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
