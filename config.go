package planet

import (
	"fmt"
	"log"
)

// Config is everything the host application chooses before start-up.
type Config struct {
	Resolution int
	Material   Material
	Camera     CameraSettings
	Size       RendererSize
	TPS        int
	Stats      bool
	Orbit      bool
	Headless   HeadlessConfig
}

func DefaultConfig() Config {
	size := RendererSize{Width: 640, Height: 480}
	return Config{
		Resolution: 10,
		Material:   DefaultMaterial(),
		Camera: CameraSettings{
			FOV:    75,
			Aspect: size.Aspect(),
			Near:   0.1,
			Far:    1000,
		},
		Size:  size,
		TPS:   DefaultTPS,
		Orbit: true,
		Headless: HeadlessConfig{
			Hz: DefaultTPS,
		},
	}
}

func (c Config) Validate() error {
	if c.Resolution < 1 || c.Resolution > MaxResolution {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidConfig, ErrInvalidResolution, c.Resolution)
	}
	if err := c.Size.Validate(); err != nil {
		return err
	}
	if err := c.Camera.Validate(); err != nil {
		return err
	}
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidConfig, c.TPS)
	}
	if c.Headless.Enabled && c.Headless.Hz <= 0 {
		return fmt.Errorf("%w: headless hz %d must be positive", ErrInvalidConfig, c.Headless.Hz)
	}
	return nil
}

// NewEngineFromConfig builds the engine and the planet described by c and
// adds the planet to the engine.
func NewEngineFromConfig(c Config) (*Engine, *Planet, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	engine, err := NewEngine(c.Camera, c.Size,
		WithStats(c.Stats),
		WithOrbitControls(c.Orbit),
		WithTPS(c.TPS),
	)
	if err != nil {
		return nil, nil, err
	}

	log.Println("Creating planet...")
	p, err := NewPlanet(c.Resolution, WithMaterial(c.Material))
	if err != nil {
		return nil, nil, err
	}
	if err := p.GenerateGeometry(); err != nil {
		return nil, nil, err
	}
	if _, err := p.CreateRenderable(); err != nil {
		return nil, nil, err
	}
	if err := engine.AddChild(p); err != nil {
		return nil, nil, err
	}

	log.Println("Initialization complete.")
	return engine, p, nil
}
