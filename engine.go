package planet

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Updater is a scene participant stepped once per tick.
type Updater interface {
	Update(delta float64)
}

// Child is an updater that also contributes a mesh to the scene.
type Child interface {
	Updater
	Renderable() (*Mesh, error)
}

const DefaultTPS = 60

// Engine owns the camera, scene, lights and renderer, and steps every child
// once per tick. It implements ebiten.Game.
type Engine struct {
	camera           *Camera
	scene            *Scene
	renderer         *Renderer
	batcher          *ImageBatcher
	ambientLight     *AmbientLight
	directionalLight *DirectionalLight
	controls         *OrbitControls

	children  []Updater
	visible   func() bool
	rendering bool
	showStats bool
	tps       int
	closed    bool
}

type EngineOption func(*Engine)

// WithStats draws the FPS and triangle counts over the scene.
func WithStats(show bool) EngineOption {
	return func(e *Engine) {
		e.showStats = show
	}
}

func WithOrbitControls(enabled bool) EngineOption {
	return func(e *Engine) {
		if enabled {
			e.controls = NewOrbitControls(e.camera)
		} else {
			e.controls = nil
		}
	}
}

func WithTPS(tps int) EngineOption {
	return func(e *Engine) {
		if tps > 0 {
			e.tps = tps
		}
	}
}

func NewEngine(cameraSettings CameraSettings, size RendererSize, opts ...EngineOption) (*Engine, error) {
	log.Println("Initializing engine...")

	camera, err := NewCamera(cameraSettings)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	renderer, err := NewRenderer(size)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		camera:           camera,
		scene:            NewScene(),
		renderer:         renderer,
		batcher:          NewImageBatcher(),
		ambientLight:     NewAmbientLight(color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 255}, 1),
		directionalLight: NewDirectionalLight(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.5),
		visible:          windowVisible,
		rendering:        true,
		tps:              DefaultTPS,
	}
	e.directionalLight.SetPosition(1, 1, 1)
	e.scene.SetAmbientLight(e.ambientLight)
	e.scene.AddDirectionalLight(e.directionalLight)

	e.controls = NewOrbitControls(camera)
	for _, opt := range opts {
		opt(e)
	}

	log.Printf("Engine ready: %dx%d, fov %.1f", size.Width, size.Height, cameraSettings.FOV)
	return e, nil
}

func (e *Engine) Camera() *Camera {
	return e.camera
}

func (e *Engine) Scene() *Scene {
	return e.scene
}

func (e *Engine) Renderer() *Renderer {
	return e.renderer
}

func (e *Engine) Controls() *OrbitControls {
	return e.controls
}

func (e *Engine) AmbientLight() *AmbientLight {
	return e.ambientLight
}

func (e *Engine) DirectionalLight() *DirectionalLight {
	return e.directionalLight
}

// AddChild adds the child's mesh to the scene and steps the child on every
// tick. A child without a renderable is rejected with ErrNotReady.
func (e *Engine) AddChild(child Child) error {
	mesh, err := child.Renderable()
	if err != nil {
		log.Printf("Failed to add child: %v", err)
		return fmt.Errorf("engine: add child: %w", err)
	}
	if err := e.scene.Add(mesh); err != nil {
		log.Printf("Failed to add child: %v", err)
		return fmt.Errorf("engine: add child: %w", err)
	}

	e.children = append(e.children, child)
	return nil
}

// AddUpdater steps u every tick without adding anything to the scene.
func (e *Engine) AddUpdater(u Updater) {
	e.children = append(e.children, u)
}

func (e *Engine) Children() []Updater {
	return append([]Updater(nil), e.children...)
}

// Tick advances every child by one step of delta seconds, in the order
// they were added.
func (e *Engine) Tick(delta float64) {
	for _, child := range e.children {
		child.Update(delta)
	}
}

// Resize updates the camera aspect and the viewport.
func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.camera.SetAspect(float64(width) / float64(height))
	e.renderer.Resize(width, height)
}

// windowVisible reports false only while the window is minimized. A
// window that lost focus keeps drawing.
func windowVisible() bool {
	return !ebiten.IsWindowMinimized()
}

// Rendering reports whether the last tick found the window visible.
func (e *Engine) Rendering() bool {
	return e.rendering
}

func (e *Engine) Update() error {
	if e.closed {
		return ebiten.Termination
	}

	e.rendering = e.visible()
	if e.controls != nil {
		e.controls.Poll()
	}
	e.Tick(1 / float64(ebiten.TPS()))
	return nil
}

func (e *Engine) Draw(screen *ebiten.Image) {
	if !e.rendering {
		return
	}

	e.batcher.Begin(screen)
	stats := e.renderer.Render(e.batcher, e.scene, e.camera)
	e.batcher.Flush()

	if e.showStats {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.2f TPS: %0.2f\ntriangles: %d drawn, %d culled, %d clipped",
			ebiten.ActualFPS(), ebiten.ActualTPS(), stats.Drawn, stats.Culled, stats.Clipped))
	}
}

func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.Resize(outsideWidth, outsideHeight)
	size := e.renderer.Size()
	return size.Width, size.Height
}

// Run opens a window and blocks until it is closed. A window or graphics
// context that cannot be created is reported as ErrUnsupportedEnvironment.
func (e *Engine) Run(title string) error {
	size := e.renderer.Size()
	ebiten.SetWindowSize(size.Width, size.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(e.tps)

	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedEnvironment, err)
	}
	return nil
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	Ticks   uint64
}

// RunHeadless ticks the engine without a window at cfg.Hz until cfg.Ticks
// ticks have run (0 = forever) or ctx is done. Every tick the scene is
// rendered into a counting batcher so the stats stay meaningful.
func (e *Engine) RunHeadless(ctx context.Context, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = e.tps
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("%w: invalid headless hz: %d", ErrInvalidConfig, cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	delta := 1 / float64(cfg.Hz)
	var counter CountingBatcher
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			e.Tick(delta)
			e.renderer.Render(&counter, e.scene, e.camera)

			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				stats := e.renderer.Stats()
				log.Printf("Headless run finished: %d ticks, last frame %d drawn, %d culled, %d clipped",
					tick, stats.Drawn, stats.Culled, stats.Clipped)
				return nil
			}
		}
	}
}

// Close drops the children and empties the scene. A running window stops
// on its next tick.
func (e *Engine) Close() {
	e.children = nil
	e.scene.Clear()
	e.closed = true
}

// CountingBatcher discards triangles and only counts them.
type CountingBatcher struct {
	Triangles int
	Outlines  int
}

func (c *CountingBatcher) AddTriangle([3]ScreenVertex) {
	c.Triangles++
}

func (c *CountingBatcher) AddTriangleOutline([3]ScreenVertex, float32) {
	c.Outlines++
}
