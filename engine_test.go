package planet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

type recordingUpdater struct {
	name   string
	log    *[]string
	deltas []float64
}

func (u *recordingUpdater) Update(delta float64) {
	*u.log = append(*u.log, u.name)
	u.deltas = append(u.deltas, delta)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(testCameraSettings, testSize, WithOrbitControls(false))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestNewEngineRejectsInvalidSettings(t *testing.T) {
	testCases := []struct {
		name     string
		settings CameraSettings
		size     RendererSize
	}{
		{"bad camera", CameraSettings{FOV: 0, Aspect: 1, Near: 0.1, Far: 10}, testSize},
		{"bad size", testCameraSettings, RendererSize{Width: 0, Height: 480}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEngine(tc.settings, tc.size)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("NewEngine() error = %v, want %v", err, ErrInvalidConfig)
			}
			if e != nil {
				t.Error("NewEngine() returned an engine on error")
			}
		})
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e, err := NewEngine(testCameraSettings, testSize)
	if err != nil {
		t.Fatal(err)
	}
	if e.Controls() == nil {
		t.Error("orbit controls should be enabled by default")
	}
	if e.AmbientLight() == nil || e.DirectionalLight() == nil {
		t.Fatal("engine should start with an ambient and a directional light")
	}
	if !vecAlmostEqual(e.DirectionalLight().Position, mgl64.Vec3{1, 1, 1}) {
		t.Errorf("directional light at %v, want (1, 1, 1)", e.DirectionalLight().Position)
	}
	if !e.Rendering() {
		t.Error("engine should start rendering")
	}
	if len(e.Children()) != 0 || len(e.Scene().Drawables()) != 0 {
		t.Error("new engine should be empty")
	}

	if newTestEngine(t).Controls() != nil {
		t.Error("WithOrbitControls(false) left controls enabled")
	}
}

func TestAddChildRequiresRenderable(t *testing.T) {
	e := newTestEngine(t)
	p, err := NewPlanet(2)
	if err != nil {
		t.Fatal(err)
	}

	if err := e.AddChild(p); !errors.Is(err, ErrNotReady) {
		t.Fatalf("AddChild() error = %v, want %v", err, ErrNotReady)
	}
	if len(e.Children()) != 0 || len(e.Scene().Drawables()) != 0 {
		t.Error("rejected child was added")
	}

	if err := p.GenerateGeometry(); err != nil {
		t.Fatal(err)
	}
	if err := e.AddChild(p); !errors.Is(err, ErrNotReady) {
		t.Fatalf("AddChild() with geometry only, error = %v, want %v", err, ErrNotReady)
	}
}

func TestAddChild(t *testing.T) {
	e := newTestEngine(t)
	p, err := NewPlanet(2)
	if err != nil {
		t.Fatal(err)
	}
	mesh, err := p.CreateRenderable()
	if err != nil {
		t.Fatal(err)
	}

	if err := e.AddChild(p); err != nil {
		t.Fatalf("AddChild() error = %v", err)
	}
	drawables := e.Scene().Drawables()
	if len(drawables) != 1 || drawables[0] != Drawable(mesh) {
		t.Errorf("scene drawables = %v, want the planet mesh", drawables)
	}
	if len(e.Children()) != 1 {
		t.Errorf("got %d children, want 1", len(e.Children()))
	}

	e.Tick(1.0 / 60)
	if got := mesh.Rotation().Y(); !almostEqual(got, DefaultRotationStep) {
		t.Errorf("rotation after one tick = %v, want %v", got, DefaultRotationStep)
	}
}

func TestTickOrder(t *testing.T) {
	e := newTestEngine(t)
	var order []string
	first := &recordingUpdater{name: "first", log: &order}
	second := &recordingUpdater{name: "second", log: &order}
	e.AddUpdater(first)
	e.AddUpdater(second)

	e.Tick(0.5)
	e.Tick(0.25)

	want := []string{"first", "second", "first", "second"}
	if len(order) != len(want) {
		t.Fatalf("update order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("update order = %v, want %v", order, want)
		}
	}
	if len(first.deltas) != 2 || first.deltas[0] != 0.5 || first.deltas[1] != 0.25 {
		t.Errorf("deltas = %v, want [0.5 0.25]", first.deltas)
	}
}

func TestEngineResize(t *testing.T) {
	e := newTestEngine(t)

	e.Resize(1000, 500)
	if e.Renderer().Size() != (RendererSize{Width: 1000, Height: 500}) {
		t.Errorf("renderer size = %+v, want 1000x500", e.Renderer().Size())
	}
	if !almostEqual(e.Camera().Settings().Aspect, 2) {
		t.Errorf("aspect = %v, want 2", e.Camera().Settings().Aspect)
	}

	e.Resize(0, 300)
	if e.Renderer().Size() != (RendererSize{Width: 1000, Height: 500}) {
		t.Errorf("zero width resize changed the size to %+v", e.Renderer().Size())
	}

	if w, h := e.Layout(320, 240); w != 320 || h != 240 {
		t.Errorf("Layout() = %d, %d, want 320, 240", w, h)
	}
}

func TestRunHeadless(t *testing.T) {
	e := newTestEngine(t)
	p, err := NewPlanet(2)
	if err != nil {
		t.Fatal(err)
	}
	mesh, err := p.CreateRenderable()
	if err != nil {
		t.Fatal(err)
	}
	if err := e.AddChild(p); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.RunHeadless(ctx, HeadlessConfig{Enabled: true, Hz: 1000, Ticks: 3}); err != nil {
		t.Fatalf("RunHeadless() error = %v", err)
	}

	if got := mesh.Rotation().Y(); !almostEqual(got, 3*DefaultRotationStep) {
		t.Errorf("rotation after 3 ticks = %v, want %v", got, 3*DefaultRotationStep)
	}
	if e.Renderer().Stats().Drawn == 0 {
		t.Error("headless run did not render anything")
	}
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	e := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.RunHeadless(ctx, HeadlessConfig{Enabled: true, Hz: 10})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunHeadless() error = %v, want %v", err, context.Canceled)
	}
}

func TestEngineClose(t *testing.T) {
	e := newTestEngine(t)
	p, err := NewPlanet(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.CreateRenderable(); err != nil {
		t.Fatal(err)
	}
	if err := e.AddChild(p); err != nil {
		t.Fatal(err)
	}

	e.Close()
	if len(e.Children()) != 0 || len(e.Scene().Drawables()) != 0 {
		t.Error("Close() left children or drawables behind")
	}
	// stepping a closed engine is a no-op
	e.Tick(1)
}

func TestCountingBatcher(t *testing.T) {
	e := newTestEngine(t)
	mat := DefaultMaterial()
	mat.Shading = ShadingWireframe
	p, err := NewPlanet(2, WithMaterial(mat))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.CreateRenderable(); err != nil {
		t.Fatal(err)
	}
	if err := e.AddChild(p); err != nil {
		t.Fatal(err)
	}

	var counter CountingBatcher
	stats := e.Renderer().Render(&counter, e.Scene(), e.Camera())
	if counter.Outlines != stats.Drawn || counter.Triangles != 0 {
		t.Errorf("counter = %+v, stats = %+v", counter, stats)
	}
}

func TestUpdateStopsDrawingWhileHidden(t *testing.T) {
	e := newTestEngine(t)
	visible := true
	e.visible = func() bool { return visible }
	var order []string
	u := &recordingUpdater{name: "planet", log: &order}
	e.AddUpdater(u)

	visible = false
	if err := e.Update(); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if e.Rendering() {
		t.Error("engine still rendering while the window is hidden")
	}
	if len(order) != 1 {
		t.Errorf("hidden window stopped ticking: %d updates, want 1", len(order))
	}

	visible = true
	if err := e.Update(); err != nil {
		t.Fatal(err)
	}
	if !e.Rendering() {
		t.Error("engine did not resume rendering once visible")
	}

	e.Close()
	if err := e.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update() after Close = %v, want %v", err, ebiten.Termination)
	}
}
