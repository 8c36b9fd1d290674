package planet

import (
	"fmt"
	"sync"
)

// Scene holds the drawables and lights rendered each frame.
type Scene struct {
	mu          sync.Mutex
	drawables   []Drawable
	ambient     *AmbientLight
	directional []*DirectionalLight
}

func NewScene() *Scene {
	return &Scene{}
}

func (s *Scene) Add(d Drawable) error {
	if d == nil || d.Geometry() == nil {
		return fmt.Errorf("scene: drawable without geometry: %w", ErrNotReady)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawables = append(s.drawables, d)
	return nil
}

func (s *Scene) SetAmbientLight(l *AmbientLight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = l
}

func (s *Scene) AddDirectionalLight(l *DirectionalLight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directional = append(s.directional, l)
}

// Drawables returns a snapshot of the scene's drawables in insertion order.
func (s *Scene) Drawables() []Drawable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Drawable(nil), s.drawables...)
}

func (s *Scene) lights() (*AmbientLight, []*DirectionalLight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambient, append([]*DirectionalLight(nil), s.directional...)
}

func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawables = nil
	s.ambient = nil
	s.directional = nil
}
