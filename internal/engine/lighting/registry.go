package lighting

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrCapacity is returned when a light kind has no free shader slot.
var ErrCapacity = errors.New("light capacity exceeded")

// Registry holds the scene lights in slot order.
//
// Handles returned by AddDirectional and AddPoint stay valid until removed.
// Edits to a handle's fields after the frame loop started must go through
// Update so the render goroutine never reads a half-written light.
type Registry struct {
	mu          sync.RWMutex
	directional []*DirectionalLight
	point       []*PointLight
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		directional: make([]*DirectionalLight, 0, MaxDirectionalLights),
		point:       make([]*PointLight, 0, 64),
	}
}

// AddDirectional appends a directional light and returns its handle.
func (r *Registry) AddDirectional() (*DirectionalLight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.directional) >= MaxDirectionalLights {
		return nil, fmt.Errorf("directional light %d of %d: %w", len(r.directional)+1, MaxDirectionalLights, ErrCapacity)
	}
	l := NewDirectionalLight()
	r.directional = append(r.directional, &l)
	return &l, nil
}

// AddPoint appends a point light and returns its handle.
func (r *Registry) AddPoint() (*PointLight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.point) >= MaxPointLights {
		return nil, fmt.Errorf("point light %d of %d: %w", len(r.point)+1, MaxPointLights, ErrCapacity)
	}
	l := NewPointLight()
	r.point = append(r.point, &l)
	return &l, nil
}

// RemoveDirectional removes the light. Unknown or already removed handles are ignored.
func (r *Registry) RemoveDirectional(l *DirectionalLight) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := slices.Index(r.directional, l); i >= 0 {
		r.directional = slices.Delete(r.directional, i, i+1)
	}
}

// RemovePoint removes the light. Unknown or already removed handles are ignored.
func (r *Registry) RemovePoint(l *PointLight) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := slices.Index(r.point, l); i >= 0 {
		r.point = slices.Delete(r.point, i, i+1)
	}
}

// Update runs fn while holding the write lock.
func (r *Registry) Update(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

// Len returns the number of directional and point lights.
func (r *Registry) Len() (directional, point int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.directional), len(r.point)
}

// Snapshot copies every light in slot order.
// The slices are reused between calls when passed back in.
func (r *Registry) Snapshot(dir []DirectionalLight, point []PointLight) ([]DirectionalLight, []PointLight) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dir = dir[:0]
	for _, l := range r.directional {
		dir = append(dir, *l)
	}
	point = point[:0]
	for _, l := range r.point {
		point = append(point, *l)
	}
	return dir, point
}
