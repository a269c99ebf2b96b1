// Package frame sequences one display refresh: capability sync, camera
// update, light upload, object draw and present. It also owns the handoff
// that lets other goroutines run work on the render goroutine between frames.
package frame

import (
	"fmt"
	"strings"
)

// State is a step of the per-frame sequence.
type State int32

const (
	Idle State = iota
	CapabilitySync
	CameraUpdate
	LightUpload
	ObjectDraw
	Present
)

var stateNames = [...]string{
	Idle:           "idle",
	CapabilitySync: "capability_sync",
	CameraUpdate:   "camera_update",
	LightUpload:    "light_upload",
	ObjectDraw:     "object_draw",
	Present:        "present",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int32(s))
	}
	return stateNames[s]
}

// Capability is a renderer state flag re-asserted every frame.
type Capability int

const (
	DepthTest Capability = iota
	Multisample
	CullFace
	Blend
	ScissorTest
	StencilTest
)

// Capabilities lists every known flag. Each frame disables all of them
// before enabling the configured subset.
var Capabilities = []Capability{DepthTest, Multisample, CullFace, Blend, ScissorTest, StencilTest}

// DefaultCapabilities is the enabled set used when none is configured.
var DefaultCapabilities = []Capability{DepthTest, Multisample, CullFace}

var capabilityNames = [...]string{
	DepthTest:   "depth_test",
	Multisample: "multisample",
	CullFace:    "cull_face",
	Blend:       "blend",
	ScissorTest: "scissor_test",
	StencilTest: "stencil_test",
}

func (c Capability) String() string {
	if c < 0 || int(c) >= len(capabilityNames) {
		return fmt.Sprintf("capability(%d)", int(c))
	}
	return capabilityNames[c]
}

// ParseCapability maps a config name such as "depth_test" to its flag.
func ParseCapability(name string) (Capability, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range capabilityNames {
		if s == n {
			return Capability(i), nil
		}
	}
	return 0, fmt.Errorf("unknown capability %q", name)
}

// ParseCapabilities parses a list of names, reporting the first unknown one.
func ParseCapabilities(names []string) ([]Capability, error) {
	caps := make([]Capability, 0, len(names))
	for _, n := range names {
		c, err := ParseCapability(n)
		if err != nil {
			return nil, err
		}
		caps = append(caps, c)
	}
	return caps, nil
}
