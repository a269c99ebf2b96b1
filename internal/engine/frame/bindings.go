package frame

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/lighting"
)

// ErrMissingBinding is returned by New when a required uniform is not active
// in the shading program.
var ErrMissingBinding = errors.New("missing uniform binding")

// Uniforms names the program's uniforms. Light fields are addressed as
// Array[slot].Field and every field is looked up by name, since a linker may
// pack struct members in any order.
type Uniforms struct {
	Camera   string
	Model    string
	Diffuse  string
	Specular string
	Ambient  string
	Emit     string

	DirectionalLights string
	PointLights       string

	// Struct members in upload order.
	DirectionalFields [lighting.DirectionalFields]string
	PointFields       [lighting.PointFields]string
}

// DefaultUniforms matches the bundled scene shader.
func DefaultUniforms() Uniforms {
	return Uniforms{
		Camera:            "camera",
		Model:             "model",
		Diffuse:           "diffuseColor",
		Specular:          "specularColor",
		Ambient:           "ambientColor",
		Emit:              "emitColor",
		DirectionalLights: "dLights",
		PointLights:       "pLights",
		DirectionalFields: [lighting.DirectionalFields]string{
			"diffuseColor", "specularColor", "ambientColor", "emitColor",
			"intensity", "direction", "lightActive",
		},
		PointFields: [lighting.PointFields]string{
			"diffuseColor", "specularColor", "ambientColor", "emitColor",
			"intensity", "radius", "position", "lightActive",
		},
	}
}

// Field indexes, in upload order.
const (
	fieldDiffuse = iota
	fieldSpecular
	fieldAmbient
	fieldEmit
	fieldIntensity
)

const (
	dirFieldDirection = fieldIntensity + 1 + iota
	dirFieldEnabled
)

const (
	pointFieldRadius = fieldIntensity + 1 + iota
	pointFieldPosition
	pointFieldEnabled
)

type (
	dirSlot   [lighting.DirectionalFields]int32
	pointSlot [lighting.PointFields]int32
)

// bindings is the location table resolved once after the program is linked.
type bindings struct {
	camera int32
	model  int32
	colors [4]int32 // diffuse, specular, ambient, emit

	directional [lighting.MaxDirectionalLights]dirSlot
	point       [lighting.MaxPointLights]pointSlot

	// a slot is bound only when every field resolved
	dirBound   [lighting.MaxDirectionalLights]bool
	pointBound [lighting.MaxPointLights]bool
}

// resolveBindings looks up every location. The camera, model and material
// uniforms and every field of slot 0 of each light array are required; other
// light slots may be inactive and stay unbound.
func resolveBindings(dev Device, u Uniforms) (*bindings, error) {
	b := &bindings{}
	var errs []error

	required := func(name string) int32 {
		loc := dev.UniformLocation(name)
		if loc < 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingBinding, name))
		}
		return loc
	}

	b.camera = required(u.Camera)
	b.model = required(u.Model)
	b.colors[0] = required(u.Diffuse)
	b.colors[1] = required(u.Specular)
	b.colors[2] = required(u.Ambient)
	b.colors[3] = required(u.Emit)

	for i := range b.directional {
		b.dirBound[i] = resolveSlot(dev, u.DirectionalLights, i, u.DirectionalFields[:], b.directional[i][:], &errs)
	}
	for i := range b.point {
		b.pointBound[i] = resolveSlot(dev, u.PointLights, i, u.PointFields[:], b.point[i][:], &errs)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}

// resolveSlot fills locs for one light slot and reports whether every field
// is active. Missing fields of slot 0 are appended to errs.
func resolveSlot(dev Device, array string, slot int, fields []string, locs []int32, errs *[]error) bool {
	bound := true
	for f, field := range fields {
		name := lightUniform(array, slot, field)
		locs[f] = dev.UniformLocation(name)
		if locs[f] >= 0 {
			continue
		}
		bound = false
		if slot > 0 {
			// later slots are optional; skip the remaining lookups
			break
		}
		*errs = append(*errs, fmt.Errorf("%w: %s", ErrMissingBinding, name))
	}
	return bound
}
func lightUniform(array string, slot int, field string) string {
	return fmt.Sprintf("%s[%d].%s", array, slot, field)
}
