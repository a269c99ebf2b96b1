// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms object vertices by the model and camera matrices.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades objects with the directional and point light arrays.
//
//go:embed scene.frag
var SceneFragmentShader string
