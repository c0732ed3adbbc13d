// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// FiberVertexShader transforms fiber vertices and forwards their direction.
//
//go:embed fiber.vert
var FiberVertexShader string

// FiberFragmentShader colors fibers by direction or with a solid color.
//
//go:embed fiber.frag
var FiberFragmentShader string
