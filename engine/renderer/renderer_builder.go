package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*rendererImpl)

// WithClearColor sets the color the surface is cleared to each frame.
//
// Parameters:
//   - r, g, b, a: color components in the range [0, 1]
//
// Returns:
//   - RendererOption: option function to apply
func WithClearColor(r, g, b, a float64) RendererOption {
	return func(ri *rendererImpl) {
		ri.clearColor = wgpu.Color{R: r, G: g, B: b, A: a}
	}
}

// WithForceFallbackAdapter forces selection of the software fallback adapter.
// Useful on machines without a usable GPU.
//
// Returns:
//   - RendererOption: option function to apply
func WithForceFallbackAdapter() RendererOption {
	return func(ri *rendererImpl) {
		ri.forceFallbackAdapter = true
	}
}
