//go:build !native_renderer

package raster

func init() {
	RegisterNative(func() Renderer { return nil })
}
