package raster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/shaping"
)

// ErrBackendUnavailable is returned by NewNativeRenderer when no
// native backend has been registered for this build.
var ErrBackendUnavailable = errors.New("raster: native backend not available in this build")

// NativeFactory constructs the registered native rendering backend.
type NativeFactory func() Renderer

var (
	nativeMu      sync.RWMutex
	nativeFactory NativeFactory
)

// RegisterNative installs the factory a build-tag-gated backend file
// uses to supply its Renderer, mirroring the shaping package's
// backend registration.
func RegisterNative(f NativeFactory) {
	nativeMu.Lock()
	defer nativeMu.Unlock()
	nativeFactory = f
}

// NativeRenderer delegates to whatever backend RegisterNative last
// installed, recovering panics into *BackendFailure so a misbehaving
// backend can never crash a caller across the package boundary.
type NativeRenderer struct {
	backend Renderer
}

// NewNativeRenderer returns a Renderer backed by the registered
// native factory, or ErrBackendUnavailable if none is registered.
func NewNativeRenderer() (*NativeRenderer, error) {
	nativeMu.RLock()
	f := nativeFactory
	nativeMu.RUnlock()
	if f == nil {
		return nil, ErrBackendUnavailable
	}
	backend := f()
	if backend == nil {
		return nil, ErrBackendUnavailable
	}
	return &NativeRenderer{backend: backend}, nil
}

func (r *NativeRenderer) Render(run *shaping.Run, face *font.Face, params Params) (out *Output, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &BackendFailure{Backend: "native", Err: fmt.Errorf("%v", rec)}
		}
	}()
	out, err = r.backend.Render(run, face, params)
	if err != nil {
		return nil, &BackendFailure{Backend: "native", Err: err}
	}
	return out, nil
}

func (r *NativeRenderer) RenderGlyph(gid font.GlyphID, face *font.Face, params Params) (out *Output, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &BackendFailure{Backend: "native", Err: fmt.Errorf("%v", rec)}
		}
	}()
	out, err = r.backend.RenderGlyph(gid, face, params)
	if err != nil {
		return nil, &BackendFailure{Backend: "native", Err: err}
	}
	return out, nil
}

func (r *NativeRenderer) SupportsFormat(f OutputFormat) bool {
	return r.backend.SupportsFormat(f)
}
