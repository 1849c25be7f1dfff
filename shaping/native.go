package shaping

import (
	"fmt"
	"sync"

	"github.com/fontlaborg/typf/font"
	"github.com/fontlaborg/typf/unicodedata"
)

// BackendFailure wraps a panic or error surfaced by a native/platform
// shaping backend, so it can cross the shaping-stage boundary as a
// typed error rather than an unrecovered panic.
type BackendFailure struct {
	Backend string
	Err     error
}

func (e *BackendFailure) Error() string {
	return fmt.Sprintf("shaping: backend %q failed: %v", e.Backend, e.Err)
}

func (e *BackendFailure) Unwrap() error { return e.Err }

// NativeFactory creates a NativeShaper-compatible backend, or nil if
// unavailable in this build.
type NativeFactory func() Shaper

var (
	nativeMu      sync.RWMutex
	nativeFactory NativeFactory
)

// RegisterNative installs the platform-native shaping backend. Called
// from an init() func in a build-tag-gated file; see native_stub.go
// for the default (no native backend) registration.
func RegisterNative(f NativeFactory) {
	nativeMu.Lock()
	defer nativeMu.Unlock()
	nativeFactory = f
}

// NativeShaper wraps whatever backend RegisterNative installed,
// converting panics and its Shape errors into BackendFailure so a
// native-library crash never escapes across the shaping contract.
type NativeShaper struct{}

func NewNativeShaper() (*NativeShaper, error) {
	nativeMu.RLock()
	f := nativeFactory
	nativeMu.RUnlock()
	if f == nil || f() == nil {
		return nil, ErrBackendUnavailable
	}
	return &NativeShaper{}, nil
}

func (s *NativeShaper) Shape(text string, face *font.Face, params Params) (run *Run, err error) {
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

	defer func() {
		if r := recover(); r != nil {
			err = &BackendFailure{Backend: "native", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	run, err = backend.Shape(text, face, params)
	if err != nil {
		err = &BackendFailure{Backend: "native", Err: err}
	}
	return run, err
}

func (s *NativeShaper) ShapeGlyph(gid font.GlyphID, face *font.Face, params Params) (run *Run, err error) {
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

	defer func() {
		if r := recover(); r != nil {
			err = &BackendFailure{Backend: "native", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	run, err = backend.ShapeGlyph(gid, face, params)
	if err != nil {
		err = &BackendFailure{Backend: "native", Err: err}
	}
	return run, err
}

func (s *NativeShaper) SupportsScript(sc unicodedata.Script) bool {
	nativeMu.RLock()
	f := nativeFactory
	nativeMu.RUnlock()
	if f == nil {
		return false
	}
	if b := f(); b != nil {
		return b.SupportsScript(sc)
	}
	return false
}

func (s *NativeShaper) SupportsFeature(tag string) bool {
	nativeMu.RLock()
	f := nativeFactory
	nativeMu.RUnlock()
	if f == nil {
		return false
	}
	if b := f(); b != nil {
		return b.SupportsFeature(tag)
	}
	return false
}
