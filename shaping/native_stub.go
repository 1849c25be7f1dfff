//go:build !native_shaper

package shaping

// Default build: no platform-native shaping backend is linked in.
// A build carrying the native_shaper tag registers a real factory from
// its own init(), analogous to how the rust build tag swaps in a real
// RenderBackend.
func init() {
	RegisterNative(func() Shaper { return nil })
}
