// Package simd provides fixed-size batch float32 arithmetic for the
// rasterizer's coverage-blend hot loop, using the same compiler-
// auto-vectorized array technique as internal/wide/f32x8.go rather
// than hand-written assembly: a [8]float32 array small enough to fit
// one or two SIMD registers, with elementwise operations the Go
// compiler can recognize and vectorize on its own.
package simd

// Batch is the number of float32 lanes processed together.
const Batch = 8

// F32x8 batches eight float32 values for elementwise arithmetic.
type F32x8 [Batch]float32

// SplatF32 returns a batch with every lane set to n.
func SplatF32(n float32) F32x8 {
	var v F32x8
	for i := range v {
		v[i] = n
	}
	return v
}

// Add returns the elementwise sum of v and o.
func (v F32x8) Add(o F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Sub returns the elementwise difference v - o.
func (v F32x8) Sub(o F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Mul returns the elementwise product of v and o.
func (v F32x8) Mul(o F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] * o[i]
	}
	return r
}

// Div returns the elementwise quotient v / o.
func (v F32x8) Div(o F32x8) F32x8 {
	var r F32x8
	for i := range v {
		r[i] = v[i] / o[i]
	}
	return r
}

// Max returns the elementwise maximum of v and o.
func (v F32x8) Max(o F32x8) F32x8 {
	var r F32x8
	for i := range v {
		if v[i] > o[i] {
			r[i] = v[i]
		} else {
			r[i] = o[i]
		}
	}
	return r
}
