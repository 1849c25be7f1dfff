package simd

import "testing"

func TestBlendCoverageSpanFullCoverageOpaqueSourceReplacesDestination(t *testing.T) {
	n := Batch + 3 // exercise both the batched path and the scalar remainder
	coverage := make([]float32, n)
	dstR := make([]float32, n)
	dstG := make([]float32, n)
	dstB := make([]float32, n)
	dstA := make([]float32, n)
	for i := range coverage {
		coverage[i] = 1
		dstR[i], dstA[i] = 1, 1 // opaque red destination
	}

	BlendCoverageSpan(0, 1, 0, 1, coverage, dstR, dstG, dstB, dstA) // opaque green source

	for i := range coverage {
		if dstR[i] != 0 || dstG[i] != 1 || dstB[i] != 0 || dstA[i] != 1 {
			t.Fatalf("lane %d = (%v,%v,%v,%v), want opaque green", i, dstR[i], dstG[i], dstB[i], dstA[i])
		}
	}
}

func TestBlendCoverageSpanZeroCoverageLeavesDestinationUnchanged(t *testing.T) {
	coverage := make([]float32, Batch)
	dstR := make([]float32, Batch)
	dstG := make([]float32, Batch)
	dstB := make([]float32, Batch)
	dstA := make([]float32, Batch)
	for i := range dstR {
		dstR[i], dstG[i], dstB[i], dstA[i] = 0.2, 0.4, 0.6, 0.8
	}

	BlendCoverageSpan(1, 1, 1, 1, coverage, dstR, dstG, dstB, dstA)

	for i := range dstR {
		if dstR[i] != 0.2 || dstG[i] != 0.4 || dstB[i] != 0.6 || dstA[i] != 0.8 {
			t.Fatalf("lane %d changed with zero coverage: (%v,%v,%v,%v)", i, dstR[i], dstG[i], dstB[i], dstA[i])
		}
	}
}

func TestBlendCoverageSpanBatchAndScalarAgree(t *testing.T) {
	coverage := []float32{0.25, 0.5, 0.75, 1, 0.1, 0.9, 0.3, 0.7, 0.6}
	dstA := make([]float32, len(coverage))
	dstR := make([]float32, len(coverage))
	dstG := make([]float32, len(coverage))
	dstB := make([]float32, len(coverage))
	for i := range dstA {
		dstR[i], dstG[i], dstB[i], dstA[i] = 0.1, 0.2, 0.3, 0.5
	}

	got := make([]float32, len(coverage))
	copy(got, dstA)
	BlendCoverageSpan(0.9, 0.1, 0.2, 0.8, coverage, append([]float32(nil), dstR...), append([]float32(nil), dstG...), append([]float32(nil), dstB...), got)

	// Recompute lane-by-lane with the scalar path directly and expect
	// identical results to the mixed batch+remainder call above.
	wantA := make([]float32, len(coverage))
	for i, c := range coverage {
		_, _, _, wantA[i] = blendOne(0.9, 0.1, 0.2, 0.8, c, dstR[i], dstG[i], dstB[i], dstA[i])
	}
	for i := range coverage {
		if got[i] != wantA[i] {
			t.Fatalf("lane %d alpha = %v, want %v (batch/scalar mismatch)", i, got[i], wantA[i])
		}
	}
}
