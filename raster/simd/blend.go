package simd

// minOutAlpha guards the final straight-alpha divide against 0/0: a
// lane with zero output alpha always has zero premultiplied
// numerators too, so dividing by this instead of the true (zero)
// denominator still yields zero, not NaN.
const minOutAlpha = 1e-9

// BlendCoverageSpan composites one solid straight-alpha color (r, g,
// b, a, each in [0, 1]) over a span of destination pixels using
// Porter-Duff source-over, scaling the source's alpha by each lane's
// coverage value first. dstR/dstG/dstB/dstA are straight-alpha
// channel slices (one entry per pixel, [0, 1] range) updated in
// place; coverage must be the same length.
//
// Pixels are blended Batch at a time via F32x8 elementwise arithmetic
// in premultiplied space (matching internal/wide's BlendSolidColorBatchAA,
// which blends one constant source color against many destination
// pixels sharing a coverage-style alpha), then converted back to
// straight alpha; any remainder shorter than a full batch falls back
// to the identical formula applied one lane at a time. A lane whose
// scaled source alpha is zero keeps its destination values exactly.
func BlendCoverageSpan(r, g, b, a float32, coverage, dstR, dstG, dstB, dstA []float32) {
	n := len(coverage)
	i := 0
	for ; i+Batch <= n; i += Batch {
		blendBatch(r, g, b, a,
			coverage[i:i+Batch:i+Batch],
			dstR[i:i+Batch:i+Batch], dstG[i:i+Batch:i+Batch],
			dstB[i:i+Batch:i+Batch], dstA[i:i+Batch:i+Batch])
	}
	for ; i < n; i++ {
		dstR[i], dstG[i], dstB[i], dstA[i] = blendOne(r, g, b, a, coverage[i], dstR[i], dstG[i], dstB[i], dstA[i])
	}
}

func blendBatch(r, g, b, a float32, coverage, dstR, dstG, dstB, dstA []float32) {
	var cov, dR, dG, dB, dA F32x8
	copy(cov[:], coverage)
	copy(dR[:], dstR)
	copy(dG[:], dstG)
	copy(dB[:], dstB)
	copy(dA[:], dstA)

	srcA := SplatF32(a).Mul(cov)
	invSrcA := SplatF32(1).Sub(srcA)

	dPR, dPG, dPB := dR.Mul(dA), dG.Mul(dA), dB.Mul(dA)
	sPR, sPG, sPB := SplatF32(r).Mul(srcA), SplatF32(g).Mul(srcA), SplatF32(b).Mul(srcA)

	outA := srcA.Add(dA.Mul(invSrcA))
	outPR := sPR.Add(dPR.Mul(invSrcA))
	outPG := sPG.Add(dPG.Mul(invSrcA))
	outPB := sPB.Add(dPB.Mul(invSrcA))

	safeA := outA.Max(SplatF32(minOutAlpha))
	outR := outPR.Div(safeA)
	outG := outPG.Div(safeA)
	outB := outPB.Div(safeA)

	for i := range srcA {
		if srcA[i] == 0 {
			outR[i], outG[i], outB[i], outA[i] = dR[i], dG[i], dB[i], dA[i]
		}
	}

	copy(dstR, outR[:])
	copy(dstG, outG[:])
	copy(dstB, outB[:])
	copy(dstA, outA[:])
}

func blendOne(r, g, b, a, coverage, dr, dg, db, da float32) (float32, float32, float32, float32) {
	srcA := a * coverage
	if srcA == 0 {
		return dr, dg, db, da
	}
	invSrcA := 1 - srcA

	dpr, dpg, dpb := dr*da, dg*da, db*da
	spr, spg, spb := r*srcA, g*srcA, b*srcA

	outA := srcA + da*invSrcA
	outPR := spr + dpr*invSrcA
	outPG := spg + dpg*invSrcA
	outPB := spb + dpb*invSrcA

	safeA := outA
	if safeA < minOutAlpha {
		safeA = minOutAlpha
	}
	return outPR / safeA, outPG / safeA, outPB / safeA, outA
}
