package raster

// sourceOver composites src over dst using straight-alpha Porter-Duff
// source-over.
func sourceOver(src, dst Color) Color {
	invSrcA := 1 - src.A
	outA := src.A + dst.A*invSrcA
	if outA == 0 {
		return Color{}
	}
	return Color{
		R: (src.R*src.A + dst.R*dst.A*invSrcA) / outA,
		G: (src.G*src.A + dst.G*dst.A*invSrcA) / outA,
		B: (src.B*src.A + dst.B*dst.A*invSrcA) / outA,
		A: outA,
	}
}
