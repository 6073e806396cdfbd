package effect

// Column is one instance of the skyline: a unit box placed on the grid and
// stretched between two target heights.
type Column struct {
	X, Z           float64
	R, G, B        float64
	NormalHeight   float64 // tall where the image is bright
	InvertedHeight float64 // tall where the image is dark
}

// ColumnStride is the float count per instance in AppendColumnData:
// x, z, r, g, b, normalHeight, invertedHeight.
const ColumnStride = 7

// BuildColumns turns the visible samples of a grid x grid downsample into
// columns centred on the origin. Heights use luminance normalized over the
// visible samples only.
func BuildColumns(pb *PixelBuffer, grid int) []Column {
	samples := pb.Samples(grid, ColumnAlphaThreshold)
	if len(samples) == 0 {
		return nil
	}
	minLum, maxLum := samples[0].Lum, samples[0].Lum
	for _, s := range samples[1:] {
		minLum = min(minLum, s.Lum)
		maxLum = max(maxLum, s.Lum)
	}
	lumRange := maxLum - minLum
	if lumRange == 0 {
		lumRange = 1
	}
	half := float64(grid-1) / 2
	span := MaxColumnHeight - MinColumnHeight
	cols := make([]Column, len(samples))
	for i, s := range samples {
		n := (s.Lum - minLum) / lumRange
		cols[i] = Column{
			X:              float64(s.GX) - half,
			Z:              float64(s.GY) - half,
			R:              s.R,
			G:              s.G,
			B:              s.B,
			NormalHeight:   MinColumnHeight + n*span,
			InvertedHeight: MinColumnHeight + (1-n)*span,
		}
	}
	return cols
}

func AppendColumnData(buf []float32, cols []Column) []float32 {
	for _, c := range cols {
		buf = append(buf,
			float32(c.X), float32(c.Z),
			float32(c.R), float32(c.G), float32(c.B),
			float32(c.NormalHeight), float32(c.InvertedHeight),
		)
	}
	return buf
}
