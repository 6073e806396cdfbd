package effect

import "math"

// EaseOutCubic decelerates toward 1.
func EaseOutCubic(x float64) float64 {
	return 1 - math.Pow(1-x, 3)
}

// EaseInOutSine is the half-cosine curve.
func EaseInOutSine(x float64) float64 {
	return -(math.Cos(math.Pi*x) - 1) / 2
}

// Smoothstep matches the GLSL builtin.
func Smoothstep(edge0, edge1, x float64) float64 {
	t := clampF((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
