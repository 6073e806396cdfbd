package effect

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// damp moves cur toward target by a fixed fraction of the remaining distance.
// With 0 < k <= 1 it never overshoots.
func damp(cur, target, k float64) float64 {
	return cur + (target-cur)*k
}

// Vec3 is a small float64 triple used for camera and mesh anchors.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{X: lerp(v.X, o.X, t), Y: lerp(v.Y, o.Y, t), Z: lerp(v.Z, o.Z, t)}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: splitmix64(seed)}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}

// Approach moves cur toward target by at most maxDelta.
func Approach(cur, target, maxDelta float64) float64 {
	if cur < target {
		return min(cur+maxDelta, target)
	}
	return max(cur-maxDelta, target)
}
