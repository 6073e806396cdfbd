package effect

// Rect is an on-screen box in window pixels, origin top-left.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Size is a viewport in window pixels.
type Size struct {
	W, H float64
}

func (s Size) Aspect() float64 {
	if s.H <= 0 {
		return 1
	}
	return s.W / s.H
}

// ThumbnailRect places the portrait thumbnail: centred horizontally, with its
// top edge a fifth of the way down the viewport.
func ThumbnailRect(vp Size) Rect {
	return Rect{
		X: (vp.W - ImageSize) / 2,
		Y: vp.H / 5,
		W: ImageSize,
		H: ImageSize,
	}
}

// Section is a page section reachable by a single-letter shortcut.
type Section string

const (
	SectionHome     Section = "home"
	SectionProjects Section = "projects"
	SectionLinks    Section = "links"
)

// NavSection maps a shortcut letter, either case, to its section.
func NavSection(r rune) (Section, bool) {
	switch r {
	case 'h', 'H':
		return SectionHome, true
	case 'p', 'P':
		return SectionProjects, true
	case 'l', 'L':
		return SectionLinks, true
	}
	return "", false
}
