package effect

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// PixelBuffer is a square RGBA8 image, row-major from the top-left.
// It is never mutated after construction.
type PixelBuffer struct {
	Size int
	Pix  []uint8
}

var ErrEmptyImage = errors.New("image has no pixels")

func (pb *PixelBuffer) At(x, y int) (r, g, b, a uint8) {
	i := (y*pb.Size + x) * 4
	return pb.Pix[i], pb.Pix[i+1], pb.Pix[i+2], pb.Pix[i+3]
}

// LoadPortrait decodes the image at path, crops the centred square of its
// shorter side and resamples it to size x size.
func LoadPortrait(path string, size int) (*PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open portrait: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode portrait %s: %w", path, err)
	}
	return FromImage(src, size)
}

// FromImage crops and resamples an already decoded image.
func FromImage(src image.Image, size int) (*PixelBuffer, error) {
	b := src.Bounds()
	side := min(b.Dx(), b.Dy())
	if side <= 0 || size <= 0 {
		return nil, ErrEmptyImage
	}
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	square := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(square, square.Bounds(), src, image.Pt(x0, y0), draw.Src)

	scaled := resize.Resize(uint(size), uint(size), square, resize.Bilinear)
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
	return &PixelBuffer{Size: size, Pix: dst.Pix}, nil
}

// Placeholder synthesizes a radial colour wheel: hue follows the angle around
// the centre, lightness falls off with distance, and everything outside the
// radius is fully transparent. The output depends only on size.
func Placeholder(size int) *PixelBuffer {
	pix := make([]uint8, size*size*4)
	c := float64(size) / 2
	radius := c - PlaceholderInset
	for y := range size {
		for x := range size {
			i := (y*size + x) * 4
			dx := float64(x) - c
			dy := float64(y) - c
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist >= radius {
				continue
			}
			t := dist / radius
			angle := math.Atan2(dy, dx)
			hue := math.Mod(((angle+math.Pi)/(2*math.Pi))*0.2+0.95, 1)
			light := 0.5 + (1-t)*0.2
			col := colorful.Hsl(hue*360, 0.6, light).Clamped()
			pix[i] = uint8(math.Floor(col.R * 255))
			pix[i+1] = uint8(math.Floor(col.G * 255))
			pix[i+2] = uint8(math.Floor(col.B * 255))
			pix[i+3] = 255
		}
	}
	return &PixelBuffer{Size: size, Pix: pix}
}

// PixelSample is one visible cell of a downsampled grid. Colour channels and
// luminance are in [0,1].
type PixelSample struct {
	GX, GY  int
	R, G, B float64
	Lum     float64
}

// Luminance is the perceptual brightness of an RGB triple in [0,1].
func Luminance(r, g, b float64) float64 {
	return LumaR*r + LumaG*g + LumaB*b
}

// Samples downsamples the buffer to grid x grid cells, bottom row first, and
// keeps cells whose alpha is at least alphaMin.
func (pb *PixelBuffer) Samples(grid int, alphaMin uint8) []PixelSample {
	if pb == nil || grid <= 0 || pb.Size == 0 {
		return nil
	}
	step := float64(pb.Size) / float64(grid)
	out := make([]PixelSample, 0, grid*grid)
	for gy := range grid {
		for gx := range grid {
			px := int(math.Floor(float64(gx) * step))
			py := int(math.Floor(float64(grid-1-gy) * step))
			r, g, b, a := pb.At(px, py)
			if a < alphaMin {
				continue
			}
			s := PixelSample{
				GX: gx, GY: gy,
				R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255,
			}
			s.Lum = Luminance(s.R, s.G, s.B)
			out = append(out, s)
		}
	}
	return out
}
