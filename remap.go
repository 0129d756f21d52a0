package recolor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrUnknownLabel = errors.New("unknown label")
	// ErrDuplicateLabel reports plan keys that resolve to one palette entry.
	ErrDuplicateLabel = errors.New("duplicate label")
)

// Table maps original colors to replacements. Colors without an entry map to
// themselves.
type Table map[color.NRGBA]color.NRGBA

// IdentityTable maps every palette color to itself.
func IdentityTable(palette []LabeledColor) Table {
	t := make(Table, len(palette))
	for _, lc := range palette {
		t[lc.Color] = lc.Color
	}
	return t
}

func (t Table) Lookup(c color.NRGBA) color.NRGBA {
	if r, ok := t[c]; ok {
		return r
	}
	return c
}

// Changed reports the entries whose replacement differs from the original.
func (t Table) Changed() int {
	n := 0
	for from, to := range t {
		if from != to {
			n++
		}
	}
	return n
}

// ParseRGBA reads "r,g,b,a" with byte components, or #rgb, #rrggbb and
// #rrggbbaa hex.
func ParseRGBA(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("%w: want 4 components, got %d", ErrInvalidColor, len(parts))
	}
	var v [4]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: component %d %q", ErrInvalidColor, i, strings.TrimSpace(p))
		}
		v[i] = uint8(n)
	}
	return color.NRGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

func parseHex(s string) (color.NRGBA, error) {
	switch len(s) {
	case 4, 7, 9:
	default:
		return color.NRGBA{}, fmt.Errorf("%w: hex %q", ErrInvalidColor, s)
	}
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: alpha %q", ErrInvalidColor, s[7:])
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Apply substitutes every pixel of src through t into a new image with the
// same dimensions.
func Apply(src *image.NRGBA, t Table) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		in := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := range w {
			off := x * 4
			c := t.Lookup(color.NRGBA{R: in[off], G: in[off+1], B: in[off+2], A: in[off+3]})
			dst[off] = c.R
			dst[off+1] = c.G
			dst[off+2] = c.B
			dst[off+3] = c.A
		}
	}
	return out
}
