package recolor

import (
	"fmt"
	"image"
	"image/color"
	"slices"
	"strconv"
	"strings"
)

// DefaultLabels names palette entries from brightest to darkest.
var DefaultLabels = []string{
	"Background White",
	"Highlight Bright",
	"Highlight Dark",
	"Midtone",
	"Shade Bright",
	"Shade Dark",
	"Outline",
	"Black",
}

// LabeledColor is one distinct color of an image.
type LabeledColor struct {
	Label string
	Color color.NRGBA
	// Number of pixels using this exact color.
	Count int
}

// Luminance weights raw 0-255 sRGB channels. Alpha does not contribute.
func Luminance(c color.NRGBA) float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// UniqueColors returns the distinct colors of img in row-major first-seen
// order together with their pixel counts.
func UniqueColors(img *image.NRGBA) ([]color.NRGBA, map[color.NRGBA]int) {
	counts := make(map[color.NRGBA]int)
	var colors []color.NRGBA
	b := img.Bounds()
	w := b.Dx()
	for y := range b.Dy() {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for px := range w {
			off := px * 4
			c := color.NRGBA{R: row[off], G: row[off+1], B: row[off+2], A: row[off+3]}
			if _, ok := counts[c]; !ok {
				colors = append(colors, c)
			}
			counts[c]++
		}
	}
	return colors, counts
}

// SortByBrightness orders colors from brightest to darkest. Equal luminance
// keeps the input order.
func SortByBrightness(colors []color.NRGBA) {
	slices.SortStableFunc(colors, func(a, b color.NRGBA) int {
		la, lb := Luminance(a), Luminance(b)
		if la > lb {
			return -1
		}
		if la < lb {
			return 1
		}
		return 0
	})
}

// ExtraLabel names the i-th sorted color once the vocabulary is exhausted.
func ExtraLabel(i int) string {
	return fmt.Sprintf("Extra %d", i)
}

// LabelPalette zips sorted colors against labels. counts may be nil.
func LabelPalette(colors []color.NRGBA, counts map[color.NRGBA]int, labels []string) []LabeledColor {
	out := make([]LabeledColor, len(colors))
	for i, c := range colors {
		label := ExtraLabel(i)
		if i < len(labels) {
			label = labels[i]
		}
		out[i] = LabeledColor{Label: label, Color: c, Count: counts[c]}
	}
	return out
}

// FindLabel looks up an entry by case-insensitive label or by its index.
func FindLabel(palette []LabeledColor, name string) (LabeledColor, error) {
	name = strings.TrimSpace(name)
	for _, lc := range palette {
		if strings.EqualFold(lc.Label, name) {
			return lc, nil
		}
	}
	if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < len(palette) {
		return palette[i], nil
	}
	return LabeledColor{}, fmt.Errorf("%w: %q", ErrUnknownLabel, name)
}
