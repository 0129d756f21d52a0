package recolor

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

type Recolorer struct {
	InputImage image.Image
	// Input normalized to non-premultiplied 8-bit RGBA, origin at (0,0).
	Pixels  *image.NRGBA
	Palette []LabeledColor
	// Vocabulary for brightest-to-darkest colors. Nil uses DefaultLabels.
	Labels []string
}

func NewRecolorer(input image.Image) *Recolorer {
	return &Recolorer{InputImage: input}
}

func (r *Recolorer) Build() {
	r.makeNRGBA()
	colors, counts := UniqueColors(r.Pixels)
	SortByBrightness(colors)
	labels := r.Labels
	if labels == nil {
		labels = DefaultLabels
	}
	r.Palette = LabelPalette(colors, counts, labels)
}

// Remap returns the recolored image. Build must have been called.
func (r *Recolorer) Remap(t Table) *image.NRGBA {
	return Apply(r.Pixels, t)
}

// Colors returns the palette colors in label order.
func (r *Recolorer) Colors() []color.NRGBA {
	out := make([]color.NRGBA, len(r.Palette))
	for i, lc := range r.Palette {
		out[i] = lc.Color
	}
	return out
}

func (r *Recolorer) makeNRGBA() {
	if img, ok := r.InputImage.(*image.NRGBA); ok && img.Bounds().Min == (image.Point{}) {
		r.Pixels = img
		return
	}
	b := r.InputImage.Bounds()
	r.Pixels = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(r.Pixels, r.Pixels.Bounds(), r.InputImage, b.Min, draw.Src)
}
