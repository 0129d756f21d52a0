package utils

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/setanarut/recolor"
	"github.com/setanarut/recolor/internal/log"
	"go.uber.org/zap"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SaveImage encodes img with the codec matching the file extension. A failed
// encode leaves no file behind.
func SaveImage(img image.Image, filename string) error {
	var encode func(*os.File) error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 95}) }
	case ".gif":
		pm, err := gifPaletted(img)
		if err != nil {
			return err
		}
		encode = func(f *os.File) error { return gif.Encode(f, pm, nil) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, img) }
	case ".tif", ".tiff":
		encode = func(f *os.File) error { return tiff.Encode(f, img, nil) }
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}
	return f.Close()
}

// gifPaletted maps an NRGBA image onto an exact palette. GIF has no partial
// alpha, so such colors are rejected; every fully transparent pixel shares
// one transparent index. Above 256 colors gif quantizes to Plan9.
func gifPaletted(img image.Image) (image.Image, error) {
	src, ok := img.(*image.NRGBA)
	if !ok {
		return img, nil
	}
	colors, _ := recolor.UniqueColors(src)
	index := make(map[color.NRGBA]uint8, len(colors))
	var pal color.Palette
	for _, c := range colors {
		if c.A != 0 && c.A != 255 {
			return nil, fmt.Errorf("%w: gif cannot store alpha %d of %s", ErrUnsupportedFormat, c.A, FormatColor(c))
		}
		if c.A == 0 {
			c = color.NRGBA{}
		}
		if _, ok := index[c]; ok {
			continue
		}
		if len(pal) == 256 {
			log.Warn("gif output quantized", zap.Int("colors", len(colors)))
			return img, nil
		}
		index[c] = uint8(len(pal))
		pal = append(pal, c)
	}

	b := src.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	for y := range b.Dy() {
		row := src.Pix[y*src.Stride:]
		for x := range b.Dx() {
			c := color.NRGBA{R: row[x*4], G: row[x*4+1], B: row[x*4+2], A: row[x*4+3]}
			if c.A == 0 {
				c = color.NRGBA{}
			}
			dst.Pix[y*dst.Stride+x] = index[c]
		}
	}
	return dst, nil
}

// OutputPath places name in the directory of the input image.
func OutputPath(input, name string) string {
	return filepath.Join(filepath.Dir(input), name)
}

// SwatchPath derives the palette strip filename for an output image.
func SwatchPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_palette.png"
}

// SavePalette writes a strip of tiles: original colors on top, their
// replacements below.
func SavePalette(palette []recolor.LabeledColor, t recolor.Table, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	img := image.NewNRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize*2))
	for i, lc := range palette {
		x0 := i * tileSize
		top := image.Rect(x0, 0, x0+tileSize, tileSize)
		bottom := image.Rect(x0, tileSize, x0+tileSize, tileSize*2)
		draw.Draw(img, top, image.NewUniform(lc.Color), image.Point{}, draw.Src)
		draw.Draw(img, bottom, image.NewUniform(t.Lookup(lc.Color)), image.Point{}, draw.Src)
	}

	return SaveImage(img, filename)
}

// FormatColor renders c as "(r, g, b, a) #rrggbb".
func FormatColor(c color.NRGBA) string {
	hex := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
	return fmt.Sprintf("(%d, %d, %d, %d) %s", c.R, c.G, c.B, c.A, hex)
}
