package utils

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/setanarut/recolor"
	"github.com/setanarut/recolor/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func sprite() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, white)
	img.SetNRGBA(1, 0, black)
	img.SetNRGBA(0, 1, red)
	img.SetNRGBA(1, 1, white)
	return img
}

func TestSaveAndReadImage(t *testing.T) {
	for _, ext := range []string{".png", ".bmp", ".tiff", ".gif"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sprite"+ext)
			src := sprite()
			require.NoError(t, SaveImage(src, path))

			got, err := ReadImage(path)
			require.NoError(t, err)
			assert.Equal(t, src.Bounds(), got.Bounds())
			for y := range 2 {
				for x := range 2 {
					assert.Equal(t, src.NRGBAAt(x, y), color.NRGBAModel.Convert(got.At(x, y)), "pixel %d,%d", x, y)
				}
			}
		})
	}
}

func TestSaveImage_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.xcf")
	err := SaveImage(sprite(), path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, statErr := os.Stat(path)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestReadImage_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadImage(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = ReadImage(garbage)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("art", "sprites", "out.png"), OutputPath(filepath.Join("art", "sprites", "hero.png"), "out.png"))
	assert.Equal(t, "out.png", OutputPath("hero.png", "out.png"))
}

func TestSwatchPath(t *testing.T) {
	assert.Equal(t, filepath.Join("art", "out_palette.png"), SwatchPath(filepath.Join("art", "out.bmp")))
	assert.Equal(t, "out_palette.png", SwatchPath("out"))
}

func TestFormatColor(t *testing.T) {
	assert.Equal(t, "(255, 0, 0, 255) #ff0000", FormatColor(red))
	assert.Equal(t, "(20, 12, 28, 0) #140c1c", FormatColor(color.NRGBA{R: 20, G: 12, B: 28}))
}

func TestSavePalette(t *testing.T) {
	palette := recolor.LabelPalette([]color.NRGBA{white, black}, nil, recolor.DefaultLabels)
	table := recolor.IdentityTable(palette)
	table[black] = red
	path := filepath.Join(t.TempDir(), "palette.png")

	require.NoError(t, SavePalette(palette, table, 8, path))

	got, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), got.Bounds())
	at := func(x, y int) color.Color { return color.NRGBAModel.Convert(got.At(x, y)) }
	assert.Equal(t, white, at(0, 0))
	assert.Equal(t, white, at(7, 15))
	assert.Equal(t, black, at(8, 0))
	assert.Equal(t, red, at(15, 15))
}

func TestSavePalette_Empty(t *testing.T) {
	assert.Error(t, SavePalette(nil, nil, 8, filepath.Join(t.TempDir(), "p.png")))
}

func TestSaveImage_GIFRejectsPartialAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 10, B: 10, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{R: 201, G: 10, B: 10, A: 128})
	img.SetNRGBA(2, 0, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	path := filepath.Join(t.TempDir(), "sprite.gif")

	err := SaveImage(img, path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, path)

	// The same colors survive in a format with an alpha channel.
	pngPath := filepath.Join(t.TempDir(), "sprite.png")
	require.NoError(t, SaveImage(img, pngPath))
	got, err := ReadImage(pngPath)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 200, G: 10, B: 10, A: 128}, color.NRGBAModel.Convert(got.At(0, 0)))
}

func TestSaveImage_GIFTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 5, G: 6, B: 7, A: 0})
	img.SetNRGBA(1, 0, red)
	img.SetNRGBA(2, 0, color.NRGBA{})
	path := filepath.Join(t.TempDir(), "sprite.gif")
	require.NoError(t, SaveImage(img, path))

	got, err := ReadImage(path)
	require.NoError(t, err)
	pm, ok := got.(*image.Paletted)
	require.True(t, ok)
	assert.Len(t, pm.Palette, 2, "transparent pixels share one index")
	assert.Equal(t, pm.ColorIndexAt(0, 0), pm.ColorIndexAt(2, 0))
	_, _, _, a := got.At(0, 0).RGBA()
	assert.Zero(t, a)
	assert.Equal(t, red, color.NRGBAModel.Convert(got.At(1, 0)))
}

func TestSaveImage_GIFManyColors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := log.Logger()
	log.SetLogger(zap.New(core))
	t.Cleanup(func() { log.SetLogger(prev) })

	img := image.NewNRGBA(image.Rect(0, 0, 300, 1))
	for x := range 300 {
		img.SetNRGBA(x, 0, color.NRGBA{R: uint8(x), G: uint8(x / 256), A: 255})
	}
	path := filepath.Join(t.TempDir(), "many.gif")
	require.NoError(t, SaveImage(img, path))
	assert.FileExists(t, path)
	assert.Equal(t, 1, logs.FilterMessage("gif output quantized").Len())
}

func TestSaveImage_FailedEncodeRemovesFile(t *testing.T) {
	// gif cannot encode widths of 1<<16 or more.
	img := image.NewNRGBA(image.Rect(0, 0, 1<<16, 1))
	path := filepath.Join(t.TempDir(), "wide.gif")

	assert.Error(t, SaveImage(img, path))
	assert.NoFileExists(t, path)
}
