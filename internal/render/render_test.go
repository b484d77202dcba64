// SPDX-License-Identifier: MIT
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/themes"
)

func TestSwatchStripColors(t *testing.T) {
	light := themes.TokenMap{"--background": "0 100% 50%"}
	dark := themes.TokenMap{"--background": "240 100% 50%"}

	width, height := DefaultStripSize()
	img, err := SwatchStrip(light, dark, width, height)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, width, height), img.Bounds())

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, color.NRGBAModel.Convert(img.At(BlockWidth/2, RowHeight/2)))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, color.NRGBAModel.Convert(img.At(BlockWidth/2, RowHeight+RowHeight/2)))

	// foreground is not set, so its block is transparent
	_, _, _, a := img.At(BlockWidth+BlockWidth/2, RowHeight/2).RGBA()
	assert.Zero(t, a)
}

func TestSwatchStripInvalidSize(t *testing.T) {
	_, err := SwatchStrip(nil, nil, 0, 10)
	assert.Error(t, err)
}

func TestWritePNGFile(t *testing.T) {
	p := themes.Derive("#3b82f6")
	path := filepath.Join(t.TempDir(), "nested", "swatch.png")

	require.NoError(t, WritePNGFile(path, p.Light, p.Dark, 130, 20))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 130, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, themes.Defaults(themes.Light), themes.Defaults(themes.Dark), 52, 4))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestTokenTable(t *testing.T) {
	out := TokenTable(DefaultStyles(), "Light", themes.TokenMap{
		"--primary": "217 91% 60%",
		"--broken":  "nope",
	})
	assert.Contains(t, out, "Light")
	assert.Contains(t, out, "--primary")
	assert.Contains(t, out, "217 91% 60%")
	assert.Contains(t, out, "??")
	assert.Less(t, strings.Index(out, "--primary"), strings.Index(out, "--broken"))
}

func TestPaletteAndContrast(t *testing.T) {
	s := DefaultStyles()
	p := themes.Derive("#3b82f6")

	out := Palette(s, p.Light, p.Dark, 0.625)
	assert.Contains(t, out, "Dark")
	assert.Contains(t, out, "--radius: 0.625rem")

	report := Contrast(s, themes.Light, themes.ContrastReport(p.Light))
	assert.Contains(t, report, "foreground on background")
}

func TestPaletteList(t *testing.T) {
	s := DefaultStyles()
	assert.Contains(t, PaletteList(s, nil), "No saved palettes")

	out := PaletteList(s, []palettes.Palette{
		{ID: 2, Name: "Ocean", IsDuoTone: true, BorderRadius: 1, CreatedAt: time.Now()},
		{ID: 1, Name: palettes.DefaultName, BorderRadius: 0.5, CreatedAt: time.Now()},
	})
	assert.Contains(t, out, "Ocean")
	assert.Contains(t, out, "duotone, 1rem")
	assert.Contains(t, out, palettes.DefaultName)
}
