// SPDX-License-Identifier: MIT
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/thatcatcamp/tint/internal/colors"
	"github.com/thatcatcamp/tint/internal/themes"
)

const (
	// BlockWidth is the default width of one token block in a swatch strip.
	BlockWidth = 20
	// RowHeight is the default height of one mode row.
	RowHeight = 40
)

// DefaultStripSize returns the natural size of a swatch strip.
func DefaultStripSize() (width, height int) {
	return len(themes.TokenKeys) * BlockWidth, 2 * RowHeight
}

// SwatchStrip draws one block per token, the light map above the dark map,
// scaled to width x height. Missing or malformed tokens stay transparent.
func SwatchStrip(light, dark themes.TokenMap, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid swatch size %dx%d", width, height)
	}

	// one pixel per token and mode, scaled up without smoothing
	src := image.NewNRGBA(image.Rect(0, 0, len(themes.TokenKeys), 2))
	for y, m := range []themes.TokenMap{light, dark} {
		for x, key := range themes.TokenKeys {
			if c, ok := tokenColor(m.Get(key)); ok {
				src.SetNRGBA(x, y, c)
			}
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

func tokenColor(v string) (color.NRGBA, bool) {
	c, ok := colors.ToColorful(v)
	if !ok {
		return color.NRGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, true
}

// WritePNG encodes a swatch strip as PNG.
func WritePNG(w io.Writer, light, dark themes.TokenMap, width, height int) error {
	img, err := SwatchStrip(light, dark, width, height)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return nil
}

// WritePNGFile writes a swatch strip to path, creating its directory.
func WritePNGFile(path string, light, dark themes.TokenMap, width, height int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create swatch file: %w", err)
	}
	defer f.Close()

	return WritePNG(f, light, dark, width, height)
}
