package handlers

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/thatcatcamp/tint/internal/render"
	"github.com/thatcatcamp/tint/internal/themes"
)

// maxSwatchSize bounds the swatch image dimensions.
const maxSwatchSize = 4096

var namePolicy = bluemonday.StrictPolicy()

// Preview renders the projected document with a sample of themed
// elements and the saved palette names.
func (h *Handlers) Preview(c *gin.Context) {
	snap := h.c.State().Snapshot()

	var b strings.Builder
	b.WriteString("<style>\n" + themes.ElementCSS + "</style>\n")
	b.WriteString("<main>\n<h1>Theme preview</h1>\n")
	fmt.Fprintf(&b, "<p>Mode: %s &middot; Radius: %s</p>\n",
		themes.ModeFor(snap.IsDarkMode), html.EscapeString(themes.RadiusValue(snap.BorderRadius)))
	b.WriteString(`<p><a href="/theme.css">Download CSS</a></p>` + "\n")
	b.WriteString(`<img src="/swatch.png" alt="Light and dark swatches">` + "\n")

	b.WriteString("<h2>Saved palettes</h2>\n<ul>\n")
	for _, p := range snap.SavedPalettes {
		fmt.Fprintf(&b, "<li>%s</li>\n", namePolicy.Sanitize(p.Name))
	}
	b.WriteString("</ul>\n</main>")

	c.Data(200, "text/html; charset=utf-8", []byte(h.c.Document().HTML(b.String())))
}

// ThemeCSS serves the copy-paste stylesheet for the current buffer.
func (h *Handlers) ThemeCSS(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(200, "text/css; charset=utf-8", []byte(h.c.Stylesheet()))
}

// Swatch serves a PNG strip of the light and dark tokens. w and h set
// the image size.
func (h *Handlers) Swatch(c *gin.Context) {
	width, height := render.DefaultStripSize()
	var ok bool
	if width, ok = dimension(c, "w", width); !ok {
		return
	}
	if height, ok = dimension(c, "h", height); !ok {
		return
	}

	snap := h.c.State().Snapshot()
	var buf bytes.Buffer
	if err := render.WritePNG(&buf, snap.LightColors, snap.DarkColors, width, height); err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(200, "image/png", buf.Bytes())
}

func dimension(c *gin.Context, key string, def int) (int, bool) {
	q := c.Query(key)
	if q == "" {
		return def, true
	}
	v, err := strconv.Atoi(q)
	if err != nil || v <= 0 || v > maxSwatchSize {
		c.JSON(400, gin.H{"error": fmt.Sprintf("%s must be between 1 and %d", key, maxSwatchSize), "field": key})
		return 0, false
	}
	return v, true
}
