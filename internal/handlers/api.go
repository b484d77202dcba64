package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thatcatcamp/tint/internal/customizer"
	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/themes"
)

// maxImportSize bounds palette file uploads.
const maxImportSize = 1 << 20

// State returns the full edit buffer.
func (h *Handlers) State(c *gin.Context) {
	c.JSON(200, h.c.State().Snapshot())
}

type generateRequest struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Preset    string `json:"preset"`
	Duotone   bool   `json:"duotone"`
	Random    bool   `json:"random"`
}

// Generate derives and applies a palette from a seed color, two seeds, a
// named preset or a random seed.
func (h *Handlers) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}

	var (
		palette themes.Palette
		seed    = req.Primary
		err     error
	)
	switch {
	case req.Random:
		seed, palette = h.c.Randomize(nil)
	case req.Preset != "":
		palette, err = h.c.ApplyPreset(req.Preset, req.Duotone)
		seed = ""
	case req.Secondary != "":
		palette, err = h.c.ApplyDuotone(req.Primary, req.Secondary)
	case req.Primary != "":
		palette, err = h.c.ApplyGenerated(req.Primary)
	default:
		c.JSON(400, gin.H{"error": "primary, preset or random is required", "field": "primary"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"seed":    seed,
		"palette": palette,
	})
}

type colorRequest struct {
	Value string `json:"value" binding:"required"`
}

// SetColor edits one token of one mode.
func (h *Handlers) SetColor(c *gin.Context) {
	mode, err := themes.ParseMode(c.Param("mode"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error(), "field": "mode"})
		return
	}
	var req colorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "value is required", "field": "value"})
		return
	}
	if err := h.c.SetColor(mode, c.Param("key"), req.Value); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(200, h.c.State().Snapshot())
}

type radiusRequest struct {
	Radius *float64 `json:"radius"`
	Step   int      `json:"step"`
}

// SetRadius sets the border radius, or moves it by step increments.
func (h *Handlers) SetRadius(c *gin.Context) {
	var req radiusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}

	switch {
	case req.Radius != nil:
		if err := h.c.SetBorderRadius(*req.Radius); err != nil {
			h.respondError(c, err)
			return
		}
	case req.Step != 0:
		h.c.StepBorderRadius(req.Step)
	default:
		c.JSON(400, gin.H{"error": "radius or step is required", "field": "radius"})
		return
	}
	c.JSON(200, gin.H{
		"borderRadius": h.c.State().BorderRadius(),
		"css":          themes.RadiusValue(h.c.State().BorderRadius()),
	})
}

// ToggleMode flips between light and dark.
func (h *Handlers) ToggleMode(c *gin.Context) {
	dark := h.c.ToggleDarkMode()
	c.JSON(200, gin.H{
		"isDarkMode": dark,
		"mode":       themes.ModeFor(dark),
	})
}

// Reset restores the default theme. Requires confirm=true.
func (h *Handlers) Reset(c *gin.Context) {
	outcome, err := h.c.Reset(confirmContext(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if outcome == customizer.OutcomeCancelled {
		declined(c)
		return
	}
	c.JSON(200, gin.H{"outcome": outcome.String()})
}

// Contrast reports WCAG contrast for the requested mode, or the active
// one.
func (h *Handlers) Contrast(c *gin.Context) {
	mode := themes.ModeFor(h.c.State().IsDarkMode())
	if q := c.Query("mode"); q != "" {
		m, err := themes.ParseMode(q)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error(), "field": "mode"})
			return
		}
		mode = m
	}
	c.JSON(200, gin.H{
		"mode":   mode,
		"checks": h.c.Contrast(mode),
	})
}

// ListPalettes returns the collection, newest first.
func (h *Handlers) ListPalettes(c *gin.Context) {
	if err := h.c.RefreshPalettes(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(200, h.c.State().SavedPalettes())
}

type saveRequest struct {
	Name       string `json:"name"`
	ExistingID *uint  `json:"existingId"`
	IsDuoTone  bool   `json:"isDuoTone"`
}

// SavePalette stores the current buffer.
func (h *Handlers) SavePalette(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.c.SavePalette(c.Request.Context(), req.Name, req.ExistingID, req.IsDuoTone)
	if err != nil {
		h.respondError(c, err)
		return
	}
	status := 201
	if req.ExistingID != nil {
		status = 200
	}
	c.JSON(status, gin.H{"id": id})
}

// GetPalette returns one saved palette.
func (h *Handlers) GetPalette(c *gin.Context) {
	id, ok := paletteID(c)
	if !ok {
		return
	}
	if err := h.c.RefreshPalettes(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	for _, p := range h.c.State().SavedPalettes() {
		if p.ID == id {
			c.JSON(200, p)
			return
		}
	}
	h.respondError(c, palettes.ErrNotFound)
}

// DeletePalette removes a palette. Requires confirm=true.
func (h *Handlers) DeletePalette(c *gin.Context) {
	id, ok := paletteID(c)
	if !ok {
		return
	}
	outcome, err := h.c.DeletePalette(confirmContext(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if outcome == customizer.OutcomeCancelled {
		declined(c)
		return
	}
	c.JSON(200, gin.H{"outcome": outcome.String(), "id": id})
}

// LoadPalette makes a saved palette the current theme.
func (h *Handlers) LoadPalette(c *gin.Context) {
	id, ok := paletteID(c)
	if !ok {
		return
	}
	p, err := h.c.LoadPalette(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(200, p)
}

// ExportPalette downloads a saved palette.
func (h *Handlers) ExportPalette(c *gin.Context) {
	id, ok := paletteID(c)
	if !ok {
		return
	}
	format, err := palettes.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error(), "field": "format"})
		return
	}
	export, err := h.c.ExportPalette(c.Request.Context(), id, format)
	if err != nil {
		h.respondError(c, err)
		return
	}
	sendExport(c, export)
}

// ExportCurrent downloads the unsaved buffer.
func (h *Handlers) ExportCurrent(c *gin.Context) {
	format, err := palettes.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error(), "field": "format"})
		return
	}
	export, err := h.c.ExportCurrent(format)
	if err != nil {
		h.respondError(c, err)
		return
	}
	sendExport(c, export)
}

func sendExport(c *gin.Context, export *customizer.Export) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(200, export.ContentType, export.Data)
}

// ImportPalette saves and applies a palette file sent as the request
// body, or as the "file" field of a multipart form.
func (h *Handlers) ImportPalette(c *gin.Context) {
	data, err := readImport(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error(), "field": "data"})
		return
	}
	id, imported, err := h.c.ImportPalette(c.Request.Context(), data)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(201, gin.H{
		"id":        id,
		"name":      imported.Name,
		"recovered": imported.Recovered,
	})
}

func readImport(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to read upload")
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImportSize))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
}
