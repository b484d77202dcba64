// SPDX-License-Identifier: MIT

// Package handlers serves the theme preview page and the JSON API over a
// customizer.
package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/thatcatcamp/tint/internal/customizer"
	"github.com/thatcatcamp/tint/internal/dialogs"
	"github.com/thatcatcamp/tint/internal/palettes"
)

// Handlers holds the dependencies of every route.
type Handlers struct {
	c   *customizer.Customizer
	log zerolog.Logger
}

// New returns handlers over an initialized customizer.
func New(c *customizer.Customizer, log zerolog.Logger) *Handlers {
	return &Handlers{
		c:   c,
		log: log.With().Str("component", "http").Logger(),
	}
}

// Register mounts every route on r.
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/", h.Preview)
	r.GET("/theme.css", h.ThemeCSS)
	r.GET("/swatch.png", h.Swatch)

	api := r.Group("/api")
	{
		api.GET("/state", h.State)
		api.POST("/generate", h.Generate)
		api.PUT("/colors/:mode/:key", h.SetColor)
		api.PUT("/radius", h.SetRadius)
		api.POST("/mode/toggle", h.ToggleMode)
		api.POST("/reset", h.Reset)
		api.GET("/contrast", h.Contrast)
		api.GET("/export/current", h.ExportCurrent)

		api.GET("/palettes", h.ListPalettes)
		api.POST("/palettes", h.SavePalette)
		api.POST("/palettes/import", h.ImportPalette)
		api.GET("/palettes/:id", h.GetPalette)
		api.DELETE("/palettes/:id", h.DeletePalette)
		api.POST("/palettes/:id/load", h.LoadPalette)
		api.GET("/palettes/:id/export", h.ExportPalette)
	}
}

// Health reports liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "tint",
	})
}

// respondError maps customizer and store errors to status codes.
func (h *Handlers) respondError(c *gin.Context, err error) {
	var ve *customizer.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(400, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, palettes.ErrNotFound):
		c.JSON(404, gin.H{"error": err.Error()})
	case palettes.IsPolicyError(err):
		c.JSON(409, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(500, gin.H{"error": "internal error"})
	}
}

// paletteID parses the :id parameter, writing a 400 on failure.
func paletteID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(400, gin.H{"error": "invalid palette ID", "field": "id"})
		return 0, false
	}
	return uint(id), true
}

// confirmContext answers the operation's confirmation dialog from the
// confirm query parameter. Without confirm=true the operation is declined.
func confirmContext(c *gin.Context) context.Context {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return customizer.WithDialog(c.Request.Context(), dialogs.NewAuto(ok))
}

func declined(c *gin.Context) {
	c.JSON(409, gin.H{
		"error":   "confirmation required: repeat the request with confirm=true",
		"outcome": customizer.OutcomeCancelled.String(),
	})
}
