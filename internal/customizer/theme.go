package customizer

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/thatcatcamp/tint/internal/colors"
	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/themes"
)

// RadiusStep is the increment used by StepBorderRadius.
const RadiusStep = 0.125

func normalizeHex(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	if !colors.IsHex(v) {
		return "", &ValidationError{Field: field, Message: "Please enter a valid hex color"}
	}
	return strings.ToLower(v), nil
}

// ApplyGenerated derives both maps from one seed and makes them the
// current theme.
func (c *Customizer) ApplyGenerated(primaryHex string) (themes.Palette, error) {
	hex, err := normalizeHex("primary", primaryHex)
	if err != nil {
		c.fail("Error", "Please enter a valid hex color")
		return themes.Palette{}, err
	}
	return c.applyPalette(themes.Derive(hex)), nil
}

// ApplyDuotone derives both maps from two seeds and makes them the
// current theme.
func (c *Customizer) ApplyDuotone(primaryHex, secondaryHex string) (themes.Palette, error) {
	primary, err := normalizeHex("primary", primaryHex)
	if err != nil {
		c.fail("Error", "Please enter a valid hex color")
		return themes.Palette{}, err
	}
	secondary, err := normalizeHex("secondary", secondaryHex)
	if err != nil {
		c.fail("Error", "Please enter a valid hex color")
		return themes.Palette{}, err
	}
	return c.applyPalette(themes.DeriveDuotone(primary, secondary)), nil
}

// ApplyPreset applies a named seed preset.
func (c *Customizer) ApplyPreset(name string, duotone bool) (themes.Palette, error) {
	preset := themes.GetPreset(name)
	if preset == nil {
		return themes.Palette{}, &ValidationError{Field: "preset", Message: "unknown preset " + name}
	}
	return c.applyPalette(preset.Palette(duotone)), nil
}

// Randomize applies a palette generated from a random seed.
func (c *Customizer) Randomize(r *rand.Rand) (string, themes.Palette) {
	hex := colors.RandomHex(r)
	return hex, c.applyPalette(themes.Derive(hex))
}

func (c *Customizer) applyPalette(p themes.Palette) themes.Palette {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SetColors(p.Light, p.Dark)
	c.notify("Applied!", "Color palette applied to theme customizer")
	return p
}

// SetColor changes one token of one mode. The value may be a token value
// ("217 91% 60%") or a hex color.
func (c *Customizer) SetColor(mode themes.Mode, key, value string) error {
	k, err := themes.ParseTokenKey(key)
	if err != nil {
		return &ValidationError{Field: "key", Message: err.Error()}
	}
	value = strings.TrimSpace(value)
	if colors.IsHex(value) {
		value = colors.HexToHSL(value).String()
	}
	if !colors.ValidTokenValue(value) {
		return &ValidationError{Field: k.Var(), Message: `must look like "217 91% 60%" or a hex color`}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch mode {
	case themes.Dark:
		c.state.SetDarkColors(c.state.DarkColors().Set(k, value))
	default:
		c.state.SetLightColors(c.state.LightColors().Set(k, value))
	}
	return nil
}

// SetBorderRadius sets the radius in rem.
func (c *Customizer) SetBorderRadius(rem float64) error {
	if math.IsNaN(rem) || rem < palettes.MinRadius || rem > palettes.MaxRadius {
		return &ValidationError{Field: "borderRadius", Message: "must be between 0 and 2"}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetBorderRadius(rem)
	return nil
}

// StepBorderRadius moves the radius by steps of RadiusStep, clamped to
// [0, 2], and returns the new value.
func (c *Customizer) StepBorderRadius(steps int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.state.BorderRadius() + float64(steps)*RadiusStep
	r = math.Max(palettes.MinRadius, math.Min(palettes.MaxRadius, r))
	c.state.SetBorderRadius(r)
	return r
}

// ToggleDarkMode flips the mode and returns the new value.
func (c *Customizer) ToggleDarkMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	isDark := !c.state.IsDarkMode()
	c.state.SetDarkMode(isDark)
	return isDark
}

func (c *Customizer) SetDarkMode(isDark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SetDarkMode(isDark)
}

// Reset restores the default colors and radius after the user confirms.
// The document loses every inline property and the dark stylesheet; only
// the radius is re-applied.
func (c *Customizer) Reset(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ok := confirm(ctx, c.dialogFor(ctx), ConfirmOptions{
		Title:       "Reset Theme",
		Description: "Are you sure you want to reset the theme to default settings? This action cannot be undone.",
		ConfirmText: "Reset",
	})
	if !ok {
		return OutcomeCancelled, nil
	}

	c.muted.Store(true)
	c.state.ResetColors(c.opts.DefaultRadius)
	c.muted.Store(false)
	c.applier.Reset(c.opts.DefaultRadius)

	c.log.Info().Msg("theme reset to defaults")
	return OutcomeDone, nil
}
