// Package render draws token maps for terminals and as PNG swatch strips.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thatcatcamp/tint/internal/colors"
	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/themes"
)

// Styles used for terminal output.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Panel   lipgloss.Style
	Default lipgloss.Style
}

// DefaultStyles returns the styles used by the CLI.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Label:   lipgloss.NewStyle().Width(24),
		Value:   lipgloss.NewStyle().Width(18),
		Muted:   lipgloss.NewStyle().Faint(true),
		Pass:    lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		Fail:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		Panel:   lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1),
		Default: lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
	}
}

// swatch renders a block in the token's color, or "??" for bad values.
func swatch(v string) string {
	hex := colors.Hex(v)
	if hex == "" {
		return "??  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
}

// TokenTable renders one token map as swatch, name, value and hex rows.
func TokenTable(s Styles, title string, m themes.TokenMap) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n")
	for _, t := range m.Sorted() {
		b.WriteString(swatch(t.Value))
		b.WriteString(" ")
		b.WriteString(s.Label.Render(t.Name))
		b.WriteString(s.Value.Render(t.Value))
		b.WriteString(s.Muted.Render(colors.Hex(t.Value)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Palette renders the light and dark maps side by side.
func Palette(s Styles, light, dark themes.TokenMap, radius float64) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		s.Panel.Render(TokenTable(s, "Light", light)),
		s.Panel.Render(TokenTable(s, "Dark", dark)),
	)
	return body + "\n" + s.Muted.Render("--radius: "+themes.RadiusValue(radius))
}

// Contrast renders a contrast report.
func Contrast(s Styles, mode themes.Mode, checks []themes.ContrastCheck) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("Contrast (%s)", mode)))
	b.WriteString("\n")
	for _, c := range checks {
		pair := fmt.Sprintf("%s on %s", c.Foreground, c.Background)
		var verdict string
		switch {
		case !c.Valid:
			verdict = s.Muted.Render("n/a")
		case c.PassesAA:
			verdict = s.Pass.Render(fmt.Sprintf("%5.2f:1 AA", c.Ratio))
		default:
			verdict = s.Fail.Render(fmt.Sprintf("%5.2f:1 fail", c.Ratio))
		}
		b.WriteString(s.Label.Width(44).Render(pair))
		b.WriteString(verdict)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// PaletteList renders saved palettes, newest first.
func PaletteList(s Styles, list []palettes.Palette) string {
	if len(list) == 0 {
		return s.Muted.Render("No saved palettes")
	}
	var b strings.Builder
	for _, p := range list {
		name := p.Name
		if p.IsDefault() {
			name = s.Default.Render(name)
		}
		kind := "single"
		if p.IsDuoTone {
			kind = "duotone"
		}
		fmt.Fprintf(&b, "%4d  %s%s %s  %s  %s\n",
			p.ID,
			swatch(p.LightColors.Get(themes.Primary)),
			swatch(p.DarkColors.Get(themes.Primary)),
			s.Label.Render(name),
			s.Muted.Render(kind+", "+themes.RadiusValue(p.BorderRadius)),
			s.Muted.Render(p.CreatedAt.Format("2006-01-02 15:04")),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}
