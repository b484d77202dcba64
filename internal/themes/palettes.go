package themes

// Preset is a named pair of seed colors
type Preset struct {
	Name      string `json:"name"`      // "slate", "indigo", etc.
	Primary   string `json:"primary"`   // hex color #RRGGBB
	Secondary string `json:"secondary"` // hex color #RRGGBB
}

// Palette derives the token maps for the preset, from both seeds when
// duotone is set.
func (p *Preset) Palette(duotone bool) Palette {
	if duotone {
		return DeriveDuotone(p.Primary, p.Secondary)
	}
	return Derive(p.Primary)
}

var presetNames = []string{
	"slate", "indigo", "rose", "emerald", "navy", "purple",
	"teal", "amber", "rose-mono", "green-mono", "blue-mono", "neutral",
}

// GetPreset returns a preset by name
func GetPreset(name string) *Preset {
	presets := map[string]*Preset{
		"slate": {
			Name:      "slate",
			Primary:   "#64748b",
			Secondary: "#0f172a",
		},
		"indigo": {
			Name:      "indigo",
			Primary:   "#4f46e5",
			Secondary: "#f97316",
		},
		"rose": {
			Name:      "rose",
			Primary:   "#e11d48",
			Secondary: "#64748b",
		},
		"emerald": {
			Name:      "emerald",
			Primary:   "#059669",
			Secondary: "#f59e0b",
		},
		"navy": {
			Name:      "navy",
			Primary:   "#000080",
			Secondary: "#fbbf24",
		},
		"purple": {
			Name:      "purple",
			Primary:   "#a855f7",
			Secondary: "#ec4899",
		},
		"teal": {
			Name:      "teal",
			Primary:   "#14b8a6",
			Secondary: "#f87171",
		},
		"amber": {
			Name:      "amber",
			Primary:   "#f59e0b",
			Secondary: "#6366f1",
		},
		"rose-mono": {
			Name:      "rose-mono",
			Primary:   "#e11d48",
			Secondary: "#c41e3a",
		},
		"green-mono": {
			Name:      "green-mono",
			Primary:   "#22c55e",
			Secondary: "#16a34a",
		},
		"blue-mono": {
			Name:      "blue-mono",
			Primary:   "#3b82f6",
			Secondary: "#1e40af",
		},
		"neutral": {
			Name:      "neutral",
			Primary:   "#6b7280",
			Secondary: "#4b5563",
		},
	}

	return presets[name]
}

// Presets returns all available presets in order
func Presets() []*Preset {
	var presets []*Preset
	for _, name := range presetNames {
		if p := GetPreset(name); p != nil {
			presets = append(presets, p)
		}
	}
	return presets
}
