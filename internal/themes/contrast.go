// SPDX-License-Identifier: MIT
package themes

import (
	"github.com/thatcatcamp/tint/internal/colors"
)

// MinContrastAA is the WCAG AA threshold for normal text.
const MinContrastAA = 4.5

// ContrastCheck is the contrast of one foreground token on its surface.
type ContrastCheck struct {
	Foreground TokenKey `json:"foreground"`
	Background TokenKey `json:"background"`
	Ratio      float64  `json:"ratio"`
	PassesAA   bool     `json:"passesAA"`
	// Valid is false when either token is missing or malformed.
	Valid bool `json:"valid"`
}

var contrastPairs = [][2]TokenKey{
	{Foreground, Background},
	{CardForeground, Card},
	{PopoverForeground, Popover},
	{PrimaryForeground, Primary},
	{SecondaryForeground, Secondary},
	{MutedForeground, Muted},
	{AccentForeground, Accent},
	{DestructiveForeground, Destructive},
}

// ContrastReport measures every foreground/background pair of m.
func ContrastReport(m TokenMap) []ContrastCheck {
	out := make([]ContrastCheck, 0, len(contrastPairs))
	for _, pair := range contrastPairs {
		check := ContrastCheck{Foreground: pair[0], Background: pair[1]}
		fg, ok1 := colors.ToColorful(m.Get(pair[0]))
		bg, ok2 := colors.ToColorful(m.Get(pair[1]))
		if ok1 && ok2 {
			check.Valid = true
			check.Ratio = colors.ContrastRatio(fg, bg)
			check.PassesAA = check.Ratio >= MinContrastAA
		}
		out = append(out, check)
	}
	return out
}
