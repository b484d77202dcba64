// SPDX-License-Identifier: MIT
package themes

import (
	"math"

	"github.com/thatcatcamp/tint/internal/colors"
)

const (
	destructiveLight   = "0 90% 65%"
	destructiveDark    = "0 70% 35%"
	destructiveFgLight = "0 0% 98%"
	destructiveFgDark  = "0 0% 98%"
	gradientOneFixed   = "299 100% 60%"
	gradientTwoFixed   = "181 80% 60%"
)

// Derive builds light and dark token maps from a single seed color.
func Derive(primaryHex string) Palette {
	p := colors.HexToHSL(primaryHex)
	h, s, l := float64(p.H), float64(p.S), float64(p.L)

	light := TokenMap{}
	set := setter(light)
	surface := tok(h, math.Min(s*0.05, 5), 99)
	onSurface := tok(h, math.Max(5, s-5), 4.5)
	set(Background, surface)
	set(Foreground, onSurface)
	set(Card, surface)
	set(CardForeground, onSurface)
	set(Popover, surface)
	set(PopoverForeground, onSurface)
	set(Primary, tok(h, math.Min(100, s+10), math.Min(60, l+5)))
	set(PrimaryForeground, tok(h, math.Max(0, s-15), 98))
	set(Secondary, tok(h, math.Max(5, s-10), 96.5))
	set(SecondaryForeground, tok(h, math.Min(100, s+5), l))
	set(Muted, tok(h, math.Max(5, s-10), 96.5))
	set(MutedForeground, tok(h, math.Max(5, s-10), 48))
	set(Accent, tok(h, math.Min(100, s+5), 96.5))
	set(AccentForeground, tok(h, math.Min(100, s+5), l))
	set(Destructive, destructiveLight)
	set(DestructiveForeground, destructiveFgLight)
	set(Border, tok(h, math.Max(5, s-10), 92))
	set(Input, tok(h, math.Max(5, s-10), 92))
	set(Ring, tok(h, math.Min(100, s+10), math.Min(90, l+5)))
	set(Chart1, tok(h+30, 85, 65))
	set(Chart2, tok(h+120, 70, 45))
	set(Chart3, tok(h+180, 60, 35))
	set(Chart4, tok(h+240, 80, 70))
	set(Chart5, tok(h+300, 90, 70))
	set(GradientOne, gradientOneFixed)
	set(GradientTwo, gradientTwoFixed)

	dark := TokenMap{}
	set = setter(dark)
	surface = tok(h, math.Max(math.Min(s*0.15, 20), 5), 4.5)
	onSurface = tok(h, math.Max(0, s-15), 98)
	set(Background, surface)
	set(Foreground, onSurface)
	set(Card, surface)
	set(CardForeground, onSurface)
	set(Popover, surface)
	set(PopoverForeground, onSurface)
	set(Primary, tok(h, math.Min(100, s+10), 80))
	set(PrimaryForeground, tok(h, math.Min(100, s+5), math.Max(12, l-15)))
	set(Secondary, tok(h, math.Min(100, s+5), 18))
	set(SecondaryForeground, onSurface)
	set(Muted, tok(h, math.Min(100, s+5), 18))
	set(MutedForeground, tok(h, math.Max(5, s-10), 68))
	set(Accent, tok(h, math.Min(100, s+10), 18))
	set(AccentForeground, onSurface)
	set(Destructive, destructiveDark)
	set(DestructiveForeground, destructiveFgDark)
	set(Border, tok(h, math.Min(100, s+5), 18))
	set(Input, tok(h, math.Min(100, s+5), 18))
	set(Ring, tok(h, math.Max(5, s-10), 85))
	set(Chart1, tok(h+40, 80, 55))
	set(Chart2, tok(h+100, 70, 50))
	set(Chart3, tok(h+160, 85, 60))
	set(Chart4, tok(h+220, 75, 65))
	set(Chart5, tok(h+280, 85, 60))
	set(GradientOne, gradientOneFixed)
	set(GradientTwo, gradientTwoFixed)

	return Palette{Light: light, Dark: dark}
}

// DeriveDuotone builds token maps from two seeds. Surfaces, primary, borders
// and ring follow the primary seed; secondary, muted and accent follow the
// second seed. Charts and gradients alternate between the two.
func DeriveDuotone(primaryHex, secondaryHex string) Palette {
	p := colors.HexToHSL(primaryHex)
	q := colors.HexToHSL(secondaryHex)
	ph, ps, pl := float64(p.H), float64(p.S), float64(p.L)
	sh, ss, sl := float64(q.H), float64(q.S), float64(q.L)
	// plain mean, so hues on either side of 0 land opposite the short arc
	mid := (ph + sh) / 2

	light := TokenMap{}
	set := setter(light)
	surface := tok(ph, math.Min(ps*0.05, 5), 99)
	onSurface := tok(ph, math.Max(5, ps-5), 4.5)
	set(Background, surface)
	set(Foreground, onSurface)
	set(Card, surface)
	set(CardForeground, onSurface)
	set(Popover, surface)
	set(PopoverForeground, onSurface)
	set(Primary, tok(ph, math.Min(100, ps+10), math.Min(60, pl+5)))
	set(PrimaryForeground, tok(ph, math.Max(0, ps-15), 98))
	set(Secondary, tok(sh, math.Min(100, ss+5), math.Min(90, sl+5)))
	set(SecondaryForeground, tok(sh, math.Max(5, ss-5), 10))
	set(Muted, tok(sh, math.Max(5, ss-10), 96.5))
	set(MutedForeground, tok(sh, math.Max(5, ss-10), 48))
	set(Accent, tok(sh, math.Max(5, ss-5), 90))
	set(AccentForeground, tok(sh, math.Max(5, ss-5), 10))
	set(Destructive, destructiveLight)
	set(DestructiveForeground, destructiveFgLight)
	set(Border, tok(ph, math.Max(5, ps-10), 92))
	set(Input, tok(ph, math.Max(5, ps-10), 92))
	set(Ring, tok(ph, math.Min(100, ps+10), math.Min(90, pl+5)))
	set(Chart1, tok(ph, 85, 65))
	set(Chart2, tok(sh, 70, 45))
	set(Chart3, tok(ph+180, 60, 35))
	set(Chart4, tok(sh+180, 80, 70))
	set(Chart5, tok(mid, 90, 70))
	set(GradientOne, tok(ph, 100, 60))
	set(GradientTwo, tok(sh, 80, 60))

	dark := TokenMap{}
	set = setter(dark)
	surface = tok(ph, math.Max(math.Min(ps*0.15, 20), 5), 4.5)
	onSurface = tok(ph, math.Max(0, ps-15), 98)
	set(Background, surface)
	set(Foreground, onSurface)
	set(Card, surface)
	set(CardForeground, onSurface)
	set(Popover, surface)
	set(PopoverForeground, onSurface)
	set(Primary, tok(ph, math.Min(100, ps+10), 80))
	set(PrimaryForeground, tok(ph, math.Min(100, ps+5), math.Max(12, pl-15)))
	set(Secondary, tok(sh, math.Min(100, ss+10), 70))
	set(SecondaryForeground, tok(sh, math.Max(0, ss-15), 98))
	set(Muted, tok(sh, math.Min(100, ss+5), 18))
	set(MutedForeground, tok(sh, math.Max(5, ss-10), 68))
	set(Accent, tok(sh, math.Min(100, ss+5), 25))
	set(AccentForeground, tok(sh, math.Max(0, ss-15), 98))
	set(Destructive, destructiveDark)
	set(DestructiveForeground, destructiveFgDark)
	set(Border, tok(ph, math.Min(100, ps+5), 18))
	set(Input, tok(ph, math.Min(100, ps+5), 18))
	set(Ring, tok(ph, math.Max(5, ps-10), 85))
	set(Chart1, tok(ph, 80, 55))
	set(Chart2, tok(sh, 70, 50))
	set(Chart3, tok(ph+180, 85, 60))
	set(Chart4, tok(sh+180, 75, 65))
	set(Chart5, tok(mid, 85, 60))
	set(GradientOne, tok(ph, 100, 60))
	set(GradientTwo, tok(sh, 80, 60))

	return Palette{Light: light, Dark: dark}
}

func setter(m TokenMap) func(TokenKey, string) {
	return func(k TokenKey, v string) {
		m[k.Var()] = v
	}
}

// tok wraps the hue into [0,360) and clamps s and l to [0,100].
func tok(h, s, l float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return colors.FormatTokenValue(h, clamp(s, 0, 100), clamp(l, 0, 100))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
