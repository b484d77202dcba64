package themes

// DefaultRadius is the border radius, in rem, of a fresh theme.
const DefaultRadius = 0.5

// defaultColor holds the design-system value of a token in both modes
type defaultColor struct {
	Key   TokenKey
	Light string
	Dark  string
}

var defaultColors = []defaultColor{
	{Background, "0 0% 100%", "222.2 84% 4.9%"},
	{Foreground, "222.2 84% 4.9%", "210 40% 98%"},
	{Card, "0 0% 100%", "222.2 84% 4.9%"},
	{CardForeground, "222.2 84% 4.9%", "210 40% 98%"},
	{Popover, "0 0% 100%", "222.2 84% 4.9%"},
	{PopoverForeground, "222.2 84% 4.9%", "210 40% 98%"},
	{Primary, "222.2 47.4% 11.2%", "210 40% 98%"},
	{PrimaryForeground, "210 40% 98%", "222.2 47.4% 11.2%"},
	{Secondary, "210 40% 96.1%", "217.2 32.6% 17.5%"},
	{SecondaryForeground, "222.2 47.4% 11.2%", "210 40% 98%"},
	{Muted, "210 40% 96.1%", "217.2 32.6% 17.5%"},
	{MutedForeground, "215.4 16.3% 46.9%", "215 20.2% 65.1%"},
	{Accent, "210 40% 96.1%", "217.2 32.6% 17.5%"},
	{AccentForeground, "222.2 47.4% 11.2%", "210 40% 98%"},
	{Destructive, "0 84.2% 60.2%", "0 62.8% 30.6%"},
	{DestructiveForeground, "210 40% 98%", "210 40% 98%"},
	{Border, "214.3 31.8% 91.4%", "217.2 32.6% 17.5%"},
	{Input, "214.3 31.8% 91.4%", "217.2 32.6% 17.5%"},
	{Ring, "222.2 84% 4.9%", "212.7 26.8% 83.9%"},
	{Chart1, "12 76% 61%", "220 70% 50%"},
	{Chart2, "173 58% 39%", "160 60% 45%"},
	{Chart3, "197 37% 24%", "30 80% 55%"},
	{Chart4, "43 74% 66%", "280 65% 60%"},
	{Chart5, "27 87% 67%", "340 75% 55%"},
	{GradientOne, "299 100% 60%", "299 100% 60%"},
	{GradientTwo, "181 80% 60%", "181 80% 60%"},
}

// Defaults returns a fresh, complete token map for mode.
func Defaults(mode Mode) TokenMap {
	m := make(TokenMap, len(defaultColors))
	for _, c := range defaultColors {
		if mode == Dark {
			m[c.Key.Var()] = c.Dark
		} else {
			m[c.Key.Var()] = c.Light
		}
	}
	return m
}

// Colors returns the token map for mode from p.
func (p Palette) Colors(mode Mode) TokenMap {
	if mode == Dark {
		return p.Dark
	}
	return p.Light
}
