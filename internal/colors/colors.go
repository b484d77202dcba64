// SPDX-License-Identifier: MIT

// Package colors converts between hex, HSL and the "H S% L%" token encoding
// used by the theme engine.
package colors

import (
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorHSL is an HSL triple rounded to whole degrees and percents.
type ColorHSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// String returns the token encoding of c.
func (c ColorHSL) String() string {
	return fmt.Sprintf("%d %d%% %d%%", c.H, c.S, c.L)
}

var tokenValueRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s+(\d+(?:\.\d+)?)%\s+(\d+(?:\.\d+)?)%\s*$`)

// HexToHSL converts a 3 or 6 digit hex color to HSL. The leading # is
// optional. Any other length yields the zero value, and invalid digits read
// as 0.
func HexToHSL(hex string) ColorHSL {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b float64
	switch len(hex) {
	case 3:
		r = float64(hexDigit(hex[0])*17) / 255
		g = float64(hexDigit(hex[1])*17) / 255
		b = float64(hexDigit(hex[2])*17) / 255
	case 6:
		r = float64(hexDigit(hex[0])<<4|hexDigit(hex[1])) / 255
		g = float64(hexDigit(hex[2])<<4|hexDigit(hex[3])) / 255
		b = float64(hexDigit(hex[4])<<4|hexDigit(hex[5])) / 255
	}

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	var h, s float64
	l := (max + min) / 2

	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}

		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		case b:
			h = (r-g)/d + 4
		}
		h *= 60
	}

	return ColorHSL{
		H: roundInt(h) % 360,
		S: roundInt(s * 100),
		L: roundInt(l * 100),
	}
}

// HSLToHex converts h in degrees and s, l in percent to a lowercase
// #rrggbb string.
func HSLToHex(h, s, l float64) string {
	s /= 100
	l /= 100
	a := s * math.Min(l, 1-l)

	channel := func(n float64) string {
		k := math.Mod(n+h/30, 12)
		if k < 0 {
			k += 12
		}
		c := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		v := math.Floor(255*c + 0.5)
		v = math.Max(0, math.Min(255, v))
		return fmt.Sprintf("%02x", int(v))
	}

	return "#" + channel(0) + channel(8) + channel(4)
}

// ParseTokenValue parses an "H S% L%" token value.
func ParseTokenValue(v string) (h, s, l float64, ok bool) {
	m := tokenValueRe.FindStringSubmatch(v)
	if m == nil {
		return 0, 0, 0, false
	}
	h, _ = strconv.ParseFloat(m[1], 64)
	s, _ = strconv.ParseFloat(m[2], 64)
	l, _ = strconv.ParseFloat(m[3], 64)
	return h, s, l, true
}

// ValidTokenValue reports whether v is a well formed token value with
// components in range.
func ValidTokenValue(v string) bool {
	h, s, l, ok := ParseTokenValue(v)
	if !ok {
		return false
	}
	return h < 360 && s <= 100 && l <= 100
}

// FormatTokenValue formats an HSL triple as "H S% L%". Components are
// rounded to two decimals and printed without trailing zeros.
func FormatTokenValue(h, s, l float64) string {
	return FormatNumber(h) + " " + FormatNumber(s) + "% " + FormatNumber(l) + "%"
}

// FormatNumber prints v rounded to two decimals in its shortest form.
func FormatNumber(v float64) string {
	v = math.Floor(v*100+0.5) / 100
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToColorful converts a token value into a colorful.Color.
func ToColorful(v string) (colorful.Color, bool) {
	h, s, l, ok := ParseTokenValue(v)
	if !ok {
		return colorful.Color{}, false
	}
	return colorful.Hsl(math.Mod(h, 360), s/100, l/100).Clamped(), true
}

// Hex returns the #rrggbb form of a token value, or "" when v does not
// parse.
func Hex(v string) string {
	h, s, l, ok := ParseTokenValue(v)
	if !ok {
		return ""
	}
	return HSLToHex(h, s, l)
}

// ContrastRatio returns the WCAG contrast ratio between two colors.
func ContrastRatio(a, b colorful.Color) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// RandomHex returns a random #rrggbb seed color.
func RandomHex(r *rand.Rand) string {
	var n int
	if r == nil {
		n = rand.IntN(0xffffff + 1)
	} else {
		n = r.IntN(0xffffff + 1)
	}
	return fmt.Sprintf("#%06x", n)
}

// IsHex reports whether s is a 3 or 6 digit hex color with a leading #.
func IsHex(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	s = s[1:]
	if len(s) != 3 && len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func roundInt(v float64) int {
	return int(math.Floor(v + 0.5))
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexDigit(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
