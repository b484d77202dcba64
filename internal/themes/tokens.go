// SPDX-License-Identifier: MIT
package themes

import (
	"fmt"
	"sort"
	"strings"
)

// TokenKey identifies one design token.
type TokenKey string

const (
	Background            TokenKey = "background"
	Foreground            TokenKey = "foreground"
	Card                  TokenKey = "card"
	CardForeground        TokenKey = "card-foreground"
	Popover               TokenKey = "popover"
	PopoverForeground     TokenKey = "popover-foreground"
	Primary               TokenKey = "primary"
	PrimaryForeground     TokenKey = "primary-foreground"
	Secondary             TokenKey = "secondary"
	SecondaryForeground   TokenKey = "secondary-foreground"
	Muted                 TokenKey = "muted"
	MutedForeground       TokenKey = "muted-foreground"
	Accent                TokenKey = "accent"
	AccentForeground      TokenKey = "accent-foreground"
	Destructive           TokenKey = "destructive"
	DestructiveForeground TokenKey = "destructive-foreground"
	Border                TokenKey = "border"
	Input                 TokenKey = "input"
	Ring                  TokenKey = "ring"
	Chart1                TokenKey = "chart-1"
	Chart2                TokenKey = "chart-2"
	Chart3                TokenKey = "chart-3"
	Chart4                TokenKey = "chart-4"
	Chart5                TokenKey = "chart-5"
	GradientOne           TokenKey = "gradient-one"
	GradientTwo           TokenKey = "gradient-two"
)

// TokenKeys lists every token in display order.
var TokenKeys = []TokenKey{
	Background, Foreground, Card, CardForeground, Popover, PopoverForeground,
	Primary, PrimaryForeground, Secondary, SecondaryForeground,
	Muted, MutedForeground, Accent, AccentForeground,
	Destructive, DestructiveForeground, Border, Input, Ring,
	Chart1, Chart2, Chart3, Chart4, Chart5, GradientOne, GradientTwo,
}

var tokenIndex = func() map[string]int {
	m := make(map[string]int, len(TokenKeys))
	for i, k := range TokenKeys {
		m[k.Var()] = i
	}
	return m
}()

// Var returns the CSS custom property name, e.g. "--background".
func (k TokenKey) Var() string {
	return "--" + string(k)
}

// Label returns a human readable name, e.g. "Card Foreground".
func (k TokenKey) Label() string {
	parts := strings.Split(string(k), "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// ParseTokenKey accepts either "primary" or "--primary".
func ParseTokenKey(s string) (TokenKey, error) {
	name := "--" + strings.TrimPrefix(strings.TrimSpace(s), "--")
	if _, ok := tokenIndex[name]; !ok {
		return "", fmt.Errorf("unknown token %q", s)
	}
	return TokenKey(strings.TrimPrefix(name, "--")), nil
}

// Mode selects the light or dark token map.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode parses "light" or "dark", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return "", fmt.Errorf("invalid mode %q: must be light or dark", s)
	}
}

// ModeFor maps the dark mode flag to a Mode.
func ModeFor(isDark bool) Mode {
	if isDark {
		return Dark
	}
	return Light
}

// TokenMap maps CSS custom property names to token values.
type TokenMap map[string]string

// Token is a single entry of a TokenMap.
type Token struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Palette is the pair of token maps produced by derivation.
type Palette struct {
	Light TokenMap `json:"light"`
	Dark  TokenMap `json:"dark"`
}

// Clone returns an independent copy. A nil map clones to an empty map.
func (m TokenMap) Clone() TokenMap {
	out := make(TokenMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Get returns the value for key.
func (m TokenMap) Get(key TokenKey) string {
	return m[key.Var()]
}

// Set returns a copy of m with key set to value.
func (m TokenMap) Set(key TokenKey, value string) TokenMap {
	out := m.Clone()
	out[key.Var()] = value
	return out
}

// Complete returns the keys missing from m, or nil when every token is
// defined.
func (m TokenMap) Complete() []TokenKey {
	var missing []TokenKey
	for _, k := range TokenKeys {
		if _, ok := m[k.Var()]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Equal reports whether both maps hold the same entries.
func (m TokenMap) Equal(o TokenMap) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Sorted returns the entries of m with known tokens first in display order,
// followed by any other keys alphabetically.
func (m TokenMap) Sorted() []Token {
	out := make([]Token, 0, len(m))
	for k, v := range m {
		out = append(out, Token{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		ii, iok := tokenIndex[out[i].Name]
		ji, jok := tokenIndex[out[j].Name]
		switch {
		case iok && jok:
			return ii < ji
		case iok != jok:
			return iok
		default:
			return out[i].Name < out[j].Name
		}
	})
	return out
}

// Merge returns base overlaid with m. Keys absent from m keep base values.
func (m TokenMap) Merge(base TokenMap) TokenMap {
	out := base.Clone()
	for k, v := range m {
		out[k] = v
	}
	return out
}
