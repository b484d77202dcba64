package palettes

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/thatcatcamp/tint/internal/themes"
)

// Shape is the layout a stored color map was written in.
type Shape int

const (
	// ShapeCurrent is a flat map keyed by "--token".
	ShapeCurrent Shape = iota
	// ShapeLegacyBare is a flat map keyed by bare token names.
	ShapeLegacyBare
	// ShapeLegacyNested holds objects as values, one level deep.
	ShapeLegacyNested
)

func (s Shape) String() string {
	switch s {
	case ShapeCurrent:
		return "current"
	case ShapeLegacyBare:
		return "legacy-bare"
	case ShapeLegacyNested:
		return "legacy-nested"
	default:
		return "unknown"
	}
}

// Normalize decodes a stored color map of any known shape into a flat
// token map. Bare keys gain a "--" prefix, nested objects flatten to
// "--key-nestedKey", and "name"/"id" entries are dropped.
func Normalize(raw []byte) (themes.TokenMap, Shape, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return themes.TokenMap{}, ShapeCurrent, nil
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, ShapeCurrent, fmt.Errorf("color map is not a JSON object: %w", err)
	}
	out, shape := NormalizeMap(m)
	return out, shape, nil
}

// NormalizeMap is Normalize over an already decoded object.
func NormalizeMap(m map[string]any) (themes.TokenMap, Shape) {
	shape := DetectShape(m)
	out := make(themes.TokenMap, len(m))

	if shape == ShapeCurrent {
		for k, v := range m {
			if s, ok := scalar(v); ok {
				out[k] = s
			}
		}
		return out, shape
	}

	for k, v := range m {
		if skipKey(k) {
			continue
		}
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range nested {
				if skipKey(nk) {
					continue
				}
				if s, ok := scalar(nv); ok {
					out[varName(k)+"-"+nk] = s
				}
			}
			continue
		}
		if s, ok := scalar(v); ok {
			out[varName(k)] = s
		}
	}
	return out, shape
}

// DetectShape classifies a decoded color map.
func DetectShape(m map[string]any) Shape {
	shape := ShapeCurrent
	for k, v := range m {
		if _, ok := v.(map[string]any); ok {
			return ShapeLegacyNested
		}
		if !strings.HasPrefix(k, "--") {
			shape = ShapeLegacyBare
		}
	}
	return shape
}

func varName(k string) string {
	if strings.HasPrefix(k, "--") {
		return k
	}
	return "--" + k
}

func skipKey(k string) bool {
	return k == "name" || k == "id"
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
