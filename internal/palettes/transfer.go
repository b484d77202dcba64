package palettes

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/thatcatcamp/tint/internal/colors"
	"github.com/thatcatcamp/tint/internal/themes"
)

// CurrentName names an export of the unsaved edit buffer.
const CurrentName = "Current Palette"

// CurrentFilename is the download name for an export of the edit buffer.
const CurrentFilename = "current-palette.json"

// ImportedName names a palette recovered without a usable name.
const ImportedName = "Imported Palette"

// ErrInvalidImport is wrapped by every import failure.
var ErrInvalidImport = errors.New("invalid palette data")

// ImportError describes the field that made an import fail.
type ImportError struct {
	Field   string
	Message string
}

func (e *ImportError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ImportError) Unwrap() error {
	return ErrInvalidImport
}

// Format is an import/export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Label returns "JSON" or "YAML".
func (f Format) Label() string {
	if f == FormatYAML {
		return "YAML"
	}
	return "JSON"
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Filename returns the download name for a palette called name.
func (f Format) Filename(name string) string {
	base := strings.ToLower(whitespaceRe.ReplaceAllString(name, "-"))
	if f == FormatYAML {
		return base + "-palette.yaml"
	}
	return base + "-palette.json"
}

// ExportFilename returns the JSON download name, e.g. "my-theme-palette.json".
func ExportFilename(name string) string {
	return FormatJSON.Filename(name)
}

// Document is the import/export file layout.
type Document struct {
	Name         string          `json:"name" yaml:"name"`
	CreatedAt    time.Time       `json:"createdAt" yaml:"createdAt"`
	LightColors  themes.TokenMap `json:"lightColors" yaml:"lightColors"`
	DarkColors   themes.TokenMap `json:"darkColors" yaml:"darkColors"`
	BorderRadius float64         `json:"borderRadius" yaml:"borderRadius"`
	IsDuoTone    bool            `json:"isDuoTone" yaml:"isDuoTone"`
}

// NewDocument returns the file layout of p.
func NewDocument(p *Palette) Document {
	return Document{
		Name:         p.Name,
		CreatedAt:    p.CreatedAt,
		LightColors:  p.LightColors.Clone(),
		DarkColors:   p.DarkColors.Clone(),
		BorderRadius: p.BorderRadius,
		IsDuoTone:    p.IsDuoTone,
	}
}

// SaveInput converts a document to a store write.
func (d Document) SaveInput() SaveInput {
	return SaveInput{
		Name:         d.Name,
		LightColors:  d.LightColors.Clone(),
		DarkColors:   d.DarkColors.Clone(),
		BorderRadius: d.BorderRadius,
		IsDuoTone:    d.IsDuoTone,
	}
}

// Encode serializes p in format f.
func Encode(p *Palette, f Format) ([]byte, error) {
	doc := NewDocument(p)
	switch f {
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode palette: %w", err)
		}
		return out, nil
	default:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode palette: %w", err)
		}
		return out, nil
	}
}

// Export returns p as pretty-printed JSON.
func Export(p *Palette) ([]byte, error) {
	return Encode(p, FormatJSON)
}

// ExportYAML returns p as YAML.
func ExportYAML(p *Palette) ([]byte, error) {
	return Encode(p, FormatYAML)
}

// ImportedPalette is a palette read from a file, ready to be saved.
type ImportedPalette struct {
	Name         string
	LightColors  themes.TokenMap
	DarkColors   themes.TokenMap
	BorderRadius float64
	IsDuoTone    bool
	// Recovered is set when the colors were found by scanning an unknown
	// layout rather than read from lightColors/darkColors.
	Recovered bool
}

// SaveInput converts the import to a store write.
func (p *ImportedPalette) SaveInput() SaveInput {
	return SaveInput{
		Name:         p.Name,
		LightColors:  p.LightColors.Clone(),
		DarkColors:   p.DarkColors.Clone(),
		BorderRadius: p.BorderRadius,
		IsDuoTone:    p.IsDuoTone,
	}
}

// Import parses a JSON or YAML palette document. Documents with
// lightColors or darkColors must carry every field of the export layout;
// anything else is scanned for nested color maps. Missing tokens are
// filled from the defaults.
func Import(data []byte) (*ImportedPalette, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &ImportError{Message: "no palette data"}
	}

	raw, err := decodeObject(data)
	if err != nil {
		return nil, err
	}

	_, hasLight := raw["lightColors"]
	_, hasDark := raw["darkColors"]
	if hasLight || hasDark {
		return importStrict(raw)
	}
	return importRecovered(raw)
}

func decodeObject(data []byte) (map[string]any, error) {
	var raw map[string]any
	if data[0] == '{' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &ImportError{Message: "invalid JSON format"}
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, &ImportError{Message: "invalid JSON or YAML format"}
	}
	return raw, nil
}

func importStrict(raw map[string]any) (*ImportedPalette, error) {
	name, _ := raw["name"].(string)
	if strings.TrimSpace(name) == "" {
		return nil, &ImportError{Field: "name", Message: "is required"}
	}
	light, ok := raw["lightColors"].(map[string]any)
	if !ok {
		return nil, &ImportError{Field: "lightColors", Message: "must be an object"}
	}
	dark, ok := raw["darkColors"].(map[string]any)
	if !ok {
		return nil, &ImportError{Field: "darkColors", Message: "must be an object"}
	}
	radius, ok := number(raw["borderRadius"])
	if !ok {
		return nil, &ImportError{Field: "borderRadius", Message: "must be a number"}
	}
	if math.IsNaN(radius) || radius < MinRadius || radius > MaxRadius {
		return nil, &ImportError{Field: "borderRadius", Message: "must be between 0 and 2"}
	}
	duo, _ := raw["isDuoTone"].(bool)

	lightMap, _ := NormalizeMap(light)
	darkMap, _ := NormalizeMap(dark)
	return &ImportedPalette{
		Name:         strings.TrimSpace(name),
		LightColors:  lightMap.Merge(themes.Defaults(themes.Light)),
		DarkColors:   darkMap.Merge(themes.Defaults(themes.Dark)),
		BorderRadius: radius,
		IsDuoTone:    duo,
	}, nil
}

type candidate struct {
	path   string
	colors themes.TokenMap
}

func importRecovered(raw map[string]any) (*ImportedPalette, error) {
	var found []candidate
	scanColorMaps("", raw, 0, &found)
	if len(found) == 0 {
		// the document itself may be a bare color map
		scanColorMaps("/", raw, 0, &found)
	}
	if len(found) == 0 {
		return nil, &ImportError{Message: "no color data found"}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].path < found[j].path })

	var light, dark themes.TokenMap
	var rest []themes.TokenMap
	for _, c := range found {
		p := strings.ToLower(c.path)
		switch {
		case dark == nil && strings.Contains(p, "dark"):
			dark = c.colors
		case light == nil && strings.Contains(p, "light"):
			light = c.colors
		default:
			rest = append(rest, c.colors)
		}
	}
	for _, m := range rest {
		if light == nil {
			light = m
		} else if dark == nil {
			dark = m
		}
	}
	if light == nil {
		light = dark
	}
	if dark == nil {
		dark = light
	}

	name, _ := raw["name"].(string)
	if strings.TrimSpace(name) == "" {
		name = ImportedName
	}
	radius := themes.DefaultRadius
	for _, key := range []string{"borderRadius", "radius"} {
		if r, ok := number(raw[key]); ok && r >= MinRadius && r <= MaxRadius {
			radius = r
			break
		}
	}

	return &ImportedPalette{
		Name:         strings.TrimSpace(name),
		LightColors:  light.Merge(themes.Defaults(themes.Light)),
		DarkColors:   dark.Merge(themes.Defaults(themes.Dark)),
		BorderRadius: radius,
		Recovered:    true,
	}, nil
}

const maxScanDepth = 4

// scanColorMaps collects every object whose scalar entries include at
// least one valid token value.
func scanColorMaps(path string, obj map[string]any, depth int, found *[]candidate) {
	if depth > maxScanDepth {
		return
	}
	if path != "" {
		flat := make(map[string]any, len(obj))
		for k, v := range obj {
			if _, nested := v.(map[string]any); !nested {
				flat[k] = v
			}
		}
		m, _ := NormalizeMap(flat)
		valid := themes.TokenMap{}
		for k, v := range m {
			if colors.ValidTokenValue(v) {
				valid[k] = v
			}
		}
		if len(valid) > 0 {
			*found = append(*found, candidate{path: path, colors: valid})
			return
		}
	}
	for k, v := range obj {
		if child, ok := v.(map[string]any); ok {
			scanColorMaps(path+"/"+k, child, depth+1, found)
		}
	}
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
