package palettes

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatcatcamp/tint/internal/themes"
)

func samplePalette() *Palette {
	p := themes.DeriveDuotone("#3b82f6", "#f472b6")
	return &Palette{
		ID:           7,
		Name:         "My Theme",
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		LightColors:  p.Light,
		DarkColors:   p.Dark,
		BorderRadius: 0.625,
		IsDuoTone:    true,
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "my-theme-palette.json", ExportFilename("My Theme"))
	assert.Equal(t, "a-b-palette.json", ExportFilename("A \t B"))
	assert.Equal(t, "ocean-palette.yaml", FormatYAML.Filename("Ocean"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "application/yaml", f.ContentType())

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestExportLayout(t *testing.T) {
	out, err := Export(samplePalette())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "{\n  \"name\": \"My Theme\""))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.NotContains(t, doc, "id")
	for _, key := range []string{"name", "createdAt", "lightColors", "darkColors", "borderRadius", "isDuoTone"} {
		assert.Contains(t, doc, key)
	}
	assert.Equal(t, 0.625, doc["borderRadius"])
}

func TestExportImportRoundTrip(t *testing.T) {
	src := samplePalette()
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			out, err := Encode(src, f)
			require.NoError(t, err)

			got, err := Import(out)
			require.NoError(t, err)
			assert.False(t, got.Recovered)
			assert.Equal(t, src.Name, got.Name)
			assert.True(t, src.LightColors.Equal(got.LightColors))
			assert.True(t, src.DarkColors.Equal(got.DarkColors))
			assert.Equal(t, src.BorderRadius, got.BorderRadius)
			assert.True(t, got.IsDuoTone)

			in := got.SaveInput()
			assert.Equal(t, src.Name, in.Name)
			assert.True(t, in.IsDuoTone)
		})
	}
}

func TestImportStrictErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"missing name", `{"lightColors":{},"darkColors":{},"borderRadius":0.5}`, "name"},
		{"blank name", `{"name":"  ","lightColors":{},"darkColors":{},"borderRadius":0.5}`, "name"},
		{"missing dark", `{"name":"x","lightColors":{},"borderRadius":0.5}`, "darkColors"},
		{"light not object", `{"name":"x","lightColors":"red","darkColors":{},"borderRadius":0.5}`, "lightColors"},
		{"radius not number", `{"name":"x","lightColors":{},"darkColors":{},"borderRadius":"0.5"}`, "borderRadius"},
		{"radius missing", `{"name":"x","lightColors":{},"darkColors":{}}`, "borderRadius"},
		{"radius out of range", `{"name":"x","lightColors":{},"darkColors":{},"borderRadius":3}`, "borderRadius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidImport)

			var ie *ImportError
			require.True(t, errors.As(err, &ie))
			assert.Equal(t, tt.field, ie.Field)
		})
	}
}

func TestImportMalformed(t *testing.T) {
	for _, data := range []string{"", "{not json", "- just\n- a list\n"} {
		_, err := Import([]byte(data))
		assert.ErrorIs(t, err, ErrInvalidImport, data)
	}
}

func TestImportFillsMissingTokens(t *testing.T) {
	got, err := Import([]byte(`{"name":"Sparse","lightColors":{"--primary":"10 50% 50%"},"darkColors":{},"borderRadius":1}`))
	require.NoError(t, err)
	assert.Equal(t, "10 50% 50%", got.LightColors.Get(themes.Primary))
	assert.Nil(t, got.LightColors.Complete())
	assert.True(t, themes.Defaults(themes.Dark).Equal(got.DarkColors))
	assert.False(t, got.IsDuoTone)
}

func TestImportRecovered(t *testing.T) {
	data := `{
  "theme": {
    "title": "Sunset",
    "modes": {
      "dark": {"primary": "20 90% 40%", "background": "0 0% 5%"},
      "light": {"primary": "20 90% 60%", "note": "hello"}
    }
  },
  "radius": 0.25
}`
	got, err := Import([]byte(data))
	require.NoError(t, err)
	assert.True(t, got.Recovered)
	assert.Equal(t, ImportedName, got.Name)
	assert.Equal(t, 0.25, got.BorderRadius)
	assert.Equal(t, "20 90% 60%", got.LightColors.Get(themes.Primary))
	assert.Equal(t, "20 90% 40%", got.DarkColors.Get(themes.Primary))
	assert.Equal(t, "0 0% 5%", got.DarkColors.Get(themes.Background))
	assert.NotContains(t, got.LightColors, "--note")
}

func TestImportRecoveredBareMap(t *testing.T) {
	got, err := Import([]byte("name: Flat\nprimary: 100 50% 50%\n"))
	require.NoError(t, err)
	assert.True(t, got.Recovered)
	assert.Equal(t, "Flat", got.Name)
	assert.Equal(t, themes.DefaultRadius, got.BorderRadius)
	assert.Equal(t, "100 50% 50%", got.LightColors.Get(themes.Primary))
	assert.Equal(t, "100 50% 50%", got.DarkColors.Get(themes.Primary))
}

func TestImportNoColors(t *testing.T) {
	_, err := Import([]byte(`{"hello":{"world":"x"}}`))
	assert.ErrorIs(t, err, ErrInvalidImport)
}
