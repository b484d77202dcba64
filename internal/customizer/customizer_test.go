package customizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thatcatcamp/tint/internal/db"
	"github.com/thatcatcamp/tint/internal/document"
	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/state"
	"github.com/thatcatcamp/tint/internal/themes"
)

type fakeDialog struct {
	answer bool
	hold   bool
	opened []ConfirmOptions
	closed int
}

func (d *fakeDialog) Open(o ConfirmOptions) {
	d.opened = append(d.opened, o)
	if d.hold {
		return
	}
	if d.answer {
		o.OnConfirm()
	} else {
		o.OnCancel()
	}
}

func (d *fakeDialog) Close() { d.closed++ }

type recorder struct {
	got []Notification
}

func (r *recorder) Notify(n Notification) { r.got = append(r.got, n) }

func (r *recorder) last() Notification {
	if len(r.got) == 0 {
		return Notification{}
	}
	return r.got[len(r.got)-1]
}

type fixture struct {
	c      *Customizer
	conn   *gorm.DB
	store  *palettes.Store
	state  *state.Store
	doc    *document.Document
	dialog *fakeDialog
	notes  *recorder
}

func setup(t *testing.T) *fixture {
	t.Helper()
	conn, err := db.Open(context.Background(), "sqlite", ":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := conn.DB()
		sqlDB.Close()
	})

	f := &fixture{
		conn:   conn,
		store:  palettes.NewStore(conn, zerolog.Nop()),
		state:  state.New(&state.MemoryPersister{}, zerolog.Nop()),
		doc:    document.New(),
		dialog: &fakeDialog{answer: true},
		notes:  &recorder{},
	}
	f.c = New(f.state, document.NewApplier(f.doc), f.store, f.dialog, f.notes, zerolog.Nop(), Options{StartDark: true})
	t.Cleanup(f.c.Close)
	return f
}

func (f *fixture) property(t *testing.T, key themes.TokenKey) string {
	t.Helper()
	v, ok := f.doc.Property(key.Var())
	require.True(t, ok, "property %s not set", key.Var())
	return v
}

func TestInitialize(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.c.Initialize(ctx))

	snap := f.state.Snapshot()
	assert.True(t, snap.IsInitialized)
	require.Len(t, snap.SavedPalettes, 1)
	assert.Equal(t, palettes.DefaultName, snap.SavedPalettes[0].Name)

	assert.True(t, f.doc.HasClass(document.DarkClass))
	assert.Equal(t, themes.Defaults(themes.Dark).Get(themes.Background), f.property(t, themes.Background))
	radius, _ := f.doc.Property(document.RadiusProperty)
	assert.Equal(t, "0.5rem", radius)
	assert.Equal(t, 1, f.doc.StyleElementCount(document.DarkStyleID))

	require.NoError(t, f.c.Initialize(ctx))
	n, err := f.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestApplyGeneratedProjects(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.c.Initialize(context.Background()))

	p, err := f.c.ApplyGenerated("3B82F6")
	require.NoError(t, err)

	assert.Equal(t, "217 100% 80%", p.Dark.Get(themes.Primary))
	assert.Equal(t, p.Dark.Get(themes.Primary), f.property(t, themes.Primary))
	assert.True(t, p.Light.Equal(f.state.LightColors()))

	rule, err := document.NewApplier(f.doc).ReadDarkRule()
	require.NoError(t, err)
	assert.True(t, p.Dark.Equal(rule))

	assert.Equal(t, "Applied!", f.notes.last().Title)
}

func TestApplyGeneratedRejectsBadHex(t *testing.T) {
	f := setup(t)
	before := f.state.Snapshot()

	_, err := f.c.ApplyGenerated("#12345")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, VariantDestructive, f.notes.last().Variant)
	assert.True(t, before.LightColors.Equal(f.state.LightColors()))

	_, err = f.c.ApplyDuotone("#3b82f6", "pink")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "secondary", ve.Field)
}

func TestApplyDuotoneAndPreset(t *testing.T) {
	f := setup(t)

	p, err := f.c.ApplyDuotone("#3b82f6", "#f472b6")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.Light.Get(themes.Secondary), "329 "))

	_, err = f.c.ApplyPreset("indigo", false)
	require.NoError(t, err)
	_, err = f.c.ApplyPreset("nope", false)
	assert.True(t, IsValidation(err))
}

func TestToggleDarkModeTwiceRestoresRule(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.c.Initialize(context.Background()))
	p, err := f.c.ApplyGenerated("#22c55e")
	require.NoError(t, err)

	before, ok := f.doc.StyleElement(document.DarkStyleID)
	require.True(t, ok)

	assert.False(t, f.c.ToggleDarkMode())
	assert.False(t, f.doc.HasClass(document.DarkClass))
	assert.Equal(t, p.Light.Get(themes.Primary), f.property(t, themes.Primary))

	assert.True(t, f.c.ToggleDarkMode())
	assert.True(t, f.doc.HasClass(document.DarkClass))
	assert.Equal(t, p.Dark.Get(themes.Primary), f.property(t, themes.Primary))

	after, _ := f.doc.StyleElement(document.DarkStyleID)
	assert.Equal(t, before, after)
	assert.Equal(t, 1, f.doc.StyleElementCount(document.DarkStyleID))
}

func TestSetColor(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.c.Initialize(context.Background()))
	darkPrimary := f.property(t, themes.Primary)

	require.NoError(t, f.c.SetColor(themes.Light, "primary", "#ff0000"))
	assert.Equal(t, "0 100% 50%", f.state.LightColors().Get(themes.Primary))
	assert.Equal(t, darkPrimary, f.property(t, themes.Primary), "dark mode keeps the dark map inline")

	require.NoError(t, f.c.SetColor(themes.Dark, "--primary", "10 20.5% 30%"))
	assert.Equal(t, "10 20.5% 30%", f.property(t, themes.Primary))
	text, _ := f.doc.StyleElement(document.DarkStyleID)
	assert.Contains(t, text, "--primary: 10 20.5% 30%;")

	err := f.c.SetColor(themes.Dark, "primary", "red")
	assert.True(t, IsValidation(err))
	err = f.c.SetColor(themes.Dark, "sparkle", "1 1% 1%")
	assert.True(t, IsValidation(err))
}

func TestBorderRadius(t *testing.T) {
	f := setup(t)

	assert.True(t, IsValidation(f.c.SetBorderRadius(2.5)))
	require.NoError(t, f.c.SetBorderRadius(1))
	v, _ := f.doc.Property(document.RadiusProperty)
	assert.Equal(t, "1rem", v)

	assert.Equal(t, 1.125, f.c.StepBorderRadius(1))
	v, _ = f.doc.Property(document.RadiusProperty)
	assert.Equal(t, "1.125rem", v)

	assert.Equal(t, 2.0, f.c.StepBorderRadius(100))
	assert.Equal(t, 0.0, f.c.StepBorderRadius(-100))
	v, _ = f.doc.Property(document.RadiusProperty)
	assert.Equal(t, "0rem", v)
}

func TestResetCancelled(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.c.Initialize(context.Background()))
	p, err := f.c.ApplyGenerated("#e11d48")
	require.NoError(t, err)

	f.dialog.answer = false
	outcome, err := f.c.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.True(t, p.Light.Equal(f.state.LightColors()))

	require.NotEmpty(t, f.dialog.opened)
	opened := f.dialog.opened[len(f.dialog.opened)-1]
	assert.Equal(t, "Reset Theme", opened.Title)
	assert.Equal(t, "Reset", opened.ConfirmText)
	assert.Equal(t, "Cancel", opened.CancelText)
}

func TestResetConfirmed(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.c.Initialize(context.Background()))
	_, err := f.c.ApplyGenerated("#e11d48")
	require.NoError(t, err)
	require.NoError(t, f.c.SetBorderRadius(1.5))

	outcome, err := f.c.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeDone, outcome)

	assert.Equal(t, "--radius: 0.5rem;", f.doc.InlineStyle())
	assert.Zero(t, f.doc.StyleElementCount(document.DarkStyleID))
	assert.True(t, themes.Defaults(themes.Light).Equal(f.state.LightColors()))
	assert.Equal(t, 0.5, f.state.BorderRadius())
}

func TestResetContextCancelled(t *testing.T) {
	f := setup(t)
	f.dialog.hold = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcome, err := f.c.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Equal(t, 1, f.dialog.closed)
}

func TestContextDialogOverrides(t *testing.T) {
	f := setup(t)
	f.dialog.answer = false
	scripted := &fakeDialog{answer: true}

	outcome, err := f.c.Reset(WithDialog(context.Background(), scripted))
	require.NoError(t, err)
	assert.Equal(t, OutcomeDone, outcome)
	assert.Len(t, scripted.opened, 1)
	assert.Empty(t, f.dialog.opened)
}

func TestSaveAndLoadPalette(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.c.Initialize(ctx))

	p, err := f.c.ApplyGenerated("#8b5cf6")
	require.NoError(t, err)
	require.NoError(t, f.c.SetBorderRadius(0.75))

	f.c.OpenSaveDialog()
	assert.True(t, f.state.Snapshot().SaveDialogOpen)

	id, err := f.c.SavePalette(ctx, "Violet", nil, false)
	require.NoError(t, err)
	assert.False(t, f.state.Snapshot().SaveDialogOpen)
	assert.Len(t, f.state.SavedPalettes(), 2)
	assert.Equal(t, "Palette saved", f.notes.last().Title)

	_, err = f.c.ApplyGenerated("#f59e0b")
	require.NoError(t, err)

	loaded, err := f.c.LoadPalette(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Violet", loaded.Name)
	assert.True(t, p.Light.Equal(f.state.LightColors()))
	assert.True(t, p.Dark.Equal(f.state.DarkColors()))
	assert.Equal(t, p.Dark.Get(themes.Primary), f.property(t, themes.Primary))
	v, _ := f.doc.Property(document.RadiusProperty)
	assert.Equal(t, "0.75rem", v)

	_, err = f.c.LoadPalette(ctx, 999)
	assert.ErrorIs(t, err, palettes.ErrNotFound)
	assert.Equal(t, "Error loading palette", f.notes.last().Title)
}

func TestSaveProtectedName(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.c.Initialize(ctx))

	_, err := f.c.SavePalette(ctx, palettes.DefaultName, nil, false)
	assert.ErrorIs(t, err, palettes.ErrProtectedName)
	assert.Equal(t, "Name not allowed", f.notes.last().Title)

	n, err := f.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSavePersistenceFailureKeepsState(t *testing.T) {
	f := setup(t)
	p, err := f.c.ApplyGenerated("#14b8a6")
	require.NoError(t, err)

	sqlDB, err := f.conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.c.SavePalette(context.Background(), "Teal", nil, true)
	require.Error(t, err)
	assert.False(t, palettes.IsPolicyError(err))
	assert.Equal(t, Notification{
		Title:       "Error saving palette",
		Description: "There was an error saving your palette. Please try again.",
		Variant:     VariantDestructive,
	}, f.notes.last())
	assert.True(t, p.Light.Equal(f.state.LightColors()))
}

func TestDeleteDefaultRejectedBeforeConfirm(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.c.Initialize(ctx))
	_, err := f.c.SavePalette(ctx, "Extra", nil, false)
	require.NoError(t, err)

	defaultID := f.state.SavedPalettes()[1].ID
	require.Equal(t, palettes.DefaultName, f.state.SavedPalettes()[1].Name)

	outcome, err := f.c.DeletePalette(ctx, defaultID)
	assert.ErrorIs(t, err, palettes.ErrProtectedDelete)
	assert.Equal(t, OutcomeRejected, outcome)
	require.Len(t, f.dialog.opened, 1)
	assert.Equal(t, "Cannot Delete Default Palette", f.dialog.opened[0].Title)
	assert.Equal(t, "OK", f.dialog.opened[0].ConfirmText)

	n, err := f.store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDeleteLastPaletteRejected(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id, err := f.c.SavePalette(ctx, "Only", nil, false)
	require.NoError(t, err)

	outcome, err := f.c.DeletePalette(ctx, id)
	assert.ErrorIs(t, err, palettes.ErrLastPalette)
	assert.Equal(t, OutcomeRejected, outcome)
	assert.Empty(t, f.dialog.opened)
	assert.Equal(t, "Cannot Delete Palette", f.notes.last().Title)

	list, err := f.store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeletePalette(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.c.Initialize(ctx))
	id, err := f.c.SavePalette(ctx, "Doomed", nil, false)
	require.NoError(t, err)

	f.dialog.answer = false
	outcome, err := f.c.DeletePalette(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, outcome)
	assert.Equal(t, `Are you sure you want to delete "Doomed"?`, f.dialog.opened[0].Description)

	f.dialog.answer = true
	outcome, err = f.c.DeletePalette(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDone, outcome)
	assert.Len(t, f.state.SavedPalettes(), 1)
	assert.Equal(t, "Palette deleted", f.notes.last().Title)
}

func TestImportPalette(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.c.Initialize(ctx))

	src := themes.Derive("#0ea5e9")
	data, err := json.Marshal(map[string]any{
		"name":         "Sky",
		"lightColors":  src.Light,
		"darkColors":   src.Dark,
		"borderRadius": 1,
	})
	require.NoError(t, err)

	id, imported, err := f.c.ImportPalette(ctx, data)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, "Sky", imported.Name)
	assert.True(t, src.Dark.Equal(f.state.DarkColors()))
	assert.Equal(t, 1.0, f.state.BorderRadius())
	assert.Equal(t, src.Dark.Get(themes.Primary), f.property(t, themes.Primary))
	assert.Equal(t, `"Sky" has been imported to your collection.`, f.notes.last().Description)

	_, _, err = f.c.ImportPalette(ctx, []byte(`{"name":"x","lightColors":{},"darkColors":{}}`))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "borderRadius", ve.Field)
	assert.Equal(t, "Error importing palette", f.notes.last().Title)
}

func TestExport(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	id, err := f.c.SavePalette(ctx, "My Theme", nil, false)
	require.NoError(t, err)

	out, err := f.c.ExportPalette(ctx, id, palettes.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "my-theme-palette.json", out.Filename)
	assert.Equal(t, "application/json", out.ContentType)
	assert.Contains(t, string(out.Data), `"name": "My Theme"`)

	cur, err := f.c.ExportCurrent(palettes.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "current-palette.json", cur.Filename)
	assert.Contains(t, string(cur.Data), `"name": "Current Palette"`)

	_, err = f.c.ExportPalette(ctx, 404, palettes.FormatYAML)
	assert.ErrorIs(t, err, palettes.ErrNotFound)
}

func TestStylesheetAndContrast(t *testing.T) {
	f := setup(t)
	css := f.c.Stylesheet()
	assert.True(t, strings.HasPrefix(css, "@layer base {"))
	assert.Contains(t, css, ".dark {")

	checks := f.c.Contrast(themes.Light)
	require.NotEmpty(t, checks)
	assert.True(t, checks[0].Valid)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
}
