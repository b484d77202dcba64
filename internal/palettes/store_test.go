package palettes

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thatcatcamp/tint/internal/db"
	"github.com/thatcatcamp/tint/internal/models"
	"github.com/thatcatcamp/tint/internal/themes"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Open(context.Background(), "sqlite", ":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := conn.DB()
		sqlDB.Close()
	})
	return conn
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(setupTestDB(t), zerolog.Nop())
}

func sampleInput(name string) SaveInput {
	p := themes.Derive("#3b82f6")
	return SaveInput{
		Name:         name,
		LightColors:  p.Light,
		DarkColors:   p.Dark,
		BorderRadius: 0.75,
	}
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	in := sampleInput("Ocean")
	in.IsDuoTone = true

	id, err := store.Save(ctx, in, nil)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ocean", got.Name)
	assert.True(t, in.LightColors.Equal(got.LightColors))
	assert.True(t, in.DarkColors.Equal(got.DarkColors))
	assert.Equal(t, 0.75, got.BorderRadius)
	assert.True(t, got.IsDuoTone)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveDoesNotShareMaps(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	in := sampleInput("Ocean")

	id, err := store.Save(ctx, in, nil)
	require.NoError(t, err)
	in.LightColors[themes.Primary.Var()] = "1 1% 1%"

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, "1 1% 1%", got.LightColors.Get(themes.Primary))
}

func TestSaveRejectsProtectedName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, sampleInput(DefaultName), nil)
	assert.ErrorIs(t, err, ErrProtectedName)
	assert.True(t, IsPolicyError(err))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveValidation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, sampleInput("   "), nil)
	assert.ErrorIs(t, err, ErrEmptyName)

	in := sampleInput("Too round")
	in.BorderRadius = 2.5
	_, err = store.Save(ctx, in, nil)
	assert.ErrorIs(t, err, ErrInvalidRadius)

	in.BorderRadius = -0.125
	_, err = store.Save(ctx, in, nil)
	assert.ErrorIs(t, err, ErrInvalidRadius)

	in.BorderRadius = 2
	_, err = store.Save(ctx, in, nil)
	assert.NoError(t, err)
}

func TestSaveOverwriteReplacesEveryField(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, sampleInput("First"), nil)
	require.NoError(t, err)
	before, err := store.Get(ctx, id)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	p := themes.DeriveDuotone("#e11d48", "#64748b")
	got, err := store.Save(ctx, SaveInput{
		Name:         "Second",
		LightColors:  p.Light,
		DarkColors:   p.Dark,
		BorderRadius: 1.25,
		IsDuoTone:    true,
	}, &id)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	after, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Second", after.Name)
	assert.True(t, p.Light.Equal(after.LightColors))
	assert.True(t, p.Dark.Equal(after.DarkColors))
	assert.Equal(t, 1.25, after.BorderRadius)
	assert.True(t, after.IsDuoTone)
	assert.True(t, after.CreatedAt.After(before.CreatedAt))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSaveOverwriteUnknownID(t *testing.T) {
	store := setupTestStore(t)
	missing := uint(42)
	_, err := store.Save(context.Background(), sampleInput("Ghost"), &missing)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveOverwriteDefaultKeepsName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	_, err := store.EnsureDefault(ctx, themes.Defaults(themes.Light), themes.Defaults(themes.Dark), 0.5)
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	id := list[0].ID

	_, err = store.Save(ctx, sampleInput("Renamed"), &id)
	require.NoError(t, err)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, DefaultName, got.Name)
	assert.Equal(t, 0.75, got.BorderRadius)
}

func TestListNewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var ids []uint
	for _, name := range []string{"a", "b", "c"} {
		id, err := store.Save(ctx, sampleInput(name), nil)
		require.NoError(t, err)
		ids = append(ids, id)
		time.Sleep(2 * time.Millisecond)
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].Name, list[1].Name, list[2].Name})

	// overwriting moves a palette to the front
	_, err = store.Save(ctx, sampleInput("a2"), &ids[0])
	require.NoError(t, err)
	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", list[0].Name)
}

func TestGetMissing(t *testing.T) {
	store := setupTestStore(t)
	p, err := store.Get(context.Background(), 99)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteLastPaletteRejected(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	id, err := store.Save(ctx, sampleInput("Only"), nil)
	require.NoError(t, err)

	err = store.Delete(ctx, id)
	assert.ErrorIs(t, err, ErrLastPalette)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestDeleteDefaultRejected(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.EnsureDefault(ctx, themes.Defaults(themes.Light), themes.Defaults(themes.Dark), 0.5)
	require.NoError(t, err)
	_, err = store.Save(ctx, sampleInput("Other"), nil)
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	var defaultID uint
	for _, p := range list {
		if p.IsDefault() {
			defaultID = p.ID
		}
	}
	require.NotZero(t, defaultID)

	err = store.Delete(ctx, defaultID)
	assert.ErrorIs(t, err, ErrProtectedDelete)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	a, err := store.Save(ctx, sampleInput("a"), nil)
	require.NoError(t, err)
	_, err = store.Save(ctx, sampleInput("b"), nil)
	require.NoError(t, err)

	_, err = store.CheckDelete(ctx, a)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, a))

	_, err = store.Get(ctx, a)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, a), ErrNotFound)
}

func TestEnsureDefaultSeedsOnce(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	light, dark := themes.Defaults(themes.Light), themes.Defaults(themes.Dark)

	store := NewStore(conn, zerolog.Nop())
	seeded, err := store.EnsureDefault(ctx, light, dark, 0.5)
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = store.EnsureDefault(ctx, light, dark, 0.5)
	require.NoError(t, err)
	assert.False(t, seeded)

	// a fresh store over the same database sees the persisted flag
	other := NewStore(conn, zerolog.Nop())
	seeded, err = other.EnsureDefault(ctx, light, dark, 0.5)
	require.NoError(t, err)
	assert.False(t, seeded)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, DefaultName, list[0].Name)
	assert.True(t, light.Equal(list[0].LightColors))
	assert.False(t, list[0].IsDuoTone)

	v, err := store.Settings().Get(ctx, InitializedKey)
	require.NoError(t, err)
	assert.Equal(t, "true", v)
}

func TestEnsureDefaultSkipsNonEmptyStore(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, sampleInput("Mine"), nil)
	require.NoError(t, err)

	seeded, err := store.EnsureDefault(ctx, themes.Defaults(themes.Light), themes.Defaults(themes.Dark), 0.5)
	require.NoError(t, err)
	assert.False(t, seeded)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGetNormalizesLegacyRows(t *testing.T) {
	conn := setupTestDB(t)
	store := NewStore(conn, zerolog.Nop())
	ctx := context.Background()

	row := models.Palette{
		Name:         "Legacy",
		LightColors:  `{"name":"light","background":{"name":"bg","value":"0 0% 100%"},"foreground":"222.2 84% 4.9%"}`,
		DarkColors:   `{"background":"222.2 84% 4.9%"}`,
		BorderRadius: 0.5,
	}
	require.NoError(t, conn.Create(&row).Error)

	got, err := store.Get(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, themes.TokenMap{
		"--background-value": "0 0% 100%",
		"--foreground":       "222.2 84% 4.9%",
	}, got.LightColors)
	assert.Equal(t, themes.TokenMap{"--background": "222.2 84% 4.9%"}, got.DarkColors)
}

func TestSettings(t *testing.T) {
	settings := NewSettings(setupTestDB(t))
	ctx := context.Background()

	_, err := settings.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSettingNotFound)

	require.NoError(t, settings.Put(ctx, "k", "one"))
	require.NoError(t, settings.Put(ctx, "k", "two"))
	v, err := settings.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	require.NoError(t, settings.Delete(ctx, "k"))
	_, err = settings.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrSettingNotFound)
	require.NoError(t, settings.Delete(ctx, "k"))
}
