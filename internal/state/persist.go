package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/themes"
)

// StorageKey is the settings key the persisted subset lives under.
const StorageKey = "palette-storage"

// Persister stores the serialized persisted subset. Load returns nil data
// when nothing has been stored yet.
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// persisted is the subset written on every mutation. Pointer fields let
// Load tell absent values from zero values.
type persisted struct {
	IsDarkMode           *bool              `json:"isDarkMode,omitempty"`
	BorderRadius         *float64           `json:"borderRadius,omitempty"`
	LightColors          themes.TokenMap    `json:"lightColors,omitempty"`
	DarkColors           themes.TokenMap    `json:"darkColors,omitempty"`
	SavedPalettes        []palettes.Palette `json:"savedPalettes,omitempty"`
	ShowActionsContainer *bool              `json:"showActionsContainer,omitempty"`
}

type envelope struct {
	State   persisted `json:"state"`
	Version int       `json:"version"`
}

func encodePersisted(st *Snapshot) ([]byte, error) {
	dark, radius, show := st.IsDarkMode, st.BorderRadius, st.ShowActionsContainer
	env := envelope{
		State: persisted{
			IsDarkMode:           &dark,
			BorderRadius:         &radius,
			LightColors:          st.LightColors,
			DarkColors:           st.DarkColors,
			SavedPalettes:        st.SavedPalettes,
			ShowActionsContainer: &show,
		},
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode theme state: %w", err)
	}
	return data, nil
}

func decodePersisted(data []byte) (*persisted, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode theme state: %w", err)
	}
	return &env.State, nil
}

func (p *persisted) mergeInto(st *Snapshot) {
	if p.IsDarkMode != nil {
		st.IsDarkMode = *p.IsDarkMode
	}
	if p.BorderRadius != nil {
		st.BorderRadius = *p.BorderRadius
	}
	if p.LightColors != nil {
		st.LightColors = p.LightColors.Clone()
	}
	if p.DarkColors != nil {
		st.DarkColors = p.DarkColors.Clone()
	}
	if p.SavedPalettes != nil {
		st.SavedPalettes = clonePalettes(p.SavedPalettes)
	}
	if p.ShowActionsContainer != nil {
		st.ShowActionsContainer = *p.ShowActionsContainer
	}
}

// SettingsPersister keeps the blob in the settings table.
type SettingsPersister struct {
	settings *palettes.Settings
	key      string
}

// NewSettingsPersister stores under StorageKey.
func NewSettingsPersister(settings *palettes.Settings) *SettingsPersister {
	return &SettingsPersister{settings: settings, key: StorageKey}
}

func (p *SettingsPersister) Load(ctx context.Context) ([]byte, error) {
	v, err := p.settings.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, palettes.ErrSettingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(v), nil
}

func (p *SettingsPersister) Save(ctx context.Context, data []byte) error {
	return p.settings.Put(ctx, p.key, string(data))
}

// MemoryPersister keeps the blob in memory.
type MemoryPersister struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func (p *MemoryPersister) Load(context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.data == nil {
		return nil, nil
	}
	return append([]byte(nil), p.data...), nil
}

func (p *MemoryPersister) Save(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = append([]byte(nil), data...)
	p.saves++
	return nil
}

// Saves returns how many times Save was called.
func (p *MemoryPersister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
