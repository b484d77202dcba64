// SPDX-License-Identifier: MIT

// Package state holds the live theme edit buffer and notifies subscribers
// after every mutation.
package state

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/themes"
)

// Change is a bitmask of the parts of the state a mutation touched.
type Change uint8

const (
	ChangeColors Change = 1 << iota
	ChangeMode
	ChangeRadius
	ChangePalettes
	ChangeUI
)

// ChangeAll is reported after Load.
const ChangeAll = ChangeColors | ChangeMode | ChangeRadius | ChangePalettes | ChangeUI

// Has reports whether any bit of f is set in c.
func (c Change) Has(f Change) bool {
	return c&f != 0
}

func (c Change) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, n := range []struct {
		bit  Change
		name string
	}{
		{ChangeColors, "colors"},
		{ChangeMode, "mode"},
		{ChangeRadius, "radius"},
		{ChangePalettes, "palettes"},
		{ChangeUI, "ui"},
	} {
		if c.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Tab names used by the customizer panel.
const (
	TabColors  = "colors"
	TabPalette = "palette"
	TabManage  = "manage"
)

// Snapshot is a copy of the state at one point in time.
type Snapshot struct {
	IsDarkMode           bool               `json:"isDarkMode"`
	LightColors          themes.TokenMap    `json:"lightColors"`
	DarkColors           themes.TokenMap    `json:"darkColors"`
	BorderRadius         float64            `json:"borderRadius"`
	SavedPalettes        []palettes.Palette `json:"savedPalettes"`
	ShowActionsContainer bool               `json:"showActionsContainer"`
	SaveDialogOpen       bool               `json:"saveDialogOpen"`
	ActiveTab            string             `json:"activeTab"`
	IsInitialized        bool               `json:"isInitialized"`
}

// ActiveColors returns the map governing the current mode.
func (s Snapshot) ActiveColors() themes.TokenMap {
	if s.IsDarkMode {
		return s.DarkColors
	}
	return s.LightColors
}

// Mode returns the current appearance mode.
func (s Snapshot) Mode() themes.Mode {
	return themes.ModeFor(s.IsDarkMode)
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.LightColors = s.LightColors.Clone()
	out.DarkColors = s.DarkColors.Clone()
	out.SavedPalettes = clonePalettes(s.SavedPalettes)
	return out
}

func clonePalettes(in []palettes.Palette) []palettes.Palette {
	if in == nil {
		return nil
	}
	out := make([]palettes.Palette, len(in))
	for i, p := range in {
		p.LightColors = p.LightColors.Clone()
		p.DarkColors = p.DarkColors.Clone()
		out[i] = p
	}
	return out
}

// Initial returns the state a fresh buffer starts with.
func Initial() Snapshot {
	return Snapshot{
		IsDarkMode:           true,
		LightColors:          themes.Defaults(themes.Light),
		DarkColors:           themes.Defaults(themes.Dark),
		BorderRadius:         themes.DefaultRadius,
		ShowActionsContainer: true,
		ActiveTab:            TabColors,
	}
}

// Listener receives the state after a mutation and what it changed.
type Listener func(Snapshot, Change)

type subscription struct {
	id int
	fn Listener
}

// Store is the edit buffer. Maps handed in and out are copies, so holders
// never observe a change without a notification.
type Store struct {
	mu        sync.RWMutex
	state     Snapshot
	subs      []subscription
	nextSubID int

	persister Persister
	log       zerolog.Logger
}

// New returns a store in its initial state. A nil persister disables
// persistence.
func New(p Persister, log zerolog.Logger) *Store {
	return &Store{
		state:     Initial(),
		persister: p,
		log:       log.With().Str("component", "state").Logger(),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

func (s *Store) IsDarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsDarkMode
}

func (s *Store) LightColors() themes.TokenMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LightColors.Clone()
}

func (s *Store) DarkColors() themes.TokenMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.DarkColors.Clone()
}

func (s *Store) BorderRadius() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.BorderRadius
}

func (s *Store) SavedPalettes() []palettes.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePalettes(s.state.SavedPalettes)
}

func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsInitialized
}

// Subscribe registers fn to run synchronously after every mutation. The
// returned func removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) SetDarkMode(isDark bool) {
	s.update(ChangeMode, true, func(st *Snapshot) {
		st.IsDarkMode = isDark
	})
}

func (s *Store) SetLightColors(m themes.TokenMap) {
	m = m.Clone()
	s.update(ChangeColors, true, func(st *Snapshot) {
		st.LightColors = m
	})
}

func (s *Store) SetDarkColors(m themes.TokenMap) {
	m = m.Clone()
	s.update(ChangeColors, true, func(st *Snapshot) {
		st.DarkColors = m
	})
}

// SetColors replaces both maps with one notification.
func (s *Store) SetColors(light, dark themes.TokenMap) {
	light, dark = light.Clone(), dark.Clone()
	s.update(ChangeColors, true, func(st *Snapshot) {
		st.LightColors = light
		st.DarkColors = dark
	})
}

// SetTheme replaces both maps and the radius with one notification.
func (s *Store) SetTheme(light, dark themes.TokenMap, radius float64) {
	light, dark = light.Clone(), dark.Clone()
	s.update(ChangeColors|ChangeRadius, true, func(st *Snapshot) {
		st.LightColors = light
		st.DarkColors = dark
		st.BorderRadius = radius
	})
}

func (s *Store) SetBorderRadius(rem float64) {
	s.update(ChangeRadius, true, func(st *Snapshot) {
		st.BorderRadius = rem
	})
}

func (s *Store) SetShowActionsContainer(show bool) {
	s.update(ChangeUI, true, func(st *Snapshot) {
		st.ShowActionsContainer = show
	})
}

func (s *Store) SetSaveDialogOpen(open bool) {
	s.update(ChangeUI, false, func(st *Snapshot) {
		st.SaveDialogOpen = open
	})
}

func (s *Store) SetActiveTab(tab string) {
	s.update(ChangeUI, false, func(st *Snapshot) {
		st.ActiveTab = tab
	})
}

func (s *Store) SetSavedPalettes(list []palettes.Palette) {
	list = clonePalettes(list)
	s.update(ChangePalettes, true, func(st *Snapshot) {
		st.SavedPalettes = list
	})
}

func (s *Store) SetInitialized(initialized bool) {
	s.update(ChangeUI, false, func(st *Snapshot) {
		st.IsInitialized = initialized
	})
}

// ResetColors restores the default maps and radius.
func (s *Store) ResetColors(radius float64) {
	s.SetTheme(themes.Defaults(themes.Light), themes.Defaults(themes.Dark), radius)
}

// Load merges the persisted subset over the current state. It reports
// whether anything was stored.
func (s *Store) Load(ctx context.Context) (bool, error) {
	if s.persister == nil {
		return false, nil
	}
	raw, err := s.persister.Load(ctx)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	p, err := decodePersisted(raw)
	if err != nil {
		return false, err
	}

	s.update(ChangeAll, false, func(st *Snapshot) {
		p.mergeInto(st)
	})
	s.log.Debug().Msg("loaded persisted theme state")
	return true, nil
}

// Persist writes the persisted subset immediately.
func (s *Store) Persist(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	s.mu.RLock()
	data, err := encodePersisted(&s.state)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	return s.persister.Save(ctx, data)
}

const persistTimeout = 5 * time.Second

func (s *Store) update(change Change, persist bool, mutate func(*Snapshot)) {
	s.mu.Lock()
	mutate(&s.state)
	snap := s.state.clone()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if persist && s.persister != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := s.Persist(ctx); err != nil {
			s.log.Warn().Err(err).Str("change", change.String()).Msg("failed to persist theme state")
		}
		cancel()
	}

	for i, sub := range subs {
		if i > 0 {
			snap = snap.clone()
		}
		sub.fn(snap, change)
	}
}
