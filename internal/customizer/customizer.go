// SPDX-License-Identifier: MIT

// Package customizer coordinates the theme edit buffer, the document
// projection and the palette store. Every change to colors, mode or radius
// goes through the state store and is projected onto the document before
// the call returns.
package customizer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/thatcatcamp/tint/internal/document"
	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/state"
	"github.com/thatcatcamp/tint/internal/themes"
)

// Options configures a Customizer.
type Options struct {
	// DefaultRadius is restored by Reset. Zero means themes.DefaultRadius.
	DefaultRadius float64
	// StartDark is the mode used when no persisted state exists.
	StartDark bool
}

// Customizer is the single writer of theme state.
type Customizer struct {
	state    *state.Store
	applier  *document.Applier
	store    *palettes.Store
	dialog   Dialog
	notifier Notifier
	log      zerolog.Logger
	opts     Options

	mu          sync.Mutex
	muted       atomic.Bool
	unsubscribe func()
}

// New wires a customizer and starts projecting state changes.
func New(st *state.Store, applier *document.Applier, store *palettes.Store, dialog Dialog, notifier Notifier, log zerolog.Logger, opts Options) *Customizer {
	if opts.DefaultRadius == 0 {
		opts.DefaultRadius = themes.DefaultRadius
	}
	c := &Customizer{
		state:    st,
		applier:  applier,
		store:    store,
		dialog:   dialog,
		notifier: notifier,
		log:      log.With().Str("component", "customizer").Logger(),
		opts:     opts,
	}
	c.unsubscribe = st.Subscribe(c.project)
	return c
}

// Close stops projecting state changes.
func (c *Customizer) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// State returns the edit buffer.
func (c *Customizer) State() *state.Store {
	return c.state
}

// Document returns the projected document.
func (c *Customizer) Document() *document.Document {
	return c.applier.Document()
}

// project is the state subscriber. Mode changes switch the root class and
// the map governing the inline style; color changes rewrite both the inline
// style and the dark stylesheet.
func (c *Customizer) project(snap state.Snapshot, change state.Change) {
	if c.muted.Load() {
		return
	}
	if change.Has(state.ChangeRadius) {
		c.applier.ApplyRadius(snap.BorderRadius)
	}
	if change.Has(state.ChangeMode) {
		c.applier.SetDarkMode(snap.IsDarkMode)
	}
	if change.Has(state.ChangeColors | state.ChangeMode) {
		c.applier.ApplyActive(snap.ActiveColors())
	}
	if change.Has(state.ChangeColors) {
		c.applier.ApplyDark(snap.DarkColors)
	}
}

// Initialize loads persisted state, seeds the default palette on first run
// and projects the full theme. It is a no-op once it has succeeded.
func (c *Customizer) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.IsInitialized() {
		return nil
	}

	loaded, err := c.state.Load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("ignoring unreadable persisted state")
	}
	if !loaded {
		c.state.SetDarkMode(c.opts.StartDark)
	}

	snap := c.state.Snapshot()
	seeded, err := c.store.EnsureDefault(ctx, snap.LightColors, snap.DarkColors, snap.BorderRadius)
	if err != nil {
		return fmt.Errorf("failed to initialize palette store: %w", err)
	}
	if seeded {
		c.log.Info().Msg("created default palette")
	}
	if err := c.refreshPalettes(ctx); err != nil {
		return err
	}

	snap = c.state.Snapshot()
	c.applier.SetDarkMode(snap.IsDarkMode)
	c.applier.ApplyTheme(snap.LightColors, snap.DarkColors, snap.BorderRadius, snap.IsDarkMode)
	c.state.SetInitialized(true)

	c.log.Info().
		Int("palettes", len(snap.SavedPalettes)).
		Bool("dark", snap.IsDarkMode).
		Msg("customizer initialized")
	return nil
}

// RefreshPalettes reloads the saved palette list into state.
func (c *Customizer) RefreshPalettes(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshPalettes(ctx)
}

func (c *Customizer) refreshPalettes(ctx context.Context) error {
	list, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	c.state.SetSavedPalettes(list)
	return nil
}

// Stylesheet returns the copy-paste stylesheet for the current buffer.
func (c *Customizer) Stylesheet() string {
	snap := c.state.Snapshot()
	return themes.GenerateCSS(snap.LightColors, snap.DarkColors, snap.BorderRadius)
}

// Contrast checks the token pairs of one mode.
func (c *Customizer) Contrast(mode themes.Mode) []themes.ContrastCheck {
	snap := c.state.Snapshot()
	if mode == themes.Dark {
		return themes.ContrastReport(snap.DarkColors)
	}
	return themes.ContrastReport(snap.LightColors)
}

func (c *Customizer) notify(title, description string) {
	c.notifier.Notify(Notification{Title: title, Description: description, Variant: VariantDefault})
}

func (c *Customizer) fail(title, description string) {
	c.notifier.Notify(Notification{Title: title, Description: description, Variant: VariantDestructive})
}
