package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/thatcatcamp/tint/internal/config"
	"github.com/thatcatcamp/tint/internal/customizer"
	"github.com/thatcatcamp/tint/internal/db"
	"github.com/thatcatcamp/tint/internal/dialogs"
	"github.com/thatcatcamp/tint/internal/document"
	"github.com/thatcatcamp/tint/internal/logging"
	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/render"
	"github.com/thatcatcamp/tint/internal/state"
)

// app is the wired customizer shared by every command.
type app struct {
	log    zerolog.Logger
	store  *palettes.Store
	state  *state.Store
	c      *customizer.Customizer
	styles render.Styles
}

// initLogger builds the logger from the logging.* config keys.
func initLogger() (zerolog.Logger, error) {
	return logging.New(config.GetString("logging.level"), config.GetString("logging.format"), os.Stderr)
}

// initSystemDB opens the configured database and applies migrations
func initSystemDB(log zerolog.Logger) error {
	return db.InitDB(config.GetString("database.type"), config.GetString("database.path"), log)
}

// openApp loads config, opens the database and initializes the
// customizer. dialog answers confirmations; nil picks the terminal prompt
// or, with --yes, an automatic yes. Quiet apps only log notifications.
func openApp(ctx context.Context, dialog customizer.Dialog, quiet bool) (*app, error) {
	if err := initConfig(); err != nil {
		return nil, err
	}
	log, err := initLogger()
	if err != nil {
		return nil, err
	}
	if err := initSystemDB(log); err != nil {
		return nil, err
	}

	if dialog == nil {
		if assumeYes {
			dialog = dialogs.NewAuto(true)
		} else {
			dialog = dialogs.NewTerminal(os.Stdin, os.Stdout)
		}
	}

	var notifier customizer.Notifier = dialogs.NewLogger(log)
	if !quiet {
		notifier = dialogs.Multi{dialogs.NewPrinter(os.Stdout), notifier}
	}

	store := palettes.NewStore(db.GetDB(), log)
	st := state.New(state.NewSettingsPersister(store.Settings()), log)
	c := customizer.New(
		st,
		document.NewApplier(document.New()),
		store,
		dialog,
		notifier,
		log,
		customizer.Options{
			DefaultRadius: config.GetFloat64("theme.default_radius"),
			StartDark:     config.GetBool("theme.start_dark"),
		},
	)
	if err := c.Initialize(ctx); err != nil {
		c.Close()
		db.Close()
		return nil, err
	}

	return &app{
		log:    log,
		store:  store,
		state:  st,
		c:      c,
		styles: render.DefaultStyles(),
	}, nil
}

func (a *app) Close() {
	a.c.Close()
	if err := db.Close(); err != nil {
		a.log.Warn().Err(err).Msg("failed to close database")
	}
}

// run opens the app, calls fn and exits non-zero on error.
func run(fn func(ctx context.Context, a *app) error) {
	ctx := context.Background()
	a, err := openApp(ctx, nil, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	err = fn(ctx, a)
	a.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
