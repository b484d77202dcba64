package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thatcatcamp/tint/internal/backup"
	"github.com/thatcatcamp/tint/internal/config"
	"github.com/thatcatcamp/tint/internal/dialogs"
	"github.com/thatcatcamp/tint/internal/handlers"
	"github.com/thatcatcamp/tint/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start the tint preview server and JSON API",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// confirmations come from ?confirm=true on each request
		a, err := openApp(ctx, dialogs.NewAuto(false), true)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		// Initialize backup scheduler
		var scheduler *backup.Scheduler
		var schedulerDone chan bool
		if config.GetBool("backups.enable_auto_backup") {
			manager := backup.NewBackupManager(config.GetString("backups.path"), a.store)
			scheduler = backup.NewScheduler(manager, a.log)
			if interval := config.GetDuration("backups.interval"); interval > 0 {
				scheduler.SetInterval(interval)
			}
			scheduler.Retention = config.GetInt("backups.retention")
			schedulerDone = scheduler.Start()
			a.log.Info().Dur("interval", scheduler.BackupInterval).Msg("backup scheduler started")
		}

		if a.log.GetLevel() > zerolog.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		r := gin.New()
		r.Use(gin.Recovery())
		r.Use(middleware.RequestLogger(a.log))
		r.Use(middleware.SecurityHeadersMiddleware())

		// server.rate_limit: 0 disables limiting
		if limit := config.GetInt("server.rate_limit"); limit > 0 {
			apiLimiter := middleware.NewRateLimiter(limit, time.Minute)
			defer apiLimiter.Close()
			r.Use(middleware.RateLimitMiddleware(apiLimiter, "/api/"))
		}
		r.Use(middleware.IPFilterMiddleware(
			config.GetStringSlice("server.blocked_ips"),
			config.GetStringSlice("server.allowed_ips"),
		))

		handlers.New(a.c, a.log).Register(r)

		httpAddr := fmt.Sprintf(":%s", config.GetString("server.http_port"))
		server := &http.Server{
			Addr:              httpAddr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			a.log.Info().Str("addr", httpAddr).Msg("starting HTTP server")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				a.log.Error().Err(err).Msg("server error")
			}
		case <-ctx.Done():
			a.log.Info().Msg("shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.log.Warn().Err(err).Msg("server shutdown failed")
		}

		if scheduler != nil {
			scheduler.Stop()
			<-schedulerDone
		}
	},
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}
