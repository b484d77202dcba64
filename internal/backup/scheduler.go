package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const backupTimeout = 30 * time.Second

// Scheduler handles automatic backup scheduling
type Scheduler struct {
	Manager        *BackupManager
	ticker         *time.Ticker
	done           chan bool
	stopChan       chan bool
	BackupInterval time.Duration
	// Retention is how many backups are kept after each run; 0 keeps all.
	Retention int
	log       zerolog.Logger
}

// NewScheduler creates a new backup scheduler
func NewScheduler(manager *BackupManager, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Manager:        manager,
		BackupInterval: 24 * time.Hour, // Default: daily
		Retention:      10,
		done:           make(chan bool, 1),
		stopChan:       make(chan bool, 1),
		log:            log.With().Str("component", "backup").Logger(),
	}
}

// Start begins the backup scheduler in a goroutine
// Returns a done channel that receives once the scheduler stops
func (s *Scheduler) Start() chan bool {
	go func() {
		s.ticker = time.NewTicker(s.BackupInterval)
		defer s.ticker.Stop()

		// Run initial backup immediately
		if err := s.runBackup(); err != nil {
			s.log.Error().Err(err).Msg("initial backup failed")
		}

		for {
			select {
			case <-s.stopChan:
				s.done <- true
				return
			case <-s.ticker.C:
				if err := s.runBackup(); err != nil {
					s.log.Error().Err(err).Msg("scheduled backup failed")
				}
			}
		}
	}()

	return s.done
}

// Stop stops the backup scheduler
func (s *Scheduler) Stop() {
	select {
	case s.stopChan <- true:
	default:
	}
}

// runBackup performs a single backup and prunes old ones
func (s *Scheduler) runBackup() error {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	path, err := s.Manager.CreateBackup(ctx, "scheduled")
	if err != nil {
		return fmt.Errorf("backup creation failed: %w", err)
	}

	removed, err := s.Manager.Prune(s.Retention)
	if err != nil {
		return err
	}
	s.log.Info().Str("path", path).Int("pruned", removed).Msg("backup created")
	return nil
}

// SetInterval sets the backup interval
func (s *Scheduler) SetInterval(interval time.Duration) {
	s.BackupInterval = interval
}
