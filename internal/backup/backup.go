// Package backup snapshots the palette collection to disk and restores it.
package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/thatcatcamp/tint/internal/palettes"
	"github.com/thatcatcamp/tint/internal/state"
)

// BundleVersion is written into every backup.
const BundleVersion = 1

const (
	systemDir    = "system"
	filePrefix   = "palettes-"
	fileSuffix   = ".json"
	timestampFmt = "20060102-150405.000"
)

// ErrInvalidBackup is returned when a backup file cannot be decoded.
var ErrInvalidBackup = errors.New("invalid backup file")

// BackupMetadata describes a backup bundle
type BackupMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   int       `json:"version"`
	Palettes  int       `json:"palettes"`
	Note      string    `json:"note,omitempty"`
}

// Bundle is the on-disk backup layout.
type Bundle struct {
	Metadata BackupMetadata      `json:"metadata"`
	Palettes []palettes.Document `json:"palettes"`
	// State is the persisted editor state blob, if one was stored.
	State json.RawMessage `json:"state,omitempty"`
}

// Info describes a backup file.
type Info struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// RestoreResult counts what a restore did.
type RestoreResult struct {
	Added        int
	Skipped      int
	StateRestore bool
}

// BackupManager handles all backup operations
type BackupManager struct {
	BackupPath string // ~/.tint/backups
	store      *palettes.Store
}

// NewBackupManager creates a new backup manager
func NewBackupManager(backupPath string, store *palettes.Store) *BackupManager {
	return &BackupManager{
		BackupPath: backupPath,
		store:      store,
	}
}

// SystemDir is where full backups are written.
func (m *BackupManager) SystemDir() string {
	return filepath.Join(m.BackupPath, systemDir)
}

// CreateBackup writes every palette and the persisted editor state to a
// new timestamped file and returns its path.
func (m *BackupManager) CreateBackup(ctx context.Context, note string) (string, error) {
	list, err := m.store.List(ctx)
	if err != nil {
		return "", err
	}

	bundle := Bundle{
		Metadata: BackupMetadata{
			Timestamp: time.Now().UTC(),
			Version:   BundleVersion,
			Palettes:  len(list),
			Note:      note,
		},
		Palettes: make([]palettes.Document, 0, len(list)),
	}
	for i := range list {
		bundle.Palettes = append(bundle.Palettes, palettes.NewDocument(&list[i]))
	}

	blob, err := m.store.Settings().Get(ctx, state.StorageKey)
	switch {
	case err == nil:
		if json.Valid([]byte(blob)) {
			bundle.State = json.RawMessage(blob)
		}
	case errors.Is(err, palettes.ErrSettingNotFound):
	default:
		return "", err
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}

	dir := m.SystemDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := filePrefix + bundle.Metadata.Timestamp.Format(timestampFmt) + fileSuffix
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

// ListBackups returns the backup files, newest first.
func (m *BackupManager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.SystemDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var out []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			Name:    name,
			Path:    filepath.Join(m.SystemDir(), name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	// timestamps in the names sort lexically
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

// ReadBackup decodes the named backup file.
func (m *BackupManager) ReadBackup(filename string) (*Bundle, error) {
	path, err := m.resolve(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if bundle.Metadata.Version == 0 || bundle.Metadata.Version > BundleVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidBackup, bundle.Metadata.Version)
	}
	return &bundle, nil
}

// RestoreBackup adds the palettes of a backup whose names are not already
// in the collection, and puts back the stored editor state. The default
// palette is never restored over the seeded one.
func (m *BackupManager) RestoreBackup(ctx context.Context, filename string) (*RestoreResult, error) {
	bundle, err := m.ReadBackup(filename)
	if err != nil {
		return nil, err
	}

	existing, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(existing))
	for _, p := range existing {
		names[p.Name] = true
	}

	result := &RestoreResult{}
	for _, doc := range bundle.Palettes {
		if doc.Name == palettes.DefaultName || names[doc.Name] {
			result.Skipped++
			continue
		}
		if _, err := m.store.Save(ctx, doc.SaveInput(), nil); err != nil {
			return result, fmt.Errorf("failed to restore palette %q: %w", doc.Name, err)
		}
		names[doc.Name] = true
		result.Added++
	}

	if len(bundle.State) > 0 {
		if err := m.store.Settings().Put(ctx, state.StorageKey, string(bundle.State)); err != nil {
			return result, err
		}
		result.StateRestore = true
	}
	return result, nil
}

// DeleteBackup removes one backup file.
func (m *BackupManager) DeleteBackup(filename string) error {
	path, err := m.resolve(filename)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	return nil
}

// Prune deletes all but the newest keep backups. keep <= 0 keeps everything.
func (m *BackupManager) Prune(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	list, err := m.ListBackups()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, info := range list[min(keep, len(list)):] {
		if err := os.Remove(info.Path); err != nil {
			return removed, fmt.Errorf("failed to prune %s: %w", info.Name, err)
		}
		removed++
	}
	return removed, nil
}

// resolve maps a bare backup name to its path inside the system directory.
func (m *BackupManager) resolve(filename string) (string, error) {
	if filename == "" || filepath.Base(filename) != filename {
		return "", fmt.Errorf("invalid backup name %q", filename)
	}
	return filepath.Join(m.SystemDir(), filename), nil
}
