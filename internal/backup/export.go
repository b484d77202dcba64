package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thatcatcamp/tint/internal/palettes"
)

const exportDir = "exports"

// PaletteExporter writes palettes as individual import-ready files.
type PaletteExporter struct {
	BackupPath string
	store      *palettes.Store
}

// NewPaletteExporter creates a new palette exporter
func NewPaletteExporter(backupPath string, store *palettes.Store) *PaletteExporter {
	return &PaletteExporter{
		BackupPath: backupPath,
		store:      store,
	}
}

// Dir is where exported palette files are written.
func (e *PaletteExporter) Dir() string {
	return filepath.Join(e.BackupPath, exportDir)
}

// ExportAll writes every palette in format f and returns the file paths.
// Each file name is prefixed with the palette id so names that slug the
// same do not collide.
func (e *PaletteExporter) ExportAll(ctx context.Context, f palettes.Format) ([]string, error) {
	list, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(e.Dir(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	paths := make([]string, 0, len(list))
	for i := range list {
		p := &list[i]
		data, err := palettes.Encode(p, f)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(e.Dir(), fmt.Sprintf("%d-%s", p.ID, f.Filename(p.Name)))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
