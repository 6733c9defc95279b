package adapter

import (
	"context"
	"fmt"

	"sdntopo/internal/domain"
	"sdntopo/internal/loader"
)

// FileAdapter replays a snapshot from a YAML fixture file. The file is
// re-read on every sync, so edits show up on the next poll.
type FileAdapter struct {
	path     string
	priority int
	polling  bool
}

// NewFileAdapter creates a file adapter. When polling is false the
// adapter only syncs on manual trigger.
func NewFileAdapter(path string, priority int, polling bool) *FileAdapter {
	return &FileAdapter{
		path:     path,
		priority: priority,
		polling:  polling,
	}
}

// Name returns the adapter name
func (a *FileAdapter) Name() string {
	return "file"
}

// Type returns the adapter type
func (a *FileAdapter) Type() AdapterType {
	if a.polling {
		return AdapterTypePolling
	}
	return AdapterTypeOneShot
}

// Priority returns the adapter priority
func (a *FileAdapter) Priority() int {
	return a.priority
}

// Start initializes the adapter
func (a *FileAdapter) Start(ctx context.Context) error {
	return nil
}

// Stop shuts down the adapter
func (a *FileAdapter) Stop() error {
	return nil
}

// Sync loads the fixture
func (a *FileAdapter) Sync(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := loader.LoadYAML(a.path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.path, err)
	}
	return snap, nil
}
