package adapter

import (
	"context"

	"sdntopo/internal/domain"
)

// AdapterType defines how an adapter interacts with its data source
type AdapterType string

const (
	// AdapterTypePolling - adapter pulls data on a schedule
	AdapterTypePolling AdapterType = "polling"
	// AdapterTypeOneShot - manual trigger only (e.g., fixture file)
	AdapterTypeOneShot AdapterType = "oneshot"
)

// AdapterConfig holds configuration for an adapter instance
type AdapterConfig struct {
	// Enabled determines if the adapter should run
	Enabled bool `json:"enabled"`
	// Priority orders adapters in listings (higher first)
	Priority int `json:"priority"`
	// PollInterval for polling adapters (e.g., "3s"). Also the deadline of
	// every sync, so one slow fetch never overlaps the next tick.
	PollInterval string `json:"poll_interval,omitempty"`
}

// Adapter defines the interface for snapshot sources
type Adapter interface {
	// Name returns the unique identifier for this adapter
	Name() string

	// Type returns how this adapter interacts with its source
	Type() AdapterType

	// Priority returns the listing order (higher first)
	Priority() int

	// Start initializes the adapter (called once on startup)
	Start(ctx context.Context) error

	// Stop gracefully shuts down the adapter
	Stop() error

	// Sync fetches one complete snapshot. A partial snapshot is never
	// returned; any failure yields an error and no snapshot.
	Sync(ctx context.Context) (*domain.Snapshot, error)
}
