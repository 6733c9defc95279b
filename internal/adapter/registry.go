package adapter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"sdntopo/internal/domain"
	"sdntopo/internal/metrics"
)

// DefaultPollInterval is used when an adapter's interval does not parse
const DefaultPollInterval = 3 * time.Second

var errNoSnapshot = errors.New("adapter returned no snapshot")

// ReconcileFunc is called when an adapter produces a snapshot
type ReconcileFunc func(ctx context.Context, source string, snap *domain.Snapshot) error

// Registry manages all registered adapters and their lifecycle
type Registry struct {
	mu        sync.RWMutex
	adapters  map[string]Adapter
	configs   map[string]AdapterConfig
	syncLocks map[string]*sync.Mutex
	reconcile ReconcileFunc
	metrics   *metrics.Registry
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewRegistry creates a new adapter registry. m may be nil.
func NewRegistry(reconcile ReconcileFunc, m *metrics.Registry) *Registry {
	return &Registry{
		adapters:  make(map[string]Adapter),
		configs:   make(map[string]AdapterConfig),
		syncLocks: make(map[string]*sync.Mutex),
		reconcile: reconcile,
		metrics:   m,
	}
}

// Register adds an adapter to the registry
func (r *Registry) Register(adapter Adapter, config AdapterConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := adapter.Name()
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("adapter %s already registered", name)
	}

	r.adapters[name] = adapter
	r.configs[name] = config
	r.syncLocks[name] = &sync.Mutex{}
	log.Printf("Registered adapter: %s (type=%s, priority=%d, enabled=%v)",
		name, adapter.Type(), config.Priority, config.Enabled)

	return nil
}

// Start initializes all enabled adapters and begins their sync cycles
func (r *Registry) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ctx, r.cancel = context.WithCancel(ctx)

	for name, adapter := range r.adapters {
		config := r.configs[name]
		if !config.Enabled {
			log.Printf("Adapter %s is disabled, skipping", name)
			continue
		}

		// Initialize adapter
		if err := adapter.Start(r.ctx); err != nil {
			log.Printf("Failed to start adapter %s: %v", name, err)
			continue
		}

		// Start polling loop for polling adapters
		if adapter.Type() == AdapterTypePolling {
			r.startPollingLoop(name, adapter, config)
		}
	}

	return nil
}

// Stop gracefully shuts down all adapters
func (r *Registry) Stop() error {
	r.mu.RLock()
	cancel := r.cancel
	r.mu.RUnlock()

	if cancel != nil {
		cancel()
	}

	// Wait for all polling loops to finish
	r.wg.Wait()

	r.mu.RLock()
	defer r.mu.RUnlock()

	// Stop all adapters
	for name, adapter := range r.adapters {
		if err := adapter.Stop(); err != nil {
			log.Printf("Error stopping adapter %s: %v", name, err)
		}
	}

	return nil
}

// TriggerSync manually triggers a sync for a specific adapter
func (r *Registry) TriggerSync(ctx context.Context, name string) error {
	r.mu.RLock()
	adapter, exists := r.adapters[name]
	config := r.configs[name]
	r.mu.RUnlock()

	if !exists {
		return fmt.Errorf("adapter %s not found", name)
	}

	if !config.Enabled {
		return fmt.Errorf("adapter %s is disabled", name)
	}

	return r.runSync(ctx, name, adapter, pollInterval(name, config))
}

// TriggerSyncAll manually triggers sync for all enabled adapters
func (r *Registry) TriggerSyncAll(ctx context.Context) error {
	var errs []error
	for _, info := range r.ListAdapters() {
		if !info.Enabled {
			continue
		}
		if err := r.TriggerSync(ctx, info.Name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", info.Name, err))
		}
	}

	return errors.Join(errs...)
}

// ListAdapters returns information about registered adapters, highest
// priority first
func (r *Registry) ListAdapters() []AdapterInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]AdapterInfo, 0, len(r.adapters))
	for name, adapter := range r.adapters {
		config := r.configs[name]
		infos = append(infos, AdapterInfo{
			Name:         name,
			Type:         adapter.Type(),
			Priority:     config.Priority,
			Enabled:      config.Enabled,
			PollInterval: config.PollInterval,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Priority != infos[j].Priority {
			return infos[i].Priority > infos[j].Priority
		}
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// AdapterInfo provides read-only information about an adapter
type AdapterInfo struct {
	Name         string      `json:"name"`
	Type         AdapterType `json:"type"`
	Priority     int         `json:"priority"`
	Enabled      bool        `json:"enabled"`
	PollInterval string      `json:"poll_interval,omitempty"`
}

func pollInterval(name string, config AdapterConfig) time.Duration {
	interval, err := time.ParseDuration(config.PollInterval)
	if err != nil || interval <= 0 {
		if config.PollInterval != "" {
			log.Printf("Invalid poll interval for %s: %q, using %s default",
				name, config.PollInterval, DefaultPollInterval)
		}
		return DefaultPollInterval
	}
	return interval
}

// startPollingLoop starts a goroutine that polls the adapter on schedule
func (r *Registry) startPollingLoop(name string, adapter Adapter, config AdapterConfig) {
	interval := pollInterval(name, config)
	ctx := r.ctx

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		// Run initial sync
		if err := r.runSync(ctx, name, adapter, interval); err != nil {
			log.Printf("Initial sync failed for %s: %v", name, err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Printf("Stopping polling loop for %s", name)
				return
			case <-ticker.C:
				if err := r.runSync(ctx, name, adapter, interval); err != nil {
					log.Printf("Sync failed for %s: %v", name, err)
				}
			}
		}
	}()

	log.Printf("Started polling loop for %s (interval=%s)", name, interval)
}

// runSync executes one fetch under a deadline and reconciles the result.
// Cycles of the same adapter are serialized.
func (r *Registry) runSync(ctx context.Context, name string, adapter Adapter, deadline time.Duration) error {
	r.mu.RLock()
	lock := r.syncLocks[name]
	r.mu.RUnlock()

	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	start := time.Now()
	snap, err := adapter.Sync(ctx)
	if err != nil {
		r.recordPoll(name, err, time.Since(start))
		return fmt.Errorf("sync failed: %w", err)
	}
	if snap == nil {
		r.recordPoll(name, errNoSnapshot, time.Since(start))
		return errNoSnapshot
	}

	// Reconcile the snapshot with the live graph
	if err := r.reconcile(ctx, name, snap); err != nil {
		r.recordPoll(name, err, time.Since(start))
		return fmt.Errorf("reconcile failed: %w", err)
	}
	r.recordPoll(name, nil, time.Since(start))

	if snap.IsEmpty() {
		log.Printf("Adapter %s returned empty snapshot", name)
	}

	return nil
}

func (r *Registry) recordPoll(name string, err error, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}
	result := metrics.ResultSuccess
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		result = metrics.ResultTimeout
	case err != nil:
		result = metrics.ResultError
	}
	r.metrics.RecordPoll(name, result, elapsed)
}
