package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sdntopo/internal/adapter"
	"sdntopo/internal/config"
	"sdntopo/internal/handler"
	"sdntopo/internal/hub"
	"sdntopo/internal/metrics"
	"sdntopo/internal/service"
	"sdntopo/internal/watcher"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Config file path (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	snapshot := flag.String("snapshot", "", "Replay a YAML snapshot file instead of polling ONOS")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting sdntopo server...")

	cfg, cfgPath, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *snapshot != "" {
		cfg.SnapshotFile = *snapshot
	}
	if cfgPath != "" {
		log.Printf("Config loaded: %s", cfgPath)
	} else {
		log.Println("No config file found, using defaults")
	}
	log.Println(cfg.Summary())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewRegistry()

	// Initialize event bus
	eventBus := service.NewEventBus()

	// Initialize SSE hub
	sseHub := hub.New(m)
	go sseHub.Run(ctx)

	// Initialize topology service
	topoSvc := service.NewTopologyService(eventBus, m)
	topoSvc.SetControllers(cfg.Controllers)

	// New SSE clients start from the current state
	sseHub.SetGreeting(func() []hub.Message {
		msgs := []hub.Message{{
			Event: string(service.EventControllersUpdated),
			Data:  topoSvc.Controllers(),
		}}
		if g, err := topoSvc.Topology(); err == nil {
			msgs = append(msgs, hub.Message{
				Event: string(service.EventTopologyInitialized),
				Data:  g.View(),
			})
		}
		return msgs
	})

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(string(event.Type), event.Payload)
			case <-ctx.Done():
				return
			}
		}
	}()

	// Initialize adapter registry with the topology service as reconciler
	adapterRegistry := adapter.NewRegistry(topoSvc.Apply, m)

	if cfg.SnapshotFile != "" {
		fileAdapter := adapter.NewFileAdapter(cfg.SnapshotFile, 10, false)
		if err := adapterRegistry.Register(fileAdapter, adapter.AdapterConfig{
			Enabled:      true,
			Priority:     10,
			PollInterval: cfg.PollInterval.Duration().String(),
		}); err != nil {
			log.Fatalf("Failed to register file adapter: %v", err)
		}
	} else {
		controllersPath := cfg.ONOS.ControllersPath
		if cfg.ControllersURL() == "" {
			controllersPath = ""
		}
		onosAdapter := adapter.NewONOSAdapter(adapter.ONOSOptions{
			BaseURL:         cfg.ONOS.URL,
			SwitchesPath:    cfg.ONOS.SwitchesPath,
			LinksPath:       cfg.ONOS.LinksPath,
			RegistryPath:    cfg.ONOS.RegistryPath,
			ControllersPath: controllersPath,
			Timeout:         cfg.ONOS.Timeout.Duration(),
			Priority:        100,
		})
		if err := adapterRegistry.Register(onosAdapter, adapter.AdapterConfig{
			Enabled:      true,
			Priority:     100,
			PollInterval: cfg.PollInterval.Duration().String(),
		}); err != nil {
			log.Fatalf("Failed to register ONOS adapter: %v", err)
		}
	}

	// Start adapter registry
	if err := adapterRegistry.Start(ctx); err != nil {
		log.Printf("Warning: Failed to start adapter registry: %v", err)
	}
	if cfg.SnapshotFile != "" {
		if err := adapterRegistry.TriggerSync(ctx, "file"); err != nil {
			log.Printf("Initial snapshot load failed: %v", err)
		}
	}

	// Reload the controller list on config edits
	if cfgPath != "" {
		go func() {
			err := watcher.WatchConfig(ctx, cfgPath, func(c *config.Config) {
				// Only the controller list is hot-reloadable
				topoSvc.SetControllers(c.Controllers)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Config watcher stopped: %v", err)
			}
		}()
	}

	// Replay the fixture whenever it is edited
	if cfg.SnapshotFile != "" {
		w := watcher.New(cfg.SnapshotFile, func() {
			if err := adapterRegistry.TriggerSync(ctx, "file"); err != nil {
				log.Printf("Snapshot reload failed: %v", err)
			}
		})
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Snapshot watcher stopped: %v", err)
			}
		}()
	}

	// Initialize HTTP handlers
	topoHandler := handler.NewTopologyHandler(topoSvc)
	topoHandler.SetPollTrigger(adapterRegistry)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/topology", topoHandler.GetTopology)
	mux.HandleFunc("GET /api/controllers", topoHandler.GetControllers)
	mux.HandleFunc("GET /api/health", topoHandler.Health)
	mux.HandleFunc("POST /api/poll", topoHandler.TriggerPoll)
	mux.HandleFunc("PUT /api/positions/{name}", topoHandler.UpdatePosition)

	// Export endpoints
	mux.HandleFunc("GET /api/export/json", topoHandler.ExportJSON)
	mux.HandleFunc("GET /api/export/yaml", topoHandler.ExportYAML)

	// SSE events endpoint
	mux.Handle("GET /events", sseHub)

	// Prometheus metrics
	mux.Handle("GET /metrics", m.Handler())

	// Apply middleware
	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	// Create server. No WriteTimeout: SSE streams are long-lived.
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           finalHandler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop polling, then close SSE streams so Shutdown does not wait on them
	cancel()
	if err := adapterRegistry.Stop(); err != nil {
		log.Printf("Adapter registry shutdown error: %v", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// loadConfig loads an explicit path or searches the standard locations
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
