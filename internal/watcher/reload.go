package watcher

import (
	"context"
	"log"

	"sdntopo/internal/config"
)

// WatchConfig reloads the config file on every change and hands each
// valid result to apply. Invalid edits are logged and ignored so the
// running config stays in effect.
func WatchConfig(ctx context.Context, path string, apply func(*config.Config)) error {
	w := New(path, func() {
		cfg, _, err := config.LoadFromPath(path)
		if err != nil {
			log.Printf("Ignoring config change: %v", err)
			return
		}
		log.Printf("Config reloaded from %s", path)
		apply(cfg)
	})
	return w.Watch(ctx)
}
