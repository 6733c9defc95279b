package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sdntopo/internal/config"
)

// startWatch runs Watch in the background and waits for it to be armed
func startWatch(t *testing.T, w *Watcher) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Watch() error: %v", err)
		}
	})
	// fsnotify registration is synchronous inside Watch; give it a moment
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func TestWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topo.yaml")
	os.WriteFile(path, []byte("a"), 0644)

	changes := make(chan string, 10)
	w := NewMulti([]string{path}, func(p string) { changes <- p }).WithDebounce(50 * time.Millisecond)
	startWatch(t, w)

	for i := 0; i < 5; i++ {
		os.WriteFile(path, []byte{byte('a' + i)}, 0644)
	}
	// Unrelated file in the same directory is ignored
	os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644)

	select {
	case got := <-changes:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("changed path = %s, want %s", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	select {
	case extra := <-changes:
		t.Errorf("burst produced a second notification for %s", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdntopo.yaml")
	cfg := config.DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := make(chan *config.Config, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go WatchConfig(ctx, path, func(c *config.Config) { reloaded <- c })
	time.Sleep(100 * time.Millisecond)

	// Invalid edit is ignored
	os.WriteFile(path, []byte("onos:\n  url: \"not a url\"\n"), 0644)
	select {
	case c := <-reloaded:
		t.Fatalf("invalid config applied: %+v", c)
	case <-time.After(DefaultDebounce + 300*time.Millisecond):
	}

	cfg.Controllers = []string{"onos2", "onos1"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	select {
	case c := <-reloaded:
		if len(c.Controllers) != 2 || c.Controllers[0] != "onos2" {
			t.Errorf("Controllers = %v, want [onos2 onos1]", c.Controllers)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("valid config was not reloaded")
	}
}
