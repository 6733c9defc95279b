package adapter

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sdntopo/internal/codec"
	"sdntopo/internal/domain"
)

// ONOSOptions configures the ONOS REST endpoints
type ONOSOptions struct {
	BaseURL      string
	SwitchesPath string
	LinksPath    string
	RegistryPath string
	// ControllersPath is optional; empty skips controller liveness
	ControllersPath string
	// Timeout bounds each HTTP request
	Timeout  time.Duration
	Priority int
}

// ONOSAdapter polls an ONOS cluster for topology snapshots
type ONOSAdapter struct {
	opts   ONOSOptions
	client *http.Client
}

// NewONOSAdapter creates an adapter for the given endpoints
func NewONOSAdapter(opts ONOSOptions) *ONOSAdapter {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &ONOSAdapter{
		opts: opts,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// Name returns the adapter name
func (a *ONOSAdapter) Name() string {
	return "onos"
}

// Type returns the adapter type
func (a *ONOSAdapter) Type() AdapterType {
	return AdapterTypePolling
}

// Priority returns the adapter priority
func (a *ONOSAdapter) Priority() int {
	return a.opts.Priority
}

// Start initializes the adapter
func (a *ONOSAdapter) Start(ctx context.Context) error {
	log.Printf("ONOS adapter polling %s", a.opts.BaseURL)
	return nil
}

// Stop shuts down the adapter
func (a *ONOSAdapter) Stop() error {
	a.client.CloseIdleConnections()
	return nil
}

// Sync fetches switches, links, registry and (optionally) controllers
// concurrently. Any failed endpoint fails the whole snapshot.
func (a *ONOSAdapter) Sync(ctx context.Context) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.fetch(ctx, a.opts.SwitchesPath, func(r io.Reader) (err error) {
			snap.Switches, err = codec.DecodeSwitches(r)
			return err
		})
	})
	g.Go(func() error {
		return a.fetch(ctx, a.opts.LinksPath, func(r io.Reader) (err error) {
			snap.Links, err = codec.DecodeLinks(r)
			return err
		})
	})
	g.Go(func() error {
		return a.fetch(ctx, a.opts.RegistryPath, func(r io.Reader) (err error) {
			snap.Registry, err = codec.DecodeRegistry(r)
			return err
		})
	})
	if a.opts.ControllersPath != "" {
		g.Go(func() error {
			return a.fetch(ctx, a.opts.ControllersPath, func(r io.Reader) (err error) {
				snap.Controllers, err = codec.DecodeControllers(r)
				return err
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (a *ONOSAdapter) fetch(ctx context.Context, path string, decode func(io.Reader) error) error {
	url := a.opts.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused
		io.CopyN(io.Discard, resp.Body, 4096)
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}

	if err := decode(resp.Body); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
