package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"sdntopo/internal/domain"
	"sdntopo/internal/service"
)

func newTestHandler(t *testing.T, initialized bool) (*TopologyHandler, *service.TopologyService) {
	t.Helper()
	svc := service.NewTopologyService(service.NewEventBus(), nil)
	if initialized {
		snap := &domain.Snapshot{
			Switches: []domain.Switch{{DPID: "s1"}, {DPID: "s2", State: domain.SwitchStateInactive}},
			Links:    []domain.LinkRecord{{SrcDPID: "s1", DstDPID: "s2", Type: 1}},
			Registry: []domain.RegistryEntry{{DPID: "s1", ControllerIDs: []string{"onos1"}}},
		}
		if err := svc.Apply(context.Background(), "test", snap); err != nil {
			t.Fatalf("Apply() error: %v", err)
		}
	}
	return NewTopologyHandler(svc), svc
}

func TestGetTopology(t *testing.T) {
	t.Run("before first poll", func(t *testing.T) {
		h, _ := newTestHandler(t, false)
		rec := httptest.NewRecorder()
		h.GetTopology(rec, httptest.NewRequest(http.MethodGet, "/api/topology", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if resp.Error == "" {
			t.Error("expected error message")
		}
	})

	t.Run("after poll", func(t *testing.T) {
		h, _ := newTestHandler(t, true)
		rec := httptest.NewRecorder()
		h.GetTopology(rec, httptest.NewRequest(http.MethodGet, "/api/topology", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var view domain.TopologyView
		if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if len(view.Nodes) != 2 || len(view.Links) != 1 {
			t.Errorf("view = %d nodes %d links", len(view.Nodes), len(view.Links))
		}
		if view.Active != 1 {
			t.Errorf("active = %d, want 1", view.Active)
		}
		if view.Links[0].LinkNum != 1 {
			t.Errorf("linknum = %d, want 1", view.Links[0].LinkNum)
		}
	})
}

func TestGetControllers(t *testing.T) {
	h, _ := newTestHandler(t, true)
	rec := httptest.NewRecorder()
	h.GetControllers(rec, httptest.NewRequest(http.MethodGet, "/api/controllers", nil))

	var statuses []domain.ControllerStatus
	if err := json.NewDecoder(rec.Body).Decode(&statuses); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(statuses) != 1 || statuses[0].Name != "onos1" || !statuses[0].Up {
		t.Errorf("statuses = %+v", statuses)
	}
}

func TestUpdatePosition(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"valid", "/api/positions/s1", `{"x": 10, "y": 20, "fixed": true}`, http.StatusOK},
		{"zero coordinates", "/api/positions/s2", `{"x": 0, "y": 0}`, http.StatusOK},
		{"unknown switch", "/api/positions/s9", `{"x": 1, "y": 1}`, http.StatusNotFound},
		{"missing y", "/api/positions/s1", `{"x": 1}`, http.StatusBadRequest},
		{"bad json", "/api/positions/s1", `{"x":`, http.StatusBadRequest},
		{"no name", "/api/positions/", `{"x": 1, "y": 1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc := newTestHandler(t, true)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body))
			h.UpdatePosition(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}

			g, _ := svc.Topology()
			name := strings.TrimPrefix(tt.path, "/api/positions/")
			if g.Node(name) == nil {
				t.Fatalf("node %s missing", name)
			}
		})
	}

	t.Run("stored on live node", func(t *testing.T) {
		h, svc := newTestHandler(t, true)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/positions/s1", strings.NewReader(`{"x": 10, "y": 20, "fixed": true}`))
		h.UpdatePosition(rec, req)

		g, _ := svc.Topology()
		n := g.Node("s1")
		if n.X != 10 || n.Y != 20 || !n.Fixed {
			t.Errorf("s1 = (%v, %v, %v), want (10, 20, true)", n.X, n.Y, n.Fixed)
		}

		var pos domain.NodePosition
		if err := json.Unmarshal(rec.Body.Bytes(), &pos); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if pos != domain.NewNodePosition("s1", 10, 20, true) {
			t.Errorf("response = %+v", pos)
		}
	})
}

func TestExport(t *testing.T) {
	h, _ := newTestHandler(t, true)

	t.Run("json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ExportJSON(rec, httptest.NewRequest(http.MethodGet, "/api/export/json", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s", ct)
		}
		if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "topology.json") {
			t.Errorf("Content-Disposition = %s", cd)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ExportYAML(rec, httptest.NewRequest(http.MethodGet, "/api/export/yaml", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "s1") {
			t.Errorf("yaml export missing s1:\n%s", rec.Body.String())
		}
	})

	t.Run("before first poll", func(t *testing.T) {
		h, _ := newTestHandler(t, false)
		rec := httptest.NewRecorder()
		h.ExportYAML(rec, httptest.NewRequest(http.MethodGet, "/api/export/yaml", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

type countingPoller struct {
	calls atomic.Int32
	done  chan struct{}
}

func (p *countingPoller) TriggerSyncAll(ctx context.Context) error {
	p.calls.Add(1)
	close(p.done)
	return nil
}

func TestTriggerPoll(t *testing.T) {
	h, _ := newTestHandler(t, false)

	rec := httptest.NewRecorder()
	h.TriggerPoll(rec, httptest.NewRequest(http.MethodPost, "/api/poll", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status without poller = %d, want 503", rec.Code)
	}

	p := &countingPoller{done: make(chan struct{})}
	h.SetPollTrigger(p)

	rec = httptest.NewRecorder()
	h.TriggerPoll(rec, httptest.NewRequest(http.MethodPost, "/api/poll", nil))
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}

	select {
	case <-p.done:
	case <-time.After(time.Second):
		t.Fatal("poll was not triggered")
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t, false)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}

	h, _ = newTestHandler(t, true)
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Status != "ok" || resp.LastPoll == nil {
		t.Errorf("health = %+v", resp)
	}
}
