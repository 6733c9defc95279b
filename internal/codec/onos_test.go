package codec

import (
	"strings"
	"testing"
)

func TestDecodeSwitches(t *testing.T) {
	input := `[
		{"dpid": "00:00:00:00:00:00:00:01", "state": "ACTIVE", "ports": []},
		{"type": "host"},
		{"dpid": "00:00:00:00:00:00:00:02", "state": "INACTIVE"}
	]`

	switches, err := DecodeSwitches(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(switches) != 2 {
		t.Fatalf("expected 2 switches, got %d", len(switches))
	}
	if switches[0].DPID != "00:00:00:00:00:00:00:01" {
		t.Errorf("unexpected DPID %s", switches[0].DPID)
	}
	if switches[0].Inactive() {
		t.Error("expected first switch active")
	}
	if !switches[1].Inactive() {
		t.Error("expected second switch inactive")
	}

	t.Run("invalid JSON", func(t *testing.T) {
		if _, err := DecodeSwitches(strings.NewReader(`{"dpid":`)); err == nil {
			t.Error("expected error for truncated JSON")
		}
	})

	t.Run("null body", func(t *testing.T) {
		switches, err := DecodeSwitches(strings.NewReader(`null`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(switches) != 0 {
			t.Errorf("expected no switches, got %d", len(switches))
		}
	})
}

func TestDecodeLinks(t *testing.T) {
	t.Run("nested endpoints", func(t *testing.T) {
		input := `[
			{"src": {"dpid": "a", "portNumber": 1}, "dst": {"dpid": "b", "portNumber": 2}},
			{"src": {"dpid": "b"}, "dst": {"dpid": "a"}, "type": 1}
		]`

		links, err := DecodeLinks(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 2 {
			t.Fatalf("expected 2 links, got %d", len(links))
		}
		if links[0].SrcDPID != "a" || links[0].DstDPID != "b" {
			t.Errorf("expected a->b, got %s->%s", links[0].SrcDPID, links[0].DstDPID)
		}
		if links[1].Type != 1 {
			t.Errorf("expected type 1, got %d", links[1].Type)
		}
	})

	t.Run("flat endpoints", func(t *testing.T) {
		input := `[{"src-switch": "a", "src-port": 1, "dst-switch": "c", "dst-port": 3}]`

		links, err := DecodeLinks(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(links) != 1 || links[0].SrcDPID != "a" || links[0].DstDPID != "c" {
			t.Errorf("unexpected links %+v", links)
		}
	})

	t.Run("missing endpoint", func(t *testing.T) {
		if _, err := DecodeLinks(strings.NewReader(`[{"src": {"dpid": "a"}}]`)); err == nil {
			t.Error("expected error for link without destination")
		}
	})
}

func TestDecodeRegistry(t *testing.T) {
	t.Run("preserves key order", func(t *testing.T) {
		input := `{
			"S3": [{"controllerId": "C1", "timestamp": 1}],
			"S1": [{"controllerId": "C2"}, {"controllerId": "C1"}],
			"S2": []
		}`

		entries, err := DecodeRegistry(strings.NewReader(input))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantOrder := []string{"S3", "S1", "S2"}
		if len(entries) != len(wantOrder) {
			t.Fatalf("expected %d entries, got %d", len(wantOrder), len(entries))
		}
		for i, dpid := range wantOrder {
			if entries[i].DPID != dpid {
				t.Errorf("entry %d: expected %s, got %s", i, dpid, entries[i].DPID)
			}
		}
		if entries[1].Controller() != "C2" {
			t.Errorf("expected first controller C2, got %s", entries[1].Controller())
		}
		if len(entries[1].ControllerIDs) != 2 {
			t.Errorf("expected 2 controller ids, got %d", len(entries[1].ControllerIDs))
		}
		if entries[2].Controller() != "" {
			t.Errorf("expected empty controller, got %s", entries[2].Controller())
		}
	})

	t.Run("empty object", func(t *testing.T) {
		entries, err := DecodeRegistry(strings.NewReader(`{}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
	})

	t.Run("null body", func(t *testing.T) {
		entries, err := DecodeRegistry(strings.NewReader(`null`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
	})

	t.Run("array is rejected", func(t *testing.T) {
		if _, err := DecodeRegistry(strings.NewReader(`[]`)); err == nil {
			t.Error("expected error for array body")
		}
	})

	t.Run("malformed entry", func(t *testing.T) {
		if _, err := DecodeRegistry(strings.NewReader(`{"S1": "C1"}`)); err == nil {
			t.Error("expected error for non-array entry")
		}
	})
}

func TestDecodeControllers(t *testing.T) {
	ids, err := DecodeControllers(strings.NewReader(`["onos1", "onos3"]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "onos1" || ids[1] != "onos3" {
		t.Errorf("unexpected ids %v", ids)
	}

	ids, err = DecodeControllers(strings.NewReader(`null`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("expected empty non-nil list, got %v", ids)
	}
}
