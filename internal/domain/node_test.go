package domain

import "testing"

func TestNewNode(t *testing.T) {
	node := NewNode("00:00:00:00:00:00:00:01")

	if node.Name != "00:00:00:00:00:00:00:01" {
		t.Errorf("expected name to be set, got %s", node.Name)
	}
	if node.Group != GroupUnassigned {
		t.Errorf("expected group %d, got %d", GroupUnassigned, node.Group)
	}
	if node.Fixed {
		t.Error("expected new node not to be fixed")
	}
}

func TestNodeActive(t *testing.T) {
	tests := []struct {
		group int
		want  bool
	}{
		{GroupUnassigned, true},
		{GroupInactive, false},
		{1, true},
		{7, true},
	}

	for _, tt := range tests {
		node := &Node{Name: "sw", Group: tt.group}
		if got := node.Active(); got != tt.want {
			t.Errorf("Node{Group: %d}.Active() = %v, want %v", tt.group, got, tt.want)
		}
	}
}

func TestLinkKey(t *testing.T) {
	link := &Link{SourceName: "a", TargetName: "b"}

	if link.Key() != (LinkKey{Source: "a", Target: "b"}) {
		t.Errorf("unexpected key %v", link.Key())
	}
	if link.Key().String() != "a->b" {
		t.Errorf("expected a->b, got %s", link.Key().String())
	}
	reverse := &Link{SourceName: "b", TargetName: "a"}
	if link.Key() == reverse.Key() {
		t.Error("expected link identity to be ordered")
	}
}

func TestSnapshotHelpers(t *testing.T) {
	t.Run("registry entry controller", func(t *testing.T) {
		entry := RegistryEntry{DPID: "s1", ControllerIDs: []string{"c1", "c2"}}
		if entry.Controller() != "c1" {
			t.Errorf("expected first controller c1, got %s", entry.Controller())
		}
		empty := RegistryEntry{DPID: "s2"}
		if empty.Controller() != "" {
			t.Errorf("expected empty controller, got %s", empty.Controller())
		}
	})

	t.Run("switch state", func(t *testing.T) {
		if (Switch{DPID: "s1", State: SwitchStateActive}).Inactive() {
			t.Error("expected ACTIVE switch not to be inactive")
		}
		if !(Switch{DPID: "s1", State: SwitchStateInactive}).Inactive() {
			t.Error("expected INACTIVE switch to be inactive")
		}
		if (Switch{DPID: "s1"}).Inactive() {
			t.Error("expected missing state to be treated as active")
		}
	})

	t.Run("empty snapshot", func(t *testing.T) {
		var nilSnap *Snapshot
		if !nilSnap.IsEmpty() {
			t.Error("expected nil snapshot to be empty")
		}
		if !(&Snapshot{}).IsEmpty() {
			t.Error("expected zero snapshot to be empty")
		}
		if (&Snapshot{Switches: []Switch{{DPID: "s1"}}}).IsEmpty() {
			t.Error("expected snapshot with switches not to be empty")
		}
	})
}

func TestControllerStatusEqual(t *testing.T) {
	a := []ControllerStatus{{Name: "c1", Index: 1, Up: true}, {Name: "c2", Index: 2}}
	b := []ControllerStatus{{Name: "c1", Index: 1, Up: true}, {Name: "c2", Index: 2}}

	if !ControllerStatusEqual(a, b) {
		t.Error("expected equal lists")
	}
	b[1].Up = true
	if ControllerStatusEqual(a, b) {
		t.Error("expected lists to differ after liveness change")
	}
	if ControllerStatusEqual(a, a[:1]) {
		t.Error("expected lists of different length to differ")
	}
	if !ControllerStatusEqual(nil, nil) {
		t.Error("expected nil lists to be equal")
	}
}

func TestNewNodePosition(t *testing.T) {
	pos := NewNodePosition("s1", 100.5, -20, false)

	if pos.Name != "s1" {
		t.Errorf("expected name s1, got %s", pos.Name)
	}
	if pos.X != 100.5 || pos.Y != -20 {
		t.Errorf("expected (100.5, -20), got (%f, %f)", pos.X, pos.Y)
	}
	if pos.Fixed {
		t.Error("expected Fixed to be false by default")
	}
}
