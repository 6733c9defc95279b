package topology

import (
	"testing"

	"sdntopo/internal/domain"
)

func TestControllerStatuses(t *testing.T) {
	t.Run("configured list with live controllers", func(t *testing.T) {
		snap := &domain.Snapshot{Controllers: []string{"onos2"}}

		got := ControllerStatuses([]string{"onos1", "onos2", "onos3"}, snap)
		want := []domain.ControllerStatus{
			{Name: "onos1", Index: 1, Up: false},
			{Name: "onos2", Index: 2, Up: true},
			{Name: "onos3", Index: 3, Up: false},
		}
		if !domain.ControllerStatusEqual(got, want) {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("falls back to registry order and membership", func(t *testing.T) {
		snap := &domain.Snapshot{Registry: registry("S1", "onos9", "S2", "onos4", "S3", "onos9")}

		got := ControllerStatuses(nil, snap)
		want := []domain.ControllerStatus{
			{Name: "onos9", Index: 1, Up: true, Switches: 2},
			{Name: "onos4", Index: 2, Up: true, Switches: 1},
		}
		if !domain.ControllerStatusEqual(got, want) {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("configured controller without switches is down when no live list", func(t *testing.T) {
		snap := &domain.Snapshot{Registry: registry("S1", "onos1")}

		got := ControllerStatuses([]string{"onos1", "onos2"}, snap)
		if !got[0].Up || got[1].Up {
			t.Errorf("expected onos1 up and onos2 down, got %+v", got)
		}
	})

	t.Run("empty live list marks all down", func(t *testing.T) {
		snap := &domain.Snapshot{
			Registry:    registry("S1", "onos1"),
			Controllers: []string{},
		}

		got := ControllerStatuses([]string{"onos1"}, snap)
		if got[0].Up {
			t.Error("expected onos1 down")
		}
	})

	t.Run("switch count ignores duplicate registry entries", func(t *testing.T) {
		snap := &domain.Snapshot{Registry: registry("S1", "onos1", "S1", "onos2", "S2", "onos1")}

		got := ControllerStatuses([]string{"onos1", "onos2"}, snap)
		if got[0].Switches != 2 || got[1].Switches != 0 {
			t.Errorf("expected switch counts [2 0], got %+v", got)
		}
	})

	t.Run("nil snapshot", func(t *testing.T) {
		got := ControllerStatuses([]string{"a"}, nil)
		if len(got) != 1 || got[0].Up {
			t.Errorf("expected one down controller, got %+v", got)
		}
	})
}
