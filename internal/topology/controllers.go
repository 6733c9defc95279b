package topology

import "sdntopo/internal/domain"

// ControllerStatuses reports liveness for each known controller.
//
// Display order is the configured list when one is given, otherwise registry
// encounter order. A controller is up when it is listed in snap.Controllers;
// when the snapshot carries no controller list, owning at least one registry
// entry counts as up. Each status carries the number of switches the
// registry assigns to that controller.
func ControllerStatuses(configured []string, snap *domain.Snapshot) []domain.ControllerStatus {
	if snap == nil {
		snap = &domain.Snapshot{}
	}

	owned := controllerOrder(snap.Registry)
	names := configured
	if len(names) == 0 {
		names = ControllerOrder(snap.Registry)
	}

	live := make(map[string]bool)
	if snap.Controllers != nil {
		for _, c := range snap.Controllers {
			live[c] = true
		}
	} else {
		for _, c := range owned.Keys() {
			live[c.(string)] = true
		}
	}

	statuses := make([]domain.ControllerStatus, 0, len(names))
	for i, name := range names {
		count := 0
		if v, found := owned.Get(name); found {
			count = v.(int)
		}
		statuses = append(statuses, domain.ControllerStatus{
			Name:     name,
			Index:    i + 1,
			Up:       live[name],
			Switches: count,
		})
	}
	return statuses
}
