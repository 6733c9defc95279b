// Package topology converts controller snapshots into normalized graphs.
package topology

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"sdntopo/internal/domain"
)

// ErrDanglingLink is returned when a link names a switch missing from the snapshot
var ErrDanglingLink = errors.New("link references unknown switch")

// Build converts a snapshot into a graph. Nodes follow snapshot order,
// groups follow registry encounter order, and link endpoints are resolved
// to indices into the returned node list.
func Build(snap *domain.Snapshot) (*domain.Graph, error) {
	graph := domain.NewGraph()
	if snap == nil {
		return graph, nil
	}

	// name -> position, for link resolution and registry lookups
	index := make(map[string]int, len(snap.Switches))
	for _, sw := range snap.Switches {
		if _, dup := index[sw.DPID]; dup {
			continue
		}
		node := domain.NewNode(sw.DPID)
		if sw.Inactive() {
			node.Group = domain.GroupInactive
		}
		index[sw.DPID] = len(graph.Nodes)
		graph.AddNode(node)
	}

	groups := ControllerGroups(snap.Registry)
	assigned := make(map[string]bool, len(snap.Registry))
	for _, entry := range snap.Registry {
		ctrl := entry.Controller()
		if ctrl == "" || assigned[entry.DPID] {
			continue
		}
		assigned[entry.DPID] = true

		i, ok := index[entry.DPID]
		if !ok {
			continue
		}
		node := graph.Nodes[i]
		node.Controller = ctrl
		if node.Group != domain.GroupInactive {
			node.Group = groups[ctrl]
		}
	}

	for _, rec := range snap.Links {
		src, ok := index[rec.SrcDPID]
		if !ok {
			return nil, fmt.Errorf("%w: source %s", ErrDanglingLink, rec.SrcDPID)
		}
		dst, ok := index[rec.DstDPID]
		if !ok {
			return nil, fmt.Errorf("%w: target %s", ErrDanglingLink, rec.DstDPID)
		}
		graph.AddLink(&domain.Link{
			Source:     src,
			Target:     dst,
			SourceName: rec.SrcDPID,
			TargetName: rec.DstDPID,
			Type:       rec.Type,
		})
	}

	return graph, nil
}

// ControllerGroups numbers each distinct controller 1..N in order of first
// appearance in the registry
func ControllerGroups(registry []domain.RegistryEntry) map[string]int {
	order := controllerOrder(registry)
	groups := make(map[string]int, order.Size())
	for i, key := range order.Keys() {
		groups[key.(string)] = i + 1
	}
	return groups
}

// ControllerOrder returns the distinct controllers in registry encounter order
func ControllerOrder(registry []domain.RegistryEntry) []string {
	order := controllerOrder(registry)
	names := make([]string, 0, order.Size())
	for _, key := range order.Keys() {
		names = append(names, key.(string))
	}
	return names
}

// controllerOrder collects controllers into an insertion-ordered map of
// controller -> number of switches it owns. Shadowed duplicate entries
// still place their controller in the order but own nothing.
func controllerOrder(registry []domain.RegistryEntry) *linkedhashmap.Map {
	order := linkedhashmap.New()
	seen := make(map[string]bool, len(registry))
	for _, entry := range registry {
		ctrl := entry.Controller()
		if ctrl == "" {
			continue
		}
		if seen[entry.DPID] {
			if _, found := order.Get(ctrl); !found {
				order.Put(ctrl, 0)
			}
			continue
		}
		seen[entry.DPID] = true
		count := 0
		if v, found := order.Get(ctrl); found {
			count = v.(int)
		}
		order.Put(ctrl, count+1)
	}
	return order
}
