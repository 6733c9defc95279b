package reconcile

import "sdntopo/internal/domain"

// diffNodes returns snapshot nodes missing from live, and names of live
// nodes missing from the snapshot
func diffNodes(live, snap []*domain.Node) (added []*domain.Node, removed []string) {
	liveNames := make(map[string]bool, len(live))
	for _, n := range live {
		liveNames[n.Name] = true
	}
	snapNames := make(map[string]bool, len(snap))
	for _, n := range snap {
		snapNames[n.Name] = true
	}

	seen := make(map[string]bool, len(snap))
	for _, n := range snap {
		if !liveNames[n.Name] && !seen[n.Name] {
			added = append(added, n)
			seen[n.Name] = true
		}
	}
	for _, n := range live {
		if !snapNames[n.Name] {
			removed = append(removed, n.Name)
		}
	}
	return added, removed
}

// diffLinks compares links by endpoint identity. Added links are returned
// as snapshot links (indices relative to g); removed links as keys, one per
// live link to delete.
func diffLinks(live []*domain.Link, g *domain.Graph) (added []*domain.Link, removed []domain.LinkKey) {
	liveKeys := make(map[domain.LinkKey]bool, len(live))
	for _, l := range live {
		liveKeys[l.Key()] = true
	}
	snapKeys := make(map[domain.LinkKey]bool, len(g.Links))
	for _, l := range g.Links {
		snapKeys[snapshotKey(g, l)] = true
	}

	for _, l := range g.Links {
		if !liveKeys[snapshotKey(g, l)] {
			added = append(added, l)
		}
	}
	for _, l := range live {
		if !snapKeys[l.Key()] {
			removed = append(removed, l.Key())
		}
	}
	return added, removed
}

// snapshotKey resolves a snapshot link's identity through the snapshot's
// own node list
func snapshotKey(g *domain.Graph, l *domain.Link) domain.LinkKey {
	return domain.LinkKey{
		Source: g.Nodes[l.Source].Name,
		Target: g.Nodes[l.Target].Name,
	}
}
