package reconcile

import (
	"fmt"

	"sdntopo/internal/domain"
)

// Reconcile converges the live graph to the snapshot and reports whether
// anything changed. Persisting nodes keep their object identity; only their
// group and controller may be rewritten.
func (s *GraphState) Reconcile(g *domain.Graph) bool {
	changed := false

	// Nodes
	addedNodes, removedNodes := diffNodes(s.nodes, g.Nodes)
	for _, n := range addedNodes {
		cp := *n
		s.nodes = append(s.nodes, &cp)
		changed = true
	}
	for _, name := range removedNodes {
		if i := s.nodeIndex(name); i >= 0 {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			changed = true
		}
	}

	// Links
	addedLinks, removedLinks := diffLinks(s.links, g)
	for _, key := range removedLinks {
		for i, l := range s.links {
			if l.Key() == key {
				s.links = append(s.links[:i], s.links[i+1:]...)
				changed = true
				break
			}
		}
	}

	pos := positions(s.nodes)
	for _, l := range addedLinks {
		key := snapshotKey(g, l)
		src, ok := pos[key.Source]
		if !ok {
			panic(fmt.Sprintf("reconcile: added link %s has no live source node", key))
		}
		dst, ok := pos[key.Target]
		if !ok {
			panic(fmt.Sprintf("reconcile: added link %s has no live target node", key))
		}
		s.links = append(s.links, &domain.Link{
			Source:     src,
			Target:     dst,
			SourceName: key.Source,
			TargetName: key.Target,
			Type:       l.Type,
			LinkNum:    nextLinkNum(s.links, key),
		})
		changed = true
	}

	// Attributes
	if s.updateGroups(g) {
		changed = true
	}
	if s.updateLinkTypes(g) {
		changed = true
	}

	s.reindex()
	return changed
}

// updateGroups copies group and controller from snapshot nodes onto the
// live nodes with the same name
func (s *GraphState) updateGroups(g *domain.Graph) bool {
	byName := make(map[string]*domain.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byName[n.Name] = n
	}

	changed := false
	for _, live := range s.nodes {
		snap, ok := byName[live.Name]
		if !ok {
			continue
		}
		if live.Group != snap.Group {
			live.Group = snap.Group
			changed = true
		}
		if live.Controller != snap.Controller {
			live.Controller = snap.Controller
			changed = true
		}
	}
	return changed
}

// updateLinkTypes copies link types from the snapshot. Parallel links are
// matched by rank: the live link with LinkNum k takes the type of the k-th
// snapshot link of its pair. Live links without a partner take the type of
// the pair's last snapshot link.
func (s *GraphState) updateLinkTypes(g *domain.Graph) bool {
	types := make(map[domain.LinkKey][]int, len(g.Links))
	for _, l := range g.Links {
		key := snapshotKey(g, l)
		types[key] = append(types[key], l.Type)
	}

	changed := false
	for _, live := range s.links {
		ranked, ok := types[live.Key()]
		if !ok {
			continue
		}
		t := ranked[len(ranked)-1]
		if live.LinkNum >= 1 && live.LinkNum <= len(ranked) {
			t = ranked[live.LinkNum-1]
		}
		if live.Type != t {
			live.Type = t
			changed = true
		}
	}
	return changed
}
