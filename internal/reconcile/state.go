package reconcile

import (
	"fmt"

	"sdntopo/internal/domain"
)

// GraphState holds the live node and link lists
type GraphState struct {
	nodes       []*domain.Node
	links       []*domain.Link
	initialized bool
}

// New creates an empty, uninitialized state
func New() *GraphState {
	return &GraphState{
		nodes: make([]*domain.Node, 0),
		links: make([]*domain.Link, 0),
	}
}

// Initialized reports whether Initialize has run
func (s *GraphState) Initialized() bool {
	return s.initialized
}

// Initialize replaces the live graph with the snapshot's nodes and links,
// sorts links by (source, target) and numbers parallel links.
func (s *GraphState) Initialize(g *domain.Graph) {
	s.nodes = make([]*domain.Node, 0, len(g.Nodes))
	s.links = make([]*domain.Link, 0, len(g.Links))

	for _, n := range g.Nodes {
		cp := *n
		s.nodes = append(s.nodes, &cp)
	}
	for _, l := range g.Links {
		cp := *l
		cp.SourceName = g.Nodes[l.Source].Name
		cp.TargetName = g.Nodes[l.Target].Name
		s.links = append(s.links, &cp)
	}

	sortLinks(s.links)
	assignLinkNums(s.links)
	s.initialized = true
}

// Graph returns the live graph. The returned nodes and links are the live
// objects; callers must not retain them past the owner's lock.
func (s *GraphState) Graph() *domain.Graph {
	return &domain.Graph{Nodes: s.nodes, Links: s.links}
}

// Snapshot returns a deep copy of the live graph
func (s *GraphState) Snapshot() *domain.Graph {
	return s.Graph().Clone()
}

// Len returns the number of live nodes and links
func (s *GraphState) Len() (nodes, links int) {
	return len(s.nodes), len(s.links)
}

// SetPosition updates the renderer-owned state of a live node.
// Returns false if no node has that name.
func (s *GraphState) SetPosition(pos domain.NodePosition) bool {
	i := s.nodeIndex(pos.Name)
	if i < 0 {
		return false
	}
	node := s.nodes[i]
	node.X = pos.X
	node.Y = pos.Y
	node.Fixed = pos.Fixed
	return true
}

func (s *GraphState) nodeIndex(name string) int {
	for i, n := range s.nodes {
		if n.Name == name {
			return i
		}
	}
	return -1
}

// reindex recomputes live link indices from endpoint names
func (s *GraphState) reindex() {
	pos := positions(s.nodes)
	for _, l := range s.links {
		src, ok := pos[l.SourceName]
		if !ok {
			panic(fmt.Sprintf("reconcile: live link %s has no source node", l.Key()))
		}
		dst, ok := pos[l.TargetName]
		if !ok {
			panic(fmt.Sprintf("reconcile: live link %s has no target node", l.Key()))
		}
		l.Source = src
		l.Target = dst
	}
}

func positions(nodes []*domain.Node) map[string]int {
	pos := make(map[string]int, len(nodes))
	for i, n := range nodes {
		pos[n.Name] = i
	}
	return pos
}
