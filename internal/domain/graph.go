package domain

// Graph is an ordered set of nodes and the links between them
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Links []*Link `json:"links"`
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		Nodes: make([]*Node, 0),
		Links: make([]*Link, 0),
	}
}

// AddNode appends a node
func (g *Graph) AddNode(node *Node) {
	g.Nodes = append(g.Nodes, node)
}

// AddLink appends a link
func (g *Graph) AddLink(link *Link) {
	g.Links = append(g.Links, link)
}

// NodeIndex returns the position of the named node, or -1
func (g *Graph) NodeIndex(name string) int {
	for i, n := range g.Nodes {
		if n.Name == name {
			return i
		}
	}
	return -1
}

// Node returns the named node, or nil
func (g *Graph) Node(name string) *Node {
	if i := g.NodeIndex(name); i >= 0 {
		return g.Nodes[i]
	}
	return nil
}

// ActiveCount returns the number of nodes that are not inactive
func (g *Graph) ActiveCount() int {
	n := 0
	for _, node := range g.Nodes {
		if node.Active() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the graph
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Nodes: make([]*Node, len(g.Nodes)),
		Links: make([]*Link, len(g.Links)),
	}
	for i, n := range g.Nodes {
		cp := *n
		c.Nodes[i] = &cp
	}
	for i, l := range g.Links {
		cp := *l
		c.Links[i] = &cp
	}
	return c
}

// TopologyView is the payload served to renderers
type TopologyView struct {
	Nodes  []*Node `json:"nodes"`
	Links  []*Link `json:"links"`
	Active int     `json:"active"`
}

// View wraps the graph with its summary counts
func (g *Graph) View() *TopologyView {
	return &TopologyView{
		Nodes:  g.Nodes,
		Links:  g.Links,
		Active: g.ActiveCount(),
	}
}
