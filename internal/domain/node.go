package domain

// Group sentinels. Positive groups are controller-cluster indices.
const (
	GroupUnassigned = -1 // no registry entry
	GroupInactive   = 0  // switch reported INACTIVE
)

// Node is a switch in the topology graph
type Node struct {
	Name       string `json:"name"`
	Group      int    `json:"group"`
	Controller string `json:"controller,omitempty"`

	// Renderer-owned state
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fixed bool    `json:"fixed"`
}

// NewNode creates an unassigned node
func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Group: GroupUnassigned,
	}
}

// Active reports whether the node counts toward the active switch total
func (n *Node) Active() bool {
	return n.Group != GroupInactive
}
