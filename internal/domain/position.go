package domain

// NodePosition is the renderer-owned placement of a node
type NodePosition struct {
	Name  string  `json:"name"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fixed bool    `json:"fixed"`
}

// NewNodePosition creates a position, pinned when fixed is set
func NewNodePosition(name string, x, y float64, fixed bool) NodePosition {
	return NodePosition{
		Name:  name,
		X:     x,
		Y:     y,
		Fixed: fixed,
	}
}
