package domain

// ControllerStatus reports the liveness of one controller instance
type ControllerStatus struct {
	Name     string `json:"name"`
	Index    int    `json:"index"`    // 1-based display position
	Up       bool   `json:"up"`       // see topology.ControllerStatuses
	Switches int    `json:"switches"` // switches the registry assigns to it
}

// ControllerStatusEqual compares two status lists element by element
func ControllerStatusEqual(a, b []ControllerStatus) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
