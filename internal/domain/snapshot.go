package domain

// Switch states reported by the topology endpoint
const (
	SwitchStateActive   = "ACTIVE"
	SwitchStateInactive = "INACTIVE"
)

// Switch is one entry of the switches snapshot
type Switch struct {
	DPID  string `json:"dpid" yaml:"dpid"`
	State string `json:"state,omitempty" yaml:"state,omitempty"`
}

// Inactive reports whether the controller marked the switch INACTIVE
func (s Switch) Inactive() bool {
	return s.State == SwitchStateInactive
}

// LinkRecord is one entry of the links snapshot
type LinkRecord struct {
	SrcDPID string `json:"src_dpid" yaml:"src_dpid"`
	DstDPID string `json:"dst_dpid" yaml:"dst_dpid"`
	Type    int    `json:"type,omitempty" yaml:"type,omitempty"`
}

// RegistryEntry maps a switch to the controllers registered for it.
// Only the first controller is authoritative.
type RegistryEntry struct {
	DPID          string   `json:"dpid" yaml:"dpid"`
	ControllerIDs []string `json:"controller_ids" yaml:"controller_ids"`
}

// Controller returns the owning controller, or "" if none is listed
func (e RegistryEntry) Controller() string {
	if len(e.ControllerIDs) == 0 {
		return ""
	}
	return e.ControllerIDs[0]
}

// Snapshot is a single poll of the controller cluster
type Snapshot struct {
	Switches []Switch        `json:"switches"`
	Links    []LinkRecord    `json:"links"`
	Registry []RegistryEntry `json:"registry"`

	// Controllers lists the controllers reported up by the cluster.
	// Nil when the adapter does not poll controller liveness.
	Controllers []string `json:"controllers,omitempty"`
}

// IsEmpty returns true if the snapshot carries no switches and no links
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Switches) == 0 && len(s.Links) == 0)
}
