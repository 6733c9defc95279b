// Package loader reads controller snapshots from YAML fixture files.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sdntopo/internal/domain"
)

// SnapshotYAML represents the fixture file structure.
//
//	switches:
//	  - {dpid: "00:01", state: ACTIVE}
//	links:
//	  - {src: "00:01", dst: "00:02"}
//	registry:
//	  "00:01": [onos1]
//	controllers: [onos1]
type SnapshotYAML struct {
	Switches    []SwitchYAML `yaml:"switches"`
	Links       []LinkYAML   `yaml:"links"`
	Registry    yaml.Node    `yaml:"registry"`
	Controllers []string     `yaml:"controllers,omitempty"`
}

// SwitchYAML represents a switch entry
type SwitchYAML struct {
	DPID  string `yaml:"dpid"`
	State string `yaml:"state,omitempty"`
}

// LinkYAML represents a directed link
type LinkYAML struct {
	Src  string `yaml:"src"`
	Dst  string `yaml:"dst"`
	Type int    `yaml:"type,omitempty"`
}

// LoadYAML loads a snapshot from a YAML file
func LoadYAML(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseYAML(data)
}

// ParseYAML parses a snapshot from YAML bytes
func ParseYAML(data []byte) (*domain.Snapshot, error) {
	var yamlData SnapshotYAML
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return convertYAMLToSnapshot(&yamlData)
}

func convertYAMLToSnapshot(y *SnapshotYAML) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Switches: make([]domain.Switch, 0, len(y.Switches)),
		Links:    make([]domain.LinkRecord, 0, len(y.Links)),
	}

	for _, s := range y.Switches {
		if s.DPID == "" {
			return nil, fmt.Errorf("switch without dpid")
		}
		snap.Switches = append(snap.Switches, domain.Switch{DPID: s.DPID, State: s.State})
	}

	for i, l := range y.Links {
		if l.Src == "" || l.Dst == "" {
			return nil, fmt.Errorf("link %d: src and dst required", i)
		}
		snap.Links = append(snap.Links, domain.LinkRecord{
			SrcDPID: l.Src,
			DstDPID: l.Dst,
			Type:    l.Type,
		})
	}

	registry, err := convertRegistry(&y.Registry)
	if err != nil {
		return nil, err
	}
	snap.Registry = registry

	if y.Controllers != nil {
		snap.Controllers = y.Controllers
	}

	return snap, nil
}

// convertRegistry walks the mapping node so entries keep file order
func convertRegistry(n *yaml.Node) ([]domain.RegistryEntry, error) {
	entries := make([]domain.RegistryEntry, 0)
	if n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null") {
		return entries, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("registry: line %d: expected mapping", n.Line)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]

		var ids []string
		switch value.Kind {
		case yaml.SequenceNode:
			if err := value.Decode(&ids); err != nil {
				return nil, fmt.Errorf("registry %s: %w", key.Value, err)
			}
		case yaml.ScalarNode:
			if value.Tag != "!!null" {
				ids = []string{value.Value}
			}
		default:
			return nil, fmt.Errorf("registry %s: line %d: expected list of controllers", key.Value, value.Line)
		}

		entries = append(entries, domain.RegistryEntry{DPID: key.Value, ControllerIDs: ids})
	}
	return entries, nil
}
