package codec

import (
	"fmt"
	"io"

	"sdntopo/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// ContentType returns the MIME type of the export
func (c *YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// yamlTopology represents the YAML structure for an exported graph
type yamlTopology struct {
	Active int        `yaml:"active"`
	Nodes  []yamlNode `yaml:"nodes"`
	Links  []yamlLink `yaml:"links"`
}

type yamlNode struct {
	Name       string  `yaml:"name"`
	Group      int     `yaml:"group"`
	Controller string  `yaml:"controller,omitempty"`
	X          float64 `yaml:"x,omitempty"`
	Y          float64 `yaml:"y,omitempty"`
	Fixed      bool    `yaml:"fixed,omitempty"`
}

type yamlLink struct {
	Source  string `yaml:"source"`
	Target  string `yaml:"target"`
	Type    int    `yaml:"type,omitempty"`
	LinkNum int    `yaml:"linknum"`
}

// Export exports the graph to YAML. Links are written by endpoint name
// since indices only make sense next to the node list.
func (c *YAMLCodec) Export(graph *domain.Graph, w io.Writer) error {
	yt := yamlTopology{
		Active: graph.ActiveCount(),
		Nodes:  make([]yamlNode, 0, len(graph.Nodes)),
		Links:  make([]yamlLink, 0, len(graph.Links)),
	}

	for _, node := range graph.Nodes {
		yt.Nodes = append(yt.Nodes, yamlNode{
			Name:       node.Name,
			Group:      node.Group,
			Controller: node.Controller,
			X:          node.X,
			Y:          node.Y,
			Fixed:      node.Fixed,
		})
	}

	for _, link := range graph.Links {
		yt.Links = append(yt.Links, yamlLink{
			Source:  link.SourceName,
			Target:  link.TargetName,
			Type:    link.Type,
			LinkNum: link.LinkNum,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yt); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
