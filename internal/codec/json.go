package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"sdntopo/internal/domain"
)

// JSONCodec handles JSON export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// ContentType returns the MIME type of the export
func (c *JSONCodec) ContentType() string {
	return "application/json"
}

// Export exports the graph to JSON
func (c *JSONCodec) Export(graph *domain.Graph, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(graph.View()); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
