package codec

import (
	"io"

	"sdntopo/internal/domain"
)

// Exporter writes a topology graph in some serialization format
type Exporter interface {
	Export(graph *domain.Graph, w io.Writer) error
	Format() string
	ContentType() string
}
