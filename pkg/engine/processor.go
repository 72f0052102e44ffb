package engine

import "github.com/runZeroInc/runzero-tools/pkg/inventory"

// Processor consumes assets one at a time.
type Processor interface {
	Process(inventory.Asset) error
	Stats() Stats
}

// Stats counts assets read and result lines written.
type Stats struct {
	Assets  int
	Emitted int
}

var (
	_ Processor = (*URLExtractor)(nil)
	_ Processor = (*BridgeDetector)(nil)
)
