package domain

import "io"

// Exporter defines the interface for writing conversion outputs.
type Exporter interface {
	// Export writes one output document to the target format.
	Export(out Output, output io.Writer) error

	// Format returns the output format name (e.g., "json", "yaml").
	Format() string

	// Extension returns the file extension used for the format, without the dot.
	Extension() string
}
