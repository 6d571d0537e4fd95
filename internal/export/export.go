// Package export serializes a project graph to its JSON boundary format.
// Field order follows the struct declarations and slice order is fixed
// upstream, so repeated exports of the same graph are byte-identical.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Tanmay-Kondhekar/Project-Nova/internal/graph"
)

// Write encodes the graph as indented JSON.
func Write(w io.Writer, g *graph.ProjectGraph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	return nil
}

// WriteFile writes the graph to path, creating or truncating it.
func WriteFile(path string, g *graph.ProjectGraph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
