// Package cli implements the smartgraph command-line interface.
//
// This package provides commands for inspecting and editing diagram-data
// documents, embedding images into picture placeholders, syncing a diagram
// against a manifest, rendering the logical layer as SVG or PNG, and serving
// the HTTP API. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - show: List the editable nodes of a diagram
//   - add/remove: Edit the node structure
//   - embed: Embed an image into a node's picture placeholder
//   - sync: Reconcile a diagram against a manifest file
//   - render: Generate DOT, SVG, or PNG visualizations
//   - edit: Interactive terminal editor
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/tobim/smartgraph/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"os"

	"github.com/tobim/smartgraph/pkg/diagram/dgmxml"
	apperrors "github.com/tobim/smartgraph/pkg/errors"
)

// appName is the application name used for directories and display.
const appName = "smartgraph"

// loadPart reads and parses a diagram-data document from disk.
func loadPart(path string) (*dgmxml.Part, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "diagram file not found: %s", path)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read %s", path)
	}
	return dgmxml.Load(data)
}

// writePart serializes a part back to disk, preserving the document's
// original formatting conventions.
func writePart(path string, p *dgmxml.Part) error {
	if err := os.WriteFile(path, p.Blob(), 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
