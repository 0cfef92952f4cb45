package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/tobim/smartgraph/pkg/diagram"
	apperrors "github.com/tobim/smartgraph/pkg/errors"
	"github.com/tobim/smartgraph/pkg/pack"
)

// syncManifest is the TOML manifest the sync command reconciles against:
// one [[item]] per desired node, in order.
type syncManifest struct {
	Items []syncItem `toml:"item"`
}

// syncItem describes one desired node.
type syncItem struct {
	// Text is the node text.
	Text string `toml:"text"`
	// Image is an optional path to an image for the node's picture
	// placeholder, relative to the manifest file.
	Image string `toml:"image"`
}

// newSyncCmd creates the sync command, which reconciles a diagram's editable
// nodes against a manifest: existing nodes are retexted, missing nodes are
// added, and nodes left with neither text nor image are removed.
func newSyncCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "sync [file]",
		Short: "Reconcile a diagram against a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			var manifest syncManifest
			if _, err := toml.DecodeFile(manifestPath, &manifest); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "parse manifest %s", manifestPath)
			}

			images, err := loadManifestImages(filepath.Dir(manifestPath), manifest.Items)
			if err != nil {
				return err
			}
			texts := make([]string, len(manifest.Items))
			for i, item := range manifest.Items {
				texts[i] = item.Text
			}

			part, err := loadPart(args[0])
			if err != nil {
				return err
			}
			pkg := pack.New()
			sa := part.SmartArt(diagram.WithImageRegistry(pkg))

			if err := syncImages(sa, images); err != nil {
				return err
			}
			if err := syncTexts(sa, texts); err != nil {
				return err
			}
			if err := removeEmptyNodes(sa); err != nil {
				return err
			}

			for _, rel := range pkg.Relationships() {
				if err := writeMediaPart(filepath.Dir(args[0]), rel.Target, pkg); err != nil {
					return err
				}
			}
			if err := writePart(args[0], part); err != nil {
				return err
			}

			prog.done(fmt.Sprintf("Synced %d items into %s", len(manifest.Items), args[0]))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "manifest file")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

// loadManifestImages reads the image of every item; items without one get a
// nil entry so indexes stay aligned. Image entries are plain filenames
// resolved against the manifest's directory.
func loadManifestImages(baseDir string, items []syncItem) ([][]byte, error) {
	images := make([][]byte, len(items))
	for i, item := range items {
		if item.Image == "" {
			continue
		}
		if err := apperrors.ValidateManifestFilename(item.Image); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(baseDir, item.Image))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read image %s", item.Image)
		}
		images[i] = data
	}
	return images, nil
}

// syncTexts walks nodes and desired texts in lockstep: both present means
// retext, text beyond the last node means a new sibling node.
// Surplus nodes are left alone; removeEmptyNodes decides their fate.
func syncTexts(sa *diagram.SmartArt, texts []string) error {
	nodes := sa.EditableNodes()
	for i, text := range texts {
		if i < len(nodes) {
			nodes[i].SetText(text)
			continue
		}
		if _, err := sa.AddNode(text, diagram.Sibling()); err != nil {
			return err
		}
	}
	return nil
}

// syncImages walks nodes and desired images in lockstep. An image beyond the
// last node creates a new node first; a node whose layout has no picture
// placeholder is skipped (and removed again when it was just created, since
// it can never show its image).
func syncImages(sa *diagram.SmartArt, images [][]byte) error {
	nodes := sa.EditableNodes()
	for i := range images {
		if images[i] == nil {
			continue
		}
		var node *diagram.Node
		if i < len(nodes) {
			node = nodes[i]
		} else {
			created, err := sa.AddNode("", diagram.Sibling())
			if err != nil {
				return err
			}
			if !created.HasImagePlaceholder() {
				if err := sa.RemoveNode(created); err != nil {
					return err
				}
				continue
			}
			node = created
		}

		if !node.HasImagePlaceholder() {
			continue
		}
		if _, err := sa.EmbedImage(node, images[i]); err != nil {
			return err
		}
	}
	return nil
}

// removeEmptyNodes removes every editable node that ended up with neither
// text nor an embedded image.
func removeEmptyNodes(sa *diagram.SmartArt) error {
	for _, node := range sa.EditableNodes() {
		hasImage := node.HasImagePlaceholder() && node.Point().ImageRef != ""
		hasText := strings.TrimSpace(node.Text()) != ""
		if hasImage || hasText {
			continue
		}
		if err := sa.RemoveNode(node); err != nil {
			return err
		}
	}
	return nil
}
