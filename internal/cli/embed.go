package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tobim/smartgraph/pkg/diagram"
	apperrors "github.com/tobim/smartgraph/pkg/errors"
	"github.com/tobim/smartgraph/pkg/pack"
)

// newEmbedCmd creates the embed command, which registers an image with an
// in-memory host package, embeds it into a node's picture placeholder, and
// materializes the media part next to the diagram so the relationship
// target resolves.
func newEmbedCmd() *cobra.Command {
	var imagePath string

	cmd := &cobra.Command{
		Use:   "embed [file] [index]",
		Short: "Embed an image into a node's picture placeholder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			index, err := strconv.Atoi(args[1])
			if err != nil {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "index must be a number, got %q", args[1])
			}
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read image %s", imagePath)
			}

			part, err := loadPart(args[0])
			if err != nil {
				return err
			}

			pkg := pack.New()
			sa := part.SmartArt(diagram.WithImageRegistry(pkg))
			nodes := sa.EditableNodes()
			if index < 0 || index >= len(nodes) {
				return apperrors.New(apperrors.ErrCodeIndexOutOfRange,
					"node index %d out of range (have %d editable nodes)", index, len(nodes))
			}

			relID, err := sa.EmbedImage(nodes[index], data)
			if err != nil {
				return err
			}

			target := nodes[index].Point().ImageRef
			if err := writeMediaPart(filepath.Dir(args[0]), target, pkg); err != nil {
				return err
			}
			if err := writePart(args[0], part); err != nil {
				return err
			}

			logger.Debug("embedded image", "rel", relID, "target", target)
			fmt.Printf("%s %s as %s\n", StyleSuccess.Render("embedded"), StyleValue.Render(target), relID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "image file to embed")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

// writeMediaPart copies a registered image part out of the host package into
// baseDir, creating the media/ directory the target names.
func writeMediaPart(baseDir, target string, pkg *pack.Package) error {
	data, ok := pkg.Part(target)
	if !ok {
		return apperrors.New(apperrors.ErrCodeInternal, "registered part %s missing", target)
	}
	path := filepath.Join(baseDir, filepath.FromSlash(target))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "create media dir")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
