package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tobim/smartgraph/pkg/diagram"
	apperrors "github.com/tobim/smartgraph/pkg/errors"
)

// newAddCmd creates the add command, which appends an editable node and
// writes the document back in place.
func newAddCmd() *cobra.Command {
	var (
		text   string
		under  int
		atRoot bool
	)

	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Add an editable node to a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			part, err := loadPart(args[0])
			if err != nil {
				return err
			}
			sa := part.SmartArt()

			parent := diagram.Sibling()
			switch {
			case atRoot:
				parent = diagram.AtRoot()
			case under >= 0:
				nodes := sa.EditableNodes()
				if under >= len(nodes) {
					return apperrors.New(apperrors.ErrCodeIndexOutOfRange,
						"node index %d out of range (have %d editable nodes)", under, len(nodes))
				}
				parent = diagram.Under(nodes[under])
			}

			node, err := sa.AddNode(text, parent)
			if err != nil {
				return err
			}
			logger.Debug("added node", "id", node.ID())

			if err := writePart(args[0], part); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", StyleSuccess.Render("added"), StyleValue.Render(node.ID()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "node text")
	cmd.Flags().IntVar(&under, "under", -1, "attach below the node at this index")
	cmd.Flags().BoolVar(&atRoot, "at-root", false, "attach directly below the document root")
	cmd.MarkFlagsMutuallyExclusive("under", "at-root")
	return cmd
}
