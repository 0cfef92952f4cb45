package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newShowCmd creates the show command, which lists the editable nodes of a
// diagram-data document in order.
func newShowCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "List the editable nodes of a diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			part, err := loadPart(args[0])
			if err != nil {
				return err
			}

			sa := part.SmartArt()
			nodes := sa.EditableNodes()
			if len(nodes) == 0 {
				fmt.Println(StyleDim.Render("no editable nodes"))
				return nil
			}

			for i, n := range nodes {
				text := n.Text()
				if text == "" {
					text = StyleDim.Render("(empty)")
				}
				line := fmt.Sprintf("%s %s", StyleNumber.Render(fmt.Sprintf("%2d", i)), StyleValue.Render(text))
				if n.HasImagePlaceholder() {
					line += " " + StyleHighlight.Render("[picture]")
				}
				if detailed {
					line += " " + StyleDim.Render(n.ID())
					if ref := n.Point().ImageRef; ref != "" {
						line += " " + StyleDim.Render(ref)
					}
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "show point IDs and image references")
	return cmd
}
