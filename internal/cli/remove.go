package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/tobim/smartgraph/pkg/errors"
)

// newRemoveCmd creates the remove command, which deletes the editable node
// at a given index along with everything it owns.
func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [file] [index]",
		Short: "Remove an editable node from a diagram",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "index must be a number, got %q", args[1])
			}

			part, err := loadPart(args[0])
			if err != nil {
				return err
			}
			sa := part.SmartArt()

			if err := sa.RemoveNodeAt(index); err != nil {
				return err
			}
			if err := writePart(args[0], part); err != nil {
				return err
			}
			fmt.Printf("%s node %d\n", StyleSuccess.Render("removed"), index)
			return nil
		},
	}
	return cmd
}
