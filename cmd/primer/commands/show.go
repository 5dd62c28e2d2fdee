package commands

import (
	"fmt"

	"github.com/dyluth/primer/internal/catalog"
	"github.com/dyluth/primer/internal/printer"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show MATERIAL_ID",
	Short: "Show a single material as JSON",
	Long: `Display the complete record of one material as pretty-printed JSON.

Examples:
  primer show 1

  # Extract a field for scripting
  primer show 1 | jq -r .owner`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseMaterialID(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := catalog.GetMaterial(ctx, s.client, id, cmd.OutOrStdout()); err != nil {
		if catalog.IsNotFound(err) {
			return printer.Error(
				fmt.Sprintf("material with ID %d not found", id),
				fmt.Sprintf("Instance '%s' has no material with that ID.", s.cfg.Instance),
				[]string{"List all materials:\n  primer list"},
			)
		}
		return err
	}

	return nil
}
