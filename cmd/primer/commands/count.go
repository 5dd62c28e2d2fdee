package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the number of registered materials",
	Long: `Print how many materials have been registered in the instance.

Identifiers are allocated sequentially, so this is also the highest
material ID in use.`,
	Args: cobra.NoArgs,
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	count, err := s.client.MaterialCount(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), count)
	return nil
}
