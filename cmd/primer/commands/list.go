package commands

import (
	"fmt"

	"github.com/dyluth/primer/internal/catalog"
	"github.com/dyluth/primer/internal/printer"
	"github.com/dyluth/primer/pkg/registry"
	"github.com/spf13/cobra"
)

var (
	listOutputFormat  string
	listSubject       string
	listOwner         string
	listAvailableOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered materials",
	Long: `List every material in the instance in registration order.

Output Formats:
  default - Human-readable table
  jsonl   - One JSON object per line

Filters (combined with AND):
  --subject         exact subject match
  --owner           exact owner match
  --available-only  hide unavailable materials

Examples:
  primer list
  primer list --owner user1 --available-only
  primer list -o jsonl | jq -r .title`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "default", "Output format: default or jsonl")
	listCmd.Flags().StringVar(&listSubject, "subject", "", "Only materials with this subject")
	listCmd.Flags().StringVar(&listOwner, "owner", "", "Only materials owned by this identity")
	listCmd.Flags().BoolVar(&listAvailableOnly, "available-only", false, "Only available materials")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, err := catalog.ParseOutputFormat(listOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", listOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	filter := &catalog.Filter{
		Subject:       listSubject,
		Owner:         registry.Principal(listOwner),
		AvailableOnly: listAvailableOnly,
	}

	if err := catalog.ListMaterials(ctx, s.client, s.cfg.Instance, format, filter, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to list materials: %w", err)
	}

	return nil
}
