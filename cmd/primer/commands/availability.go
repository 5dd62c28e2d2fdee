package commands

import (
	"fmt"
	"strconv"

	"github.com/dyluth/primer/internal/printer"
	"github.com/dyluth/primer/pkg/registry"
	"github.com/spf13/cobra"
)

var availabilityCmd = &cobra.Command{
	Use:   "availability MATERIAL_ID true|false",
	Short: "Mark a material available or unavailable",
	Long: `Set the availability of a material. Only the identity that registered
the material may change it.

Examples:
  primer availability 1 false --as user1
  primer availability 1 true --as user1`,
	Args: cobra.ExactArgs(2),
	RunE: runAvailability,
}

func init() {
	rootCmd.AddCommand(availabilityCmd)
}

func runAvailability(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseMaterialID(args[0])
	if err != nil {
		return err
	}

	available, err := strconv.ParseBool(args[1])
	if err != nil {
		return printer.Error(
			"invalid availability",
			fmt.Sprintf("Expected true or false, got %q.", args[1]),
			nil,
		)
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	caller, err := s.caller()
	if err != nil {
		return err
	}

	err = s.client.UpdateAvailability(ctx, id, available, caller)
	switch {
	case err == nil:
	case registry.IsNotFound(err):
		return printer.Error(
			fmt.Sprintf("material with ID %d not found", id),
			fmt.Sprintf("Instance '%s' has no material with that ID.", s.cfg.Instance),
			[]string{"List all materials:\n  primer list"},
		)
	case registry.IsUnauthorized(err):
		details := map[string]string{"Caller": string(caller)}
		if m, ok, getErr := s.client.GetMaterial(ctx, id); getErr == nil && ok {
			details["Owner"] = string(m.Owner)
		}
		return printer.ErrorWithContext(
			fmt.Sprintf("not authorized to update material %d", id),
			"Only the owner of a material can change its availability.",
			details,
			[]string{"Run the command as the owner:\n  primer --as <owner> availability ..."},
		)
	case registry.IsPublishError(err):
		printer.Warning("Availability of material %d updated but the event was not published: %v\n", id, err)
	default:
		return err
	}

	printer.Success("Material %d is now %s\n", id, printer.Availability(available))
	return nil
}
