package commands

import (
	"github.com/dyluth/primer/internal/printer"
	"github.com/dyluth/primer/pkg/registry"
	"github.com/spf13/cobra"
)

var (
	registerDetails registry.Details
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new material",
	Long: `Register a new material owned by the calling identity.

The material starts out available. It is stamped with the next height of the
instance's logical clock. Text fields are stored exactly as given; none are
required.

Examples:
  primer register --as user1 --title "Math Workbook" \
    --description "Comprehensive workbook for algebra" \
    --subject Mathematics --grade "High School"`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerDetails.Title, "title", "", "Material title")
	registerCmd.Flags().StringVar(&registerDetails.Description, "description", "", "Material description")
	registerCmd.Flags().StringVar(&registerDetails.Subject, "subject", "", "Subject, e.g. Mathematics")
	registerCmd.Flags().StringVar(&registerDetails.GradeLevel, "grade", "", "Grade level, e.g. High School")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	caller, err := s.caller()
	if err != nil {
		return err
	}

	height, err := s.clock.Height(ctx)
	if err != nil {
		return err
	}

	id, err := s.client.Register(ctx, registerDetails, caller, height)
	if err != nil {
		if !registry.IsPublishError(err) {
			return err
		}
		printer.Warning("Material %d registered but the event was not published: %v\n", id, err)
	}

	printer.Success("Registered material %d (owner %s, height %d)\n", id, caller, height)
	return nil
}
