package commands

import (
	"github.com/dyluth/primer/internal/config"
	"github.com/dyluth/primer/internal/printer"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a primer.yml configuration file",
	Long: `Create primer.yml with the default instance and Redis address.

Values given with --instance, --redis or --as are written into the file.

Use --force to overwrite an existing primer.yml.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing primer.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := settings.GetString("config")

	cfg := config.Default()
	if addr := settings.GetString("redis_addr"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if instance := settings.GetString("instance"); instance != "" {
		cfg.Instance = instance
	}
	cfg.Caller = settings.GetString("as")

	if err := cfg.Validate(); err != nil {
		return printer.Error("invalid configuration", err.Error(), nil)
	}

	if err := config.Write(path, cfg, forceInit); err != nil {
		return printer.Error(
			"initialization failed",
			err.Error(),
			[]string{"Overwrite the existing file:\n  primer init --force"},
		)
	}

	printer.Success("Created %s (instance '%s', redis %s)\n", path, cfg.Instance, cfg.Redis.Addr)
	return nil
}
