package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyluth/primer/internal/chain"
	"github.com/dyluth/primer/internal/config"
	"github.com/dyluth/primer/internal/printer"
	"github.com/dyluth/primer/pkg/registry"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version string
	commit  string
	date    string
)

// settings layers flags and PRIMER_* environment variables over primer.yml
var settings = viper.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "primer",
	Short: "Primer - registry of educational materials",
	Long: `Primer keeps a registry of educational materials. Every material is
owned by the identity that registered it, and only that owner may change
whether the material is available.

State lives in Redis, namespaced by instance, so any number of primer
processes can share one registry.

Configuration is read from primer.yml and can be overridden with flags or
PRIMER_CONFIG, PRIMER_REDIS_ADDR, PRIMER_INSTANCE and PRIMER_AS.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultFileName, "Path to primer.yml")
	flags.String("redis", "", "Redis address or redis:// URL (overrides primer.yml)")
	flags.String("instance", "", "Registry instance name (overrides primer.yml)")
	flags.String("as", "", "Identity to act as (overrides primer.yml caller)")

	_ = settings.BindPFlag("config", flags.Lookup("config"))
	_ = settings.BindPFlag("redis_addr", flags.Lookup("redis"))
	_ = settings.BindPFlag("instance", flags.Lookup("instance"))
	_ = settings.BindPFlag("as", flags.Lookup("as"))

	settings.SetEnvPrefix("PRIMER")
	settings.AutomaticEnv()
}

// loadConfig reads primer.yml (defaults if absent) and applies flag and
// environment overrides.
func loadConfig() (*config.PrimerConfig, error) {
	path := settings.GetString("config")

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"Config": path},
			[]string{"Regenerate it:\n  primer init --force"},
		)
	}

	if addr := settings.GetString("redis_addr"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if instance := settings.GetString("instance"); instance != "" {
		if err := config.ValidateInstanceName(instance); err != nil {
			return nil, printer.Error("invalid instance name", err.Error(), nil)
		}
		cfg.Instance = instance
	}

	return cfg, nil
}

// redisOptions builds connection options from the config. Addresses starting
// with redis:// or rediss:// are parsed as URLs.
func redisOptions(cfg *config.PrimerConfig) (*redis.Options, error) {
	if strings.HasPrefix(cfg.Redis.Addr, "redis://") || strings.HasPrefix(cfg.Redis.Addr, "rediss://") {
		opts, err := redis.ParseURL(cfg.Redis.Addr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, nil
}

// session bundles what a command needs to talk to one registry instance.
type session struct {
	cfg    *config.PrimerConfig
	client *registry.Client
	clock  chain.Clock
}

// openSession loads config, connects to Redis and verifies connectivity.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client, err := registry.NewClient(opts, cfg.Instance)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", cfg.Redis.Addr),
			map[string]string{"Instance": cfg.Instance, "Error": err.Error()},
			[]string{
				"Start Redis locally:\n  redis-server",
				"Point primer at another server:\n  primer --redis host:6379 ...",
			},
		)
	}

	clock, err := chain.NewRedisClock(client.Redis(), cfg.Instance)
	if err != nil {
		client.Close()
		return nil, err
	}

	return &session{cfg: cfg, client: client, clock: clock}, nil
}

// caller resolves the acting identity: --as, then PRIMER_AS, then primer.yml.
func (s *session) caller() (registry.Principal, error) {
	p, err := chain.Caller(settings.GetString("as"), s.cfg.Caller)
	if err != nil {
		return "", printer.Error(
			"no caller identity",
			"This command changes the registry and must know who is calling.",
			[]string{
				"Pass it explicitly:\n  primer --as <identity> ...",
				"Set PRIMER_AS in your environment",
				"Set caller: in primer.yml",
			},
		)
	}
	return p, nil
}

func (s *session) Close() error {
	return s.client.Close()
}

// parseMaterialID turns a positional argument into a MaterialID with a
// user-facing error.
func parseMaterialID(arg string) (registry.MaterialID, error) {
	id, err := registry.ParseMaterialID(arg)
	if err != nil {
		return 0, printer.Error("invalid material ID", err.Error(), []string{"List materials:\n  primer list"})
	}
	return id, nil
}
