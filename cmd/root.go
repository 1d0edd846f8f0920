package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/config"
	"github.com/JakeFAU/domain-harvester/internal/logging"
)

// runtimeKeyType is the key for storing the loaded runtime in the context.
type runtimeKeyType string

const runtimeKey runtimeKeyType = "runtime"

// runtime carries what every subcommand needs.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
}

type rootFlags struct {
	cfgFile     string
	development bool
}

// loadRuntime is a variable so tests can inject configuration.
var loadRuntime = func(flags rootFlags) (*runtime, error) {
	path := flags.cfgFile
	if path == "" {
		path = config.Find(config.SearchPaths()...)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flags.development {
		cfg.Logging.Development = true
	}
	logger, err := logging.New(logging.Options{
		Development: cfg.Logging.Development,
		Level:       cfg.Logging.Level,
	})
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("loaded config file", zap.String("path", path))
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:   "harvester",
		Short: "Harvests news and social domains into a uBlock Origin block list.",
		Long: `harvester collects registrable domains reachable from curated news and
social seeds, Google News and publisher RSS feeds, and newspaper directories.
Domains are filtered to English-language suffixes, deduplicated, and written
as "||domain^" rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(flags)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey, rt))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if rt, ok := cmd.Context().Value(runtimeKey).(*runtime); ok && rt != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "config file (default: ./config.yaml, $XDG_CONFIG_HOME/harvester/config.yaml, /etc/harvester/config.yaml)")
	cmd.PersistentFlags().BoolVar(&flags.development, "dev", false, "human-readable development logging")

	cmd.AddCommand(newHarvestCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}

func resolveRuntime(ctx context.Context) (*runtime, error) {
	rt, ok := ctx.Value(runtimeKey).(*runtime)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logger, lerr := zap.NewProduction()
		if lerr != nil {
			fmt.Fprintf(os.Stderr, "harvester: %v\n", err)
			os.Exit(1)
		}
		logger.Fatal("command execution failed", zap.Error(err))
	}
}
