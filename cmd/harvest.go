package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/domain-harvester/internal/app"
	"github.com/JakeFAU/domain-harvester/internal/domain"
	"github.com/JakeFAU/domain-harvester/internal/harvest"
	"github.com/JakeFAU/domain-harvester/internal/report"
)

const shutdownTimeout = 10 * time.Second

type harvestFlags struct {
	maxDepth     int
	concurrency  int
	maxFetches   int
	out          string
	reportPath   string
	writePartial bool
}

// newApp is the application factory; tests replace it to inject fakes.
var newApp = func(ctx context.Context, rt *runtime) (*app.App, error) {
	return app.New(ctx, rt.cfg, rt.logger)
}

// newHarvestCmd creates the 'harvest' subcommand.
func newHarvestCmd() *cobra.Command {
	var flags harvestFlags
	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Runs a full harvest and writes the block list",
		Long: `Registers the curated seeds, harvests the configured RSS feeds, crawls
the newspaper directories, and writes the sorted block list to output.file
(locally or in output.gcs_bucket).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHarvest(cmd, flags)
		},
	}
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", -1, "override crawler.max_depth")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "override crawler.concurrency")
	cmd.Flags().IntVar(&flags.maxFetches, "max-fetches", -1, "override crawler.max_fetches (0 = unlimited)")
	cmd.Flags().StringVar(&flags.out, "out", "", "override output.file")
	cmd.Flags().StringVar(&flags.reportPath, "report", "", "write a Markdown run summary to this path")
	cmd.Flags().BoolVar(&flags.writePartial, "write-partial", false, "write the block list even when the run is interrupted")
	return cmd
}

func runHarvest(cmd *cobra.Command, flags harvestFlags) error {
	rt, err := resolveRuntime(cmd.Context())
	if err != nil {
		return err
	}
	applyHarvestFlags(rt, flags)
	if err := rt.cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, rt)
	if err != nil {
		return fmt.Errorf("failed to initialize application services: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if cerr := a.Close(closeCtx); cerr != nil {
			rt.logger.Warn("failed to close services", zap.Error(cerr))
		}
	}()

	res, runErr := a.Runner.Run(ctx)
	if runErr != nil && !flags.writePartial {
		return fmt.Errorf("run harvest: %w", runErr)
	}

	publishCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	uri, err := a.Publisher.Publish(publishCtx, res.Domains)
	if err != nil {
		return err
	}

	printSummary(cmd, uri, res.Domains)
	if flags.reportPath != "" {
		if err := writeReport(flags.reportPath, res, uri, runErr); err != nil {
			return err
		}
		rt.logger.Info("run report written", zap.String("path", flags.reportPath))
	}
	if runErr != nil {
		return fmt.Errorf("run harvest (partial list written): %w", runErr)
	}
	return nil
}

func applyHarvestFlags(rt *runtime, flags harvestFlags) {
	if flags.maxDepth >= 0 {
		rt.cfg.Crawler.MaxDepth = flags.maxDepth
	}
	if flags.concurrency > 0 {
		rt.cfg.Crawler.Concurrency = flags.concurrency
	}
	if flags.maxFetches >= 0 {
		rt.cfg.Crawler.MaxFetches = flags.maxFetches
	}
	if flags.out != "" {
		rt.cfg.Output.File = flags.out
	}
}

func printSummary(cmd *cobra.Command, uri string, domains []domain.Domain) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total domains collected: %d\n", len(domains))
	fmt.Fprintf(out, "Output written to %s\n", uri)
}

func writeReport(path string, res harvest.Result, uri string, runErr error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()
	return report.WriteMarkdown(f, res, uri, runErr)
}
