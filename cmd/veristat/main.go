package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"veristat/adapters/document"
	"veristat/adapters/export"
	"veristat/adapters/llm"
	"veristat/adapters/postgres"
	"veristat/app"
	"veristat/domain/verdict"
	"veristat/internal"
	"veristat/internal/config"
)

func main() {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "veristat",
		Short: "Check reported statistics in scientific documents for internal consistency",
	}

	rootCmd.AddCommand(
		newGRIMCmd(),
		newStatcheckCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runFlags struct {
	output  string
	format  string
	runs    int
	alpha   float64
	verbose bool
	persist bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format: text, csv, json, xlsx, markdown, html")
	cmd.Flags().IntVarP(&f.runs, "runs", "r", 1, "Number of extraction runs to vote over (max 5)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&f.persist, "persist", false, "Store the run in the configured database")
}

func newGRIMCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "grim [document]",
		Short: "Check reported means against their sample sizes",
		Long: `Extract reported means with sample sizes from a document and check each
mean for divisibility consistency with its sample size.

Example: veristat grim paper.txt --runs 3 --format csv -o results.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGRIM(cmd.Context(), args[0], flags)
		},
	}
	flags.register(cmd)
	return cmd
}

func newStatcheckCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "statcheck [document]",
		Short: "Recalculate reported p-values from their test statistics",
		Long: `Extract reported statistical tests from a document, recompute the valid
p-value range for each, and flag reported p-values that fall outside it.

Example: veristat statcheck paper.html --alpha 0.05 --format markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatcheck(cmd.Context(), args[0], flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64VarP(&flags.alpha, "alpha", "a", 0, "Significance level (defaults to SIGNIFICANCE_LEVEL or 0.05)")
	return cmd
}

func buildPipeline(flags runFlags) (*app.Pipeline, config.Config, error) {
	loaded, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	cfg := *loaded
	if flags.alpha > 0 {
		cfg.SignificanceLevel = flags.alpha
	}

	level := internal.LogLevelInfo
	if flags.verbose {
		level = internal.LogLevelDebug
	}
	log := internal.NewLogger(level)

	client := llm.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Timeout, log)
	extractor := llm.NewExtractor(client, cfg)
	pipeline := app.NewPipeline(document.NewReader(), extractor, cfg, log)
	return pipeline, cfg, nil
}

func runGRIM(ctx context.Context, path string, flags runFlags) error {
	pipeline, cfg, err := buildPipeline(flags)
	if err != nil {
		return err
	}
	res, err := pipeline.RunGRIMConsensus(ctx, path, flags.runs)
	if err != nil {
		return err
	}
	if err := persistRun(ctx, cfg, flags, "grim", path, 0, res.Skipped, res.Rows); err != nil {
		return err
	}
	return writeReport(export.NewGRIMReport(path, res), flags)
}

func runStatcheck(ctx context.Context, path string, flags runFlags) error {
	pipeline, cfg, err := buildPipeline(flags)
	if err != nil {
		return err
	}
	res, err := pipeline.RunStatcheckConsensus(ctx, path, flags.runs)
	if err != nil {
		return err
	}
	alpha := pipeline.Alpha()
	if err := persistRun(ctx, cfg, flags, "statcheck", path, alpha, res.Skipped, res.Rows); err != nil {
		return err
	}
	return writeReport(export.NewStatcheckReport(path, alpha, res), flags)
}

// persistRun stores the finished run when --persist is set. The table is
// created on first use so a fresh database works without a migration step.
func persistRun(ctx context.Context, cfg config.Config, flags runFlags, tool, source string, alpha float64, skipped int, rows []verdict.Row) error {
	if !flags.persist {
		return nil
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--persist requires DATABASE_URL to be set")
	}
	db, err := postgres.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("preparing reports table: %w", err)
	}
	return postgres.NewReportRepository(db).Save(ctx, postgres.NewReport(tool, source, alpha, skipped, rows))
}

func writeReport(report export.Report, flags runFlags) error {
	format, err := export.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return report.Write(w, format)
}
