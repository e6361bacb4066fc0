package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/reportcard/internal/config"
	"github.com/nao1215/reportcard/internal/log"
	"github.com/nao1215/reportcard/internal/report"
	"github.com/nao1215/reportcard/internal/roster"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <student1> <student2>",
		Short: "Generate a side-by-side comparison of two students",
		Long: `Compare generates a report that places two students side by side.

The report contains:
- Both students' details
- A metrics table (overall average, CA averages, semester average, rank)
  with the difference between the first and second student
- A subject-wise comparison of averages
- Comparative remarks

Students are looked up in the roster by register number or name.

Examples:
  # Compare two students by register number
  reportcard compare CS2024001 CS2024002 --data roster.yaml

  # Write the comparison as Markdown and JSON
  reportcard compare Asha "Ravi Kumar" --data roster.yaml --format md,json`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	addOutputFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, config.DefaultEnvFile)
	if err != nil {
		return err
	}
	cfg.Students = args

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	return runComparison(cmd.Context(), cmd, cfg, logger)
}

// runComparison writes one comparison document per configured format.
func runComparison(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	r, err := roster.Load(cfg.DataFile)
	if err != nil {
		return err
	}
	entries, err := r.FindAll(cfg.Students)
	if err != nil {
		return err
	}
	first, second := entries[0], entries[1]

	builders, err := newBuilders(cfg, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}

	db, err := openHistory(cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	results := make([]report.Result, 0, len(builders))
	for _, b := range builders {
		res, err := b.Comparison(first.StudentRecord, second.StudentRecord, first.Subjects, second.Subjects)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	recordResults(ctx, db, results, logger)
	if !cfg.Stdout {
		printResults(cmd.OutOrStdout(), results)
	}
	return nil
}
