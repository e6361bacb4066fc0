package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/reportcard/internal/config"
	"github.com/nao1215/reportcard/internal/database"
	"github.com/nao1215/reportcard/internal/report"
	"github.com/spf13/cobra"
)

// addOutputFlags registers the flags shared by the student and compare commands.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("data", "d", "",
		"Roster file with student records (.yaml, .yml or .json)")
	cmd.Flags().StringP("format", "F", config.DefaultFormat,
		"Comma-separated output formats: pdf, md, json, text")
	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory reports are written to (created if needed)")
	cmd.Flags().Bool("stdout", false,
		"Write documents to standard output instead of files")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reportcard in current or home directory)")
	cmd.Flags().String("page-size", config.DefaultPageSize,
		"PDF page size: a4 or letter")
	cmd.Flags().String("institution", "",
		"Institution name printed under the report title")
	cmd.Flags().Bool("color", false,
		"Use ANSI colour in text output")
	cmd.Flags().Bool("no-history", false,
		"Do not record generated reports in the history ledger")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the configuration file, the
// environment and the command flags, in that order.
func buildConfig(cmd *cobra.Command, envFile string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	lookup, err := config.EnvLookup(envFile)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(lookup)

	if cfg.DataFile, err = flags.GetString("data"); err != nil {
		return nil, err
	}
	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return nil, err
		}
		cfg.Formats = config.SplitList(v)
	}
	if flags.Changed("output-dir") {
		if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
			return nil, err
		}
	}
	if cfg.Stdout, err = flags.GetBool("stdout"); err != nil {
		return nil, err
	}
	if flags.Changed("page-size") {
		if cfg.PageSize, err = flags.GetString("page-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("institution") {
		if cfg.Institution, err = flags.GetString("institution"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("color") {
		if cfg.Color, err = flags.GetBool("color"); err != nil {
			return nil, err
		}
	}
	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
	}
	if flags.Lookup("batch") != nil && flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// applyConfigFile loads the configuration file named by cfg.ConfigFilePath,
// or the first one FindConfigFile discovers, onto cfg. An explicit path must
// exist; a missing default file is silently ignored.
func applyConfigFile(cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	file.Apply(cfg)
	return nil
}

// reportSettings converts the configuration into painter settings.
func reportSettings(cfg *config.Config) (report.Settings, error) {
	layout, err := report.LayoutFor(cfg.PageSize)
	if err != nil {
		return report.Settings{}, err
	}
	return report.Settings{
		Layout: layout,
		Theme: report.Theme{
			Banner:  reportColor(cfg.Theme.Banner),
			Section: reportColor(cfg.Theme.Section),
			Stripe:  reportColor(cfg.Theme.Stripe),
			Border:  reportColor(cfg.Theme.Border),
		},
		Institution: cfg.Institution,
		Author:      cfg.Author,
		Clock:       time.Now,
		Color:       cfg.Color,
	}, nil
}

func reportColor(c config.RGB) report.Color {
	return report.Color{R: c[0], G: c[1], B: c[2]}
}

// newBuilders returns one report builder per configured format. With
// cfg.Stdout the documents are written to stdout instead of files. extra
// options are applied to every builder.
func newBuilders(cfg *config.Config, stdout io.Writer, logger *slog.Logger, extra ...report.BuilderOption) ([]*report.Builder, error) {
	formats, err := report.ParseFormats(cfg.Formats)
	if err != nil {
		return nil, err
	}
	settings, err := reportSettings(cfg)
	if err != nil {
		return nil, err
	}

	builders := make([]*report.Builder, 0, len(formats))
	for _, f := range formats {
		factory, err := report.NewFactory(f, settings)
		if err != nil {
			return nil, err
		}
		opts := []report.BuilderOption{
			report.WithOutputDir(cfg.OutputDir),
			report.WithBuilderLogger(logger),
		}
		if cfg.Stdout {
			opts = append(opts, report.WithStdout(stdout))
		}
		opts = append(opts, extra...)
		builders = append(builders, report.NewBuilder(factory, opts...))
	}
	return builders, nil
}

// openHistory opens the history ledger, or returns nil when recording is
// disabled. Documents written to stdout are never recorded.
func openHistory(cfg *config.Config, logger *slog.Logger) (*database.HistoryDB, error) {
	if !cfg.SaveHistory || cfg.Stdout {
		return nil, nil
	}
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	logger.Debug("history database opened", "path", db.Path())
	return db, nil
}

// recordResults stores the results in the ledger. Failures are logged and
// do not fail the command since the documents were already written.
func recordResults(ctx context.Context, db *database.HistoryDB, results []report.Result, logger *slog.Logger) {
	if db == nil {
		return
	}
	for _, res := range results {
		entry := &database.Entry{
			ReportID: res.ReportID,
			Kind:     string(res.Kind),
			Format:   string(res.Format),
			Path:     res.Path,
			Students: res.Students,
			Names:    res.Names,
		}
		if err := db.Record(ctx, entry); err != nil {
			logger.Warn("failed to record report in history",
				"report_id", res.ReportID,
				"error", err,
			)
		}
	}
}

// printResults lists the written files.
func printResults(w io.Writer, results []report.Result) {
	for _, res := range results {
		if res.Path == "" {
			continue
		}
		fmt.Fprintf(w, "Generated %s report: %s\n", res.Format, res.Path)
	}
}

// errNoStudents is returned when neither student keys nor --all are given.
var errNoStudents = errors.New("no students given (pass register numbers or names, or use --all)")

// joinKeys formats student keys for error messages.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}
