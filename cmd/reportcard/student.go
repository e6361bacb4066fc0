package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nao1215/reportcard/internal/batch"
	"github.com/nao1215/reportcard/internal/config"
	"github.com/nao1215/reportcard/internal/log"
	"github.com/nao1215/reportcard/internal/model"
	"github.com/nao1215/reportcard/internal/report"
	"github.com/nao1215/reportcard/internal/roster"
	"github.com/spf13/cobra"
)

// NewStudentCmd creates the student command.
func NewStudentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student [student...]",
		Short: "Generate report cards for one or more students",
		Long: `Student generates an academic report card for each given student.

Students are looked up in the roster by register number first and then by
name (case-insensitive). Each report contains:
- Student information (name, register number, batch, semester)
- Performance summary (overall average, rank, subjects passed and failed)
- CA-wise and semester averages
- Subject-wise marks with grade and pass status
- Performance remarks

Examples:
  # Generate a PDF report card for one student
  reportcard student CS2024001 --data roster.yaml

  # Generate PDF and Markdown reports for every student, 8 at a time
  reportcard student --all --data roster.yaml --format pdf,md --batch 8

  # Preview a report in the terminal
  reportcard student "Asha" --data roster.yaml --format text --stdout

Roster file (roster.yaml) example:
  students:
    - name: Asha
      register_no: CS2024001
      batch_year: "2024"
      semester: 3
      overall_average: 82.4
      rank: 1
      subjects:
        - subject_name: Maths
          ca1: 45
          ca2: 42
          ca3: 45
          semester_marks: 88`,
		Args: cobra.ArbitraryArgs,
		RunE: runStudentCmd,
	}

	addOutputFlags(cmd)
	cmd.Flags().BoolP("all", "a", false,
		"Generate reports for every student in the roster")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of reports generated concurrently")

	return cmd
}

// runStudentCmd executes the student command.
func runStudentCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, config.DefaultEnvFile)
	if err != nil {
		return err
	}
	cfg.Students = args
	if cfg.All, err = cmd.Flags().GetBool("all"); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if !cfg.All && len(cfg.Students) == 0 {
		return errNoStudents
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runStudents(ctx, cmd, cfg, logger)
}

// runStudents loads the roster, generates the reports and records them.
func runStudents(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	r, err := roster.Load(cfg.DataFile)
	if err != nil {
		return err
	}

	entries := r.Students
	if !cfg.All {
		if entries, err = r.FindAll(cfg.Students); err != nil {
			return err
		}
		entries = uniqueEntries(entries)
	}

	jobs := make([]batch.Job, 0, len(entries))
	students := make([]model.StudentRecord, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, batch.Job{Student: e.StudentRecord, Subjects: e.Subjects})
		students = append(students, e.StudentRecord)
	}

	var extra []report.BuilderOption
	if !cfg.Stdout {
		namer, err := report.UniqueFileNamer(students)
		if err != nil {
			return err
		}
		extra = append(extra, report.WithFileNamer(namer))
	}

	reportBuilders, err := newBuilders(cfg, cmd.OutOrStdout(), logger, extra...)
	if err != nil {
		return err
	}
	builders := make([]batch.Builder, 0, len(reportBuilders))
	for _, b := range reportBuilders {
		builders = append(builders, b)
	}

	db, err := openHistory(cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	// Documents sharing stdout must not interleave.
	concurrency := cfg.BatchSize
	if cfg.Stdout {
		concurrency = 1
	}

	gen := batch.NewGenerator(builders,
		batch.WithConcurrency(concurrency),
		batch.WithLogger(logger),
	)
	outcomes, err := gen.Generate(ctx, jobs)

	var results []report.Result
	for _, o := range outcomes {
		results = append(results, o.Results...)
	}
	recordResults(ctx, db, results, logger)
	if !cfg.Stdout {
		printResults(cmd.OutOrStdout(), results)
	}

	if err != nil {
		return fmt.Errorf("report generation cancelled: %w", err)
	}

	failed := batch.Failed(outcomes)
	if len(failed) == 0 {
		return nil
	}
	keys := make([]string, 0, len(failed))
	for _, o := range failed {
		logger.Error("report generation failed",
			"register_no", o.Job.Student.RegisterNo,
			"error", o.Err,
		)
		keys = append(keys, roster.Entry{StudentRecord: o.Job.Student}.Key())
	}
	return fmt.Errorf("failed to generate %d of %d reports: %s: %w",
		len(failed), len(outcomes), joinKeys(keys), failed[0].Err)
}

// uniqueEntries drops students that were asked for more than once, for
// example by both name and register number.
func uniqueEntries(entries []roster.Entry) []roster.Entry {
	type id struct{ name, registerNo string }

	seen := make(map[id]bool, len(entries))
	out := make([]roster.Entry, 0, len(entries))
	for _, e := range entries {
		k := id{strings.TrimSpace(e.Name), strings.TrimSpace(e.RegisterNo)}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}
