package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/reportcard/internal/config"
	"github.com/nao1215/reportcard/internal/database"
	"github.com/nao1215/reportcard/internal/report"
	"github.com/nao1215/reportcard/internal/roster"
)

// TestNewStudentCmd tests the student command creation.
func TestNewStudentCmd(t *testing.T) {
	t.Parallel()

	cmd := NewStudentCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Name() != "student" {
			t.Errorf("expected name 'student', got %q", cmd.Name())
		}
	})

	t.Run("has output flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"data", "format", "output-dir", "stdout", "config", "page-size", "institution", "color", "no-history", "all", "batch"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag", name)
			}
		}
	})

	t.Run("batch defaults to config default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("batch")
		if flag == nil {
			t.Fatal("expected batch flag")
		}
		if flag.DefValue != "4" {
			t.Errorf("expected default '4', got %q", flag.DefValue)
		}
	})
}

func listHistory(t *testing.T, dbDir string) []database.Entry {
	t.Helper()

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	defer db.Close()

	entries, err := db.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	return entries
}

// TestRunStudentCmd tests report generation through the CLI.
func TestRunStudentCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes a PDF report and records it", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		out, err := executeCmd(t, "student", "CS2024001",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		path := filepath.Join(ws.outputDir, "Asha_Report.pdf")
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected report file: %v", err)
		}
		if !strings.HasPrefix(string(data), "%PDF-") {
			t.Error("expected a PDF document")
		}
		if !strings.Contains(out, path) {
			t.Errorf("expected output to list %s, got %q", path, out)
		}

		entries := listHistory(t, ws.dbDir)
		if len(entries) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(entries))
		}
		if entries[0].Kind != "student" || entries[0].Format != "pdf" || entries[0].Path != path {
			t.Errorf("unexpected history entry %+v", entries[0])
		}
		if diff := cmp.Diff([]string{"CS2024001"}, entries[0].Students); diff != "" {
			t.Errorf("students mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("writes one document per format", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		_, err := executeCmd(t, "student", "asha",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir,
			"--format", "md,json,text")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, name := range []string{"Asha_Report.md", "Asha_Report.json", "Asha_Report.txt"} {
			if _, err := os.Stat(filepath.Join(ws.outputDir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}
		if got := len(listHistory(t, ws.dbDir)); got != 3 {
			t.Errorf("expected 3 history entries, got %d", got)
		}
	})

	t.Run("generates every student with --all", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		_, err := executeCmd(t, "student", "--all", "--batch", "2",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir,
			"--format", "md", "--no-history")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, name := range []string{"Asha_Report.md", "Ravi Kumar_Report.md"} {
			if _, err := os.Stat(filepath.Join(ws.outputDir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}
		if _, err := os.Stat(filepath.Join(ws.dbDir, database.FileName)); !os.IsNotExist(err) {
			t.Error("expected no history database with --no-history")
		}
	})

	t.Run("writes text to stdout", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		out, err := executeCmd(t, "student", "CS2024002",
			"--data", ws.roster, "--config", ws.config,
			"--format", "text", "--stdout")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{"RAVI KUMAR - ACADEMIC REPORT", "Test College", "Maths"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
		if _, err := os.Stat(ws.outputDir); !os.IsNotExist(err) {
			t.Error("expected no files with --stdout")
		}
		if _, err := os.Stat(filepath.Join(ws.dbDir, database.FileName)); !os.IsNotExist(err) {
			t.Error("expected stdout documents not to be recorded")
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		_, err := executeCmd(t, "student", "CS9999999",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir)
		if !errors.Is(err, roster.ErrStudentNotFound) {
			t.Errorf("expected ErrStudentNotFound, got %v", err)
		}
	})

	t.Run("no students", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		_, err := executeCmd(t, "student", "--data", ws.roster, "--config", ws.config)
		if !errors.Is(err, errNoStudents) {
			t.Errorf("expected errNoStudents, got %v", err)
		}
	})

	t.Run("configuration errors", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		tests := []struct {
			name string
			args []string
			want error
		}{
			{
				name: "missing data file",
				args: []string{"student", "CS2024001", "--config", ws.config},
				want: config.ErrNoDataFile,
			},
			{
				name: "unknown format",
				args: []string{"student", "CS2024001", "--data", ws.roster, "--config", ws.config, "--format", "docx"},
				want: config.ErrInvalidFormat,
			},
			{
				name: "unknown page size",
				args: []string{"student", "CS2024001", "--data", ws.roster, "--config", ws.config, "--page-size", "a5"},
				want: config.ErrInvalidPageSize,
			},
			{
				name: "invalid batch size",
				args: []string{"student", "--all", "--data", ws.roster, "--config", ws.config, "--batch", "0"},
				want: config.ErrInvalidBatchSize,
			},
			{
				name: "missing config file",
				args: []string{"student", "CS2024001", "--data", ws.roster, "--config", filepath.Join(ws.outputDir, "missing.yaml")},
				want: config.ErrConfigNotFound,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				_, err := executeCmd(t, tt.args...)
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("unsupported roster file", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		data := filepath.Join(filepath.Dir(ws.roster), "roster.csv")
		writeTestFile(t, data, "name,register_no\n")

		_, err := executeCmd(t, "student", "CS2024001", "--data", data, "--config", ws.config)
		if !errors.Is(err, roster.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

const sharedNameRoster = `students:
  - name: Asha
    register_no: CS001
    overall_average: 90
    subjects:
      - subject_name: Maths
        ca1: 90
        ca2: 90
        ca3: 90
  - name: asha
    register_no: CS002
    overall_average: 40
    subjects:
      - subject_name: Maths
        ca1: 40
        ca2: 40
        ca3: 40
`

// TestRunStudentCmdSharedNames tests students whose reports would share a file.
func TestRunStudentCmdSharedNames(t *testing.T) {
	t.Parallel()

	t.Run("register number keeps the files apart", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		writeTestFile(t, ws.roster, sharedNameRoster)

		_, err := executeCmd(t, "student", "--all", "--batch", "2",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir,
			"--format", "json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[string]string{
			filepath.Join(ws.outputDir, "Asha_CS001_Report.json"): "CS001",
			filepath.Join(ws.outputDir, "asha_CS002_Report.json"): "CS002",
		}
		for path, regNo := range want {
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("expected report file: %v", err)
			}
			if !strings.Contains(string(data), regNo) {
				t.Errorf("expected %s to hold the report of %s", path, regNo)
			}
		}

		got := make(map[string]string)
		for _, e := range listHistory(t, ws.dbDir) {
			got[e.Path] = strings.Join(e.Students, ",")
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("history mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("student asked for twice is generated once", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		_, err := executeCmd(t, "student", "Asha", "CS2024001",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir,
			"--format", "md")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(filepath.Join(ws.outputDir, "Asha_Report.md")); err != nil {
			t.Errorf("expected Asha_Report.md: %v", err)
		}
		if got := len(listHistory(t, ws.dbDir)); got != 1 {
			t.Errorf("expected 1 history entry, got %d", got)
		}
	})

	t.Run("duplicated roster entry", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		writeTestFile(t, ws.roster, `students:
  - name: Asha
    register_no: CS001
  - name: Asha
    register_no: CS001
`)

		_, err := executeCmd(t, "student", "--all",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir,
			"--format", "json")
		if !errors.Is(err, report.ErrDuplicateOutput) {
			t.Errorf("expected ErrDuplicateOutput, got %v", err)
		}
		if _, err := os.Stat(ws.outputDir); !os.IsNotExist(err) {
			t.Error("expected no report to be written")
		}
	})

	t.Run("same name without register numbers", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		writeTestFile(t, ws.roster, `students:
  - name: Asha
    overall_average: 90
  - name: ASHA
    overall_average: 40
`)

		_, err := executeCmd(t, "student", "--all",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir,
			"--format", "json")
		if !errors.Is(err, report.ErrDuplicateOutput) {
			t.Errorf("expected ErrDuplicateOutput, got %v", err)
		}
	})

	t.Run("stdout is not affected", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		writeTestFile(t, ws.roster, sharedNameRoster)

		out, err := executeCmd(t, "student", "--all",
			"--data", ws.roster, "--config", ws.config,
			"--format", "text", "--stdout")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Count(out, "ASHA - ACADEMIC REPORT"); got != 2 {
			t.Errorf("expected 2 reports on stdout, got %d", got)
		}
	})
}
