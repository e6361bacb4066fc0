package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const testRoster = `students:
  - name: Asha
    register_no: CS2024001
    batch_year: "2024"
    semester: 3
    overall_average: 85.5
    rank: 1
    subjects_passed: 2
    subjects_failed: 0
    total_subjects: 2
    ca_averages:
      CA1: 80
      CA2: 84
      CA3: 88
    semester_average: 86
    subjects:
      - subject_name: Maths
        ca1: 85
        ca2: 80
        ca3: 90
      - subject_name: Physics
        ca1: 70
        ca2: 65
        ca3: 60
        semester_marks: 72
        passed: true
  - name: Ravi Kumar
    register_no: CS2024002
    batch_year: "2024"
    overall_average: 72
    rank: 2
    subjects_passed: 1
    subjects_failed: 0
    total_subjects: 1
    subjects:
      - subject_name: Maths
        ca1: 70
        ca2: 72
        ca3: 74
`

// workspace is an isolated set of files for running commands.
type workspace struct {
	roster    string
	config    string
	outputDir string
	dbDir     string
}

// newWorkspace writes a roster and a configuration file that keeps the
// output and the history ledger inside a temporary directory.
func newWorkspace(t *testing.T) workspace {
	t.Helper()

	dir := t.TempDir()
	ws := workspace{
		roster:    filepath.Join(dir, "roster.yaml"),
		config:    filepath.Join(dir, ".reportcard"),
		outputDir: filepath.Join(dir, "reports"),
		dbDir:     filepath.Join(dir, "data"),
	}

	cfg := "institution: Test College\n" +
		"output_dir: " + ws.outputDir + "\n" +
		"db_dir: " + ws.dbDir + "\n"

	writeTestFile(t, ws.roster, testRoster)
	writeTestFile(t, ws.config, cfg)
	return ws
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

// executeCmd runs the root command with args and returns its stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}
