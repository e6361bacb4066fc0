package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/reportcard/internal/database"
)

// seedHistory records three entries in the workspace ledger.
func seedHistory(t *testing.T, ws workspace) {
	t.Helper()

	db, err := database.Open(ws.dbDir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	defer db.Close()

	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	entries := []*database.Entry{
		{ReportID: "report-1", Kind: "student", Format: "pdf", Path: "reports/Asha_Report.pdf", Students: []string{"CS2024001"}, Names: []string{"Asha"}, Timestamp: base},
		{ReportID: "report-2", Kind: "student", Format: "pdf", Path: "reports/Ravi Kumar_Report.pdf", Students: []string{"CS2024002"}, Names: []string{"Ravi Kumar"}, Timestamp: base.Add(time.Minute)},
		{ReportID: "report-3", Kind: "comparison", Format: "md", Path: "reports/Student_Comparison_Report.md", Students: []string{"CS2024001", "CS2024002"}, Names: []string{"Asha", "Ravi Kumar"}, Timestamp: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := db.Record(context.Background(), e); err != nil {
			t.Fatalf("failed to record entry: %v", err)
		}
	}
}

func decodeHistory(t *testing.T, out string) []string {
	t.Helper()

	var items []historyItem
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ReportID)
	}
	return ids
}

// TestRunHistoryCmd tests listing the history ledger.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("empty ledger", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		out, err := executeCmd(t, "history", "--config", ws.config)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, noHistoryMessage) {
			t.Errorf("expected %q, got %q", noHistoryMessage, out)
		}
	})

	t.Run("empty ledger as JSON", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		out, err := executeCmd(t, "history", "--config", ws.config, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ids := decodeHistory(t, out); len(ids) != 0 {
			t.Errorf("expected no entries, got %v", ids)
		}
	})

	t.Run("table lists newest first", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		seedHistory(t, ws)

		out, err := executeCmd(t, "history", "--config", ws.config)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first := strings.Index(out, "report-3")
		last := strings.Index(out, "report-1")
		if first < 0 || last < 0 || first > last {
			t.Errorf("expected report-3 before report-1, got:\n%s", out)
		}
	})

	t.Run("JSON with limit", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		seedHistory(t, ws)

		out, err := executeCmd(t, "history", "--config", ws.config, "--json", "--limit", "2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"report-3", "report-2"}, decodeHistory(t, out)); diff != "" {
			t.Errorf("entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("filters by student", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		seedHistory(t, ws)

		out, err := executeCmd(t, "history", "--config", ws.config, "--json", "--student", "cs2024001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"report-3", "report-1"}, decodeHistory(t, out)); diff != "" {
			t.Errorf("entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("filters by student name", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		seedHistory(t, ws)

		out, err := executeCmd(t, "history", "--config", ws.config, "--json", "--student", "ravi kumar")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"report-3", "report-2"}, decodeHistory(t, out)); diff != "" {
			t.Errorf("entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("table shows names next to register numbers", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		seedHistory(t, ws)

		out, err := executeCmd(t, "history", "--config", ws.config, "--id", "report-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "Asha (CS2024001)") {
			t.Errorf("expected name and register number, got:\n%s", out)
		}
	})

	t.Run("finds generated reports by name", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		if _, err := executeCmd(t, "student", "CS2024001",
			"--data", ws.roster, "--config", ws.config, "-o", ws.outputDir,
			"--format", "md"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out, err := executeCmd(t, "history", "--config", ws.config, "--json", "--student", "Asha")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var items []historyItem
		if err := json.Unmarshal([]byte(out), &items); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, out)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 entry, got %d:\n%s", len(items), out)
		}
		if diff := cmp.Diff([]string{"Asha"}, items[0].Names); diff != "" {
			t.Errorf("names mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"CS2024001"}, items[0].Students); diff != "" {
			t.Errorf("students mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("looks up a report ID", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		seedHistory(t, ws)

		out, err := executeCmd(t, "history", "--config", ws.config, "--json", "--id", "report-2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"report-2"}, decodeHistory(t, out)); diff != "" {
			t.Errorf("entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown report ID", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)
		seedHistory(t, ws)

		_, err := executeCmd(t, "history", "--config", ws.config, "--id", "missing")
		if !errors.Is(err, database.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()
		ws := newWorkspace(t)

		if _, err := executeCmd(t, "history", "CS2024001", "--config", ws.config); err == nil {
			t.Error("expected error for positional argument")
		}
	})
}
