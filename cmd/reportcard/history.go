package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/reportcard/internal/config"
	"github.com/nao1215/reportcard/internal/database"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of ledger entries shown by default.
const defaultHistoryLimit = 20

// noHistoryMessage is printed when the ledger holds no matching entries.
const noHistoryMessage = "No reports recorded yet."

// historyItem is the JSON form of a ledger entry.
type historyItem struct {
	ID          int64     `json:"id"`
	ReportID    string    `json:"report_id"`
	Kind        string    `json:"kind"`
	Format      string    `json:"format"`
	Path        string    `json:"path,omitempty"`
	Students    []string  `json:"students"`
	Names       []string  `json:"names,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated reports",
		Long: `History lists the reports recorded in the history ledger, newest first.

The ledger stores one entry per generated document: its report ID, kind
(student or comparison), format, file path and the students it covers.
It lives in the XDG data directory (~/.local/share/reportcard on Linux)
unless db_dir is set in the configuration file.

Examples:
  # Show the 20 most recent reports
  reportcard history

  # Show every report generated for one student
  reportcard history --student CS2024001 --limit 0

  # Student names work too
  reportcard history --student "Ravi Kumar"

  # Look up a report by the ID printed in its footer
  reportcard history --id 1b4e28ba-2fa1-11d2-883f-0016d3cca427

  # Output JSON for scripting
  reportcard history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("student", "s", "",
		"Only list reports covering this register number or student name")
	cmd.Flags().String("id", "",
		"Show the report with this report ID")
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of entries to list (0 lists all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output entries in JSON format")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reportcard in current or home directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()

	var err error
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return err
	}
	if err := applyConfigFile(cfg); err != nil {
		return err
	}

	student, err := cmd.Flags().GetString("student")
	if err != nil {
		return err
	}
	reportID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(cfg.DBDir, opts)
	if errors.Is(err, database.ErrNotFound) {
		return printHistory(cmd.OutOrStdout(), nil, jsonOutput)
	}
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := queryHistory(cmd.Context(), db, reportID, student, limit)
	if err != nil {
		return err
	}
	return printHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

// queryHistory selects entries by report ID, by student, or the most recent.
func queryHistory(ctx context.Context, db *database.HistoryDB, reportID, student string, limit int) ([]database.Entry, error) {
	switch {
	case reportID != "":
		entry, err := db.Get(ctx, reportID)
		if err != nil {
			return nil, err
		}
		return []database.Entry{*entry}, nil
	case student != "":
		return db.ListForStudent(ctx, student, limit)
	default:
		return db.List(ctx, limit)
	}
}

// printHistory writes the entries as a table or as JSON.
func printHistory(w io.Writer, entries []database.Entry, jsonOutput bool) error {
	if jsonOutput {
		items := make([]historyItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, historyItem{
				ID:          e.ID,
				ReportID:    e.ReportID,
				Kind:        e.Kind,
				Format:      e.Format,
				Path:        e.Path,
				Students:    e.Students,
				Names:       e.Names,
				GeneratedAt: e.Timestamp,
			})
		}
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, noHistoryMessage)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Generated", "Kind", "Format", "Students", "Report ID", "Path")
	for _, e := range entries {
		path := e.Path
		if path == "" {
			path = "-"
		}
		if err := table.Append([]string{
			fmt.Sprintf("%d", e.ID),
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.Kind,
			e.Format,
			studentsLabel(e),
			e.ReportID,
			path,
		}); err != nil {
			return fmt.Errorf("failed to render history: %w", err)
		}
	}
	return table.Render()
}

// studentsLabel lists the students of an entry as "Name (register no)".
func studentsLabel(e database.Entry) string {
	labels := make([]string, 0, len(e.Students))
	for i, key := range e.Students {
		if i < len(e.Names) && e.Names[i] != "" && e.Names[i] != key {
			labels = append(labels, e.Names[i]+" ("+key+")")
			continue
		}
		labels = append(labels, key)
	}
	return strings.Join(labels, ", ")
}
