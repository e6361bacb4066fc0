package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for reportcard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportcard",
		Short: "Generate academic report cards from student records",
		Long: `reportcard generates printable academic report cards from a roster of
student records.

It renders single-student reports (personal details, performance summary,
CA breakdown, subject-wise table and remarks) and side-by-side comparisons
of two students. Reports can be written as PDF, Markdown, JSON or plain text,
and every generated document is recorded in a local history ledger.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewStudentCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
