// Package main provides the entry point for the reportcard CLI.
//
// reportcard turns academic records (a YAML or JSON roster) into printable
// student report cards and two-student comparison reports in PDF, Markdown,
// JSON or plain text.
//
// Usage:
//
//	reportcard student CS2024001 --data roster.yaml
//	reportcard student --all --data roster.yaml --format pdf,md
//	reportcard compare CS2024001 CS2024002 --data roster.yaml
//
// See --help for all available options.
package main

func main() {
	Execute()
}
