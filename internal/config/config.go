package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "reportcard"

	// DefaultOutputDir is where reports are written when no directory is given.
	DefaultOutputDir = "."

	// DefaultFormat is the output format used when none is configured.
	DefaultFormat = "pdf"

	// DefaultPageSize is the PDF page size.
	DefaultPageSize = "a4"

	// DefaultBatchSize is the number of reports generated concurrently for
	// --all. Report generation is CPU-bound, so a small value suffices.
	DefaultBatchSize = 4
)

// RGB is a colour as red, green and blue components in 0..255.
type RGB [3]int

// Valid reports whether every component is within 0..255.
func (c RGB) Valid() bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// Theme holds the PDF colour theme.
type Theme struct {
	Banner  RGB
	Section RGB
	Stripe  RGB
	Border  RGB
}

// DefaultTheme returns the blue banner theme.
func DefaultTheme() Theme {
	return Theme{
		Banner:  RGB{41, 128, 185},
		Section: RGB{52, 152, 219},
		Stripe:  RGB{240, 240, 240},
		Border:  RGB{0, 0, 0},
	}
}

// Config holds all options for one reportcard invocation.
// It is populated from defaults, the configuration file, the environment and
// CLI flags, in increasing order of precedence.
type Config struct {
	// DataFile is the roster file (YAML or JSON) holding student records.
	DataFile string

	// Students are the register numbers or names to generate reports for.
	Students []string

	// All generates a report for every student in the roster.
	All bool

	// Formats lists the output formats (pdf, md, json, text).
	Formats []string

	// OutputDir is the directory reports are written to.
	OutputDir string

	// Stdout writes documents to standard output instead of files.
	Stdout bool

	// BatchSize is the number of reports generated concurrently.
	BatchSize int

	// PageSize is the PDF page size: "a4" or "letter".
	PageSize string

	// Institution is printed under the report title and stored as the PDF author.
	Institution string

	// Author overrides the PDF author field.
	Author string

	// Theme holds the PDF colours.
	Theme Theme

	// Color enables ANSI colour in text output.
	Color bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the explicit configuration file. When empty the file
	// is searched for, see FindConfigFile.
	ConfigFilePath string

	// DBDir is the directory of the history ledger.
	// Defaults to XDG data directory (~/.local/share/reportcard on Linux).
	DBDir string

	// SaveHistory records generated documents in the history ledger.
	SaveHistory bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Formats:     []string{DefaultFormat},
		OutputDir:   DefaultOutputDir,
		BatchSize:   DefaultBatchSize,
		PageSize:    DefaultPageSize,
		Theme:       DefaultTheme(),
		DBDir:       XDGDataDir(),
		SaveHistory: true,
	}
}

// XDGDataDir returns the XDG data directory for reportcard.
// On Linux: ~/.local/share/reportcard
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for reportcard.
// On Linux: ~/.config/reportcard
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// validFormats are the accepted format names, aliases included.
var validFormats = []string{"pdf", "md", "markdown", "json", "text", "txt"}

// validPageSizes are the accepted page sizes.
var validPageSizes = []string{"a4", "letter"}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return ErrNoDataFile
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.OutputDir == "" && !c.Stdout {
		return ErrNoOutputDir
	}

	if len(c.Formats) == 0 {
		return ErrInvalidFormat
	}
	for _, f := range c.Formats {
		if !slices.Contains(validFormats, strings.ToLower(strings.TrimSpace(f))) {
			return ErrInvalidFormat
		}
	}

	if !slices.Contains(validPageSizes, strings.ToLower(c.PageSize)) {
		return ErrInvalidPageSize
	}

	for _, rgb := range []RGB{c.Theme.Banner, c.Theme.Section, c.Theme.Stripe, c.Theme.Border} {
		if !rgb.Valid() {
			return ErrInvalidColor
		}
	}

	return nil
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
