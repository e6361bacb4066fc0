package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".reportcard"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// ThemeFile is the theme section of the configuration file. Omitted colours
// keep their defaults.
type ThemeFile struct {
	Banner  *RGB `yaml:"banner,omitempty"`
	Section *RGB `yaml:"section,omitempty"`
	Stripe  *RGB `yaml:"stripe,omitempty"`
	Border  *RGB `yaml:"border,omitempty"`
}

// File represents the structure of the .reportcard configuration file.
type File struct {
	Institution string    `yaml:"institution,omitempty"`
	Author      string    `yaml:"author,omitempty"`
	OutputDir   string    `yaml:"output_dir,omitempty"`
	Formats     []string  `yaml:"formats,omitempty"`
	PageSize    string    `yaml:"page_size,omitempty"`
	BatchSize   int       `yaml:"batch_size,omitempty"`
	Color       *bool     `yaml:"color,omitempty"`
	History     *bool     `yaml:"history,omitempty"`
	DBDir       string    `yaml:"db_dir,omitempty"`
	Theme       ThemeFile `yaml:"theme,omitempty"`
}

// LoadConfigFile loads the configuration file at path.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies every value set in the file onto c.
func (cf *File) Apply(c *Config) {
	if cf.Institution != "" {
		c.Institution = cf.Institution
	}
	if cf.Author != "" {
		c.Author = cf.Author
	}
	if cf.OutputDir != "" {
		c.OutputDir = cf.OutputDir
	}
	if len(cf.Formats) > 0 {
		c.Formats = cf.Formats
	}
	if cf.PageSize != "" {
		c.PageSize = cf.PageSize
	}
	if cf.BatchSize != 0 {
		c.BatchSize = cf.BatchSize
	}
	if cf.Color != nil {
		c.Color = *cf.Color
	}
	if cf.History != nil {
		c.SaveHistory = *cf.History
	}
	if cf.DBDir != "" {
		c.DBDir = cf.DBDir
	}

	if cf.Theme.Banner != nil {
		c.Theme.Banner = *cf.Theme.Banner
	}
	if cf.Theme.Section != nil {
		c.Theme.Section = *cf.Theme.Section
	}
	if cf.Theme.Stripe != nil {
		c.Theme.Stripe = *cf.Theme.Stripe
	}
	if cf.Theme.Border != nil {
		c.Theme.Border = *cf.Theme.Border
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .reportcard in the current directory
// 3. Look for .reportcard in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
