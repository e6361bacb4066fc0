// Package config provides configuration structures and utilities for reportcard.
// It defines the report generation options, the optional .reportcard YAML
// file, and the REPORTCARD_* environment overrides.
package config
