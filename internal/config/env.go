package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override the configuration file.
const (
	EnvOutputDir   = "REPORTCARD_OUTPUT_DIR"
	EnvInstitution = "REPORTCARD_INSTITUTION"
	EnvFormat      = "REPORTCARD_FORMAT"
)

// DefaultEnvFile is the dotenv file read from the current directory.
const DefaultEnvFile = ".env"

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a LookupFunc over the process environment backed by the
// given dotenv file. Process variables take precedence over the file. A
// missing dotenv file is not an error.
func EnvLookup(dotenvPath string) (LookupFunc, error) {
	values := map[string]string{}
	if dotenvPath != "" {
		read, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			values = read
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

// ApplyEnv copies the REPORTCARD_* variables found by lookup onto c.
// REPORTCARD_FORMAT takes a comma-separated list.
func (c *Config) ApplyEnv(lookup LookupFunc) {
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
	if v, ok := lookup(EnvInstitution); ok && v != "" {
		c.Institution = v
	}
	if v, ok := lookup(EnvFormat); ok {
		if formats := SplitList(v); len(formats) > 0 {
			c.Formats = formats
		}
	}
}
