package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/reportcard/internal/model"
	"gopkg.in/yaml.v3"
)

// Entry is one student with their subject-wise marks.
type Entry struct {
	model.StudentRecord `yaml:",inline"`

	Subjects []model.SubjectRecord `json:"subjects,omitempty" yaml:"subjects,omitempty"`
}

// Key identifies the entry: the register number, or the name when the
// register number is missing.
func (e Entry) Key() string {
	if e.RegisterNo != "" {
		return e.RegisterNo
	}
	return e.Name
}

// Roster is the decoded content of a data file.
type Roster struct {
	Students []Entry `json:"students" yaml:"students"`
}

// Format is the encoding of a roster file.
type Format int

const (
	// FormatYAML is YAML.
	FormatYAML Format = iota
	// FormatJSON is JSON.
	FormatJSON
)

// FormatOf returns the roster format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads and decodes the roster file at path.
func Load(path string) (*Roster, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided data path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	r, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodes roster data in the given format.
// It returns ErrEmptyRoster when no students are listed.
func Parse(data []byte, format Format) (*Roster, error) {
	var r Roster
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse JSON roster: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse YAML roster: %w", err)
		}
	}

	if len(r.Students) == 0 {
		return nil, ErrEmptyRoster
	}
	return &r, nil
}

// Find returns the student matching key. The register number is matched
// first; failing that, the name is compared case-insensitively.
func (r *Roster) Find(key string) (Entry, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Entry{}, fmt.Errorf("%w: empty key", ErrStudentNotFound)
	}

	for _, e := range r.Students {
		if e.RegisterNo != "" && strings.EqualFold(e.RegisterNo, key) {
			return e, nil
		}
	}
	for _, e := range r.Students {
		if strings.EqualFold(strings.TrimSpace(e.Name), key) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrStudentNotFound, key)
}

// FindAll resolves every key, stopping at the first that does not match.
func (r *Roster) FindAll(keys []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		e, err := r.Find(k)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
