package roster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/reportcard/internal/model"
)

const yamlRoster = `students:
  - name: Asha
    register_no: CS2024001
    batch_year: "2024"
    semester: 3
    overall_average: 82.456
    rank: 1
    subjects_passed: 5
    subjects_failed: 0
    total_subjects: 5
    ca_averages:
      CA1: 80
      CA2: 84.5
    subjects:
      - subject_name: Maths
        ca1: 45
        ca2: 42
        ca3: 45
      - subject_name: Physics
        ca1: 40
        semester_marks: 70
        passed: true
  - name: Ravi Kumar
    register_no: CS2024002
    overall_average: 79.9
`

const jsonRoster = `{
  "students": [
    {
      "name": "Asha",
      "register_no": "CS2024001",
      "overall_average": 82.456,
      "ca_averages": {"CA1": 80, "CA2": 84.5},
      "subjects": [{"subject_name": "Maths", "ca1": 45, "ca2": 42, "ca3": 45}]
    }
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads YAML roster", func(t *testing.T) {
		t.Parallel()

		r, err := Load(writeFile(t, "students.yaml", yamlRoster))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.Students) != 2 {
			t.Fatalf("expected 2 students, got %d", len(r.Students))
		}

		want := Entry{
			StudentRecord: model.StudentRecord{
				Name:           "Asha",
				RegisterNo:     "CS2024001",
				BatchYear:      "2024",
				Semester:       3,
				OverallAverage: model.Float(82.456),
				Rank:           1,
				SubjectsPassed: 5,
				TotalSubjects:  5,
				CAAverages: model.CAAverages{
					CA1: model.Float(80),
					CA2: model.Float(84.5),
				},
			},
			Subjects: []model.SubjectRecord{
				{Name: "Maths", CA1: model.Float(45), CA2: model.Float(42), CA3: model.Float(45)},
				{Name: "Physics", CA1: model.Float(40), SemesterMarks: model.Float(70), Passed: model.Bool(true)},
			},
		}
		if diff := cmp.Diff(want, r.Students[0]); diff != "" {
			t.Errorf("entry mismatch (-want +got):\n%s", diff)
		}
		if r.Students[1].Subjects != nil {
			t.Errorf("expected no subjects for the second student, got %v", r.Students[1].Subjects)
		}
	})

	t.Run("loads JSON roster", func(t *testing.T) {
		t.Parallel()

		r, err := Load(writeFile(t, "students.json", jsonRoster))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := r.Students[0]
		if got.RegisterNo != "CS2024001" || *got.OverallAverage != 82.456 {
			t.Errorf("unexpected student %+v", got.StudentRecord)
		}
		if got.CAAverages.CA3 != nil {
			t.Error("expected absent CA3 to stay nil")
		}
		if len(got.Subjects) != 1 || *got.Subjects[0].CA3 != 45 {
			t.Errorf("unexpected subjects %+v", got.Subjects)
		}
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		t.Parallel()

		_, err := Load(writeFile(t, "students.csv", "name\nAsha\n"))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("rejects empty roster", func(t *testing.T) {
		t.Parallel()

		_, err := Load(writeFile(t, "students.yml", "students: []\n"))
		if !errors.Is(err, ErrEmptyRoster) {
			t.Errorf("expected ErrEmptyRoster, got %v", err)
		}
	})

	t.Run("reports malformed data", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(writeFile(t, "students.json", "{")); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})
}

func TestRosterFind(t *testing.T) {
	t.Parallel()

	r, err := Parse([]byte(yamlRoster), FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		key     string
		want    string
		wantErr error
	}{
		{name: "register number", key: "CS2024002", want: "Ravi Kumar"},
		{name: "register number ignores case", key: "cs2024001", want: "Asha"},
		{name: "name ignores case", key: "ravi kumar", want: "Ravi Kumar"},
		{name: "surrounding spaces", key: "  Asha ", want: "Asha"},
		{name: "unknown student", key: "Meena", wantErr: ErrStudentNotFound},
		{name: "empty key", key: "", wantErr: ErrStudentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := r.Find(tt.key)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Name != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Name)
			}
		})
	}
}

func TestRosterFindAll(t *testing.T) {
	t.Parallel()

	r, err := Parse([]byte(yamlRoster), FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := r.FindAll([]string{"Asha", "CS2024002"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries[0].Key() != "CS2024001" || entries[1].Key() != "CS2024002" {
		t.Errorf("unexpected entries %v, %v", entries[0].Key(), entries[1].Key())
	}

	if _, err := r.FindAll([]string{"Asha", "nobody"}); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}
