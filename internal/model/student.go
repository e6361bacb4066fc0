package model

import "strconv"

// defaultSemester is shown when a record does not name its semester.
const defaultSemester = "1"

// CAAverages holds a student's averages for the three continuous assessments.
// Keys follow the upstream wire format ("CA1", "CA2", "CA3").
type CAAverages struct {
	CA1 *float64 `json:"CA1,omitempty" yaml:"CA1,omitempty"`
	CA2 *float64 `json:"CA2,omitempty" yaml:"CA2,omitempty"`
	CA3 *float64 `json:"CA3,omitempty" yaml:"CA3,omitempty"`
}

// StudentRecord is the aggregate academic summary of one student.
//
// Averages are percentages in the range 0 to 100. A nil average means the
// value was not supplied; it is rendered as a placeholder and never treated
// as zero by the narrative analysis.
type StudentRecord struct {
	// Name is the student's display name. It also names the output file.
	Name string `json:"name" yaml:"name"`

	// RegisterNo is the institution's unique registration number (e.g. "CS2024001").
	RegisterNo string `json:"register_no" yaml:"register_no"`

	// BatchYear identifies the admission batch (e.g. "2024").
	BatchYear string `json:"batch_year,omitempty" yaml:"batch_year,omitempty"`

	// Semester is the current semester number. Zero means unknown.
	Semester int `json:"semester,omitempty" yaml:"semester,omitempty"`

	// OverallAverage is the mean over all assessed components.
	OverallAverage *float64 `json:"overall_average,omitempty" yaml:"overall_average,omitempty"`

	// Rank is the position within the batch, starting at 1. Zero means unranked.
	Rank int `json:"rank,omitempty" yaml:"rank,omitempty"`

	SubjectsPassed int `json:"subjects_passed" yaml:"subjects_passed"`
	SubjectsFailed int `json:"subjects_failed" yaml:"subjects_failed"`
	TotalSubjects  int `json:"total_subjects" yaml:"total_subjects"`

	// CAAverages holds the per-assessment averages.
	CAAverages CAAverages `json:"ca_averages" yaml:"ca_averages"`

	// SemesterAverage is the mean of published semester marks.
	SemesterAverage *float64 `json:"semester_average,omitempty" yaml:"semester_average,omitempty"`
}

// SemesterLabel returns the semester for display, defaulting to "1".
func (s StudentRecord) SemesterLabel() string {
	if s.Semester <= 0 {
		return defaultSemester
	}
	return strconv.Itoa(s.Semester)
}

// HasRank reports whether the student holds a valid batch rank.
func (s StudentRecord) HasRank() bool {
	return s.Rank > 0
}

// RankLabel returns the rank formatted as "#n", or the placeholder when unranked.
func (s StudentRecord) RankLabel() string {
	if !s.HasRank() {
		return Placeholder
	}
	return "#" + strconv.Itoa(s.Rank)
}

// Float returns a pointer to v. It is a convenience for building records in code.
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
