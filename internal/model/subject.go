package model

// Pass criteria applied when a subject does not carry an explicit pass flag.
const (
	// CAPassMark is the minimum mean of the continuous assessments.
	CAPassMark = 30.0

	// SemesterPassMark is the minimum semester examination mark.
	SemesterPassMark = 50.0
)

// SubjectRecord holds one student's marks for one subject.
type SubjectRecord struct {
	// Name is the subject title.
	Name string `json:"subject_name" yaml:"subject_name"`

	CA1 *float64 `json:"ca1,omitempty" yaml:"ca1,omitempty"`
	CA2 *float64 `json:"ca2,omitempty" yaml:"ca2,omitempty"`
	CA3 *float64 `json:"ca3,omitempty" yaml:"ca3,omitempty"`

	// SemesterMarks is nil until semester results are published.
	SemesterMarks *float64 `json:"semester_marks,omitempty" yaml:"semester_marks,omitempty"`

	// Passed is the pass/fail flag supplied with the record. When nil the
	// status is derived from the marks, see IsPassed.
	Passed *bool `json:"passed,omitempty" yaml:"passed,omitempty"`
}

// components returns the marks that are present, in CA1, CA2, CA3, semester order.
func (s SubjectRecord) components() []float64 {
	var marks []float64
	for _, m := range []*float64{s.CA1, s.CA2, s.CA3, s.SemesterMarks} {
		if m != nil {
			marks = append(marks, *m)
		}
	}
	return marks
}

// Average returns the arithmetic mean of the marks that are present.
// Absent components do not count towards the denominator. The second return
// value is false when the subject has no marks at all.
func (s SubjectRecord) Average() (float64, bool) {
	marks := s.components()
	if len(marks) == 0 {
		return 0, false
	}
	var sum float64
	for _, m := range marks {
		sum += m
	}
	return sum / float64(len(marks)), true
}

// caAverage returns the mean of the present continuous assessments.
func (s SubjectRecord) caAverage() (float64, bool) {
	var sum float64
	var n int
	for _, m := range []*float64{s.CA1, s.CA2, s.CA3} {
		if m != nil {
			sum += *m
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// IsPassed reports the subject's pass status.
//
// The explicit Passed flag wins when present. Otherwise the subject passes
// when the continuous-assessment mean reaches CAPassMark and, if a semester
// mark has been published, that mark reaches SemesterPassMark.
func (s SubjectRecord) IsPassed() bool {
	if s.Passed != nil {
		return *s.Passed
	}
	ca, ok := s.caAverage()
	if !ok || ca < CAPassMark {
		return false
	}
	if s.SemesterMarks != nil && *s.SemesterMarks > 0 {
		return *s.SemesterMarks >= SemesterPassMark
	}
	return true
}

// StatusLabel returns "PASS" or "FAIL".
func (s SubjectRecord) StatusLabel() string {
	if s.IsPassed() {
		return "PASS"
	}
	return "FAIL"
}

// AllPassed reports whether every subject in a non-empty list passed.
func AllPassed(subjects []SubjectRecord) bool {
	if len(subjects) == 0 {
		return false
	}
	for _, s := range subjects {
		if !s.IsPassed() {
			return false
		}
	}
	return true
}
