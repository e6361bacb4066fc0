package model

// Grade is a letter grade on the institution's ten-point scale.
type Grade string

// Grades in descending order. GradeNA is used when no mark is available.
const (
	GradeO     Grade = "O"
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeRA    Grade = "RA"
	GradeNA    Grade = "NA"
)

// gradeBands maps the lower bound of each band to its grade, highest first.
var gradeBands = []struct {
	min   float64
	grade Grade
}{
	{91, GradeO},
	{81, GradeAPlus},
	{71, GradeA},
	{61, GradeBPlus},
	{56, GradeB},
	{50, GradeC},
}

// GradeFor converts a mark out of 100 to a letter grade.
func GradeFor(mark float64) Grade {
	for _, b := range gradeBands {
		if mark >= b.min {
			return b.grade
		}
	}
	return GradeRA
}

// Description returns the long form of the grade, e.g. "Outstanding".
func (g Grade) Description() string {
	switch g {
	case GradeO:
		return "Outstanding"
	case GradeAPlus:
		return "Excellent"
	case GradeA:
		return "Very Good"
	case GradeBPlus:
		return "Good"
	case GradeB:
		return "Average"
	case GradeC:
		return "Satisfactory"
	case GradeRA:
		return "Re-Appear"
	case GradeNA:
		return "Not Available"
	default:
		return "Unknown"
	}
}

// Passed reports whether the grade is a passing grade.
func (g Grade) Passed() bool {
	return g != GradeRA && g != GradeNA
}

// Grade returns the letter grade for the subject's derived average.
func (s SubjectRecord) Grade() Grade {
	avg, ok := s.Average()
	if !ok {
		return GradeNA
	}
	return GradeFor(avg)
}
