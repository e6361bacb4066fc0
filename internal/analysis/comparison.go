package analysis

import (
	"fmt"
	"math"

	"github.com/nao1215/reportcard/internal/model"
)

// MetricRow is one line of the side-by-side metrics table.
type MetricRow struct {
	Label string
	Left  string
	Right string

	// Difference is left minus right to two decimals, model.Placeholder when
	// either side is absent, or empty for rows without a numeric difference.
	Difference string
}

// Difference formats a − b to two decimals. Absent operands yield the placeholder.
func Difference(a, b *float64) string {
	if a == nil || b == nil {
		return model.Placeholder
	}
	return model.FormatFixed(*a-*b, 2)
}

// MetricRows builds the performance metrics comparison for two students:
// overall average, the three continuous-assessment averages, the semester
// average and rank.
func MetricRows(s1, s2 model.StudentRecord) []MetricRow {
	percent := func(label string, a, b *float64) MetricRow {
		return MetricRow{
			Label:      label,
			Left:       model.FormatPercent(a),
			Right:      model.FormatPercent(b),
			Difference: Difference(a, b),
		}
	}

	return []MetricRow{
		percent("Overall Average", s1.OverallAverage, s2.OverallAverage),
		percent("CA1 Average", s1.CAAverages.CA1, s2.CAAverages.CA1),
		percent("CA2 Average", s1.CAAverages.CA2, s2.CAAverages.CA2),
		percent("CA3 Average", s1.CAAverages.CA3, s2.CAAverages.CA3),
		percent("Semester Average", s1.SemesterAverage, s2.SemesterAverage),
		{Label: "Rank", Left: s1.RankLabel(), Right: s2.RankLabel()},
	}
}

// SubjectRow pairs the same-index subjects of two students.
type SubjectRow struct {
	Subject    string
	Left       string
	Right      string
	Difference string
}

// SubjectRows pairs subjects by position. The subject name is taken from the
// first list; a subject with no partner or no marks shows the placeholder.
// The difference is computed on the averages after rounding to one decimal,
// so that it agrees with the printed figures.
func SubjectRows(subjects1, subjects2 []model.SubjectRecord) []SubjectRow {
	rows := make([]SubjectRow, 0, len(subjects1))
	for i, s1 := range subjects1 {
		row := SubjectRow{Subject: s1.Name, Left: model.Placeholder, Right: model.Placeholder, Difference: model.Placeholder}

		avg1, ok1 := s1.Average()
		if ok1 {
			avg1 = round1(avg1)
			row.Left = model.FormatFixed(avg1, 1)
		}

		var avg2 float64
		ok2 := false
		if i < len(subjects2) {
			avg2, ok2 = subjects2[i].Average()
			if ok2 {
				avg2 = round1(avg2)
				row.Right = model.FormatFixed(avg2, 1)
			}
		}

		if ok1 && ok2 {
			row.Difference = model.FormatFixed(avg1-avg2, 1)
		}
		rows = append(rows, row)
	}
	return rows
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ComparisonRemarks returns the comparative analysis list.
//
// The student with the higher overall average is named together with the
// margin and both ranks; equal (or incomparable) averages produce a tie
// remark. The last remark states the smaller of the two passed counts.
func ComparisonRemarks(s1, s2 model.StudentRecord) []string {
	var remarks []string

	if leader, trailer, margin, ok := lead(s1, s2); ok {
		remarks = append(remarks,
			fmt.Sprintf("%s has higher overall average by %s%%", leader.Name, model.FormatFixed(margin, 2)),
			fmt.Sprintf("%s ranked %s compared to %s", leader.Name, leader.RankLabel(), trailer.RankLabel()),
		)
	} else {
		remarks = append(remarks, "Both students have equal overall average")
	}

	passed := min(s1.SubjectsPassed, s2.SubjectsPassed)
	remarks = append(remarks, fmt.Sprintf("Both students have passed minimum %d subjects", passed))

	return remarks
}

// lead returns the student with the strictly higher overall average, the
// other student and the positive margin. ok is false on a tie or when either
// average is absent.
func lead(s1, s2 model.StudentRecord) (leader, trailer model.StudentRecord, margin float64, ok bool) {
	if s1.OverallAverage == nil || s2.OverallAverage == nil {
		return s1, s2, 0, false
	}
	a, b := *s1.OverallAverage, *s2.OverallAverage
	switch {
	case a > b:
		return s1, s2, a - b, true
	case b > a:
		return s2, s1, b - a, true
	default:
		return s1, s2, 0, false
	}
}
