package analysis

import "github.com/nao1215/reportcard/internal/model"

// Performance thresholds on the overall average.
const (
	ExcellentThreshold = 80.0
	GoodThreshold      = 70.0
	AverageThreshold   = 60.0

	// TopRankCutoff is the last rank considered a top performer.
	TopRankCutoff = 3
)

// Remarks printed in the performance analysis section.
const (
	RemarkExcellent        = "Excellent performance - Consistently scoring above 80%"
	RemarkGood             = "Good performance - Maintaining above 70% average"
	RemarkAverage          = "Average performance - Scores above 60%"
	RemarkNeedsImprovement = "Needs improvement - Current average is below 60%"
	RemarkAllPassed        = "All subjects passed - Strong academic performance"
	RemarkTopPerformer     = "Top performer in the batch"
)

// PerformanceRemark classifies an overall average. A missing average is
// classified as needing improvement.
func PerformanceRemark(overall *float64) string {
	if overall == nil {
		return RemarkNeedsImprovement
	}
	switch avg := *overall; {
	case avg >= ExcellentThreshold:
		return RemarkExcellent
	case avg >= GoodThreshold:
		return RemarkGood
	case avg >= AverageThreshold:
		return RemarkAverage
	default:
		return RemarkNeedsImprovement
	}
}

// StudentRemarks returns the analysis list for an individual report.
//
// The first remark always classifies the overall average. A bonus remark is
// added when every subject was passed, either by the aggregate counts or by
// the subject list itself, and another when the student ranks in the top three.
func StudentRemarks(student model.StudentRecord, subjects []model.SubjectRecord) []string {
	remarks := []string{PerformanceRemark(student.OverallAverage)}

	allByCount := student.TotalSubjects > 0 && student.SubjectsPassed == student.TotalSubjects
	if allByCount || model.AllPassed(subjects) {
		remarks = append(remarks, RemarkAllPassed)
	}

	if student.HasRank() && student.Rank <= TopRankCutoff {
		remarks = append(remarks, RemarkTopPerformer)
	}

	return remarks
}
