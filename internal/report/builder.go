package report

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nao1215/reportcard/internal/analysis"
	"github.com/nao1215/reportcard/internal/model"
)

// Kind distinguishes the two report types.
type Kind string

const (
	// KindStudent is the single-student report.
	KindStudent Kind = "student"

	// KindComparison is the two-student comparison report.
	KindComparison Kind = "comparison"
)

// Section titles shared by every output format.
const (
	SectionStudentInfo         = "Student Information"
	SectionSummary             = "Performance Summary"
	SectionCABreakdown         = "CA Performance Breakdown"
	SectionSubjects            = "Subject-wise Performance"
	SectionAnalysis            = "Performance Analysis"
	SectionStudentsCompared    = "Students Under Comparison"
	SectionMetricsComparison   = "Performance Metrics Comparison"
	SectionSubjectsComparison  = "Subject-wise Performance Comparison"
	SectionComparativeAnalysis = "Comparative Analysis"

	comparisonTitle = "Student Comparison Report"
)

// SubjectHeaders are the columns of the subject-wise table.
var SubjectHeaders = []string{"Subject", "CA1", "CA2", "CA3", "Sem", "Average", "Grade", "Status"}

// Result describes one generated document.
type Result struct {
	ReportID string
	Kind     Kind
	Format   Format

	// Path is the written file. It is empty when the document went to the
	// builder's stdout writer.
	Path string

	// Students holds the register numbers (or names when no register number
	// is known) of the students in the report.
	Students []string

	// Names holds the student names in the same order as Students.
	Names []string
}

// Builder composes student and comparison reports on painters produced by a
// Factory. Each call uses a fresh painter, so a Builder may be used from
// several goroutines as long as its Factory is safe for concurrent use.
type Builder struct {
	factory   Factory
	outputDir string
	stdout    io.Writer
	logger    *slog.Logger
	newID     func() string
	fileStem  FileNamer
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithOutputDir sets the directory reports are saved to.
func WithOutputDir(dir string) BuilderOption {
	return func(b *Builder) {
		b.outputDir = dir
	}
}

// WithStdout writes documents to w instead of saving files.
func WithStdout(w io.Writer) BuilderOption {
	return func(b *Builder) {
		b.stdout = w
	}
}

// WithBuilderLogger sets the logger. Defaults to slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithIDGenerator replaces the report ID generator (uuid.NewString by default).
func WithIDGenerator(f func() string) BuilderOption {
	return func(b *Builder) {
		b.newID = f
	}
}

// WithFileNamer sets how student report files are named. Defaults to
// DefaultFileNamer.
func WithFileNamer(f FileNamer) BuilderOption {
	return func(b *Builder) {
		b.fileStem = f
	}
}

// NewBuilder creates a Builder. Reports are saved to the current directory
// unless WithOutputDir or WithStdout is given.
func NewBuilder(factory Factory, opts ...BuilderOption) *Builder {
	b := &Builder{
		factory:   factory,
		outputDir: ".",
		logger:    slog.Default(),
		newID:     uuid.NewString,
		fileStem:  DefaultFileNamer,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Student generates the single-student report and saves it as
// "<stem>_Report<ext>", where the stem comes from the builder's FileNamer.
func (b *Builder) Student(student model.StudentRecord, subjects []model.SubjectRecord) (Result, error) {
	id := b.newID()
	p := b.factory(Metadata{
		ReportID: id,
		Subject:  "Academic report for " + student.Name,
	})

	PaintStudent(p, student, subjects)

	res := Result{
		ReportID: id,
		Kind:     KindStudent,
		Format:   p.Format(),
		Students: []string{studentKey(student)},
		Names:    []string{strings.TrimSpace(student.Name)},
	}
	path, err := b.export(p, b.fileStem(student)+"_Report"+p.Format().Ext())
	if err != nil {
		return res, fmt.Errorf("failed to export report for %s: %w", student.Name, err)
	}
	res.Path = path

	b.logger.Debug("student report generated",
		"report_id", id,
		"register_no", student.RegisterNo,
		"format", string(res.Format),
		"path", path,
		"subjects", len(subjects),
	)
	return res, nil
}

// Comparison generates the comparison report for two students and saves it
// as "Student_Comparison_Report<ext>".
func (b *Builder) Comparison(s1, s2 model.StudentRecord, subjects1, subjects2 []model.SubjectRecord) (Result, error) {
	id := b.newID()
	p := b.factory(Metadata{
		ReportID: id,
		Subject:  fmt.Sprintf("Comparison of %s and %s", s1.Name, s2.Name),
	})

	PaintComparison(p, s1, s2, subjects1, subjects2)

	res := Result{
		ReportID: id,
		Kind:     KindComparison,
		Format:   p.Format(),
		Students: []string{studentKey(s1), studentKey(s2)},
		Names:    []string{strings.TrimSpace(s1.Name), strings.TrimSpace(s2.Name)},
	}
	path, err := b.export(p, ComparisonReportName(p.Format()))
	if err != nil {
		return res, fmt.Errorf("failed to export comparison of %s and %s: %w", s1.Name, s2.Name, err)
	}
	res.Path = path

	b.logger.Debug("comparison report generated",
		"report_id", id,
		"format", string(res.Format),
		"path", path,
	)
	return res, nil
}

// export writes the document to stdout or saves it under the output directory.
func (b *Builder) export(p Painter, filename string) (string, error) {
	if b.stdout != nil {
		_, err := p.WriteTo(b.stdout)
		return "", err
	}
	path := filepath.Join(b.outputDir, filename)
	if err := p.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// PaintStudent draws the single-student report onto p.
func PaintStudent(p Painter, s model.StudentRecord, subjects []model.SubjectRecord) {
	name := s.Name
	if strings.TrimSpace(name) == "" {
		name = "Student"
	}
	p.Open(name + " - Academic Report")

	p.SectionHeader(SectionStudentInfo)
	p.KeyValue("Name", orPlaceholder(s.Name))
	p.KeyValue("Register No", orPlaceholder(s.RegisterNo))
	p.KeyValue("Batch", orPlaceholder(s.BatchYear))
	p.KeyValue("Semester", s.SemesterLabel())

	p.SectionHeader(SectionSummary)
	p.KeyValue("Overall Average", model.FormatPercent(s.OverallAverage))
	p.KeyValue("Rank", s.RankLabel())
	p.KeyValue("Subjects Passed", fmt.Sprint(s.SubjectsPassed))
	p.KeyValue("Subjects Failed", fmt.Sprint(s.SubjectsFailed))

	p.SectionHeader(SectionCABreakdown)
	p.KeyValue("CA1 Average", model.FormatPercent(s.CAAverages.CA1))
	p.KeyValue("CA2 Average", model.FormatPercent(s.CAAverages.CA2))
	p.KeyValue("CA3 Average", model.FormatPercent(s.CAAverages.CA3))
	p.KeyValue("Semester Average", model.FormatPercent(s.SemesterAverage))

	if len(subjects) > 0 {
		p.SectionHeader(SectionSubjects)
		p.Table(SubjectHeaders, SubjectTableRows(subjects))
	}

	p.SectionHeader(SectionAnalysis)
	p.List(analysis.StudentRemarks(s, subjects))
}

// SubjectTableRows returns one row per subject in SubjectHeaders order.
func SubjectTableRows(subjects []model.SubjectRecord) [][]string {
	rows := make([][]string, 0, len(subjects))
	for _, sub := range subjects {
		avg := model.Placeholder
		if v, ok := sub.Average(); ok {
			avg = model.FormatFixed(v, 1)
		}
		rows = append(rows, []string{
			orPlaceholder(sub.Name),
			model.FormatMark(sub.CA1),
			model.FormatMark(sub.CA2),
			model.FormatMark(sub.CA3),
			model.FormatMark(sub.SemesterMarks),
			avg,
			string(sub.Grade()),
			sub.StatusLabel(),
		})
	}
	return rows
}

// PaintComparison draws the comparison report for two students onto p.
func PaintComparison(p Painter, s1, s2 model.StudentRecord, subjects1, subjects2 []model.SubjectRecord) {
	p.Open(comparisonTitle)

	p.SectionHeader(SectionStudentsCompared)
	p.KeyValues("Students", "Student 1", "Student 2")
	p.KeyValues("Name", orPlaceholder(s1.Name), orPlaceholder(s2.Name))
	p.KeyValues("Register No", orPlaceholder(s1.RegisterNo), orPlaceholder(s2.RegisterNo))
	p.KeyValues("Batch", orPlaceholder(s1.BatchYear), orPlaceholder(s2.BatchYear))

	p.SectionHeader(SectionMetricsComparison)
	metrics := analysis.MetricRows(s1, s2)
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{m.Label, m.Left, m.Right, m.Difference})
	}
	p.Table([]string{"Metric", s1.Name, s2.Name, "Difference"}, rows)

	if len(subjects1) > 0 && len(subjects2) > 0 {
		p.SectionHeader(SectionSubjectsComparison)
		pairs := analysis.SubjectRows(subjects1, subjects2)
		rows := make([][]string, 0, len(pairs))
		for _, r := range pairs {
			rows = append(rows, []string{r.Subject, r.Left, r.Right, r.Difference})
		}
		p.Table([]string{"Subject", s1.Name, s2.Name, "Difference"}, rows)
	}

	p.SectionHeader(SectionComparativeAnalysis)
	p.List(analysis.ComparisonRemarks(s1, s2))
}

// StudentReportName returns the file name of a student's report.
func StudentReportName(name string, format Format) string {
	return safeFileName(name) + "_Report" + format.Ext()
}

// ComparisonReportName returns the file name of a comparison report.
func ComparisonReportName(format Format) string {
	return "Student_Comparison_Report" + format.Ext()
}

// safeFileName keeps a student name usable as a single path element.
func safeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "Student"
	}
	return name
}

// studentKey identifies a student in the history ledger.
func studentKey(s model.StudentRecord) string {
	if s.RegisterNo != "" {
		return s.RegisterNo
	}
	return s.Name
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.Placeholder
	}
	return s
}
