package report

import (
	"fmt"
	"strings"

	"github.com/nao1215/reportcard/internal/model"
)

// FileNamer returns the file name stem of a student's report, without the
// "_Report<ext>" suffix.
type FileNamer func(s model.StudentRecord) string

// DefaultFileNamer names a report after the student.
func DefaultFileNamer(s model.StudentRecord) string {
	return safeFileName(s.Name)
}

// UniqueFileNamer returns a FileNamer for a run over students in which no two
// reports share a file. Students whose names map to the same file get
// "_<register_no>" appended; everybody else keeps the plain name. File names
// are compared case-insensitively so that runs behave the same on
// case-insensitive file systems.
//
// It returns ErrDuplicateOutput when the register number does not tell two
// students apart, e.g. a roster that lists the same student twice.
func UniqueFileNamer(students []model.StudentRecord) (FileNamer, error) {
	count := make(map[string]int, len(students))
	for _, s := range students {
		count[fold(DefaultFileNamer(s))]++
	}

	stems := make(map[studentID]string, len(students))
	owner := make(map[string]studentID, len(students))
	for _, s := range students {
		id := idOf(s)
		if _, done := stems[id]; done {
			return nil, fmt.Errorf("%w: %s is listed more than once", ErrDuplicateOutput, describe(s))
		}

		stem := DefaultFileNamer(s)
		if count[fold(stem)] > 1 && strings.TrimSpace(s.RegisterNo) != "" {
			stem += "_" + safeFileName(s.RegisterNo)
		}
		if prev, taken := owner[fold(stem)]; taken {
			return nil, fmt.Errorf("%w: %s and %s both map to %q",
				ErrDuplicateOutput, prev.describe(), describe(s), stem)
		}
		owner[fold(stem)] = id
		stems[id] = stem
	}

	return func(s model.StudentRecord) string {
		if stem, ok := stems[idOf(s)]; ok {
			return stem
		}
		return DefaultFileNamer(s)
	}, nil
}

// studentID identifies a student within one run.
type studentID struct {
	name       string
	registerNo string
}

func idOf(s model.StudentRecord) studentID {
	return studentID{name: strings.TrimSpace(s.Name), registerNo: strings.TrimSpace(s.RegisterNo)}
}

func (id studentID) describe() string {
	if id.registerNo == "" {
		return fmt.Sprintf("%q", id.name)
	}
	return fmt.Sprintf("%q (%s)", id.name, id.registerNo)
}

func describe(s model.StudentRecord) string {
	return idOf(s).describe()
}

func fold(s string) string {
	return strings.ToLower(s)
}
