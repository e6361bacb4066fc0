// Package model defines the academic records rendered by reportcard.
//
// This package contains the following main types:
//   - StudentRecord: identity and aggregate performance of one student
//   - SubjectRecord: continuous-assessment and semester marks for one subject
//   - Grade: the letter grade scale used in subject tables
//
// Records are transient: they are decoded from caller-supplied data, handed to
// a report builder and discarded once the document is written. Optional marks
// are pointers so that an absent value can be told apart from a zero and
// rendered as a placeholder instead.
package model
