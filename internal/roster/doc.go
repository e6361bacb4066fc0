// Package roster loads student records from data files.
//
// A roster file is YAML (.yaml, .yml) or JSON (.json) with a top-level
// "students" list. Each entry carries the student's aggregate record and,
// optionally, the subject-wise marks under "subjects". Field names follow the
// academic system's export format (register_no, ca_averages, subject_name...).
package roster
