// Package analysis derives the narrative remarks and comparison figures that
// report builders print at the end of each document.
//
// Everything here is pure computation over model records: thresholds on the
// overall average, rank checks, per-metric differences between two students
// and same-index subject pairing. No drawing happens in this package.
package analysis
