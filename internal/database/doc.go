// Package database provides the SQLite-backed history ledger for reportcard.
//
// The ledger records every generated document: its report ID, kind, output
// format, file path, the students it covers and when it was written. It keeps
// output bookkeeping only; academic records are never stored.
//
// SQLite is used through modernc.org/sqlite, a CGO-free driver, so the ledger
// is a single file in the user's XDG data directory.
package database
