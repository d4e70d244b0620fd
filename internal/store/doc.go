// Package store provides the SQLite-backed query store behind the dashboard.
// The cleaned table is loaded once per process into an on-disk cache database
// and the connection is reused for all subsequent read-only queries; the
// cleaning pipeline and the dashboard are different processes run at
// different times, so there is no writer contention by construction.
//
// Consumers never fail on a missing column: resolution goes exact name ->
// permissive token match -> synthetic zero-filled column, and every
// substitution is reported.
package store
