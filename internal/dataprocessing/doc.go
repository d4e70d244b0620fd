// Package dataprocessing implements the cleaning pipeline for district-level
// crop statistics: header normalization to canonical snake_case keys,
// sentinel/missing-value resolution, and per-row yield reconciliation.
//
// Data flows strictly one way:
//
//	raw table -> normalized columns -> imputed values -> reconciled yields
//
// The raw table is read once and never mutated; every stage takes a table
// value and returns the next one. The pipeline is synchronous and
// single-pass; failures abort the whole run.
package dataprocessing
