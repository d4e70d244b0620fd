// Package exporter persists cleaned tables and aggregate reports as CSV
// files. Output preserves input row order, uses canonical column names and
// carries no compression or schema versioning; downstream consumers tolerate
// additive column changes through best-effort name matching.
package exporter
