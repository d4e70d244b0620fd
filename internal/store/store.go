package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite"

	"agricli/internal/dataprocessing"
	apperrors "agricli/internal/errors"
	"agricli/internal/infrastructure"
)

// Store is a SQLite-backed read store for the cleaned district crop table.
type Store struct {
	db      *sql.DB
	table   string
	columns []string
	maxYear int
	logger  *slog.Logger
}

// columnMapping maps token sets to the short SQL names the canned queries
// use. Tokens are matched with the permissive substring search; the degraded
// token sets ("tate", "eed") keep matching headers that lost characters in
// earlier cleaning runs.
var columnMapping = []struct {
	tokens []string
	target string
}{
	{[]string{"year"}, "Year"},
	{[]string{"state", "name"}, "StateName"},
	{[]string{"tate", "name"}, "StateName"},
	{[]string{"district", "name"}, "DistrictName"},
	{[]string{"dist", "name"}, "DistrictName"},
	{[]string{"rice", "production"}, "RiceProd"},
	{[]string{"wheat", "production"}, "WheatProd"},
	{[]string{"oilseed", "production"}, "OilseedProd"},
	{[]string{"oil", "eed", "production"}, "OilseedProd"},
	{[]string{"cotton", "production"}, "CottonProd"},
	{[]string{"groundnut", "production"}, "GroundnutProd"},
	{[]string{"maize", "yield"}, "MaizeYield"},
	{[]string{"rice", "yield"}, "RiceYield"},
	{[]string{"wheat", "yield"}, "WheatYield"},
	{[]string{"oilseed", "area"}, "OilseedArea"},
	{[]string{"oil", "eed", "area"}, "OilseedArea"},
}

// requiredColumns are the short SQL names the canned queries reference.
// Unresolved names get a synthetic zero-filled column so no query fails on a
// missing column.
var requiredColumns = []string{
	"Year", "StateName", "DistrictName",
	"RiceProd", "WheatProd", "OilseedProd", "CottonProd", "GroundnutProd",
	"MaizeYield", "RiceYield", "WheatYield", "OilseedArea",
}

// Open opens (or creates) the store database at the given path.
// Use ":memory:" for an in-memory database.
func Open(path, tableName string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open database", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	return &Store{
		db:     db,
		table:  tableName,
		logger: logger.With(slog.String("component", "store")),
	}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// MaxYear returns the latest year discovered at load time.
func (s *Store) MaxYear() int { return s.maxYear }

// Columns returns the SQL column names of the loaded table.
func (s *Store) Columns() []string { return s.columns }

// LoadTable replaces the store contents with the given cleaned table. Mapped
// columns are renamed to their short SQL names; everything else keeps its
// canonical key. Row order is preserved. Missing numeric values in
// production/area/yield columns load as zero so aggregates behave.
func (s *Store) LoadTable(ctx context.Context, t *dataprocessing.Table) error {
	names := s.resolveNames(t)

	synthetic := s.missingRequired(names)
	for _, name := range synthetic {
		s.logger.Warn("required column not found, creating zero-filled column",
			slog.String("column", name))
		infrastructure.SyntheticColumns.Inc()
	}

	if err := s.createTable(ctx, t, names, synthetic); err != nil {
		return err
	}
	if err := s.insertRows(ctx, t, names, synthetic); err != nil {
		return err
	}

	s.columns = append(append([]string(nil), names...), synthetic...)

	var maxYear sql.NullInt64
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT MAX("Year") FROM %q`, s.table))
	if err := row.Scan(&maxYear); err != nil {
		return apperrors.NewStorageError("failed to determine max year", err)
	}
	s.maxYear = int(maxYear.Int64)

	s.logger.Info("table loaded",
		slog.String("table", s.table),
		slog.Int("rows", len(t.Rows)),
		slog.Int("columns", len(s.columns)),
		slog.Int("synthetic_columns", len(synthetic)),
		slog.Int("max_year", s.maxYear))

	return nil
}

// resolveNames builds the positional SQL column names for the table,
// applying the token mapping. First mapping wins per target; non-exact
// renames are logged.
func (s *Store) resolveNames(t *dataprocessing.Table) []string {
	names := make([]string, len(t.Columns))
	copy(names, t.Columns)

	taken := make(map[string]bool)
	for _, m := range columnMapping {
		if taken[m.target] {
			continue
		}
		col, ok := dataprocessing.FindColumn(t.Columns, m.tokens...)
		if !ok {
			continue
		}
		idx, _ := t.ColumnIndex(col)
		if names[idx] != t.Columns[idx] {
			continue // already renamed by an earlier mapping
		}
		names[idx] = m.target
		taken[m.target] = true
		if col != m.target {
			s.logger.Info("column mapped for SQL queries",
				slog.String("from", col),
				slog.String("to", m.target))
		}
	}
	return names
}

// missingRequired returns required SQL names not present after renaming.
func (s *Store) missingRequired(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}
	var missing []string
	for _, want := range requiredColumns {
		if !present[want] {
			missing = append(missing, want)
		}
	}
	return missing
}

func (s *Store) createTable(ctx context.Context, t *dataprocessing.Table, names, synthetic []string) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %q`, s.table)); err != nil {
		return apperrors.NewStorageError("failed to drop existing table", err)
	}

	var defs []string
	for i, name := range names {
		defs = append(defs, fmt.Sprintf("%q %s", name, sqlType(t, i)))
	}
	for _, name := range synthetic {
		defs = append(defs, fmt.Sprintf("%q REAL", name))
	}

	ddl := fmt.Sprintf(`CREATE TABLE %q (%s)`, s.table, strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return apperrors.NewStorageError("failed to create table", err)
	}
	return nil
}

func (s *Store) insertRows(ctx context.Context, t *dataprocessing.Table, names, synthetic []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	total := len(names) + len(synthetic)
	placeholders := strings.TrimSuffix(strings.Repeat("?,", total), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q VALUES (%s)`, s.table, placeholders))
	if err != nil {
		return apperrors.NewStorageError("failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]any, total)
		for i, cell := range row {
			args[i] = cellValue(cell, names[i])
		}
		for i := range synthetic {
			args[len(row)+i] = 0.0
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return apperrors.NewStorageError("failed to insert row", err)
		}
	}

	return tx.Commit()
}

// cellValue converts a cell for SQL insertion. Missing metric values load as
// zero; other missing values load as NULL.
func cellValue(c dataprocessing.Cell, name string) any {
	if c.Missing {
		if isMetricName(name) {
			return 0.0
		}
		return nil
	}
	if c.Numeric {
		return c.Num
	}
	return c.Text
}

func isMetricName(name string) bool {
	return strings.Contains(name, "Prod") || strings.Contains(name, "Area") ||
		strings.Contains(name, "Yield") ||
		dataprocessing.IsAreaColumn(name) || dataprocessing.IsProductionColumn(name) ||
		dataprocessing.IsYieldColumn(name)
}

// sqlType picks REAL for columns whose non-missing cells are numeric, TEXT
// otherwise.
func sqlType(t *dataprocessing.Table, col int) string {
	for _, row := range t.Rows {
		c := row[col]
		if c.Missing {
			continue
		}
		if !c.Numeric {
			return "TEXT"
		}
	}
	return "REAL"
}
