package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	apperrors "agricli/internal/errors"
	"agricli/internal/infrastructure"
)

// Query is a canned analysis question over the loaded table. SQL text uses
// %[1]q for the quoted table name and %[2]d for the latest loaded year.
type Query struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	SQL   string `json:"sql"`
}

// ResultSet holds the columns and rows of an executed query. Row values are
// rendered by the driver: strings, float64s, int64s, or nil.
type ResultSet struct {
	Query   Query    `json:"query"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// cannedQueries is the fixed analysis menu served by the dashboard, in menu
// order.
var cannedQueries = []Query{
	{
		ID:    "rice-trend-top-states",
		Title: "Year-wise Trend of Rice Production Across States (Top 3)",
		SQL: `
WITH TopStates AS (
    SELECT StateName FROM %[1]q
    GROUP BY StateName ORDER BY SUM(RiceProd) DESC LIMIT 3
)
SELECT T1.Year, T1.StateName, SUM(T1.RiceProd) AS TotalRiceProduction_1000Tons
FROM %[1]q T1 JOIN TopStates TS ON T1.StateName = TS.StateName
GROUP BY T1.Year, T1.StateName
ORDER BY T1.StateName, T1.Year;`,
	},
	{
		ID:    "wheat-yield-increase",
		Title: "Top 5 Districts by Wheat Yield Increase Over the Last 5 Years",
		SQL: `
WITH YieldsByYear AS (
    SELECT DistrictName,
        AVG(CASE WHEN Year = %[2]d THEN WheatYield END) AS Yield_EndYear,
        AVG(CASE WHEN Year = %[2]d - 4 THEN WheatYield END) AS Yield_StartYear
    FROM %[1]q
    WHERE Year IN (%[2]d, %[2]d - 4)
    GROUP BY DistrictName
)
SELECT DistrictName, Yield_StartYear, Yield_EndYear,
    (Yield_EndYear - Yield_StartYear) AS Yield_Increase
FROM YieldsByYear
WHERE Yield_StartYear IS NOT NULL AND Yield_EndYear IS NOT NULL
ORDER BY Yield_Increase DESC
LIMIT 5;`,
	},
	{
		ID:    "oilseed-growth",
		Title: "States with the Highest Growth in Oilseed Production (5-Year Growth Rate)",
		SQL: `
WITH StateProduction AS (
    SELECT StateName,
        SUM(CASE WHEN Year BETWEEN 1990 AND 1994 THEN OilseedProd ELSE 0 END) AS Prod_A,
        SUM(CASE WHEN Year BETWEEN %[2]d - 4 AND %[2]d THEN OilseedProd ELSE 0 END) AS Prod_B
    FROM %[1]q
    GROUP BY StateName
)
SELECT StateName, Prod_A, Prod_B,
    ((CAST(Prod_B AS REAL) / NULLIF(Prod_A, 0)) - 1) * 100 AS Growth_Rate_Percent
FROM StateProduction
WHERE Prod_A > 0
ORDER BY Growth_Rate_Percent DESC
LIMIT 5;`,
	},
	{
		ID:    "cotton-annual-growth",
		Title: "Yearly Production Growth of Cotton in Top 5 Cotton Producing States",
		SQL: `
WITH TopStates AS (
    SELECT StateName FROM %[1]q
    GROUP BY StateName ORDER BY SUM(CottonProd) DESC LIMIT 5
),
StateYearProd AS (
    SELECT T1.Year, T1.StateName, SUM(T1.CottonProd) AS Current_Prod
    FROM %[1]q T1 JOIN TopStates TS ON T1.StateName = TS.StateName
    GROUP BY T1.Year, T1.StateName
),
GrowthRate AS (
    SELECT StateName,
        (Current_Prod - LAG(Current_Prod, 1) OVER (PARTITION BY StateName ORDER BY Year)) AS Prod_Change,
        LAG(Current_Prod, 1) OVER (PARTITION BY StateName ORDER BY Year) AS Prev_Prod
    FROM StateYearProd
)
SELECT StateName,
    AVG((CAST(Prod_Change AS REAL) / NULLIF(Prev_Prod, 0))) * 100 AS Avg_Annual_Growth_Rate_Percent
FROM GrowthRate
WHERE Prev_Prod > 0
GROUP BY StateName
ORDER BY Avg_Annual_Growth_Rate_Percent DESC;`,
	},
	{
		ID:    "groundnut-top-districts",
		Title: "Districts with the Highest Groundnut Production in Latest Year",
		SQL: `
SELECT DistrictName, SUM(GroundnutProd) AS TotalGroundnutProduction_1000Tons
FROM %[1]q
WHERE Year = %[2]d
GROUP BY DistrictName
ORDER BY TotalGroundnutProduction_1000Tons DESC
LIMIT 5;`,
	},
	{
		ID:    "maize-annual-yield",
		Title: "Annual Average Maize Yield Across All States",
		SQL: `
SELECT Year, AVG(MaizeYield) AS Annual_Average_Maize_Yield_kg_per_ha
FROM %[1]q
GROUP BY Year
ORDER BY Year DESC;`,
	},
	{
		ID:    "oilseed-area-by-state",
		Title: "Total Area Cultivated for Oilseeds in Each State",
		SQL: `
SELECT StateName, SUM(OilseedArea) AS Total_Oilseed_Area_1000ha
FROM %[1]q
GROUP BY StateName
ORDER BY Total_Oilseed_Area_1000ha DESC
LIMIT 10;`,
	},
	{
		ID:    "rice-top-yield-districts",
		Title: "Districts with the Highest Rice Yield",
		SQL: `
SELECT DistrictName, AVG(RiceYield) AS Average_Rice_Yield_kg_per_ha
FROM %[1]q
GROUP BY DistrictName
ORDER BY Average_Rice_Yield_kg_per_ha DESC
LIMIT 5;`,
	},
	{
		ID:    "wheat-rice-comparison",
		Title: "Compare the Production of Wheat and Rice for the Top 5 States Over 10 Years",
		SQL: `
WITH TopStates AS (
    SELECT StateName FROM %[1]q
    GROUP BY StateName ORDER BY SUM(RiceProd + WheatProd) DESC LIMIT 5
)
SELECT T1.Year, T1.StateName,
    SUM(T1.RiceProd) AS TotalRiceProduction_1000Tons,
    SUM(T1.WheatProd) AS TotalWheatProduction_1000Tons
FROM %[1]q T1 JOIN TopStates TS ON T1.StateName = TS.StateName
WHERE T1.Year >= %[2]d - 9
GROUP BY T1.Year, T1.StateName
ORDER BY T1.StateName, T1.Year;`,
	},
}

// Queries returns the canned query menu with SQL rendered for this store's
// table and latest year.
func (s *Store) Queries() []Query {
	out := make([]Query, len(cannedQueries))
	for i, q := range cannedQueries {
		q.SQL = s.renderSQL(q.SQL)
		out[i] = q
	}
	return out
}

// QueryByID returns the canned query with the given ID.
func (s *Store) QueryByID(id string) (Query, bool) {
	for _, q := range cannedQueries {
		if q.ID == id {
			q.SQL = s.renderSQL(q.SQL)
			return q, true
		}
	}
	return Query{}, false
}

// Execute runs the canned query with the given ID and returns its result set.
func (s *Store) Execute(ctx context.Context, id string) (*ResultSet, error) {
	q, ok := s.QueryByID(id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("query %s", id))
	}

	rows, err := s.db.QueryContext(ctx, q.SQL)
	if err != nil {
		return nil, apperrors.NewQueryError(fmt.Sprintf("failed to execute query %s", id), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, apperrors.NewQueryError("failed to read result columns", err)
	}

	result := &ResultSet{Query: q, Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, apperrors.NewQueryError("failed to scan result row", err)
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryError("failed to iterate results", err)
	}

	infrastructure.QueriesExecuted.WithLabelValues(id).Inc()
	return result, nil
}

// Summary reports basic shape statistics of the loaded table.
type Summary struct {
	Table   string `json:"table"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	MinYear int    `json:"min_year"`
	MaxYear int    `json:"max_year"`
	States  int    `json:"states"`
	Queries int    `json:"queries"`
}

// Summarize returns table shape statistics for the dashboard landing view.
func (s *Store) Summarize(ctx context.Context) (*Summary, error) {
	sum := &Summary{
		Table:   s.table,
		Columns: len(s.columns),
		MaxYear: s.maxYear,
		Queries: len(cannedQueries),
	}

	// MIN(Year) is NULL on an empty table
	var rowCount, minYear, states sql.NullInt64
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT COUNT(*), MIN(Year), COUNT(DISTINCT StateName) FROM %q`, s.table))
	if err := row.Scan(&rowCount, &minYear, &states); err != nil {
		return nil, apperrors.NewQueryError("failed to summarize table", err)
	}
	sum.Rows = int(rowCount.Int64)
	sum.MinYear = int(minYear.Int64)
	sum.States = int(states.Int64)
	return sum, nil
}

func (s *Store) renderSQL(tmpl string) string {
	return strings.TrimSpace(fmt.Sprintf(tmpl, s.table, s.maxYear))
}
