// Package connector is a thin client for the managed Integration Connectors
// service. It sends SQL text to the connection's executeSqlQuery action and
// returns the rows verbatim. No retries, no pooling, no batching.
package connector

import (
	"context"
	"sort"
)

// Row is a single result row as a column name to value mapping, returned
// verbatim from the remote service.
type Row map[string]any

// QueryResult is an ordered sequence of rows plus derived column names.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
	Count   int      `json:"count"`
}

// Executor executes SQL against the remote warehouse.
type Executor interface {
	ExecuteSQL(ctx context.Context, sql string) (*QueryResult, error)
}

// columnsOf derives a stable column list from the first row. The connector
// returns rows as JSON objects, so column order is not preserved on the wire;
// sorting keeps output deterministic.
func columnsOf(rows []Row) []string {
	if len(rows) == 0 {
		return nil
	}
	cols := make([]string, 0, len(rows[0]))
	for col := range rows[0] {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}
