package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retailiq/nl2sql-agent/internal/schema"
)

func TestSQLGen_Validate(t *testing.T) {
	desc := schema.Default()

	tests := []struct {
		name    string
		sql     string
		wantErr string
	}{
		{
			name: "valid select",
			sql:  "SELECT region FROM public.sales GROUP BY region",
		},
		{
			name: "valid cte",
			sql:  "WITH t AS (SELECT * FROM public.products) SELECT * FROM t",
		},
		{
			name:    "empty",
			sql:     "   ",
			wantErr: "empty SQL",
		},
		{
			name:    "not read-only",
			sql:     "DELETE FROM public.sales",
			wantErr: "must start with SELECT",
		},
		{
			name:    "mismatched parentheses",
			sql:     "SELECT COUNT(* FROM public.sales",
			wantErr: "mismatched parentheses",
		},
		{
			name:    "unknown table",
			sql:     "SELECT * FROM public.orders",
			wantErr: "known tables",
		},
		{
			name:    "unqualified table",
			sql:     "SELECT * FROM sales",
			wantErr: "known tables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.sql, desc)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestSQLGen_ReferencedTables(t *testing.T) {
	desc := schema.Default()

	sql := "SELECT c.customer_name FROM public.sales s JOIN public.customers c ON s.customer_id = c.customer_id"
	require.Equal(t, []string{"sales", "customers"}, ReferencedTables(sql, desc))

	require.Empty(t, ReferencedTables("SELECT 1", desc))
}
