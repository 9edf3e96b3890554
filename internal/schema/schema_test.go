package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchema_Default(t *testing.T) {
	desc := Default()

	require.Equal(t, []string{"products", "sales", "customers"}, desc.TableNames())
	require.Equal(t, "public.sales", desc.QualifiedName("sales"))
	require.NotEmpty(t, desc.Relationships)
	require.NotEmpty(t, desc.Samples)
}

func TestSchema_Describe(t *testing.T) {
	desc := Default()
	out := desc.Describe()

	require.Contains(t, out, "Table: public.products")
	require.Contains(t, out, "Table: public.sales")
	require.Contains(t, out, "Table: public.customers")
	require.Contains(t, out, "[PRIMARY KEY]")
	require.Contains(t, out, "[FOREIGN KEY -> products.product_id]")
	require.Contains(t, out, "sale_date (TIMESTAMP)")
}

func TestSchema_DescribeRelationships(t *testing.T) {
	out := Default().DescribeRelationships()

	require.Contains(t, out, "sales_to_products")
	require.Contains(t, out, "s.product_id = p.product_id")
	require.Contains(t, out, "sales_to_customers")
}

func TestSchema_RelevantSamples(t *testing.T) {
	desc := Default()

	tests := []struct {
		name     string
		question string
		contains string
	}{
		{"apparel keyword", "how much apparel did we move", "Apparel"},
		{"clothes synonym", "what clothes sold best", "Apparel"},
		{"electronics keyword", "electronic sales by area", "Electronics"},
		{"brand keyword", "best brands overall", "brand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := desc.RelevantSamples(tt.question)
			require.NotEmpty(t, samples)
			found := false
			for _, s := range samples {
				if containsAny(s.SQL+s.Question, tt.contains) {
					found = true
				}
			}
			require.True(t, found, "expected a sample mentioning %q", tt.contains)
		})
	}

	t.Run("fallback when nothing matches", func(t *testing.T) {
		samples := desc.RelevantSamples("completely unrelated question")
		require.Len(t, samples, 2)
	})
}
