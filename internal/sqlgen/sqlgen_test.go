package sqlgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retailiq/nl2sql-agent/internal/catalog"
	"github.com/retailiq/nl2sql-agent/internal/schema"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

type mockLLM struct {
	response string
	err      error
	calls    int
}

func (m *mockLLM) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.calls++
	return m.response, m.err
}

func newGenerator(t *testing.T, model *mockLLM) *Generator {
	t.Helper()
	cfg := Config{
		Logger: testLogger(t),
		Schema: schema.Default(),
	}
	if model != nil {
		cfg.LLM = model
	}
	g, err := New(cfg)
	require.NoError(t, err)
	return g
}

func TestSQLGen_Config_Validate(t *testing.T) {
	desc := schema.Default()

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"missing logger", Config{Schema: desc}, "logger is required"},
		{"missing schema", Config{Logger: testLogger(t)}, "schema is required"},
		{"valid", Config{Logger: testLogger(t), Schema: desc}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestSQLGen_TemplatesCoverCatalog(t *testing.T) {
	g := newGenerator(t, nil)
	desc := schema.Default()
	known := desc.TableNames()

	for _, question := range catalog.Questions() {
		t.Run(question, func(t *testing.T) {
			query, err := g.Generate(context.Background(), question)
			require.NoError(t, err)
			require.Equal(t, SourceTemplate, query.Source)
			require.NotEmpty(t, query.SQL)
			require.NoError(t, Validate(query.SQL, desc))

			// Only known tables may appear.
			for _, table := range ReferencedTables(query.SQL, desc) {
				require.Contains(t, known, table)
			}
		})
	}
}

func TestSQLGen_ApparelQuarterStructure(t *testing.T) {
	g := newGenerator(t, nil)

	query, err := g.Generate(context.Background(), "How many apparels were sold in the last quarter?")
	require.NoError(t, err)

	require.Contains(t, query.SQL, "public.sales")
	require.Contains(t, query.SQL, "public.products")
	require.Contains(t, query.SQL, "category = 'Apparel'")
	require.Contains(t, query.SQL, "sale_date >=")
}

func TestSQLGen_FuzzyMatch(t *testing.T) {
	g := newGenerator(t, nil)

	tests := []struct {
		name     string
		question string
	}{
		{"case and punctuation", "what are the top 5 selling apparel brands"},
		{"missing article", "How many apparels were sold in last quarter?"},
		{"trailing punctuation", "Which region has the highest total sales??"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := g.Generate(context.Background(), tt.question)
			require.NoError(t, err)
			require.Equal(t, SourceTemplate, query.Source)
			require.NotEmpty(t, query.SQL)
		})
	}
}

func TestSQLGen_UnmatchedWithoutModel(t *testing.T) {
	g := newGenerator(t, nil)

	_, err := g.Generate(context.Background(), "What is the meaning of life?")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUntranslatable)
}

func TestSQLGen_ModelFallback(t *testing.T) {
	const sql = "SELECT COUNT(*) FROM public.sales WHERE region = 'EMEA'"

	tests := []struct {
		name     string
		response string
		wantSQL  string
	}{
		{
			name:     "json response",
			response: fmt.Sprintf(`{"sql": %q, "explanation": "counts EMEA sales"}`, sql),
			wantSQL:  sql,
		},
		{
			name:     "sql code block",
			response: "Here you go:\n```sql\n" + sql + ";\n```",
			wantSQL:  sql,
		},
		{
			name:     "bare sql",
			response: sql,
			wantSQL:  sql,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &mockLLM{response: tt.response}
			g := newGenerator(t, model)

			query, err := g.Generate(context.Background(), "How many sales happened in EMEA?")
			require.NoError(t, err)
			require.Equal(t, SourceModel, query.Source)
			require.Equal(t, tt.wantSQL, query.SQL)
			require.Equal(t, 1, model.calls)
		})
	}
}

func TestSQLGen_ModelErrors(t *testing.T) {
	t.Run("completion failure propagates", func(t *testing.T) {
		model := &mockLLM{err: errors.New("rate limited")}
		g := newGenerator(t, model)

		_, err := g.Generate(context.Background(), "How many sales happened in EMEA?")
		require.ErrorContains(t, err, "rate limited")
	})

	t.Run("unparseable output is untranslatable", func(t *testing.T) {
		model := &mockLLM{response: "I cannot answer that question."}
		g := newGenerator(t, model)

		_, err := g.Generate(context.Background(), "How many sales happened in EMEA?")
		require.ErrorIs(t, err, ErrUntranslatable)
	})

	t.Run("invalid sql is untranslatable", func(t *testing.T) {
		model := &mockLLM{response: "```sql\nSELECT * FROM unknown.table\n```"}
		g := newGenerator(t, model)

		_, err := g.Generate(context.Background(), "How many sales happened in EMEA?")
		require.ErrorIs(t, err, ErrUntranslatable)
	})
}

func TestSQLGen_TemplatesPreferredOverModel(t *testing.T) {
	model := &mockLLM{response: "SELECT 1"}
	g := newGenerator(t, model)

	query, err := g.Generate(context.Background(), "Which customers bought the most items?")
	require.NoError(t, err)
	require.Equal(t, SourceTemplate, query.Source)
	require.Equal(t, 0, model.calls)
}

func TestSQLGen_PromptContainsSchemaContext(t *testing.T) {
	desc := schema.Default()
	prompt := buildSQLPrompt(desc, "What were total sales by region?")

	require.Contains(t, prompt, "public.products")
	require.Contains(t, prompt, "public.sales")
	require.Contains(t, prompt, "public.customers")
	require.Contains(t, prompt, "sales_to_products")
	require.Contains(t, prompt, "Sample Queries")
	require.True(t, strings.Contains(prompt, "Respond with JSON"))
}

func TestSQLGen_PromptUsesQuestionRelevantSamples(t *testing.T) {
	desc := schema.Default()

	apparel := buildSQLPrompt(desc, "how are apparel sales doing")
	require.Contains(t, apparel, "category = 'Apparel'")

	electronics := buildSQLPrompt(desc, "electronics revenue by region")
	require.Contains(t, electronics, "category = 'Electronics'")
	require.NotContains(t, electronics, "category = 'Apparel'")
}
