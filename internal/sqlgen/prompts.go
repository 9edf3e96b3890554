package sqlgen

import (
	"fmt"
	"strings"

	"github.com/retailiq/nl2sql-agent/internal/schema"
)

// Redshift data types the model is told to stick to.
var redshiftDataTypes = []string{
	"SMALLINT", "INTEGER", "BIGINT", "DECIMAL", "NUMERIC",
	"REAL", "DOUBLE PRECISION", "BOOLEAN", "CHAR", "VARCHAR",
	"DATE", "TIMESTAMP", "TIMESTAMPTZ", "TIME", "TIMETZ",
}

// buildSQLPrompt renders the system prompt for SQL generation: guidelines,
// the schema description, join paths, and sample queries picked for the
// question.
func buildSQLPrompt(desc *schema.Descriptor, question string) string {
	var b strings.Builder

	b.WriteString("You are a Redshift SQL expert. Write a Redshift SQL query that answers the user's question.\n\n")

	b.WriteString("<Guidelines>\n")
	b.WriteString("- Join only the tables necessary to answer the question\n")
	b.WriteString("- When joining tables ensure all join columns are the same data type\n")
	fmt.Fprintf(&b, "- Use proper Redshift syntax and data types: %s\n", strings.Join(redshiftDataTypes, ", "))
	fmt.Fprintf(&b, "- Use fully qualified table names: %s.table_name\n", desc.Schema)
	b.WriteString("- For aggregations, include all non-aggregated columns in GROUP BY\n")
	b.WriteString("- When showing top N results, include ORDER BY and LIMIT\n")
	b.WriteString("- Assume \"last quarter\" means the last 3 months from today\n")
	b.WriteString("- Only generate read-only SELECT queries\n\n")

	b.WriteString("<Database Schema>\n")
	b.WriteString(desc.Describe())
	b.WriteString("\n\n<Table Relationships>\n")
	b.WriteString(desc.DescribeRelationships())

	b.WriteString("\n\n<Sample Queries>\n")
	for i, s := range desc.RelevantSamples(question) {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Question: %s\nSQL: %s\nExplanation: %s", s.Question, s.SQL, s.Explanation)
	}

	b.WriteString("\n\nRespond with JSON:\n")
	b.WriteString("{\n  \"sql\": \"the SQL query\",\n  \"explanation\": \"one sentence on what the query does\"\n}\n")

	return b.String()
}

// BuildInterpretPrompt renders the system prompt for turning result rows into
// a natural-language answer.
func BuildInterpretPrompt() string {
	var b strings.Builder
	b.WriteString("You are a data analyst assistant. Generate a clear, informative natural language response based on SQL query results.\n\n")
	b.WriteString("<Guidelines>\n")
	b.WriteString("- Provide key findings from the data in business-friendly language\n")
	b.WriteString("- Include specific numbers and metrics where relevant\n")
	b.WriteString("- If the result is empty, explain what that means\n")
	b.WriteString("- Keep the response short and conversational\n")
	return b.String()
}

// BuildInterpretInput renders the user prompt for result interpretation.
func BuildInterpretInput(question, sql, resultJSON string) string {
	return fmt.Sprintf("Question: %s\n\nSQL:\n%s\n\nResults:\n%s", question, sql, resultJSON)
}
