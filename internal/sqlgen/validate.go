package sqlgen

import (
	"fmt"
	"strings"

	"github.com/retailiq/nl2sql-agent/internal/schema"
)

// Validate performs basic structural checks on a SQL string: read-only,
// balanced parentheses, and at least one known, schema-qualified table
// referenced via FROM or JOIN. It is a sanity filter for model output, not a
// parser.
func Validate(sql string, desc *schema.Descriptor) error {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return fmt.Errorf("empty SQL query")
	}

	upper := strings.ToUpper(sql)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return fmt.Errorf("query must start with SELECT or WITH")
	}

	if strings.Count(sql, "(") != strings.Count(sql, ")") {
		return fmt.Errorf("mismatched parentheses")
	}

	referenced := false
	for _, table := range desc.TableNames() {
		qualified := strings.ToUpper(desc.QualifiedName(table))
		if strings.Contains(upper, "FROM "+qualified) || strings.Contains(upper, "JOIN "+qualified) {
			referenced = true
			break
		}
	}
	if !referenced {
		return fmt.Errorf("query must reference at least one of the known tables (%s)",
			strings.Join(desc.TableNames(), ", "))
	}

	return nil
}

// ReferencedTables returns the known tables the SQL references, in schema
// declaration order.
func ReferencedTables(sql string, desc *schema.Descriptor) []string {
	upper := strings.ToUpper(sql)
	var out []string
	for _, table := range desc.TableNames() {
		if strings.Contains(upper, strings.ToUpper(desc.QualifiedName(table))) {
			out = append(out, table)
		}
	}
	return out
}
