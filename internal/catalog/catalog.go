// Package catalog bundles the fixed list of demo questions used for testing
// and demonstration runs.
package catalog

// Entry is one demo question with the tables and operations a correct answer
// is expected to touch.
type Entry struct {
	Category           string
	Question           string
	ExpectedTables     []string
	ExpectedOperations []string
	BusinessContext    string
}

var entries = []Entry{
	{
		Category:           "Apparel Sales Analysis",
		Question:           "How many apparels were sold in the last quarter?",
		ExpectedTables:     []string{"sales", "products"},
		ExpectedOperations: []string{"JOIN", "SUM", "WHERE"},
		BusinessContext:    "Primary demo query - quarterly apparel sales volume",
	},
	{
		Category:           "Brand Analysis",
		Question:           "What are the top 5 selling apparel brands?",
		ExpectedTables:     []string{"sales", "products"},
		ExpectedOperations: []string{"JOIN", "GROUP BY", "SUM", "ORDER BY", "LIMIT"},
		BusinessContext:    "Brand performance analysis for apparel category",
	},
	{
		Category:           "Regional Analysis",
		Question:           "Show sales by region for electronics",
		ExpectedTables:     []string{"sales", "products"},
		ExpectedOperations: []string{"JOIN", "GROUP BY", "SUM", "WHERE"},
		BusinessContext:    "Regional performance for electronics category",
	},
	{
		Category:           "Customer Analysis",
		Question:           "Which customers bought the most items?",
		ExpectedTables:     []string{"sales", "customers"},
		ExpectedOperations: []string{"JOIN", "GROUP BY", "SUM", "ORDER BY"},
		BusinessContext:    "Top customers by purchase volume",
	},
	{
		Category:           "Product Pricing",
		Question:           "What is the average price of products by category?",
		ExpectedTables:     []string{"products"},
		ExpectedOperations: []string{"GROUP BY", "AVG"},
		BusinessContext:    "Category-wise pricing analysis",
	},
	{
		Category:           "Customer Growth",
		Question:           "How many customers registered this year?",
		ExpectedTables:     []string{"customers"},
		ExpectedOperations: []string{"COUNT", "WHERE"},
		BusinessContext:    "Customer acquisition tracking",
	},
	{
		Category:           "Sales Performance",
		Question:           "Which region has the highest total sales?",
		ExpectedTables:     []string{"sales"},
		ExpectedOperations: []string{"GROUP BY", "SUM", "ORDER BY"},
		BusinessContext:    "Regional sales performance comparison",
	},
	{
		Category:           "Complex Analysis",
		Question:           "Show monthly sales trends for the last 6 months",
		ExpectedTables:     []string{"sales"},
		ExpectedOperations: []string{"GROUP BY", "SUM", "ORDER BY"},
		BusinessContext:    "Time-series analysis for sales trends",
	},
	{
		Category:           "Cross-Category Analysis",
		Question:           "Compare average order value between categories",
		ExpectedTables:     []string{"sales", "products"},
		ExpectedOperations: []string{"JOIN", "GROUP BY", "AVG"},
		BusinessContext:    "Category performance comparison",
	},
	{
		Category:           "Customer Behavior",
		Question:           "Find customers who bought both apparel and electronics",
		ExpectedTables:     []string{"sales", "products", "customers"},
		ExpectedOperations: []string{"JOIN", "WHERE", "DISTINCT"},
		BusinessContext:    "Cross-category customer analysis",
	},
}

// Entries returns the full demo catalog in its fixed order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Questions returns the catalog questions in order.
func Questions() []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Question
	}
	return out
}

// QuickQuestions returns the small core set used by quick-demo mode.
func QuickQuestions() []string {
	return []string{
		"How many apparels were sold in the last quarter?",
		"What are the top 5 selling apparel brands?",
		"Show sales by region for electronics",
		"Which customers bought the most items?",
	}
}
