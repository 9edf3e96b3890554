package sqlgen

import "strings"

// template pairs a catalog question with its hand-written SQL.
type template struct {
	Question    string
	SQL         string
	Explanation string
}

// Demo templates, one per catalog question. The SQL is Redshift syntax with
// schema-qualified table names.
var templates = []template{
	{
		Question: "How many apparels were sold in the last quarter?",
		SQL: "SELECT SUM(s.quantity) AS units_sold\n" +
			"FROM public.sales s\n" +
			"JOIN public.products p ON s.product_id = p.product_id\n" +
			"WHERE p.category = 'Apparel'\n" +
			"  AND s.sale_date >= DATEADD(month, -3, CURRENT_DATE)",
		Explanation: "Units of apparel sold over the trailing three months",
	},
	{
		Question: "What are the top 5 selling apparel brands?",
		SQL: "SELECT p.brand, SUM(s.quantity) AS units_sold\n" +
			"FROM public.sales s\n" +
			"JOIN public.products p ON s.product_id = p.product_id\n" +
			"WHERE p.category = 'Apparel'\n" +
			"GROUP BY p.brand\n" +
			"ORDER BY units_sold DESC\n" +
			"LIMIT 5",
		Explanation: "Apparel brands ranked by units sold",
	},
	{
		Question: "Show sales by region for electronics",
		SQL: "SELECT s.region, SUM(s.total_amount) AS total_sales\n" +
			"FROM public.sales s\n" +
			"JOIN public.products p ON s.product_id = p.product_id\n" +
			"WHERE p.category = 'Electronics'\n" +
			"GROUP BY s.region\n" +
			"ORDER BY total_sales DESC",
		Explanation: "Electronics revenue broken down by region",
	},
	{
		Question: "Which customers bought the most items?",
		SQL: "SELECT c.customer_name, SUM(s.quantity) AS items_bought\n" +
			"FROM public.sales s\n" +
			"JOIN public.customers c ON s.customer_id = c.customer_id\n" +
			"GROUP BY c.customer_name\n" +
			"ORDER BY items_bought DESC\n" +
			"LIMIT 10",
		Explanation: "Customers ranked by total units purchased",
	},
	{
		Question: "What is the average price of products by category?",
		SQL: "SELECT category, AVG(price) AS avg_price\n" +
			"FROM public.products\n" +
			"GROUP BY category\n" +
			"ORDER BY avg_price DESC",
		Explanation: "Mean list price per product category",
	},
	{
		Question: "How many customers registered this year?",
		SQL: "SELECT COUNT(*) AS new_customers\n" +
			"FROM public.customers\n" +
			"WHERE registration_date >= DATE_TRUNC('year', CURRENT_DATE)",
		Explanation: "Customers registered since the start of the calendar year",
	},
	{
		Question: "Which region has the highest total sales?",
		SQL: "SELECT region, SUM(total_amount) AS total_sales\n" +
			"FROM public.sales\n" +
			"GROUP BY region\n" +
			"ORDER BY total_sales DESC\n" +
			"LIMIT 1",
		Explanation: "Single best region by revenue",
	},
	{
		Question: "Show monthly sales trends for the last 6 months",
		SQL: "SELECT DATE_TRUNC('month', sale_date) AS month, SUM(total_amount) AS total_sales\n" +
			"FROM public.sales\n" +
			"WHERE sale_date >= DATEADD(month, -6, CURRENT_DATE)\n" +
			"GROUP BY 1\n" +
			"ORDER BY 1",
		Explanation: "Revenue per month over the trailing six months",
	},
	{
		Question: "Compare average order value between categories",
		SQL: "SELECT p.category, AVG(s.total_amount) AS avg_order_value\n" +
			"FROM public.sales s\n" +
			"JOIN public.products p ON s.product_id = p.product_id\n" +
			"GROUP BY p.category\n" +
			"ORDER BY avg_order_value DESC",
		Explanation: "Mean sale amount per category",
	},
	{
		Question: "Find customers who bought both apparel and electronics",
		SQL: "SELECT DISTINCT c.customer_id, c.customer_name\n" +
			"FROM public.customers c\n" +
			"JOIN public.sales s ON c.customer_id = s.customer_id\n" +
			"JOIN public.products p ON s.product_id = p.product_id\n" +
			"WHERE p.category = 'Apparel'\n" +
			"  AND c.customer_id IN (\n" +
			"    SELECT s2.customer_id\n" +
			"    FROM public.sales s2\n" +
			"    JOIN public.products p2 ON s2.product_id = p2.product_id\n" +
			"    WHERE p2.category = 'Electronics'\n" +
			"  )",
		Explanation: "Customers present in both the Apparel and Electronics buyer sets",
	},
}

// matchTemplate finds a template for the question: normalized exact match
// first, then the best token-overlap match at or above the threshold.
func matchTemplate(question string, threshold float64) (template, bool) {
	norm := normalize(question)
	for _, t := range templates {
		if normalize(t.Question) == norm {
			return t, true
		}
	}

	qTokens := tokenSet(norm)
	best := template{}
	bestScore := 0.0
	for _, t := range templates {
		score := overlap(qTokens, tokenSet(normalize(t.Question)))
		if score > bestScore {
			bestScore = score
			best = t
		}
	}
	if bestScore >= threshold {
		return best, true
	}
	return template{}, false
}

// normalize lowercases and strips punctuation so matching ignores surface
// differences like trailing question marks.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// overlap is the Jaccard index of two token sets.
func overlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			common++
		}
	}
	union := len(a) + len(b) - common
	return float64(common) / float64(union)
}
