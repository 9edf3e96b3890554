// Package schema holds the static description of the retail warehouse tables
// the agent queries. The descriptor is prompt context only; it is never
// validated against the live warehouse.
package schema

import (
	"fmt"
	"strings"
)

// Column describes a single warehouse column.
type Column struct {
	Name        string
	Type        string
	Description string
	PrimaryKey  bool
	ForeignKey  string // "table.column" when this column references another table
}

// Table describes a warehouse table and its columns.
type Table struct {
	Name        string
	Description string
	Columns     []Column
}

// Relationship describes a join path between two tables.
type Relationship struct {
	Name        string
	Condition   string
	Description string
}

// SampleQuery pairs a known question with a hand-written reference query.
type SampleQuery struct {
	Question    string
	SQL         string
	Explanation string
}

// Descriptor is the full schema description fed to the translation step.
type Descriptor struct {
	Database      string
	Schema        string
	Tables        []Table
	Relationships []Relationship
	Samples       []SampleQuery
}

// Default returns the descriptor for the demo retail warehouse: three tables
// (products, sales, customers) in the public schema.
func Default() *Descriptor {
	return &Descriptor{
		Database: "retail_demo",
		Schema:   "public",
		Tables: []Table{
			{
				Name:        "products",
				Description: "Product master data with category, brand and list price",
				Columns: []Column{
					{Name: "product_id", Type: "INTEGER", Description: "Unique product identifier", PrimaryKey: true},
					{Name: "product_name", Type: "VARCHAR(256)", Description: "Display name of the product"},
					{Name: "category", Type: "VARCHAR(64)", Description: "Product category (Apparel, Electronics, Home, ...)"},
					{Name: "brand", Type: "VARCHAR(128)", Description: "Brand name"},
					{Name: "price", Type: "DECIMAL(10,2)", Description: "Current list price"},
				},
			},
			{
				Name:        "sales",
				Description: "One row per sale line item",
				Columns: []Column{
					{Name: "sale_id", Type: "INTEGER", Description: "Unique sale identifier", PrimaryKey: true},
					{Name: "product_id", Type: "INTEGER", Description: "Sold product", ForeignKey: "products.product_id"},
					{Name: "customer_id", Type: "INTEGER", Description: "Purchasing customer", ForeignKey: "customers.customer_id"},
					{Name: "region", Type: "VARCHAR(64)", Description: "Sales region"},
					{Name: "quantity", Type: "INTEGER", Description: "Units sold"},
					{Name: "total_amount", Type: "DECIMAL(12,2)", Description: "Total sale amount"},
					{Name: "sale_date", Type: "TIMESTAMP", Description: "When the sale happened"},
				},
			},
			{
				Name:        "customers",
				Description: "Customer master data",
				Columns: []Column{
					{Name: "customer_id", Type: "INTEGER", Description: "Unique customer identifier", PrimaryKey: true},
					{Name: "customer_name", Type: "VARCHAR(256)", Description: "Full name"},
					{Name: "email", Type: "VARCHAR(256)", Description: "Contact email"},
					{Name: "region", Type: "VARCHAR(64)", Description: "Home region"},
					{Name: "registration_date", Type: "TIMESTAMP", Description: "When the customer registered"},
				},
			},
		},
		Relationships: []Relationship{
			{
				Name:        "sales_to_products",
				Condition:   "s.product_id = p.product_id",
				Description: "Links sale line items to product details",
			},
			{
				Name:        "sales_to_customers",
				Condition:   "s.customer_id = c.customer_id",
				Description: "Links sale line items to the purchasing customer",
			},
		},
		Samples: []SampleQuery{
			{
				Question: "How many apparels were sold in the last quarter?",
				SQL: "SELECT SUM(s.quantity) AS units_sold\n" +
					"FROM public.sales s\n" +
					"JOIN public.products p ON s.product_id = p.product_id\n" +
					"WHERE p.category = 'Apparel'\n" +
					"  AND s.sale_date >= DATEADD(month, -3, CURRENT_DATE)",
				Explanation: "Join sales to products, filter on category and a rolling three month window",
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
				Explanation: "Aggregate units by brand within the Apparel category, top five",
			},
			{
				Question: "Show sales by region for electronics",
				SQL: "SELECT s.region, SUM(s.total_amount) AS total_sales\n" +
					"FROM public.sales s\n" +
					"JOIN public.products p ON s.product_id = p.product_id\n" +
					"WHERE p.category = 'Electronics'\n" +
					"GROUP BY s.region\n" +
					"ORDER BY total_sales DESC",
				Explanation: "Aggregate sale amounts by region for a single category",
			},
		},
	}
}

// TableNames returns the bare table names in declaration order.
func (d *Descriptor) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		names[i] = t.Name
	}
	return names
}

// QualifiedName returns the schema-qualified name for a table.
func (d *Descriptor) QualifiedName(table string) string {
	return d.Schema + "." + table
}

// Describe renders the schema as prompt context: one block per table with
// column name, type, key markers and description.
func (d *Descriptor) Describe() string {
	var b strings.Builder
	for i, t := range d.Tables {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Table: %s\n", d.QualifiedName(t.Name))
		fmt.Fprintf(&b, "Description: %s\n", t.Description)
		b.WriteString("Columns:\n")
		for _, c := range t.Columns {
			fmt.Fprintf(&b, "  - %s (%s)", c.Name, c.Type)
			if c.PrimaryKey {
				b.WriteString(" [PRIMARY KEY]")
			} else if c.ForeignKey != "" {
				fmt.Fprintf(&b, " [FOREIGN KEY -> %s]", c.ForeignKey)
			}
			if c.Description != "" {
				fmt.Fprintf(&b, " - %s", c.Description)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// DescribeRelationships renders the join paths as prompt context.
func (d *Descriptor) DescribeRelationships() string {
	lines := make([]string, len(d.Relationships))
	for i, r := range d.Relationships {
		lines[i] = fmt.Sprintf("- %s: %s (%s)", r.Name, r.Condition, r.Description)
	}
	return strings.Join(lines, "\n")
}

// RelevantSamples returns sample queries whose question shares keywords with
// the user question, falling back to the first two samples when nothing
// matches. Used to seed the model prompt with worked examples.
func (d *Descriptor) RelevantSamples(question string) []SampleQuery {
	q := strings.ToLower(question)
	var out []SampleQuery
	for _, s := range d.Samples {
		sq := strings.ToLower(s.Question)
		switch {
		case containsAny(q, "apparel", "clothes", "fashion") && strings.Contains(sq, "apparel"):
			out = append(out, s)
		case containsAny(q, "electronics", "electronic") && strings.Contains(sq, "electronics"):
			out = append(out, s)
		case containsAny(q, "brand", "brands") && strings.Contains(sq, "brand"):
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		n := 2
		if len(d.Samples) < n {
			n = len(d.Samples)
		}
		out = append(out, d.Samples[:n]...)
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
