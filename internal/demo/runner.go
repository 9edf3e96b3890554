// Package demo runs the bundled query catalog against the agent and reports
// per-question results.
package demo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailiq/nl2sql-agent/internal/agent"
	"github.com/retailiq/nl2sql-agent/internal/catalog"
)

// Record is the outcome of one catalog question. Exactly one record is
// produced per question, in catalog order.
type Record struct {
	Entry    catalog.Entry
	Answer   *agent.Answer
	Err      error
	Duration time.Duration
}

// Success reports whether the question produced rows without error.
func (r Record) Success() bool {
	return r.Err == nil
}

// Report is the outcome of a full demo run.
type Report struct {
	RunID   string
	Records []Record
}

// Failed returns the records that ended in error.
func (rep *Report) Failed() []Record {
	var out []Record
	for _, r := range rep.Records {
		if !r.Success() {
			out = append(out, r)
		}
	}
	return out
}

type Config struct {
	Logger *slog.Logger
	Agent  *agent.Agent
	Out    io.Writer
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if cfg.Agent == nil {
		return fmt.Errorf("agent is required")
	}
	if cfg.Out == nil {
		return fmt.Errorf("output writer is required")
	}
	return nil
}

// Runner executes demo questions strictly sequentially, continuing past
// per-question failures.
type Runner struct {
	log *slog.Logger
	cfg Config
}

func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate demo runner config: %w", err)
	}
	return &Runner{log: cfg.Logger, cfg: cfg}, nil
}

// RunAll runs the full catalog and prints per-question analysis plus a
// summary. The report preserves catalog order.
func (r *Runner) RunAll(ctx context.Context) (*Report, error) {
	entries := catalog.Entries()
	report := &Report{RunID: uuid.NewString()}

	fmt.Fprintf(r.cfg.Out, "Running %d demo queries (run %s)\n", len(entries), report.RunID)

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fmt.Fprintf(r.cfg.Out, "\n[%d/%d] %s\n", i+1, len(entries), entry.Category)
		fmt.Fprintf(r.cfg.Out, "Question: %s\n", entry.Question)

		rec := r.runOne(ctx, entry)
		report.Records = append(report.Records, rec)
		r.printRecord(rec)
	}

	r.printSummary(report)
	return report, nil
}

// RunQuick runs only the small core question set.
func (r *Runner) RunQuick(ctx context.Context) (*Report, error) {
	questions := catalog.QuickQuestions()
	report := &Report{RunID: uuid.NewString()}

	fmt.Fprintf(r.cfg.Out, "Running quick demo with %d core queries (run %s)\n", len(questions), report.RunID)

	byQuestion := make(map[string]catalog.Entry)
	for _, e := range catalog.Entries() {
		byQuestion[e.Question] = e
	}

	for i, q := range questions {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fmt.Fprintf(r.cfg.Out, "\n[%d/%d] %s\n", i+1, len(questions), q)

		entry, ok := byQuestion[q]
		if !ok {
			entry = catalog.Entry{Question: q}
		}
		rec := r.runOne(ctx, entry)
		report.Records = append(report.Records, rec)
		r.printRecord(rec)
	}

	r.printSummary(report)
	return report, nil
}

func (r *Runner) runOne(ctx context.Context, entry catalog.Entry) Record {
	start := time.Now()
	ans, err := r.cfg.Agent.Answer(ctx, entry.Question)
	return Record{
		Entry:    entry,
		Answer:   ans,
		Err:      err,
		Duration: time.Since(start),
	}
}

func (r *Runner) printRecord(rec Record) {
	if !rec.Success() {
		fmt.Fprintf(r.cfg.Out, "FAILED: %v\n", rec.Err)
		return
	}

	fmt.Fprintf(r.cfg.Out, "SQL (%s):\n%s\n", rec.Answer.Source, rec.Answer.SQL)
	fmt.Fprintf(r.cfg.Out, "Rows: %d (%.2fs)\n", rec.Answer.Result.Count, rec.Duration.Seconds())

	// Cross-check the SQL against the tables a correct answer is expected to
	// touch.
	if len(rec.Entry.ExpectedTables) > 0 {
		found := 0
		upper := strings.ToUpper(rec.Answer.SQL)
		for _, table := range rec.Entry.ExpectedTables {
			if strings.Contains(upper, strings.ToUpper(table)) {
				found++
			}
		}
		fmt.Fprintf(r.cfg.Out, "Expected tables referenced: %d/%d\n", found, len(rec.Entry.ExpectedTables))
	}
}

func (r *Runner) printSummary(report *Report) {
	total := len(report.Records)
	failed := report.Failed()
	succeeded := total - len(failed)

	fmt.Fprintf(r.cfg.Out, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintln(r.cfg.Out, "DEMO SUMMARY")
	fmt.Fprintf(r.cfg.Out, "Total: %d  Succeeded: %d  Failed: %d\n", total, succeeded, len(failed))
	if total > 0 {
		fmt.Fprintf(r.cfg.Out, "Success rate: %.1f%%\n", float64(succeeded)/float64(total)*100)
	}

	// Category breakdown in catalog order.
	type stats struct{ total, success int }
	byCategory := make(map[string]*stats)
	var order []string
	for _, rec := range report.Records {
		cat := rec.Entry.Category
		s, ok := byCategory[cat]
		if !ok {
			s = &stats{}
			byCategory[cat] = s
			order = append(order, cat)
		}
		s.total++
		if rec.Success() {
			s.success++
		}
	}
	if len(order) > 0 {
		fmt.Fprintln(r.cfg.Out, "\nCategory breakdown:")
		for _, cat := range order {
			s := byCategory[cat]
			fmt.Fprintf(r.cfg.Out, "  %s: %d/%d\n", cat, s.success, s.total)
		}
	}

	if len(failed) > 0 {
		fmt.Fprintln(r.cfg.Out, "\nFailed queries:")
		for _, rec := range failed {
			fmt.Fprintf(r.cfg.Out, "  %q - %v\n", rec.Entry.Question, rec.Err)
		}
	}
}
