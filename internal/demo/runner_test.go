package demo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retailiq/nl2sql-agent/internal/agent"
	"github.com/retailiq/nl2sql-agent/internal/catalog"
	"github.com/retailiq/nl2sql-agent/internal/connector"
	"github.com/retailiq/nl2sql-agent/internal/sqlgen"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedGenerator fails on the questions it is told to and answers the rest
// with a fixed query.
type scriptedGenerator struct {
	failOn map[string]bool
}

func (g *scriptedGenerator) Generate(_ context.Context, question string) (sqlgen.Query, error) {
	if g.failOn[question] {
		return sqlgen.Query{}, sqlgen.ErrUntranslatable
	}
	return sqlgen.Query{
		SQL:    "SELECT COUNT(*) AS total FROM public.sales JOIN public.products USING (product_id)",
		Source: sqlgen.SourceTemplate,
	}, nil
}

type staticExecutor struct {
	calls int
}

func (e *staticExecutor) ExecuteSQL(_ context.Context, _ string) (*connector.QueryResult, error) {
	e.calls++
	return &connector.QueryResult{
		Columns: []string{"total"},
		Rows:    []connector.Row{{"total": 7}},
		Count:   1,
	}, nil
}

func testAgent(t *testing.T, gen agent.Generator, exec connector.Executor) *agent.Agent {
	t.Helper()
	a, err := agent.New(agent.Config{Logger: testLogger(t), Generator: gen, Executor: exec})
	require.NoError(t, err)
	return a
}

func TestRunner_ConfigValidate(t *testing.T) {
	a := testAgent(t, &scriptedGenerator{}, &staticExecutor{})

	_, err := NewRunner(Config{Agent: a, Out: io.Discard})
	require.ErrorContains(t, err, "logger is required")

	_, err = NewRunner(Config{Logger: testLogger(t), Out: io.Discard})
	require.ErrorContains(t, err, "agent is required")

	_, err = NewRunner(Config{Logger: testLogger(t), Agent: a})
	require.ErrorContains(t, err, "output writer is required")
}

func TestRunner_RunAll(t *testing.T) {
	exec := &staticExecutor{}
	var out bytes.Buffer
	r, err := NewRunner(Config{
		Logger: testLogger(t),
		Agent:  testAgent(t, &scriptedGenerator{}, exec),
		Out:    &out,
	})
	require.NoError(t, err)

	report, err := r.RunAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, report.RunID)

	entries := catalog.Entries()
	require.Len(t, report.Records, len(entries))
	require.Equal(t, len(entries), exec.calls)
	for i, rec := range report.Records {
		require.Equal(t, entries[i].Question, rec.Entry.Question)
		require.True(t, rec.Success())
	}
	require.Empty(t, report.Failed())

	require.Contains(t, out.String(), "DEMO SUMMARY")
	require.Contains(t, out.String(), "Success rate: 100.0%")
	require.Contains(t, out.String(), "Category breakdown:")
}

func TestRunner_RunAllContinuesPastFailures(t *testing.T) {
	entries := catalog.Entries()
	failing := entries[2].Question

	var out bytes.Buffer
	r, err := NewRunner(Config{
		Logger: testLogger(t),
		Agent:  testAgent(t, &scriptedGenerator{failOn: map[string]bool{failing: true}}, &staticExecutor{}),
		Out:    &out,
	})
	require.NoError(t, err)

	report, err := r.RunAll(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Records, len(entries))

	failed := report.Failed()
	require.Len(t, failed, 1)
	require.Equal(t, failing, failed[0].Entry.Question)
	require.ErrorIs(t, failed[0].Err, sqlgen.ErrUntranslatable)

	require.Contains(t, out.String(), "FAILED:")
	require.Contains(t, out.String(), "Failed queries:")
}

func TestRunner_RunAllStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, err := NewRunner(Config{
		Logger: testLogger(t),
		Agent:  testAgent(t, &scriptedGenerator{}, &staticExecutor{}),
		Out:    io.Discard,
	})
	require.NoError(t, err)

	report, err := r.RunAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, report.Records)
}

func TestRunner_RunQuick(t *testing.T) {
	exec := &staticExecutor{}
	var out bytes.Buffer
	r, err := NewRunner(Config{
		Logger: testLogger(t),
		Agent:  testAgent(t, &scriptedGenerator{}, exec),
		Out:    &out,
	})
	require.NoError(t, err)

	report, err := r.RunQuick(context.Background())
	require.NoError(t, err)

	quick := catalog.QuickQuestions()
	require.Len(t, report.Records, len(quick))
	for i, rec := range report.Records {
		require.Equal(t, quick[i], rec.Entry.Question)
		// Quick questions resolve to full catalog entries, context included.
		require.NotEmpty(t, rec.Entry.Category)
	}
}

func TestRecord_Success(t *testing.T) {
	require.True(t, Record{}.Success())
	require.False(t, Record{Err: errors.New("boom")}.Success())
}
