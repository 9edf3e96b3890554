package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	flag "github.com/spf13/pflag"

	"github.com/retailiq/nl2sql-agent/internal/agent"
	"github.com/retailiq/nl2sql-agent/internal/config"
	"github.com/retailiq/nl2sql-agent/internal/connector"
	"github.com/retailiq/nl2sql-agent/internal/demo"
	"github.com/retailiq/nl2sql-agent/internal/llm"
	"github.com/retailiq/nl2sql-agent/internal/logger"
	"github.com/retailiq/nl2sql-agent/internal/schema"
	"github.com/retailiq/nl2sql-agent/internal/sqlgen"
)

const defaultConfigPath = "config/agent_config.json"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type flags struct {
	ConfigPath string
	ProjectID  string
	Connection string

	Validate  bool
	Demo      bool
	QuickDemo bool
	Query     string
	Verbose   bool
}

func parseFlags() (*flags, error) {
	f := &flags{}
	flag.StringVar(&f.ConfigPath, "config", defaultConfigPath, "path to agent configuration file")
	flag.StringVar(&f.ProjectID, "project-id", "", "GCP project ID (overrides config)")
	flag.StringVar(&f.Connection, "connection", "", "integration connector name (overrides config)")
	flag.BoolVar(&f.Validate, "validate", false, "validate agent setup and exit")
	flag.BoolVar(&f.Demo, "demo", false, "run the full demo query catalog")
	flag.BoolVar(&f.QuickDemo, "quick-demo", false, "run the core demo queries")
	flag.StringVar(&f.Query, "query", "", "run a single natural language query")
	flag.BoolVar(&f.Verbose, "verbose", false, "enable verbose (debug) logging")
	flag.Parse()

	modes := 0
	for _, on := range []bool{f.Validate, f.Demo, f.QuickDemo, f.Query != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return nil, fmt.Errorf("--validate, --demo, --quick-demo and --query are mutually exclusive")
	}
	return f, nil
}

func run() error {
	// Load .env file if it exists
	_ = godotenv.Load()

	f, err := parseFlags()
	if err != nil {
		return err
	}
	log := logger.New(f.Verbose)

	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		return err
	}
	if f.ProjectID != "" {
		cfg.ProjectID = f.ProjectID
	}
	if f.Connection != "" {
		cfg.Connection = f.Connection
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	desc := schema.Default()

	// Validation mode is local only: configuration and setup checks, no
	// remote call.
	if f.Validate {
		return validateSetup(log, cfg, desc)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log.Info("agent initialized", "project", cfg.ProjectID, "connection", cfg.Connection)

	var model llm.Client
	if llm.Available() {
		model = llm.NewAnthropicClient(log, cfg.Model, 0)
		log.Debug("model translation path configured", "model", cfg.Model)
	} else {
		log.Debug("no model API key found, using template translation only")
	}

	generator, err := sqlgen.New(sqlgen.Config{
		Logger: log,
		Schema: desc,
		LLM:    model,
	})
	if err != nil {
		return err
	}

	executor, err := connector.New(ctx, connector.Config{
		Logger:     log,
		ProjectID:  cfg.ProjectID,
		Location:   cfg.Location,
		Connection: cfg.Connection,
	})
	if err != nil {
		return err
	}

	ag, err := agent.New(agent.Config{
		Logger:    log,
		Generator: generator,
		Executor:  executor,
		LLM:       model,
	})
	if err != nil {
		return err
	}

	switch {
	case f.Demo:
		return runDemo(ctx, log, ag, false)
	case f.QuickDemo:
		return runDemo(ctx, log, ag, true)
	case f.Query != "":
		return runQuery(ctx, ag, os.Stdout, f.Query)
	default:
		return runInteractive(ctx, ag, os.Stdin, os.Stdout)
	}
}

// validateSetup checks required configuration and that the static setup
// (schema, templates) is loadable, without touching the remote service.
func validateSetup(log *slog.Logger, cfg *config.Config, desc *schema.Descriptor) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if _, err := sqlgen.New(sqlgen.Config{Logger: log, Schema: desc}); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	log.Info("validation passed",
		"project", cfg.ProjectID,
		"location", cfg.Location,
		"connection", cfg.Connection,
		"tables", strings.Join(desc.TableNames(), ","))
	fmt.Println("Agent setup validation passed")
	return nil
}

func runDemo(ctx context.Context, log *slog.Logger, ag *agent.Agent, quick bool) error {
	runner, err := demo.NewRunner(demo.Config{
		Logger: log,
		Agent:  ag,
		Out:    os.Stdout,
	})
	if err != nil {
		return err
	}

	var report *demo.Report
	if quick {
		report, err = runner.RunQuick(ctx)
	} else {
		report, err = runner.RunAll(ctx)
	}
	if err != nil {
		return err
	}
	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d demo queries failed", len(failed), len(report.Records))
	}
	return nil
}

func runQuery(ctx context.Context, ag *agent.Agent, out io.Writer, question string) error {
	ans, err := ag.Answer(ctx, question)
	if err != nil {
		return err
	}
	printAnswer(out, ans)
	return nil
}

// runInteractive reads questions from in until EOF or an explicit quit.
// Per-question failures are reported and the session continues.
func runInteractive(ctx context.Context, ag *agent.Agent, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Interactive mode. Ask a question about the retail data, or 'quit' to exit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nquestion> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "quit", "exit", "q":
			return nil
		}

		ans, err := ag.Answer(ctx, question)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		printAnswer(out, ans)
	}
	return scanner.Err()
}

func printAnswer(out io.Writer, ans *agent.Answer) {
	fmt.Fprintf(out, "SQL (%s):\n%s\n\n", ans.Source, ans.SQL)

	if ans.Result.Count == 0 {
		fmt.Fprintln(out, "No rows returned.")
	} else {
		table := tablewriter.NewWriter(out)
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		table.SetBorder(true)
		table.SetHeader(ans.Result.Columns)
		for _, row := range ans.Result.Rows {
			cells := make([]string, len(ans.Result.Columns))
			for i, col := range ans.Result.Columns {
				cells[i] = formatValue(row[col])
			}
			table.Append(cells)
		}
		table.Render()
		fmt.Fprintf(out, "%d row(s)\n", ans.Result.Count)
	}

	if ans.Summary != "" {
		fmt.Fprintf(out, "\n%s\n", ans.Summary)
	}
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
