// Package agent wires the SQL helper and the connector together behind a
// single question-answering operation. Each call is independent; the only
// state is the immutable configuration.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/retailiq/nl2sql-agent/internal/connector"
	"github.com/retailiq/nl2sql-agent/internal/llm"
	"github.com/retailiq/nl2sql-agent/internal/sqlgen"
)

// Generator produces SQL for a natural-language question.
type Generator interface {
	Generate(ctx context.Context, question string) (sqlgen.Query, error)
}

type Config struct {
	Logger    *slog.Logger
	Generator Generator
	Executor  connector.Executor

	// LLM is optional; when set, Answer also produces a natural-language
	// summary of the result rows.
	LLM llm.Client
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if cfg.Generator == nil {
		return fmt.Errorf("generator is required")
	}
	if cfg.Executor == nil {
		return fmt.Errorf("executor is required")
	}
	return nil
}

// Answer is the result of one question.
type Answer struct {
	Question string
	SQL      string
	Source   sqlgen.Source
	Result   *connector.QueryResult

	// Summary is a natural-language reading of the rows; empty when no model
	// is configured.
	Summary string
}

// Agent answers natural-language questions against the remote warehouse.
type Agent struct {
	log *slog.Logger
	cfg Config
}

func New(cfg Config) (*Agent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, stageErr(StageConfig, err)
	}
	return &Agent{log: cfg.Logger, cfg: cfg}, nil
}

// Answer sequences SQL generation then remote execution for one question.
// Errors carry the originating stage.
func (a *Agent) Answer(ctx context.Context, question string) (*Answer, error) {
	query, err := a.cfg.Generator.Generate(ctx, question)
	if err != nil {
		return nil, stageErr(StageTranslate, err)
	}
	a.log.Debug("generated SQL", "source", query.Source, "sql", query.SQL)

	result, err := a.cfg.Executor.ExecuteSQL(ctx, query.SQL)
	if err != nil {
		return nil, stageErr(StageExecute, err)
	}

	ans := &Answer{
		Question: question,
		SQL:      query.SQL,
		Source:   query.Source,
		Result:   result,
	}

	if a.cfg.LLM != nil {
		summary, err := a.interpret(ctx, ans)
		if err != nil {
			// Interpretation is best effort; the rows already answer the
			// question.
			a.log.Warn("failed to interpret result", "error", err)
		} else {
			ans.Summary = summary
		}
	}

	return ans, nil
}

// interpret asks the model for a natural-language reading of the rows.
func (a *Agent) interpret(ctx context.Context, ans *Answer) (string, error) {
	resultJSON, err := json.Marshal(ans.Result)
	if err != nil {
		return "", stageErr(StageInterpret, fmt.Errorf("failed to encode result: %w", err))
	}
	summary, err := a.cfg.LLM.Complete(ctx, sqlgen.BuildInterpretPrompt(),
		sqlgen.BuildInterpretInput(ans.Question, ans.SQL, string(resultJSON)))
	if err != nil {
		return "", stageErr(StageInterpret, err)
	}
	return summary, nil
}
