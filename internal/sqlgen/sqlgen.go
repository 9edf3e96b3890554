// Package sqlgen turns a natural-language question into a SQL string, either
// by matching one of the bundled demo templates or by forwarding the question
// and schema to the hosted model.
package sqlgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/retailiq/nl2sql-agent/internal/llm"
	"github.com/retailiq/nl2sql-agent/internal/schema"
)

// ErrUntranslatable is returned when no template matches and no model call is
// configured or the model output could not be used.
var ErrUntranslatable = errors.New("question could not be translated to SQL")

// Source records which path produced a query.
type Source string

const (
	SourceTemplate Source = "template"
	SourceModel    Source = "model"
)

// Query is a generated SQL query.
type Query struct {
	SQL         string
	Source      Source
	Explanation string
}

const defaultMatchThreshold = 0.75

type Config struct {
	Logger *slog.Logger
	Schema *schema.Descriptor

	// LLM is optional. When nil, questions without a matching template fail
	// with ErrUntranslatable.
	LLM llm.Client

	// MatchThreshold is the minimum token overlap for a fuzzy template match.
	MatchThreshold float64
}

func (cfg *Config) Validate() error {
	if cfg.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if cfg.Schema == nil {
		return fmt.Errorf("schema is required")
	}
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = defaultMatchThreshold
	}
	return nil
}

// Generator produces SQL for natural-language questions.
type Generator struct {
	log    *slog.Logger
	cfg    Config
	schema *schema.Descriptor
}

func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate sqlgen config: %w", err)
	}
	return &Generator{
		log:    cfg.Logger,
		cfg:    cfg,
		schema: cfg.Schema,
	}, nil
}

// Generate produces SQL for the question. Templates are tried first; the
// model is the fallback when one is configured.
func (g *Generator) Generate(ctx context.Context, question string) (Query, error) {
	if tmpl, ok := matchTemplate(question, g.cfg.MatchThreshold); ok {
		g.log.Debug("matched demo template", "question", question)
		return Query{SQL: tmpl.SQL, Source: SourceTemplate, Explanation: tmpl.Explanation}, nil
	}

	if g.cfg.LLM == nil {
		return Query{}, fmt.Errorf("%w: no template matched and no model is configured", ErrUntranslatable)
	}

	g.log.Debug("no template matched, forwarding to model", "question", question)
	response, err := g.cfg.LLM.Complete(ctx, buildSQLPrompt(g.schema, question), question)
	if err != nil {
		return Query{}, fmt.Errorf("model completion failed: %w", err)
	}

	sql, explanation, err := parseModelResponse(response)
	if err != nil {
		return Query{}, fmt.Errorf("%w: %v", ErrUntranslatable, err)
	}
	if err := Validate(sql, g.schema); err != nil {
		return Query{}, fmt.Errorf("%w: model produced invalid SQL: %v", ErrUntranslatable, err)
	}

	return Query{SQL: sql, Source: SourceModel, Explanation: explanation}, nil
}
