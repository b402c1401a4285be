// Package agent orchestrates the full question pipeline: cache lookup,
// planning, validation, SQL compilation and execution, statistics feedback,
// and the optional LLM fallback.
package agent

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dbsmedya/goplanner/internal/cache"
	"github.com/dbsmedya/goplanner/internal/compiler"
	"github.com/dbsmedya/goplanner/internal/config"
	"github.com/dbsmedya/goplanner/internal/llm"
	"github.com/dbsmedya/goplanner/internal/logger"
	"github.com/dbsmedya/goplanner/internal/planner"
	"github.com/dbsmedya/goplanner/internal/schema"
	"github.com/dbsmedya/goplanner/internal/selector"
	"github.com/dbsmedya/goplanner/internal/stats"
	"github.com/dbsmedya/goplanner/internal/types"
)

// ValidationError reports a plan rejected before execution, carrying every
// reason found.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "plan validation failed: " + strings.Join(e.Reasons, "; ")
}

// Result is the outcome of processing one question.
type Result struct {
	Success bool
	Data    *types.ResultSet
	SQL     string
	Elapsed time.Duration
	Rows    int
	Plan    *planner.Plan
	Cached  bool
	// Answer holds the LLM fallback text when the deterministic path was
	// rejected.
	Answer string
}

// Metrics is a point-in-time view of engine effectiveness.
type Metrics struct {
	Cache   cache.Stats
	Tables  map[string]stats.TableSnapshot
	Buckets map[string]stats.BucketSnapshot
}

// Engine wires the planner, compiler, selector, cache, and fallback agent
// behind a single entry point. Safe for concurrent use.
type Engine struct {
	catalog  *schema.Catalog
	selector *selector.Selector
	planner  *planner.Planner
	compiler *compiler.Compiler
	cache    *cache.Cache[*Result]
	stats    *stats.Store
	fallback llm.Agent
	logger   *logger.Logger
	cfg      *config.Config
}

// New assembles an Engine from configuration. db may be nil for plan-only
// use. A nil fallback agent disables the LLM path.
func New(cfg *config.Config, cat *schema.Catalog, db *sql.DB, fallback llm.Agent, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewDefault()
	}
	if fallback == nil {
		fallback = llm.Disabled{}
	}

	st := stats.NewStore()
	sel := selector.New(cat, st, log)
	pl := planner.New(cat, sel, cfg.Planner.MaxTables, log)
	comp := compiler.New(db, st, time.Duration(cfg.Planner.QueryTimeoutSeconds)*time.Second, log)

	var resultCache *cache.Cache[*Result]
	if cfg.Cache.Enabled {
		resultCache = cache.New[*Result](time.Duration(cfg.Cache.TTLSeconds)*time.Second, cfg.Cache.MaxEntries)
	}

	return &Engine{
		catalog:  cat,
		selector: sel,
		planner:  pl,
		compiler: comp,
		cache:    resultCache,
		stats:    st,
		fallback: fallback,
		logger:   log,
		cfg:      cfg,
	}
}

// Process answers one question end to end. Validation failures fall back to
// the LLM agent when one is configured; otherwise they surface as a
// *ValidationError.
func (e *Engine) Process(ctx context.Context, question string) (*Result, error) {
	log := e.logger.WithQuestion(question)

	if e.cache != nil {
		if cached, ok := e.cache.Get(question); ok {
			log.Debug("Cache hit")
			hit := *cached
			hit.Cached = true
			return &hit, nil
		}
	}

	plan := e.planner.Create(question, e.cfg.Planner.MaxResults)

	if ok, reasons := e.planner.Validate(plan); !ok {
		log.WithIntent(plan.Intent.String()).Infof("Plan rejected: %v", reasons)
		return e.answerViaFallback(ctx, question, plan, reasons)
	}

	sqlText := e.compiler.Compile(plan)
	log.Debugf("Compiled SQL:\n%s", sqlText)

	data, err := e.compiler.Execute(ctx, sqlText)
	if err != nil {
		return nil, err
	}

	e.compiler.RecordStats(plan, data.Stats.Elapsed, data.Stats.RowCount)

	result := &Result{
		Success: true,
		Data:    data,
		SQL:     sqlText,
		Elapsed: data.Stats.Elapsed,
		Rows:    data.Stats.RowCount,
		Plan:    plan,
	}
	if e.cache != nil {
		e.cache.Set(question, result)
	}

	return result, nil
}

// answerViaFallback asks the LLM agent when one is wired; the rejected
// plan's analysis rides along as a hint.
func (e *Engine) answerViaFallback(ctx context.Context, question string, plan *planner.Plan, reasons []string) (*Result, error) {
	if _, disabled := e.fallback.(llm.Disabled); disabled {
		return nil, &ValidationError{Reasons: reasons}
	}

	answer, err := e.fallback.Answer(ctx, question, PlanHint(plan))
	if err != nil {
		e.logger.WithQuestion(question).Warnf("Fallback agent failed: %v", err)
		return nil, &ValidationError{Reasons: reasons}
	}

	result := &Result{
		Success: true,
		Plan:    plan,
		Answer:  answer,
	}
	if e.cache != nil {
		e.cache.Set(question, result)
	}
	return result, nil
}

// PlanHint renders the plan analysis as context for the fallback agent.
func PlanHint(plan *planner.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query intent: %s\n", plan.Intent)
	fmt.Fprintf(&b, "Relevant tables: %s\n", strings.Join(plan.Tables, ", "))
	if len(plan.Filters) > 0 {
		fmt.Fprintf(&b, "Extracted conditions: %s\n", strings.Join(plan.Filters, "; "))
	}
	fmt.Fprintf(&b, "Result limit: %d", plan.Limit)
	return b.String()
}

// PlanOnly builds and validates a plan without executing it. The compiled
// SQL is returned even for invalid plans so callers can inspect it.
func (e *Engine) PlanOnly(question string) (*planner.Plan, string, []string) {
	plan := e.planner.Create(question, e.cfg.Planner.MaxResults)
	_, reasons := e.planner.Validate(plan)
	return plan, e.compiler.Compile(plan), reasons
}

// SuggestTables returns the relevance-ranked tables for a question.
func (e *Engine) SuggestTables(question string) []string {
	return e.selector.SelectTables(question, e.cfg.Planner.MaxTables)
}

// SuggestColumns returns up to 20 "table.column" suggestions for a question.
func (e *Engine) SuggestColumns(question string) []string {
	return e.selector.SuggestColumns(question)
}

// Metrics returns cache counters and the statistics snapshot.
func (e *Engine) Metrics() Metrics {
	m := Metrics{}
	if e.cache != nil {
		m.Cache = e.cache.Stats()
	}
	m.Tables, m.Buckets = e.stats.Snapshot()
	return m
}

// ClearCache drops all cached results. No-op when caching is disabled.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}
