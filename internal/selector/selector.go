// Package selector maps natural-language questions to relevance-ranked
// table subsets and join paths over the foreign-key graph.
package selector

import (
	"sort"
	"strings"

	"github.com/dbsmedya/goplanner/internal/graph"
	"github.com/dbsmedya/goplanner/internal/logger"
	"github.com/dbsmedya/goplanner/internal/schema"
	"github.com/dbsmedya/goplanner/internal/semantics"
	"github.com/dbsmedya/goplanner/internal/stats"
)

// Scoring weights. The feedback terms pull frequently-queried tables up and
// chronically slow tables down.
const (
	tableNameWeight  = 10.0
	columnNameWeight = 5.0
	indexWeight      = 2.0
	foreignKeyWeight = 1.0
	frequencyWeight  = 0.5
	latencyPenalty   = 0.1
)

// Selector selects relevant tables for a question using the static lexicon,
// the relationship graph, and observed performance statistics.
type Selector struct {
	catalog *schema.Catalog
	graph   *graph.Graph
	stats   *stats.Store
	logger  *logger.Logger
}

// New creates a Selector. The relationship graph is derived from the
// catalog's current snapshot.
func New(cat *schema.Catalog, st *stats.Store, log *logger.Logger) *Selector {
	if log == nil {
		log = logger.NewDefault()
	}
	if st == nil {
		st = stats.NewStore()
	}
	return &Selector{
		catalog: cat,
		graph:   graph.BuildFromCatalog(cat),
		stats:   st,
		logger:  log,
	}
}

// SelectTables returns the relevance-ranked tables for a question, at most
// maxTables before essential-table forcing. Selection never fails: when the
// lexicon yields nothing or the catalog is empty, the fixed fallback set is
// returned.
func (s *Selector) SelectTables(question string, maxTables int) []string {
	if maxTables <= 0 {
		maxTables = 10
	}
	q := strings.ToLower(question)

	// Lexicon pass: substring match against every keyword.
	relevant := make(map[string]bool)
	for _, kw := range semantics.LexiconKeywords() {
		if strings.Contains(q, kw) {
			tables, _ := semantics.TablesFor(kw)
			for _, t := range tables {
				relevant[t] = true
			}
		}
	}

	// One-hop expansion across the relationship graph so a question naming
	// a single entity still yields a joinable set.
	expanded := make(map[string]bool, len(relevant))
	for t := range relevant {
		expanded[t] = true
		for _, n := range s.graph.Neighbors(t) {
			expanded[n] = true
		}
	}

	scored := s.scoreTables(q, expanded)
	if len(scored) > maxTables {
		scored = scored[:maxTables]
	}

	selected := make([]string, len(scored))
	for i, sc := range scored {
		selected[i] = sc.table
	}

	selected = s.capSelection(s.ensureEssential(q, selected), q, maxTables)

	if len(selected) == 0 {
		s.logger.WithQuestion(question).Warn("Table selection found nothing, using fallback set")
		return semantics.FallbackTables()
	}

	s.logger.WithQuestion(question).Debugf("Selected %d tables: %v", len(selected), selected)
	return selected
}

type scoredTable struct {
	table string
	score float64
}

// scoreTables ranks candidates; ties break by table name for determinism.
func (s *Selector) scoreTables(q string, candidates map[string]bool) []scoredTable {
	scored := make([]scoredTable, 0, len(candidates))

	for table := range candidates {
		meta := s.catalog.Table(table)
		if meta == nil {
			continue
		}

		score := 0.0
		if strings.Contains(q, table) {
			score += tableNameWeight
		}
		for _, col := range meta.Columns.Keys() {
			if strings.Contains(q, col) {
				score += columnNameWeight
			}
		}
		if len(meta.Indexes) > 0 {
			score += indexWeight
		}
		score += float64(len(meta.ForeignKeys)) * foreignKeyWeight

		if snap, ok := s.stats.Table(table); ok {
			score += float64(snap.Frequency) * frequencyWeight
			score -= snap.AvgSeconds * latencyPenalty
		}

		scored = append(scored, scoredTable{table: table, score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score == scored[j].score {
			return scored[i].table < scored[j].table
		}
		return scored[i].score > scored[j].score
	})

	return scored
}

// ensureEssential appends the forced tables for every triggered rule so
// common intents always have a syntactically valid join chain available.
func (s *Selector) ensureEssential(q string, selected []string) []string {
	have := make(map[string]bool, len(selected))
	for _, t := range selected {
		have[t] = true
	}

	for _, rule := range semantics.EssentialRules() {
		triggered := false
		for _, kw := range rule.Keywords {
			if strings.Contains(q, kw) {
				triggered = true
				break
			}
		}
		if !triggered {
			continue
		}
		for _, t := range rule.Tables {
			if !have[t] && s.catalog.Exists(t) {
				selected = append(selected, t)
				have[t] = true
			}
		}
	}

	return selected
}

// capSelection enforces the maxTables ceiling after essential forcing by
// evicting the lowest-ranked non-essential tables first. Essentials are only
// truncated when they alone exceed the ceiling.
func (s *Selector) capSelection(selected []string, q string, maxTables int) []string {
	if len(selected) <= maxTables {
		return selected
	}

	essential := make(map[string]bool)
	for _, rule := range semantics.EssentialRules() {
		for _, kw := range rule.Keywords {
			if strings.Contains(q, kw) {
				for _, t := range rule.Tables {
					essential[t] = true
				}
				break
			}
		}
	}

	// Walk from the back: the tail holds the lowest scores and the forced
	// appends, and forced appends are essential by construction.
	for i := len(selected) - 1; i >= 0 && len(selected) > maxTables; i-- {
		if !essential[selected[i]] {
			selected = append(selected[:i], selected[i+1:]...)
		}
	}
	if len(selected) > maxTables {
		selected = selected[:maxTables]
	}
	return selected
}

// JoinPath builds the minimum-connector join tree over the selected tables.
// Edge cost starts at 1.0, is raised by either endpoint's observed average
// latency, and is discounted 20% per indexed endpoint. Tables unreachable
// through foreign keys come back as orphans.
func (s *Selector) JoinPath(tables []string) ([]graph.JoinPair, []string) {
	return s.graph.JoinPath(tables, s.joinCost)
}

func (s *Selector) joinCost(a, b string) float64 {
	cost := 1.0
	if snap, ok := s.stats.Table(a); ok {
		cost += snap.AvgSeconds
	}
	if snap, ok := s.stats.Table(b); ok {
		cost += snap.AvgSeconds
	}
	if len(s.catalog.IndexesOf(a)) > 0 {
		cost *= 0.8
	}
	if len(s.catalog.IndexesOf(b)) > 0 {
		cost *= 0.8
	}
	return cost
}

// SuggestColumns returns up to 20 "table.column" suggestions whose column
// name contains a word of the question, drawn from the top selected tables.
func (s *Selector) SuggestColumns(question string) []string {
	words := strings.Fields(strings.ToLower(question))
	tables := s.SelectTables(question, 5)

	var suggestions []string
	for _, table := range tables {
		cols := s.catalog.ColumnsOf(table)
		if cols == nil {
			continue
		}
		for _, col := range cols.Keys() {
			lower := strings.ToLower(col)
			for _, w := range words {
				if strings.Contains(lower, w) {
					suggestions = append(suggestions, table+"."+col)
					break
				}
			}
			if len(suggestions) >= 20 {
				return suggestions
			}
		}
	}
	return suggestions
}
