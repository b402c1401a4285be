// Package planner turns natural-language questions into structured query
// plans: intent, tables, join tree, predicates, ordering, limit, and a cost
// estimate with a validation checklist.
package planner

import (
	"github.com/dbsmedya/goplanner/internal/graph"
	"github.com/dbsmedya/goplanner/internal/semantics"
)

// Step is one stage of the execution plan.
type Step struct {
	Seq                int    `json:"step"`
	Action             string `json:"action"`
	Description        string `json:"description"`
	ValidationRequired bool   `json:"validation_required"`
}

// Plan is the structured, pre-SQL representation of one question. It is
// produced fully formed by Create, optionally mutated in place by Optimize,
// and consumed exactly once by the compiler or rejected by Validate.
type Plan struct {
	Intent        semantics.Intent `json:"intent"`
	Tables        []string         `json:"tables"`
	Joins         []graph.JoinPair `json:"joins"`
	Filters       []string         `json:"filters"`
	Sorts         []string         `json:"sorts"`
	Limit         int              `json:"limit"`
	EstimatedCost float64          `json:"estimated_cost"`
	Steps         []Step           `json:"steps"`
	Checks        []string         `json:"checks"`

	// Degraded marks a plan produced by the fallback path instead of normal
	// planning, with the reason attached. Degraded plans are valid plans.
	Degraded       bool   `json:"degraded,omitempty"`
	DegradedReason string `json:"degraded_reason,omitempty"`
}

// Anchor returns the FROM table of the plan.
func (p *Plan) Anchor() string {
	if len(p.Tables) == 0 {
		return ""
	}
	return p.Tables[0]
}
