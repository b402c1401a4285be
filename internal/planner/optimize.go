package planner

// optimizedLimit is the ceiling the result-limiting rule clamps plans to.
const optimizedLimit = 1000

// Rule is one optimization pass over a plan, applied in slice order.
type Rule struct {
	Name        string
	Description string
	Apply       func(*Plan)
}

// optimizationRules run in fixed priority order. Index usage, join order,
// filter pushdown, and subquery rewriting are documented pass-through
// stages: the join path is already cost-ordered by the selector and filters
// are emitted directly into the single WHERE clause, so there is nothing for
// them to move yet. They stay in the list so the pipeline order is visible
// and extensible.
var optimizationRules = []Rule{
	{
		Name:        "index_usage",
		Description: "Prefer indexed columns in WHERE and JOIN clauses",
		Apply:       func(*Plan) {},
	},
	{
		Name:        "join_order",
		Description: "Optimize join order for better performance",
		Apply:       func(*Plan) {},
	},
	{
		Name:        "filter_pushdown",
		Description: "Push filters down to reduce intermediate result sets",
		Apply:       func(*Plan) {},
	},
	{
		Name:        "result_limiting",
		Description: "Clamp LIMIT to prevent large result sets",
		Apply: func(p *Plan) {
			if p.Limit <= 0 || p.Limit > optimizedLimit {
				p.Limit = optimizedLimit
			}
		},
	},
	{
		Name:        "subquery_optimization",
		Description: "Optimize subqueries and CTEs",
		Apply:       func(*Plan) {},
	},
}

// Optimize applies the rule pipeline to a plan in place. Running it again
// on an already optimized plan changes nothing.
func (p *Planner) Optimize(plan *Plan) {
	for _, rule := range optimizationRules {
		rule.Apply(plan)
		p.logger.Debugf("Applied optimization rule: %s", rule.Name)
	}
}

// OptimizationRules returns the pipeline descriptors in application order,
// for display by the plan command.
func OptimizationRules() []Rule {
	return optimizationRules
}
