package graph

// JoinPair is one edge of a join path: Left is already connected, Right is
// the table the join brings in.
type JoinPair struct {
	Left  string
	Right string
}

// CostFunc returns the cost of joining two tables. Lower is better.
type CostFunc func(a, b string) float64

// JoinPath builds a minimum-connector tree over the given tables, starting
// from tables[0]. At each step it picks the cheapest FK edge that connects
// an already-included table to a not-yet-included one; ties break by the
// candidate table name, then by the connected table name, so the output is
// reproducible for identical inputs and statistics.
//
// Tables with no FK path to the connected set are returned as orphans; the
// caller decides whether to drop them (the planner does). They are never
// silently cross-joined.
func (g *Graph) JoinPath(tables []string, cost CostFunc) ([]JoinPair, []string) {
	if len(tables) <= 1 {
		return nil, nil
	}
	if cost == nil {
		cost = func(a, b string) float64 { return 1.0 }
	}

	want := make(map[string]bool, len(tables))
	for _, t := range tables {
		want[t] = true
	}

	connected := map[string]bool{tables[0]: true}
	var joins []JoinPair

	for len(connected) < len(want) {
		best := JoinPair{}
		bestCost := 0.0
		found := false

		// Scan candidate edges in deterministic order: connected tables in
		// input order, neighbors pre-sorted by name.
		for _, from := range tables {
			if !connected[from] {
				continue
			}
			for _, to := range g.Neighbors(from) {
				if !want[to] || connected[to] {
					continue
				}
				c := cost(from, to)
				if !found || c < bestCost ||
					(c == bestCost && (to < best.Right || (to == best.Right && from < best.Left))) {
					best = JoinPair{Left: from, Right: to}
					bestCost = c
					found = true
				}
			}
		}

		if !found {
			break
		}
		joins = append(joins, best)
		connected[best.Right] = true
	}

	var orphans []string
	for _, t := range tables {
		if !connected[t] {
			orphans = append(orphans, t)
		}
	}

	return joins, orphans
}
