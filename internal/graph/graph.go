// Package graph provides the foreign-key relationship graph and join-path
// construction for GoPlanner.
package graph

import (
	"sort"

	"github.com/dbsmedya/goplanner/internal/schema"
)

// Graph is an undirected graph over table names. An edge exists between two
// tables iff a foreign key connects them in either direction.
type Graph struct {
	adjacency map[string]map[string]bool
	neighbors map[string][]string // sorted, derived from adjacency
}

// BuildFromCatalog derives the relationship graph from the schema catalog.
// Symmetry is guaranteed by construction: each FK adds both directions.
func BuildFromCatalog(cat *schema.Catalog) *Graph {
	g := &Graph{
		adjacency: make(map[string]map[string]bool),
		neighbors: make(map[string][]string),
	}

	for _, table := range cat.Tables() {
		for _, fk := range cat.ForeignKeysOf(table) {
			if !cat.Exists(fk.RefTable) {
				continue
			}
			g.addEdge(table, fk.RefTable)
		}
	}

	for table, adj := range g.adjacency {
		names := make([]string, 0, len(adj))
		for n := range adj {
			names = append(names, n)
		}
		sort.Strings(names)
		g.neighbors[table] = names
	}

	return g
}

func (g *Graph) addEdge(a, b string) {
	if g.adjacency[a] == nil {
		g.adjacency[a] = make(map[string]bool)
	}
	if g.adjacency[b] == nil {
		g.adjacency[b] = make(map[string]bool)
	}
	g.adjacency[a][b] = true
	g.adjacency[b][a] = true
}

// Neighbors returns the tables adjacent to the given table, sorted by name.
// The returned slice must not be modified.
func (g *Graph) Neighbors(table string) []string {
	return g.neighbors[table]
}

// HasEdge reports whether a foreign key connects the two tables.
func (g *Graph) HasEdge(a, b string) bool {
	return g.adjacency[a][b]
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, adj := range g.adjacency {
		total += len(adj)
	}
	return total / 2
}
