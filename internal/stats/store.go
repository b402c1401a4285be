// Package stats tracks query performance statistics that feed back into
// table selection and join costing.
package stats

import (
	"fmt"
	"sync"
	"time"

	"github.com/dbsmedya/goplanner/internal/semantics"
)

// TableSnapshot is a point-in-time view of one table's statistics.
type TableSnapshot struct {
	Frequency  int64   // Completed queries touching the table
	AvgSeconds float64 // Average per-query latency attributed to the table
}

// BucketSnapshot is a point-in-time view of one (intent, table count) bucket.
type BucketSnapshot struct {
	Executions int64
	AvgSeconds float64
	AvgRows    float64
}

type tableStats struct {
	count        int64
	totalSeconds float64
}

type bucketKey struct {
	intent semantics.Intent
	tables int
}

type bucketStats struct {
	executions   int64
	totalSeconds float64
	totalRows    int64
}

// Store holds per-table and per-(intent, table-count) running statistics.
// Entries are created lazily and never deleted; cardinality is bounded by
// the fixed set of tables and intents. All updates are atomic under the
// store mutex so concurrent queries never lose increments.
type Store struct {
	mu      sync.Mutex
	tables  map[string]*tableStats
	buckets map[bucketKey]*bucketStats
}

// NewStore creates an empty statistics store.
func NewStore() *Store {
	return &Store{
		tables:  make(map[string]*tableStats),
		buckets: make(map[bucketKey]*bucketStats),
	}
}

// RecordTable attributes elapsed latency to a table.
func (s *Store) RecordTable(table string, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.tables[table]
	if st == nil {
		st = &tableStats{}
		s.tables[table] = st
	}
	st.count++
	st.totalSeconds += elapsed.Seconds()
}

// RecordPlan records one completed execution in its intent/table-count bucket.
func (s *Store) RecordPlan(intent semantics.Intent, tableCount int, elapsed time.Duration, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := bucketKey{intent: intent, tables: tableCount}
	b := s.buckets[key]
	if b == nil {
		b = &bucketStats{}
		s.buckets[key] = b
	}
	b.executions++
	b.totalSeconds += elapsed.Seconds()
	b.totalRows += int64(rows)
}

// Table returns the snapshot for a table; ok is false when the table has
// never been recorded.
func (s *Store) Table(table string) (TableSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.tables[table]
	if st == nil {
		return TableSnapshot{}, false
	}
	return TableSnapshot{
		Frequency:  st.count,
		AvgSeconds: st.totalSeconds / float64(st.count),
	}, true
}

// Snapshot returns copies of all table and bucket statistics. Bucket keys
// are formatted as "<intent>_<tableCount>".
func (s *Store) Snapshot() (map[string]TableSnapshot, map[string]BucketSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := make(map[string]TableSnapshot, len(s.tables))
	for name, st := range s.tables {
		tables[name] = TableSnapshot{
			Frequency:  st.count,
			AvgSeconds: st.totalSeconds / float64(st.count),
		}
	}

	buckets := make(map[string]BucketSnapshot, len(s.buckets))
	for key, b := range s.buckets {
		buckets[fmt.Sprintf("%s_%d", key.intent, key.tables)] = BucketSnapshot{
			Executions: b.executions,
			AvgSeconds: b.totalSeconds / float64(b.executions),
			AvgRows:    float64(b.totalRows) / float64(b.executions),
		}
	}

	return tables, buckets
}
