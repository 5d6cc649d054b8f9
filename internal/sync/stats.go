// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package sync

// CollectionStats classifies every source document of one collection into
// exactly one of inserted, replaced or unchanged. Orphaned counts target
// documents whose key does not occur in the source collection; it is
// computed in a separate pass and never derived from the upsert counts.
type CollectionStats struct {
	Inserted  int64
	Replaced  int64
	Unchanged int64
	Orphaned  int64
}

// SourceTotal is the number of source documents covered by this result.
func (s CollectionStats) SourceTotal() int64 {
	return s.Inserted + s.Replaced + s.Unchanged
}

func (s *CollectionStats) addBatch(result BatchResult) {
	s.Inserted += result.Inserted
	s.Replaced += result.Modified
	s.Unchanged += result.Matched - result.Modified
}

func (s *CollectionStats) fold(other CollectionStats) {
	s.Inserted += other.Inserted
	s.Replaced += other.Replaced
	s.Unchanged += other.Unchanged
	s.Orphaned += other.Orphaned
}

type CollectionReport struct {
	Name  string
	Stats CollectionStats
}

type DatabaseReport struct {
	Name        string
	Collections []CollectionReport
}

func (r DatabaseReport) Totals() CollectionStats {
	var totals CollectionStats
	for _, collection := range r.Collections {
		totals.fold(collection.Stats)
	}
	return totals
}

// RunReport is the aggregate outcome of a whole run. Databases appear in
// selection order; collections in source enumeration order.
type RunReport struct {
	ID        string
	Databases []DatabaseReport
	Totals    CollectionStats
}

func (r *RunReport) HasOrphans() bool {
	return r.Totals.Orphaned > 0
}
