// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/grovetools/mongrove/internal/utils"
	"github.com/rs/zerolog/log"
)

const DefaultBatchSize = 500

// Options carries the run configuration explicitly; the reconciler keeps no
// ambient state beyond its two store connections.
type Options struct {
	BatchSize         int
	ExcludedDatabases []string
	Observer          Observer
}

// Reconciler converges a target store toward a source store using upserts
// only. The source is never mutated and nothing is ever deleted from the
// target.
type Reconciler struct {
	source    Store
	target    Store
	batchSize int
	excluded  map[string]struct{}
	observer  Observer
}

func New(source Store, target Store, opts Options) *Reconciler {
	var batchSize = opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var observer = opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	var excluded = make(map[string]struct{}, len(opts.ExcludedDatabases))
	for _, name := range opts.ExcludedDatabases {
		excluded[name] = struct{}{}
	}

	return &Reconciler{
		source:    source,
		target:    target,
		batchSize: batchSize,
		excluded:  excluded,
		observer:  observer,
	}
}

// Candidates lists a store's databases eligible for a run, sorted by name.
// Excluded databases never appear, regardless of store contents.
func Candidates(ctx context.Context, store Store, excludedDatabases []string) ([]string, error) {
	names, err := store.DatabaseNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not enumerate source databases: %w", err)
	}

	var excluded = make(map[string]struct{}, len(excludedDatabases))
	for _, name := range excludedDatabases {
		excluded[name] = struct{}{}
	}

	return filterCandidates(names, excluded), nil
}

// Candidates lists the source databases eligible for this reconciler's runs.
func (r *Reconciler) Candidates(ctx context.Context) ([]string, error) {
	names, err := r.source.DatabaseNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not enumerate source databases: %w", err)
	}

	return filterCandidates(names, r.excluded), nil
}

func filterCandidates(names []string, excluded map[string]struct{}) []string {
	var candidates = make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := excluded[name]; ok {
			continue
		}
		candidates = append(candidates, name)
	}

	sort.Strings(candidates)
	return candidates
}

// Run reconciles every selected database and aggregates the per-collection
// stats into a run total. A fatal store error aborts the remaining work; the
// returned report covers everything completed up to that point.
func (r *Reconciler) Run(ctx context.Context, selected []string) (*RunReport, error) {
	var databases = make([]string, 0, len(selected))
	for _, name := range selected {
		if _, ok := r.excluded[name]; ok {
			log.Warn().Str("database", name).Msg("Refusing to sync excluded database")
			continue
		}
		databases = append(databases, name)
	}

	if len(databases) == 0 {
		return nil, ErrEmptySelection
	}

	var report = &RunReport{ID: uuid.NewString()}
	r.observer.RunStarted(report.ID, databases)

	for _, database := range databases {
		databaseReport, err := r.reconcileDatabase(ctx, database)
		report.Databases = append(report.Databases, databaseReport)
		report.Totals.fold(databaseReport.Totals())
		if err != nil {
			return report, fmt.Errorf("database %q: %w", database, err)
		}
	}

	log.Info().
		Str("runId", report.ID).
		Int64("inserted", report.Totals.Inserted).
		Int64("replaced", report.Totals.Replaced).
		Int64("unchanged", report.Totals.Unchanged).
		Int64("orphaned", report.Totals.Orphaned).
		Msg("Run completed")

	return report, nil
}

// reconcileDatabase visits the collections the source defines, in source
// enumeration order. Collections existing only in the target are out of
// scope and are neither visited nor counted.
func (r *Reconciler) reconcileDatabase(ctx context.Context, database string) (DatabaseReport, error) {
	var report = DatabaseReport{Name: database}
	r.observer.DatabaseStarted(database)

	collections, err := r.source.CollectionNames(ctx, database)
	if err != nil {
		return report, fmt.Errorf("could not enumerate collections: %w", err)
	}

	for _, collection := range collections {
		stats, err := r.reconcileCollection(ctx, database, collection)
		if err != nil {
			return report, fmt.Errorf("collection %q: %w", collection, err)
		}

		var collectionReport = CollectionReport{Name: collection, Stats: stats}
		report.Collections = append(report.Collections, collectionReport)
		r.observer.CollectionReconciled(database, collectionReport)
	}

	r.observer.DatabaseFinished(report)
	return report, nil
}

// reconcileCollection streams the source collection, upserts its documents
// into the same-named target collection in unordered batches, then runs an
// independent pass counting target documents whose key is absent from the
// source. The decoupling keeps the orphan count correct even when a store
// cannot report per-document match detail reliably.
func (r *Reconciler) reconcileCollection(ctx context.Context, database, collection string) (CollectionStats, error) {
	var stats CollectionStats

	cursor, err := r.source.Documents(ctx, database, collection)
	if err != nil {
		return stats, fmt.Errorf("could not stream source documents: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			log.Warn().Err(err).Fields(utils.CreateFieldsForCollection(database, collection)).Msg("Could not close source cursor")
		}
	}()

	var keys = make([]any, 0)
	var batch = make([]Document, 0, r.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		result, err := r.target.BulkReplace(ctx, database, collection, batch)
		if err != nil {
			return err
		}
		if result.Failed > 0 {
			log.Warn().
				Fields(utils.CreateFieldsForBatch(database, collection, len(batch))).
				Int64("failed", result.Failed).
				Msg("Some instructions of an unordered batch did not apply")
		}

		stats.addBatch(result)
		batch = batch[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var document = cursor.Document()
		keys = append(keys, document.Key)
		batch = append(batch, document)

		if len(batch) >= r.batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
			// Cooperative cancellation happens on batch boundaries only, so
			// a started batch always applies whole.
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return stats, fmt.Errorf("source cursor failed: %w", err)
	}
	if err := flush(); err != nil {
		return stats, err
	}

	orphaned, err := r.target.CountMissing(ctx, database, collection, keys)
	if err != nil {
		return stats, fmt.Errorf("could not count orphaned documents: %w", err)
	}
	stats.Orphaned = orphaned

	return stats, nil
}
