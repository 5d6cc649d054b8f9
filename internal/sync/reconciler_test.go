// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var systemDatabases = []string{"admin", "config", "local"}

func newTestReconciler(source, target *fakeStore, batchSize int) *Reconciler {
	return New(source, target, Options{
		BatchSize:         batchSize,
		ExcludedDatabases: systemDatabases,
	})
}

func TestRun_EmptyTargetGetsEverything(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.seed("appdb", "users", "1", "alice")
	source.seed("appdb", "users", "2", "bob")
	source.seed("appdb", "users", "3", "carol")

	report, err := newTestReconciler(source, target, 0).Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	stats := report.Databases[0].Collections[0].Stats
	assert.Equal(t, CollectionStats{Inserted: 3}, stats)
	assert.Equal(t, "alice", target.databases["appdb"].collections["users"].bodies["1"])
	assert.Equal(t, "bob", target.databases["appdb"].collections["users"].bodies["2"])
	assert.Equal(t, "carol", target.databases["appdb"].collections["users"].bodies["3"])
}

func TestRun_MixedInsertReplaceOrphan(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.seed("appdb", "users", "1", "a")
	source.seed("appdb", "users", "2", "b")
	target.seed("appdb", "users", "2", "old")
	target.seed("appdb", "users", "3", "c")

	report, err := newTestReconciler(source, target, 0).Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	stats := report.Databases[0].Collections[0].Stats
	assert.Equal(t, CollectionStats{Inserted: 1, Replaced: 1, Unchanged: 0, Orphaned: 1}, stats)

	users := target.databases["appdb"].collections["users"].bodies
	assert.Equal(t, map[string]any{"1": "a", "2": "b", "3": "c"}, users)
}

func TestRun_IdenticalCollectionsAreUnchanged(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	for _, key := range []string{"1", "2", "3", "4"} {
		source.seed("appdb", "sessions", key, "payload-"+key)
		target.seed("appdb", "sessions", key, "payload-"+key)
	}

	report, err := newTestReconciler(source, target, 0).Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	stats := report.Databases[0].Collections[0].Stats
	assert.Equal(t, CollectionStats{Unchanged: 4}, stats)
}

func TestRun_IsIdempotent(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.seed("appdb", "users", "1", "a")
	source.seed("appdb", "users", "2", "b")
	target.seed("appdb", "users", "9", "legacy")

	reconciler := newTestReconciler(source, target, 0)

	first, err := reconciler.Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)
	second, err := reconciler.Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	assert.Equal(t, CollectionStats{Inserted: 2, Orphaned: 1}, first.Totals)
	assert.Equal(t, CollectionStats{Unchanged: 2, Orphaned: 1}, second.Totals)
}

func TestRun_ClassificationPartition(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	for _, key := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		source.seed("appdb", "events", key, "v2-"+key)
	}
	target.seed("appdb", "events", "1", "v1-1")
	target.seed("appdb", "events", "2", "v2-2")

	report, err := newTestReconciler(source, target, 3).Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	stats := report.Databases[0].Collections[0].Stats
	assert.Equal(t, int64(7), stats.SourceTotal(), "inserted+replaced+unchanged must equal the source size")
	assert.Equal(t, CollectionStats{Inserted: 5, Replaced: 1, Unchanged: 1}, stats)
}

func TestRun_EmptySelection(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.seed("appdb", "users", "1", "a")

	_, err := newTestReconciler(source, target, 0).Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Empty(t, target.bulkBatches, "no store mutation on empty selection")
}

func TestRun_ExcludedDatabasesAreNeverSynced(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.seed("admin", "system.users", "1", "root")
	source.seed("appdb", "users", "1", "a")

	reconciler := newTestReconciler(source, target, 0)

	_, err := reconciler.Run(context.Background(), []string{"admin"})
	assert.ErrorIs(t, err, ErrEmptySelection)

	report, err := reconciler.Run(context.Background(), []string{"admin", "appdb"})
	require.NoError(t, err)
	require.Len(t, report.Databases, 1)
	assert.Equal(t, "appdb", report.Databases[0].Name)
	assert.Nil(t, target.databases["admin"])
}

func TestCandidates_ExclusionInvariant(t *testing.T) {
	source := newFakeStore()
	source.seed("zebra", "a", "1", "x")
	source.seed("admin", "a", "1", "x")
	source.seed("local", "a", "1", "x")
	source.seed("config", "a", "1", "x")
	source.seed("alpha", "a", "1", "x")

	reconciler := newTestReconciler(source, newFakeStore(), 0)
	candidates, err := reconciler.Candidates(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "zebra"}, candidates)
}

func TestReconcile_BatchBoundaries(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	for _, key := range []string{"1", "2", "3", "4", "5"} {
		source.seed("appdb", "users", key, "v-"+key)
	}

	_, err := newTestReconciler(source, target, 2).Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	require.Len(t, target.bulkBatches, 3)
	assert.Len(t, target.bulkBatches[0], 2)
	assert.Len(t, target.bulkBatches[1], 2)
	assert.Len(t, target.bulkBatches[2], 1)
}

func TestReconcile_PartialBatchFailureKeepsCounting(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.seed("appdb", "users", "1", "a")
	source.seed("appdb", "users", "2", "b")
	source.seed("appdb", "users", "3", "c")
	target.failInstruction["2"] = true

	report, err := newTestReconciler(source, target, 0).Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	stats := report.Databases[0].Collections[0].Stats
	assert.Equal(t, int64(2), stats.Inserted, "only succeeded instructions are counted")
	// The failed key stays missing from the target, so it does not become an
	// orphan either.
	assert.Equal(t, int64(0), stats.Orphaned)
}

func TestReconcile_FullBatchFailureAbortsRun(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.seed("appdb", "users", "1", "a")
	source.seed("otherdb", "things", "1", "x")
	target.failEntireBatch = true

	report, err := newTestReconciler(source, target, 0).Run(context.Background(), []string{"appdb", "otherdb"})
	assert.ErrorIs(t, err, ErrBatchFailed)
	require.NotNil(t, report, "partial progress is still reported")
	assert.Len(t, report.Databases, 1)
}

func TestRun_TargetOnlyCollectionsAreOutOfScope(t *testing.T) {
	source := newFakeStore()
	target := newFakeStore()
	source.seed("appdb", "users", "1", "a")
	target.seed("appdb", "archive", "1", "keep-me")

	report, err := newTestReconciler(source, target, 0).Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	require.Len(t, report.Databases[0].Collections, 1)
	assert.Equal(t, "users", report.Databases[0].Collections[0].Name)
	assert.Equal(t, int64(0), report.Totals.Orphaned)
	assert.Equal(t, "keep-me", target.databases["appdb"].collections["archive"].bodies["1"])
}

func TestRun_EmptyDatabaseSucceeds(t *testing.T) {
	source := newFakeStore()
	source.seedDatabase("emptydb")

	report, err := newTestReconciler(source, newFakeStore(), 0).Run(context.Background(), []string{"emptydb"})
	require.NoError(t, err)
	require.Len(t, report.Databases, 1)
	assert.Empty(t, report.Databases[0].Collections)
}

func TestRun_ObserverSeesSequentialProgress(t *testing.T) {
	source := newFakeStore()
	source.seed("appdb", "users", "1", "a")
	source.seed("appdb", "sessions", "1", "s")

	var events []string
	observer := &recordingObserver{events: &events}

	reconciler := New(source, newFakeStore(), Options{
		ExcludedDatabases: systemDatabases,
		Observer:          observer,
	})

	_, err := reconciler.Run(context.Background(), []string{"appdb"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"run",
		"db-start appdb",
		"collection users",
		"collection sessions",
		"db-finish appdb",
	}, events)
}

type recordingObserver struct {
	events *[]string
}

func (o *recordingObserver) RunStarted(string, []string) {
	*o.events = append(*o.events, "run")
}

func (o *recordingObserver) DatabaseStarted(database string) {
	*o.events = append(*o.events, "db-start "+database)
}

func (o *recordingObserver) CollectionReconciled(_ string, report CollectionReport) {
	*o.events = append(*o.events, "collection "+report.Name)
}

func (o *recordingObserver) DatabaseFinished(report DatabaseReport) {
	*o.events = append(*o.events, "db-finish "+report.Name)
}
