// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package sync

import "context"

// Document is an opaque record paired with its identity key. The reconciler
// never looks inside Body; classification relies on the store's own
// match/modify reporting.
type Document struct {
	Key  any
	Body any
}

// BatchResult describes the outcome of one unordered bulk-replace batch.
// Matched counts every instruction that found an existing document under its
// key, including those whose content was already identical (Matched -
// Modified is the number of unchanged documents).
type BatchResult struct {
	Inserted int64
	Modified int64
	Matched  int64
	Failed   int64
}

// Applied returns the number of instructions that took effect on the target,
// counting no-op matches as applied.
func (r BatchResult) Applied() int64 {
	return r.Inserted + r.Matched
}

// DocumentCursor streams documents in the store's native iteration order.
type DocumentCursor interface {
	Next(ctx context.Context) bool
	Document() Document
	Err() error
	Close(ctx context.Context) error
}

// Store is a connection to a reconciliation endpoint. Implementations must
// keep BulkReplace unordered: one failing instruction must not prevent its
// siblings from applying.
type Store interface {
	DatabaseNames(ctx context.Context) ([]string, error)
	CollectionNames(ctx context.Context, database string) ([]string, error)
	Documents(ctx context.Context, database, collection string) (DocumentCursor, error)
	BulkReplace(ctx context.Context, database, collection string, batch []Document) (BatchResult, error)
	CountMissing(ctx context.Context, database, collection string, keys []any) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
