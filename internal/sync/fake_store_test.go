// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package sync

import (
	"context"
	"fmt"
	"reflect"
)

// fakeStore is an in-memory sync.Store with deterministic enumeration order
// and controllable batch failures.
type fakeStore struct {
	databaseOrder []string
	databases     map[string]*fakeDatabase

	bulkBatches     [][]Document
	failEntireBatch bool
	failInstruction map[string]bool
	closed          bool
}

type fakeDatabase struct {
	collectionOrder []string
	collections     map[string]*fakeCollection
}

type fakeCollection struct {
	keyOrder []string
	bodies   map[string]any
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		databases:       make(map[string]*fakeDatabase),
		failInstruction: make(map[string]bool),
	}
}

func (s *fakeStore) seed(database, collection, key string, body any) {
	s.ensureCollection(database, collection).put(key, body)
}

func (s *fakeStore) seedDatabase(database string) {
	if _, ok := s.databases[database]; !ok {
		s.databases[database] = &fakeDatabase{collections: make(map[string]*fakeCollection)}
		s.databaseOrder = append(s.databaseOrder, database)
	}
}

func (s *fakeStore) ensureCollection(database, collection string) *fakeCollection {
	db, ok := s.databases[database]
	if !ok {
		db = &fakeDatabase{collections: make(map[string]*fakeCollection)}
		s.databases[database] = db
		s.databaseOrder = append(s.databaseOrder, database)
	}

	col, ok := db.collections[collection]
	if !ok {
		col = &fakeCollection{bodies: make(map[string]any)}
		db.collections[collection] = col
		db.collectionOrder = append(db.collectionOrder, collection)
	}

	return col
}

func (c *fakeCollection) put(key string, body any) {
	if _, ok := c.bodies[key]; !ok {
		c.keyOrder = append(c.keyOrder, key)
	}
	c.bodies[key] = body
}

func (s *fakeStore) DatabaseNames(context.Context) ([]string, error) {
	return append([]string(nil), s.databaseOrder...), nil
}

func (s *fakeStore) CollectionNames(_ context.Context, database string) ([]string, error) {
	db, ok := s.databases[database]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), db.collectionOrder...), nil
}

func (s *fakeStore) Documents(_ context.Context, database, collection string) (DocumentCursor, error) {
	var documents []Document
	if db, ok := s.databases[database]; ok {
		if col, ok := db.collections[collection]; ok {
			for _, key := range col.keyOrder {
				documents = append(documents, Document{Key: key, Body: col.bodies[key]})
			}
		}
	}
	return &fakeCursor{documents: documents}, nil
}

func (s *fakeStore) BulkReplace(_ context.Context, database, collection string, batch []Document) (BatchResult, error) {
	if s.failEntireBatch {
		return BatchResult{}, fmt.Errorf("%w: store unavailable", ErrBatchFailed)
	}

	s.bulkBatches = append(s.bulkBatches, append([]Document(nil), batch...))
	var col = s.ensureCollection(database, collection)

	var result BatchResult
	for _, document := range batch {
		var key = document.Key.(string)
		if s.failInstruction[key] {
			result.Failed++
			continue
		}

		existing, ok := col.bodies[key]
		if !ok {
			col.put(key, document.Body)
			result.Inserted++
			continue
		}

		result.Matched++
		if !reflect.DeepEqual(existing, document.Body) {
			col.put(key, document.Body)
			result.Modified++
		}
	}

	return result, nil
}

func (s *fakeStore) CountMissing(_ context.Context, database, collection string, keys []any) (int64, error) {
	var present = make(map[string]struct{}, len(keys))
	for _, key := range keys {
		present[key.(string)] = struct{}{}
	}

	var missing int64
	if db, ok := s.databases[database]; ok {
		if col, ok := db.collections[collection]; ok {
			for _, key := range col.keyOrder {
				if _, ok := present[key]; !ok {
					missing++
				}
			}
		}
	}

	return missing, nil
}

func (s *fakeStore) Ping(context.Context) error { return nil }

func (s *fakeStore) Close(context.Context) error {
	s.closed = true
	return nil
}

type fakeCursor struct {
	documents []Document
	position  int
	current   Document
}

func (c *fakeCursor) Next(context.Context) bool {
	if c.position >= len(c.documents) {
		return false
	}
	c.current = c.documents[c.position]
	c.position++
	return true
}

func (c *fakeCursor) Document() Document          { return c.current }
func (c *fakeCursor) Err() error                  { return nil }
func (c *fakeCursor) Close(context.Context) error { return nil }
