// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grovetools/mongrove/internal/config"
	"github.com/grovetools/mongrove/internal/sync"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultServerSelectionTimeout = 5 * time.Second

// Store implements sync.Store on top of a MongoDB connection.
type Store struct {
	client *mongo.Client
}

// Connect establishes and verifies a connection. The server selection
// timeout keeps a dead endpoint from hanging the run.
func Connect(ctx context.Context, cfg config.StoreConfiguration) (*Store, error) {
	var timeout = cfg.Timeout
	if timeout <= 0 {
		timeout = defaultServerSelectionTimeout
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.Uri).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("could not reach MongoDB: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) DatabaseNames(ctx context.Context) ([]string, error) {
	return s.client.ListDatabaseNames(ctx, bson.D{})
}

func (s *Store) CollectionNames(ctx context.Context, database string) ([]string, error) {
	return s.client.Database(database).ListCollectionNames(ctx, bson.D{})
}

func (s *Store) Documents(ctx context.Context, database, collection string) (sync.DocumentCursor, error) {
	cursor, err := s.collection(database, collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	return &documentCursor{cursor: cursor}, nil
}

// BulkReplace submits one unordered bulk of keyed replacements with upsert.
// Under unordered semantics the driver still applies sibling instructions
// when some fail; a batch in which nothing applied is reported as
// sync.ErrBatchFailed.
func (s *Store) BulkReplace(ctx context.Context, database, collection string, batch []sync.Document) (sync.BatchResult, error) {
	var models = make([]mongo.WriteModel, 0, len(batch))
	for _, document := range batch {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: document.Key}}).
			SetReplacement(document.Body).
			SetUpsert(true))
	}

	res, err := s.collection(database, collection).BulkWrite(ctx, models,
		options.BulkWrite().SetOrdered(false))

	var result sync.BatchResult
	if res != nil {
		result = sync.BatchResult{
			Inserted: res.UpsertedCount,
			Modified: res.ModifiedCount,
			Matched:  res.MatchedCount,
		}
	}

	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) && result.Applied() > 0 {
			result.Failed = int64(len(bulkErr.WriteErrors))
			return result, nil
		}
		return result, fmt.Errorf("%w: %s", sync.ErrBatchFailed, err)
	}

	return result, nil
}

func (s *Store) CountMissing(ctx context.Context, database, collection string, keys []any) (int64, error) {
	if keys == nil {
		keys = make([]any, 0)
	}
	var filter = bson.M{"_id": bson.M{"$nin": keys}}
	return s.collection(database, collection).CountDocuments(ctx, filter)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(database, collection string) *mongo.Collection {
	return s.client.Database(database).Collection(collection)
}

type documentCursor struct {
	cursor  *mongo.Cursor
	current sync.Document
	err     error
}

func (c *documentCursor) Next(ctx context.Context) bool {
	if c.err != nil {
		return false
	}
	if !c.cursor.Next(ctx) {
		return false
	}

	// cursor.Current is only valid until the next call to Next.
	var raw = make(bson.Raw, len(c.cursor.Current))
	copy(raw, c.cursor.Current)

	key, err := raw.LookupErr("_id")
	if err != nil {
		c.err = fmt.Errorf("document without _id: %w", err)
		return false
	}

	c.current = sync.Document{Key: key, Body: raw}
	return true
}

func (c *documentCursor) Document() sync.Document {
	return c.current
}

func (c *documentCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.cursor.Err()
}

func (c *documentCursor) Close(ctx context.Context) error {
	return c.cursor.Close(ctx)
}
