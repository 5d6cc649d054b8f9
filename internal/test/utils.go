// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package test

import (
	"context"
	"testing"
	"time"

	"github.com/grovetools/mongrove/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BuildBaseTestConfig creates a configuration pointing at the two dockerized
// MongoDB instances. Individual test packages extend it as needed.
func BuildBaseTestConfig() *config.Configuration {
	testConfig := new(config.Configuration)

	testConfig.LogLevel = "debug"
	testConfig.BatchSize = 500
	testConfig.ExcludedDatabases = []string{"admin", "config", "local"}

	testConfig.Source.Uri = SourceUri()
	testConfig.Source.Timeout = 5 * time.Second
	testConfig.Target.Uri = TargetUri()
	testConfig.Target.Timeout = 5 * time.Second

	return testConfig
}

// SeedCollection inserts documents directly through the driver, bypassing
// the store layer under test.
func SeedCollection(t *testing.T, uri, database, collection string, documents []any) {
	t.Helper()

	var ctx = context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("could not connect to %s: %s", uri, err)
	}
	defer client.Disconnect(ctx)

	if len(documents) == 0 {
		return
	}

	if _, err := client.Database(database).Collection(collection).InsertMany(ctx, documents); err != nil {
		t.Fatalf("could not seed %s.%s: %s", database, collection, err)
	}
}

// DropDatabase removes a database entirely, for test isolation.
func DropDatabase(t *testing.T, uri, database string) {
	t.Helper()

	var ctx = context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("could not connect to %s: %s", uri, err)
	}
	defer client.Disconnect(ctx)

	if err := client.Database(database).Drop(ctx); err != nil {
		t.Fatalf("could not drop %s: %s", database, err)
	}
}

// FindAll returns every document of a collection, keyed by _id.
func FindAll(t *testing.T, uri, database, collection string) map[any]bson.M {
	t.Helper()

	var ctx = context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("could not connect to %s: %s", uri, err)
	}
	defer client.Disconnect(ctx)

	cursor, err := client.Database(database).Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		t.Fatalf("could not read %s.%s: %s", database, collection, err)
	}

	var documents = make(map[any]bson.M)
	for cursor.Next(ctx) {
		var document bson.M
		if err := cursor.Decode(&document); err != nil {
			t.Fatalf("could not decode document: %s", err)
		}
		documents[document["_id"]] = document
	}
	if err := cursor.Err(); err != nil {
		t.Fatalf("cursor failed: %s", err)
	}

	return documents
}
