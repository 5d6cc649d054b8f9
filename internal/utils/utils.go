// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package utils

func CreateFieldsForCollection(database string, collection string) map[string]any {
	return map[string]any{
		"database":   database,
		"collection": collection,
	}
}

func CreateFieldsForBatch(database string, collection string, size int) map[string]any {
	var fields = CreateFieldsForCollection(database, collection)
	fields["batchSize"] = size
	return fields
}
