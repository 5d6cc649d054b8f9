// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/grovetools/mongrove/internal/sync"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registry  *prometheus.Registry
	documents *prometheus.GaugeVec
)

const namespace = "mongrove"

func init() {
	registry = prometheus.NewRegistry()
	documents = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "documents",
		Help:      "Documents classified during the last reconciliation run",
	}, []string{"database", "collection", "outcome"})
	registry.MustRegister(documents)
}

func RecordCollection(database string, report sync.CollectionReport) {
	var labels = prometheus.Labels{"database": database, "collection": report.Name}

	for outcome, value := range map[string]int64{
		"inserted":  report.Stats.Inserted,
		"replaced":  report.Stats.Replaced,
		"unchanged": report.Stats.Unchanged,
		"orphaned":  report.Stats.Orphaned,
	} {
		labels["outcome"] = outcome
		documents.With(labels).Set(float64(value))
	}
}

func RecordRun(report *sync.RunReport) {
	for _, database := range report.Databases {
		for _, collection := range database.Collections {
			RecordCollection(database.Name, collection)
		}
	}
}
