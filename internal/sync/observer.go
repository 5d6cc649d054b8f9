// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package sync

// Observer receives progress as the run advances. Calls arrive strictly
// sequentially, in the order work is performed.
type Observer interface {
	RunStarted(id string, databases []string)
	DatabaseStarted(database string)
	CollectionReconciled(database string, report CollectionReport)
	DatabaseFinished(report DatabaseReport)
}

type NopObserver struct{}

func (NopObserver) RunStarted(string, []string)                   {}
func (NopObserver) DatabaseStarted(string)                        {}
func (NopObserver) CollectionReconciled(string, CollectionReport) {}
func (NopObserver) DatabaseFinished(DatabaseReport)               {}
