// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package sync

import "errors"

var (
	// ErrMissingSource and ErrMissingTarget abort before any store contact.
	ErrMissingSource = errors.New("source connection string is not configured")
	ErrMissingTarget = errors.New("target connection string is not configured")

	// ErrNoCandidates means the source exposes no non-excluded databases.
	// Informational, not a failure.
	ErrNoCandidates = errors.New("no candidate databases on source")

	// ErrEmptySelection means the caller selected zero databases.
	ErrEmptySelection = errors.New("no databases selected")

	// ErrBatchFailed marks a bulk batch in which no instruction applied.
	// Fatal for the run; partial progress stays reported.
	ErrBatchFailed = errors.New("bulk write batch failed entirely")
)
