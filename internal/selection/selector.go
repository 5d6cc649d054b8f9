// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package selection

import "errors"

// ErrCancelled is returned when the operator aborts an interactive
// selection. It is a clean exit, not a failure.
var ErrCancelled = errors.New("selection cancelled")

// Selector narrows an ordered set of candidate database names down to the
// set that should be synchronized. The reconciler only ever sees the
// resulting names; how they were chosen is interchangeable.
type Selector interface {
	SelectSubset(candidates []string) ([]string, error)
}
