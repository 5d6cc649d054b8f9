// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithShutdown derives a context that is cancelled on SIGINT/SIGTERM. The
// reconciler stops at the next batch boundary once cancelled.
func WithShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
}
