// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

//go:build testing

package mongo

import (
	"os"
	"testing"

	"github.com/grovetools/mongrove/internal/config"
	"github.com/grovetools/mongrove/internal/test"
)

var testConfig *config.Configuration

// TestMain sets up the dockerized source and target MongoDB instances shared
// by all tests in this package.
func TestMain(m *testing.M) {
	test.SetupDocker()
	testConfig = test.BuildBaseTestConfig()
	test.InstallLogRecorder()

	code := m.Run()

	test.TeardownDocker()
	os.Exit(code)
}
