// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/grovetools/mongrove/internal/cmd"
	"github.com/grovetools/mongrove/internal/config"
)

func main() {
	_ = config.Current
	cmd.Execute()
}
