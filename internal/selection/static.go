// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"fmt"
	"strings"
)

// Static selects a fixed list of names, for non-interactive use (flags,
// cron). Every requested name must be a candidate.
type Static struct {
	Names []string
}

func (s Static) SelectSubset(candidates []string) ([]string, error) {
	var available = make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		available[name] = struct{}{}
	}

	var unknown []string
	var selected = make([]string, 0, len(s.Names))
	for _, name := range s.Names {
		if _, ok := available[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, name)
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("databases not found: %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(candidates, ", "))
	}

	return selected, nil
}
