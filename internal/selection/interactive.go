// Copyright 2025 grovetools
//
// SPDX-License-Identifier: Apache-2.0

package selection

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Interactive presents a checkbox menu on the terminal with every candidate
// preselected, mirroring the behavior of the classic backup picker.
type Interactive struct {
	Title string
}

func (s Interactive) SelectSubset(candidates []string) ([]string, error) {
	var title = s.Title
	if title == "" {
		title = "Select databases to sync"
	}

	var options = make([]huh.Option[string], 0, len(candidates))
	for _, name := range candidates {
		options = append(options, huh.NewOption(name, name).Selected(true))
	}

	var selected []string
	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(title).
			Options(options...).
			Value(&selected),
	))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, err
	}

	return selected, nil
}
