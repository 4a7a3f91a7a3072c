// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

func parseYAML(data []byte) (*Job, error) {
	var doc document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, yaml.FormatError(err, false, true))
	}

	j, err := doc.toJob()
	if err != nil {
		return nil, errors.Join(ErrInvalidYAML, err)
	}

	return j, nil
}
