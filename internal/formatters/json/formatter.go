// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"

	"ownerparse/internal/formatters"
	"ownerparse/internal/formatters/shared"
	"ownerparse/internal/history"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Ownership timeline and invalid owners as JSON"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(results []history.Result, options formatters.FormatterOptions) (string, error) {
	doc := shared.Document(results)

	var (
		jsonData []byte
		err      error
	)
	if options.Compact {
		jsonData, err = json.Marshal(doc)
	} else {
		jsonData, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("error formatting JSON: %w", err)
	}

	return string(jsonData), nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
