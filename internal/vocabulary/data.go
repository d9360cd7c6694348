// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package vocabulary

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Embedded default tables
//
//go:embed data/vocabulary.yaml
var defaultTablesYAML []byte

var (
	// Global instance for lazy loading
	defaultVocabulary *Vocabulary
	loadOnce          sync.Once
	loadError         error
)

// Default returns the compiled built-in vocabulary.
// Uses sync.Once so the embedded tables are parsed a single time.
func Default() (*Vocabulary, error) {
	loadOnce.Do(func() {
		var t Tables
		t, loadError = ParseTables(defaultTablesYAML)
		if loadError != nil {
			return
		}
		defaultVocabulary, loadError = Compile(t)
	})
	return defaultVocabulary, loadError
}

// MustDefault is like Default but panics if the embedded tables are broken.
func MustDefault() *Vocabulary {
	v, err := Default()
	if err != nil {
		panic(err)
	}
	return v
}

// ParseTables decodes vocabulary tables from YAML.
func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to parse vocabulary tables: %w", err)
	}
	return t, nil
}
