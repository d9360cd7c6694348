// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package source loads property records from JSON, YAML or HTML files.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ownerparse/internal/extract"
	"ownerparse/internal/history"
)

// ErrUnsupportedFormat is returned for files whose extension has no loader.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// MaxFileSize caps the size of a single input file.
const MaxFileSize = 20 * 1024 * 1024

// Extensions lists the supported input extensions.
var Extensions = []string{".json", ".yaml", ".yml", ".html", ".htm"}

// Loader reads property files.
type Loader struct {
	Selectors extract.Selectors
}

// NewLoader returns a loader using the default HTML selectors.
func NewLoader() *Loader {
	return &Loader{Selectors: extract.DefaultSelectors()}
}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads one property file. The property ID defaults to the file name
// without its extension.
func (l *Loader) Load(path string) (history.Property, error) {
	if !Supported(path) {
		return history.Property{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	info, err := os.Stat(path)
	if err != nil {
		return history.Property{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return history.Property{}, fmt.Errorf("%s: file too large (max size: %dMB)", path, MaxFileSize/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return history.Property{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	p, err := l.Decode(data, filepath.Ext(path))
	if err != nil {
		return history.Property{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.ID == "" {
		base := filepath.Base(path)
		p.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return p, nil
}

// Decode parses property data in the format named by ext.
func (l *Loader) Decode(data []byte, ext string) (history.Property, error) {
	var p history.Property
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return p, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return p, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".html", ".htm":
		return extract.Property(bytes.NewReader(data), l.Selectors)
	default:
		return p, ErrUnsupportedFormat
	}
	return p, nil
}
