// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SkippedFile is a discovered path that will not be loaded.
type SkippedFile struct {
	Path   string
	Reason string
}

// Discovery is the outcome of expanding an input argument.
type Discovery struct {
	Files   []string
	Skipped []SkippedFile
}

// Discover expands a file, directory or glob pattern into the property files
// to process, in lexical order. Directories are walked one level deep unless
// recursive is set.
func Discover(input string, recursive bool) (*Discovery, error) {
	result := &Discovery{}

	if strings.Contains(input, "..") {
		return nil, fmt.Errorf("path traversal not allowed: %s", input)
	}

	// an existing path wins over glob interpretation
	info, statErr := os.Stat(input)
	if statErr != nil && strings.ContainsAny(input, "*?[") {
		expanded := input
		if strings.HasPrefix(input, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				expanded = filepath.Join(home, input[2:])
			}
		}
		matches, err := filepath.Glob(expanded)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern: %s", input)
		}
		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
				result.add(filepath.Clean(m))
			}
		}
		sort.Strings(result.Files)
		return result, nil
	}
	if statErr != nil {
		return nil, fmt.Errorf("path does not exist or is not accessible: %w", statErr)
	}

	root := filepath.Clean(input)
	if info.Mode().IsRegular() {
		result.add(root)
		return result, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is neither a regular file nor a directory")
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: err.Error()})
			return nil
		}
		if d.IsDir() {
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			result.add(path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error accessing directory: %w", err)
	}
	sort.Strings(result.Files)
	return result, nil
}

func (d *Discovery) add(path string) {
	if !Supported(path) {
		d.Skipped = append(d.Skipped, SkippedFile{Path: path, Reason: "unsupported file type"})
		return
	}
	d.Files = append(d.Files, path)
}
