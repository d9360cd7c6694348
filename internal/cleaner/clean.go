// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package cleaner removes recording artifacts from raw owner text and splits
// joint-owner strings into one segment per co-owner.
package cleaner

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"ownerparse/internal/vocabulary"
)

var (
	// (deceased), [see deed 1234], and an unterminated "(life est" at the end
	annotationPattern = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|[(\[][^)\]]*$`)

	trailingPunctuation = ".,;:"
)

// Cleaner strips annotations, alias markers and trailing designations.
type Cleaner struct {
	vocab *vocabulary.Vocabulary
}

// New creates a cleaner over the given vocabulary.
func New(v *vocabulary.Vocabulary) *Cleaner {
	return &Cleaner{vocab: v}
}

// Clean applies every cleaning step to one raw owner string.
//
// When an alias marker such as F/K/A is present, only the text before the first
// marker is kept. A marker at the very start leaves the string unchanged.
func (c *Cleaner) Clean(raw string) string {
	s := norm.NFC.String(raw)
	s = annotationPattern.ReplaceAllString(s, " ")
	s = collapseSpace(s)

	if idx, ok := c.vocab.AliasMarkerIndex(s); ok {
		if head := strings.TrimSpace(s[:idx]); head != "" {
			s = head
		}
	}

	for {
		trimmed := strings.TrimRight(s, trailingPunctuation+" ")
		trimmed, _ = c.vocab.TrimTrailingDesignation(trimmed)
		trimmed = strings.TrimRight(trimmed, trailingPunctuation+" ")
		if trimmed == s || trimmed == "" {
			break
		}
		s = trimmed
	}

	return collapseSpace(s)
}

// Clean cleans raw with the default vocabulary.
func Clean(raw string) string {
	return New(vocabulary.MustDefault()).Clean(raw)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
