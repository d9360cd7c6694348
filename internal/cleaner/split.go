// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package cleaner

import (
	"regexp"
	"strings"
)

// Joint-owner separators: "&", "/" and the standalone word "and".
var separatorPattern = regexp.MustCompile(`(?i)\s*[&/]\s*|(?:^|\s+)and(?:\s+|$)`)

// Split divides a cleaned owner string into co-owner segments in input order.
// A string with no separator comes back as its only segment. Empty pieces are
// dropped.
func Split(s string) []string {
	parts := separatorPattern.Split(s, -1)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
