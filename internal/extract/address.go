// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import "regexp"

var addressPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:p\.?\s*o\.?\s*box|post\s+office\s+box|box)\s+\w+`),
	// 1234 MAIN ST
	regexp.MustCompile(`^\d+[A-Za-z]?(?:-\d+)?\s+\S`),
	// FORT WORTH TX 76102-1234
	regexp.MustCompile(`(?:^|\s)\d{5}(?:-\d{4})?\s*$`),
	// care-of lines name a mailing contact, not an owner
	regexp.MustCompile(`(?i)^(?:c/o|attn:?|in\s+care\s+of)\s`),
}

// IsAddressLine reports whether a current-owner block line is part of the
// mailing address rather than an owner name.
func IsAddressLine(line string) bool {
	for _, p := range addressPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
