// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package personname

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// One capital, lowercase remainder, optionally repeated after a space, hyphen,
// apostrophe, comma or period.
var validNamePattern = regexp.MustCompile(`^[A-Z][a-z]*(?:[ \-',.][A-Za-z][a-z]*)*$`)

// ValidName reports whether s is an acceptable person name field.
func ValidName(s string) bool {
	return validNamePattern.MatchString(s)
}

// Fold removes diacritics: "José" becomes "Jose".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Recase gives every space-separated word a single leading capital and a
// lowercase remainder: "MC DONALD" becomes "Mc Donald".
func Recase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// cleanToken drops trailing commas and periods and folds diacritics.
func cleanToken(tok string) string {
	return Fold(strings.TrimRight(tok, ".,"))
}
