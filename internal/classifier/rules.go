// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import (
	"regexp"
	"strings"
	"unicode"
)

const maxPersonTokens = 5

var (
	// A letter-led token made of letters, apostrophes, hyphens, periods and commas.
	nameTokenPattern = regexp.MustCompile(`^\p{L}[\p{L}'’\-.,]*$`)

	// A 2-5 letter uppercase acronym touching a slash on either side: "HUD/", "/VA".
	acronymSlashPattern = regexp.MustCompile(`(?:^|[^\pL])[A-Z]{2,5}\s*/|/\s*[A-Z]{2,5}(?:[^\pL]|$)`)
)

func (c *Classifier) buildRules() []Rule {
	return []Rule{
		{
			Name:        "empty",
			Description: "Nothing left after cleaning",
			Applies:     func(s Segment) bool { return len(s.Tokens) == 0 },
			Verdict:     NonName,
		},
		{
			Name:        "organization_keyword",
			Description: "Whole-word organizational, legal or governmental marker",
			Applies:     func(s Segment) bool { return c.vocab.HasOrganizationKeyword(s.Text) },
			Verdict:     Organization,
		},
		{
			Name:        "acronym_slash",
			Description: "Uppercase acronym adjacent to a slash",
			Applies:     c.hasAcronymSlash,
			Verdict:     Organization,
		},
		{
			Name:        "truncated_trust",
			Description: "Ends in a clipped trust designation such as TR or TRS",
			Applies: func(s Segment) bool {
				return len(s.Tokens) > 0 && c.vocab.IsTruncatedTrust(s.Tokens[len(s.Tokens)-1])
			},
			Verdict: TruncatedTrust,
		},
		{
			Name:        "single_name",
			Description: "One name-like token, usable only with a shared surname",
			Applies: func(s Segment) bool {
				return len(s.Tokens) == 1 && isNameToken(s.Tokens[0])
			},
			Verdict: SingleName,
		},
		{
			Name:        "single_token",
			Description: "One token that does not look like a name",
			Applies:     func(s Segment) bool { return len(s.Tokens) == 1 },
			Verdict:     Insufficient,
		},
		{
			Name:        "non_name_token",
			Description: "Digits outside a suffix, or a token that is not letter-led",
			Applies:     c.hasNonNameToken,
			Verdict:     NonName,
		},
		{
			Name:        "too_many_tokens",
			Description: "More tokens than a person name carries",
			Applies:     func(s Segment) bool { return len(s.Tokens) > maxPersonTokens },
			Verdict:     Unrecognized,
		},
		{
			Name:        "person",
			Description: "Passed every gate",
			Applies:     func(Segment) bool { return true },
			Verdict:     Person,
		},
	}
}

// hasAcronymSlash matches any short uppercase run beside a slash in mixed-case
// text. In all-caps text every name is an uppercase run, so the token beside
// the slash must be a known agency acronym.
func (c *Classifier) hasAcronymSlash(s Segment) bool {
	if !strings.Contains(s.Text, "/") {
		return false
	}
	if !s.IsUpper() {
		return acronymSlashPattern.MatchString(s.Text)
	}
	pieces := strings.Split(s.Text, "/")
	for i := 0; i+1 < len(pieces); i++ {
		if left := strings.Fields(pieces[i]); len(left) > 0 && c.vocab.IsAgencyAcronym(left[len(left)-1]) {
			return true
		}
		if right := strings.Fields(pieces[i+1]); len(right) > 0 && c.vocab.IsAgencyAcronym(right[0]) {
			return true
		}
	}
	return false
}

func (c *Classifier) hasNonNameToken(s Segment) bool {
	for _, tok := range s.Tokens {
		if _, ok := c.vocab.Suffix(tok); ok {
			continue
		}
		if strings.IndexFunc(tok, unicode.IsDigit) >= 0 || !isNameToken(tok) {
			return true
		}
	}
	return false
}

func isNameToken(tok string) bool {
	return nameTokenPattern.MatchString(tok)
}
