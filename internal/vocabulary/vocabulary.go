// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package vocabulary provides the fixed word tables used to classify and parse
// owner text: organizational markers, honorific prefixes, name suffixes,
// alias markers, trailing co-owner designations and agency acronyms.
//
// Tables are static configuration. A compiled Vocabulary is immutable and safe
// to share between goroutines.
package vocabulary

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Tables is the raw, serializable form of a vocabulary.
type Tables struct {
	OrganizationKeywords []string `yaml:"organization_keywords"`
	Prefixes             []string `yaml:"prefixes"`
	Suffixes             []string `yaml:"suffixes"`
	AliasMarkers         []string `yaml:"alias_markers"`
	TrailingDesignations []string `yaml:"trailing_designations"`
	TruncatedTrust       []string `yaml:"truncated_trust"`
	AgencyAcronyms       []string `yaml:"agency_acronyms"`
}

// Override extends (or, with Replace, substitutes) the tables of a base vocabulary.
// Empty lists leave the corresponding base table untouched even when Replace is set.
type Override struct {
	Tables  `yaml:",inline"`
	Replace bool `yaml:"replace"`
}

// Vocabulary is a compiled set of tables.
type Vocabulary struct {
	tables Tables

	orgPattern      *regexp.Regexp
	aliasPattern    *regexp.Regexp
	trailingPattern *regexp.Regexp

	prefixes       map[string]string // normalized token -> display form
	suffixes       map[string]string
	truncatedTrust map[string]struct{}
	acronyms       map[string]struct{}
}

// boundary matches the edge of a word without consuming letters or digits.
const (
	leftBoundary  = `(?:^|[^\pL\pN])`
	rightBoundary = `(?:$|[^\pL\pN])`
)

// Compile validates the tables and builds their matchers.
func Compile(t Tables) (*Vocabulary, error) {
	if len(t.OrganizationKeywords) == 0 {
		return nil, fmt.Errorf("vocabulary: organization keyword table is empty")
	}

	v := &Vocabulary{
		tables:         clone(t),
		prefixes:       displayIndex(t.Prefixes),
		suffixes:       displayIndex(t.Suffixes),
		truncatedTrust: tokenSet(t.TruncatedTrust),
		acronyms:       tokenSet(t.AgencyAcronyms),
	}

	var err error
	if v.orgPattern, err = wordAlternation(t.OrganizationKeywords, leftBoundary, rightBoundary); err != nil {
		return nil, fmt.Errorf("vocabulary: organization keywords: %w", err)
	}
	if len(t.AliasMarkers) > 0 {
		if v.aliasPattern, err = wordAlternation(t.AliasMarkers, leftBoundary, rightBoundary); err != nil {
			return nil, fmt.Errorf("vocabulary: alias markers: %w", err)
		}
	}
	if len(t.TrailingDesignations) > 0 {
		if v.trailingPattern, err = wordAlternation(t.TrailingDesignations, `(?:^|[\s,;]+)`, `\.?[\s.,;:]*$`); err != nil {
			return nil, fmt.Errorf("vocabulary: trailing designations: %w", err)
		}
	}
	return v, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(t Tables) *Vocabulary {
	v, err := Compile(t)
	if err != nil {
		panic(err)
	}
	return v
}

// With returns a new vocabulary with o applied on top of v.
func (v *Vocabulary) With(o Override) (*Vocabulary, error) {
	merged := clone(v.tables)
	apply := func(base *[]string, extra []string) {
		if len(extra) == 0 {
			return
		}
		if o.Replace {
			*base = append([]string(nil), extra...)
			return
		}
		*base = appendUnique(*base, extra)
	}
	apply(&merged.OrganizationKeywords, o.OrganizationKeywords)
	apply(&merged.Prefixes, o.Prefixes)
	apply(&merged.Suffixes, o.Suffixes)
	apply(&merged.AliasMarkers, o.AliasMarkers)
	apply(&merged.TrailingDesignations, o.TrailingDesignations)
	apply(&merged.TruncatedTrust, o.TruncatedTrust)
	apply(&merged.AgencyAcronyms, o.AgencyAcronyms)
	return Compile(merged)
}

// Tables returns a copy of the source tables.
func (v *Vocabulary) Tables() Tables { return clone(v.tables) }

// HasOrganizationKeyword reports whether s contains an organizational marker as a whole word.
func (v *Vocabulary) HasOrganizationKeyword(s string) bool {
	return v.orgPattern.MatchString(s)
}

// OrganizationKeyword returns the first organizational marker found in s.
func (v *Vocabulary) OrganizationKeyword(s string) (string, bool) {
	m := v.orgPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// OnlyOrganizationKeywords reports whether s is made of organizational
// markers and nothing else, as in "TRUST CO" or "INC".
func (v *Vocabulary) OnlyOrganizationKeywords(s string) bool {
	if !v.orgPattern.MatchString(s) {
		return false
	}
	// a match consumes the separator before the next keyword, so repeat
	for next := v.orgPattern.ReplaceAllString(s, " "); next != s; next = v.orgPattern.ReplaceAllString(s, " ") {
		s = next
	}
	return strings.IndexFunc(s, unicode.IsLetter) < 0
}

// AliasMarkerIndex returns the byte offset of the first alias marker in s.
func (v *Vocabulary) AliasMarkerIndex(s string) (int, bool) {
	if v.aliasPattern == nil {
		return 0, false
	}
	loc := v.aliasPattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return 0, false
	}
	return loc[2], true
}

// TrimTrailingDesignation removes one trailing co-owner designation ("ET AL",
// "TRUSTEE") from s. It reports whether anything was removed.
func (v *Vocabulary) TrimTrailingDesignation(s string) (string, bool) {
	if v.trailingPattern == nil {
		return s, false
	}
	loc := v.trailingPattern.FindStringIndex(s)
	if loc == nil || loc[0] == 0 {
		return s, false
	}
	return s[:loc[0]], true
}

// Prefix looks up an honorific and returns its display form.
func (v *Vocabulary) Prefix(token string) (string, bool) {
	d, ok := v.prefixes[Normalize(token)]
	return d, ok
}

// Suffix looks up a generational or professional suffix and returns its display form.
func (v *Vocabulary) Suffix(token string) (string, bool) {
	d, ok := v.suffixes[Normalize(token)]
	return d, ok
}

// IsTruncatedTrust reports whether token is a clipped form of "trust".
func (v *Vocabulary) IsTruncatedTrust(token string) bool {
	_, ok := v.truncatedTrust[Normalize(token)]
	return ok
}

// IsAgencyAcronym reports whether token is a lending or government agency
// acronym such as FHA or VA.
func (v *Vocabulary) IsAgencyAcronym(token string) bool {
	_, ok := v.acronyms[Normalize(token)]
	return ok
}

// Normalize lower-cases a token and drops periods and commas, so "Jr." and
// "JR" (or "Ph.D." and "PHD") share one lookup key.
func Normalize(token string) string {
	token = strings.ToLower(strings.TrimSpace(token))
	return strings.Map(func(r rune) rune {
		if r == '.' || r == ',' {
			return -1
		}
		return r
	}, token)
}

// wordAlternation compiles a case-insensitive alternation of literal phrases.
// Longer phrases are tried first so "formerly known as" wins over "formerly".
// Internal whitespace in a phrase matches any run of whitespace.
func wordAlternation(words []string, left, right string) (*regexp.Regexp, error) {
	sorted := append([]string(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	alts := make([]string, 0, len(sorted))
	for _, w := range sorted {
		fields := strings.Fields(w)
		if len(fields) == 0 {
			continue
		}
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = regexp.QuoteMeta(f)
		}
		alts = append(alts, strings.Join(quoted, `\s+`))
	}
	if len(alts) == 0 {
		return nil, fmt.Errorf("no usable entries")
	}
	return regexp.Compile(`(?i)` + left + `(` + strings.Join(alts, "|") + `)` + right)
}

func displayIndex(entries []string) map[string]string {
	idx := make(map[string]string, len(entries))
	for _, e := range entries {
		key := Normalize(e)
		if key == "" {
			continue
		}
		if _, exists := idx[key]; !exists {
			idx[key] = e
		}
	}
	return idx
}

func tokenSet(entries []string) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[Normalize(e)] = struct{}{}
	}
	return set
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, b := range base {
		seen[strings.ToLower(b)] = struct{}{}
	}
	for _, e := range extra {
		if _, ok := seen[strings.ToLower(e)]; ok {
			continue
		}
		seen[strings.ToLower(e)] = struct{}{}
		base = append(base, e)
	}
	return base
}

func clone(t Tables) Tables {
	cp := func(s []string) []string { return append([]string(nil), s...) }
	return Tables{
		OrganizationKeywords: cp(t.OrganizationKeywords),
		Prefixes:             cp(t.Prefixes),
		Suffixes:             cp(t.Suffixes),
		AliasMarkers:         cp(t.AliasMarkers),
		TrailingDesignations: cp(t.TrailingDesignations),
		TruncatedTrust:       cp(t.TruncatedTrust),
		AgencyAcronyms:       cp(t.AgencyAcronyms),
	}
}
