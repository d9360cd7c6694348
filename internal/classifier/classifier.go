// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classifier decides whether an owner segment names a person, an
// organization, or something that cannot be used as an owner at all.
//
// Classification is an ordered rule table evaluated first-match-wins. Each rule
// is a pure predicate over a tokenized Segment.
package classifier

import (
	"strings"
	"unicode"

	"ownerparse/internal/owners"
	"ownerparse/internal/vocabulary"
)

// Verdict is the outcome of classifying one segment.
type Verdict int

const (
	Person Verdict = iota
	Organization
	SingleName
	TruncatedTrust
	Insufficient
	NonName
	Unrecognized
)

func (v Verdict) String() string {
	switch v {
	case Person:
		return "person"
	case Organization:
		return "organization"
	case SingleName:
		return "single_name"
	case TruncatedTrust:
		return "truncated_trust"
	case Insufficient:
		return "insufficient"
	case NonName:
		return "non_name"
	case Unrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Reason returns the invalid-record reason for verdicts that always reject
// the segment. Person, Organization and SingleName have no fixed reason.
func (v Verdict) Reason() (owners.Reason, bool) {
	switch v {
	case TruncatedTrust:
		return owners.ReasonTruncatedTrust, true
	case Insufficient:
		return owners.ReasonInsufficientParts, true
	case NonName:
		return owners.ReasonNonName, true
	case Unrecognized:
		return owners.ReasonUnrecognizedFormat, true
	default:
		return "", false
	}
}

// Segment is one cleaned owner string and its whitespace tokens.
type Segment struct {
	Text   string
	Tokens []string
}

// NewSegment tokenizes text.
func NewSegment(text string) Segment {
	text = strings.TrimSpace(text)
	return Segment{Text: text, Tokens: strings.Fields(text)}
}

// IsUpper reports whether the segment has letters and none of them are lowercase.
func (s Segment) IsUpper() bool {
	hasLetter := false
	for _, r := range s.Text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// Rule is one row of the classification table.
type Rule struct {
	Name        string
	Description string
	Applies     func(Segment) bool
	Verdict     Verdict
}

// Decision records the verdict and the rule that produced it.
type Decision struct {
	Verdict Verdict
	Rule    string
}

// Classifier evaluates the rule table against segments.
type Classifier struct {
	vocab *vocabulary.Vocabulary
	rules []Rule
}

// New builds a classifier whose vocabulary-backed rules use v.
func New(v *vocabulary.Vocabulary) *Classifier {
	c := &Classifier{vocab: v}
	c.rules = c.buildRules()
	return c
}

// Rules returns the rule table in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify runs the rule table against text.
func (c *Classifier) Classify(text string) Decision {
	seg := NewSegment(text)
	for _, r := range c.rules {
		if r.Applies(seg) {
			return Decision{Verdict: r.Verdict, Rule: r.Name}
		}
	}
	// the last rule always applies
	return Decision{Verdict: Person, Rule: "person"}
}

// IsOrganization applies only the organization rules, in table order.
func (c *Classifier) IsOrganization(text string) (Decision, bool) {
	seg := NewSegment(text)
	for _, r := range c.rules {
		if r.Verdict == Organization && r.Applies(seg) {
			return Decision{Verdict: Organization, Rule: r.Name}, true
		}
	}
	return Decision{}, false
}

// HasAcronymSlash reports whether text uses the slash notation for an
// institutional co-owner ("Smith John/FNMA", "JONES MARY/FHA"). Splitting
// removes the slash, so callers check the whole string first.
func (c *Classifier) HasAcronymSlash(text string) bool {
	return c.hasAcronymSlash(NewSegment(text))
}
