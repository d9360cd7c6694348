// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package classifier

import "ownerparse/internal/help"

var ruleDetails = map[string]struct {
	detail   string
	examples []string
}{
	"empty": {
		detail:   "The segment is empty once annotations, alias markers and trailing designations are removed.",
		examples: []string{"(DECEASED)", "ET AL"},
	},
	"organization_keyword": {
		detail: "The text contains an organizational, legal or governmental keyword as a whole word. " +
			"A joint string stays one company when a piece cannot stand alone, as in SMITH & SONS INC.",
		examples: []string{"ACME HOLDINGS LLC", "SMITH FAMILY TRUST", "FIRST BAPTIST CHURCH", "COUNTY OF ORANGE"},
	},
	"acronym_slash": {
		detail:   "A 2-5 letter uppercase acronym touches a slash. In all-caps text the acronym must be a known agency such as FHA or VA.",
		examples: []string{"Smith John/FHA", "VA/Jones Mary", "JONES MARY/FHA"},
	},
	"truncated_trust": {
		detail:   "The last token is a clipped trust designation. The record cannot be attributed to a trust or a person.",
		examples: []string{"SMITH JOHN TR", "JONES MARY TRS"},
	},
	"single_name": {
		detail: "A single name-like token. It becomes a person only when it follows a person in the same owner " +
			"string, borrowing that person's last name.",
		examples: []string{"SMITH JOHN & MARY"},
	},
	"single_token": {
		detail:   "A single token that does not look like a name.",
		examples: []string{"12345", "#4"},
	},
	"non_name_token": {
		detail:   "A token carries digits (other than a generational suffix) or does not start with a letter.",
		examples: []string{"123 MAIN ST", "LOT 7 BLOCK B"},
	},
	"too_many_tokens": {
		detail:   "More than five tokens; too long to be a single person name.",
		examples: []string{"JOHN PAUL GEORGE RINGO PETE STUART"},
	},
	"person": {
		detail:   "The segment passed every earlier rule and is parsed into name parts.",
		examples: []string{"SMITH JOHN A", "Mary Jones", "Jones, Mary Ann"},
	},
}

// GetTopicInfo describes the rule for the help system
func (r Rule) GetTopicInfo() help.TopicInfo {
	info := help.TopicInfo{
		Name:             r.Name,
		ShortDescription: r.Description,
		Outcome:          r.Verdict.String(),
	}
	if reason, ok := r.Verdict.Reason(); ok {
		info.Reason = string(reason)
	}
	if d, ok := ruleDetails[r.Name]; ok {
		info.DetailedDescription = d.detail
		info.Examples = d.examples
	}
	if info.DetailedDescription == "" {
		info.DetailedDescription = r.Description
	}
	return info
}
