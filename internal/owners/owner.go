// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package owners holds the typed ownership records produced from owner text,
// the invalid-record side channel, identity keys and the per-property timeline.
package owners

import "strings"

// Kind discriminates the OwnerRecord variants.
type Kind string

// Owner kinds.
const (
	KindPerson  Kind = "person"
	KindCompany Kind = "company"
)

// CurrentKey is the timeline key of the present ownership snapshot.
const CurrentKey = "current"

// Owner is a tagged variant: a natural person or a non-person entity.
// Person records use the name-part fields; company records use Name.
type Owner struct {
	Type       Kind   `json:"type" yaml:"type"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	PrefixName string `json:"prefix_name,omitempty" yaml:"prefix_name,omitempty"`
	FirstName  string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty" yaml:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	SuffixName string `json:"suffix_name,omitempty" yaml:"suffix_name,omitempty"`
}

// NewCompany returns a company record.
func NewCompany(name string) Owner {
	return Owner{Type: KindCompany, Name: name}
}

// NewPerson returns a person record without prefix or suffix.
func NewPerson(first, middle, last string) Owner {
	return Owner{Type: KindPerson, FirstName: first, MiddleName: middle, LastName: last}
}

// IsPerson reports whether the record is a natural person.
func (o Owner) IsPerson() bool { return o.Type == KindPerson }

// IsCompany reports whether the record is a non-person entity.
func (o Owner) IsCompany() bool { return o.Type == KindCompany }

// IdentityKey returns the normalized key used to detect duplicates within one
// date bucket: the record type, then the lower-cased trimmed name for
// companies or the lower-cased first, middle (if present) and last names for
// people.
func (o Owner) IdentityKey() string {
	if o.IsCompany() {
		return string(KindCompany) + ":" + strings.ToLower(strings.TrimSpace(o.Name))
	}
	parts := []string{o.FirstName}
	if o.MiddleName != "" {
		parts = append(parts, o.MiddleName)
	}
	parts = append(parts, o.LastName)
	return string(KindPerson) + ":" + strings.ToLower(strings.Join(parts, " "))
}

// DisplayName renders the record for human-readable output.
func (o Owner) DisplayName() string {
	if o.IsCompany() {
		return o.Name
	}
	var parts []string
	for _, p := range []string{o.PrefixName, o.FirstName, o.MiddleName, o.LastName, o.SuffixName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
