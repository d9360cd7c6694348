// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"errors"

	"ownerparse/internal/owners"
)

// DateLayout is the only accepted transfer date format.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned by Build when a transfer date is not an ISO
// calendar date.
var ErrInvalidDate = errors.New("invalid transfer date")

// Transfer is one historical sale: its recording date and the raw grantee text.
type Transfer struct {
	Date    string `json:"date" yaml:"date"`
	Grantee string `json:"grantee" yaml:"grantee"`
}

// Property is the extracted owner text for one property record.
type Property struct {
	ID            string     `json:"id" yaml:"id"`
	Transfers     []Transfer `json:"transfers" yaml:"transfers"`
	CurrentOwners []string   `json:"current_owners" yaml:"current_owners"`
}

// CurrentSource names the policy step that produced the current snapshot.
type CurrentSource string

const (
	SourceNone                 CurrentSource = "none"
	SourceCurrentBlock         CurrentSource = "current_block"
	SourceLatestTransfer       CurrentSource = "latest_transfer"
	SourceOrganizationOverride CurrentSource = "organization_override"
)

// Result is the finished ownership record for one property.
type Result struct {
	PropertyID    string                `json:"property_id" yaml:"property_id"`
	Timeline      owners.Timeline       `json:"owners_by_date" yaml:"owners_by_date"`
	Invalid       []owners.InvalidOwner `json:"invalid_owners" yaml:"invalid_owners"`
	CurrentSource CurrentSource         `json:"-" yaml:"-"`
}

// OwnerCount returns the number of owner records across all buckets.
func (r Result) OwnerCount() int {
	n := len(r.Timeline.Current)
	for _, d := range r.Timeline.Dates {
		n += len(d.Owners)
	}
	return n
}
