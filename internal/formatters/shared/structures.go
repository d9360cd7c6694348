// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"sort"

	"ownerparse/internal/history"
	"ownerparse/internal/owners"
)

// Document returns the value serialized by the JSON and YAML formatters:
// the single result itself, or a list when there are several.
func Document(results []history.Result) interface{} {
	if len(results) == 1 {
		return results[0]
	}
	if results == nil {
		return []history.Result{}
	}
	return results
}

// Row is one flattened output line: an owner in a bucket, or an invalid segment
type Row struct {
	PropertyID string
	Bucket     string
	Status     string // "owner" or "invalid"
	Owner      owners.Owner
	Raw        string
	Reason     owners.Reason
}

// Rows flattens a result in timeline order, followed by its invalid segments
func Rows(r history.Result) []Row {
	var rows []Row
	for _, key := range r.Timeline.Keys() {
		list, _ := r.Timeline.Get(key)
		for _, o := range list {
			rows = append(rows, Row{PropertyID: r.PropertyID, Bucket: key, Status: "owner", Owner: o})
		}
	}
	for _, inv := range r.Invalid {
		rows = append(rows, Row{
			PropertyID: r.PropertyID,
			Bucket:     inv.Date,
			Status:     "invalid",
			Raw:        inv.Raw,
			Reason:     inv.Reason,
		})
	}
	return rows
}

// Summary aggregates counts across results
type Summary struct {
	Properties int
	Persons    int
	Companies  int
	Invalid    int
	ByReason   map[owners.Reason]int
}

// Summarize counts owners and invalid segments. Owners are counted per bucket.
func Summarize(results []history.Result) Summary {
	s := Summary{Properties: len(results), ByReason: make(map[owners.Reason]int)}
	for _, r := range results {
		for _, key := range r.Timeline.Keys() {
			list, _ := r.Timeline.Get(key)
			for _, o := range list {
				if o.IsCompany() {
					s.Companies++
				} else {
					s.Persons++
				}
			}
		}
		for _, inv := range r.Invalid {
			s.Invalid++
			s.ByReason[inv.Reason]++
		}
	}
	return s
}

// SortedReasons returns the reasons present in s in a stable order
func (s Summary) SortedReasons() []owners.Reason {
	reasons := make([]owners.Reason, 0, len(s.ByReason))
	for r := range s.ByReason {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
